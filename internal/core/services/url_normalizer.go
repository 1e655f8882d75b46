package services

import (
	"fmt"
	"strings"

	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/ports"
)

// minPartLength - части адреса короче этого считаются отсутствующими.
const minPartLength = 3

// EmptyURLMessage возвращается для пустого адреса.
const EmptyURLMessage = "Please enter a url"

// URLNormalizerImpl реализует интерфейс URLNormalizer.
type URLNormalizerImpl struct {
	expectedPage     string
	defaultDirectory string
}

// NewURLNormalizer создает новый экземпляр URLNormalizerImpl.
func NewURLNormalizer(expectedPage, defaultDirectory string) ports.URLNormalizer {
	return &URLNormalizerImpl{
		expectedPage:     expectedPage,
		defaultDirectory: defaultDirectory,
	}
}

// urlParts - адрес, разобранный на части для исправления.
type urlParts struct {
	protocol    string
	domain      string
	directories string // со слешем на конце, например "admin/" или "a/b/"
	page        string
}

// Validate проверяет, что адрес ведет на ожидаемую страницу.
// Возвращает nil для корректного адреса. Исправление предлагается только при
// isRetry == false, чтобы повторная проверка исправленного адреса не зациклилась.
func (n *URLNormalizerImpl) Validate(rawURL string, isRetry bool) *domain.URLWarning {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return &domain.URLWarning{Message: EmptyURLMessage}
	}

	stripped := n.StripQuery(trimmed)
	if n.endsWithPage(stripped) {
		return nil
	}

	warning := &domain.URLWarning{
		Message: fmt.Sprintf("The url should look like protocol://domain/%s/%s", n.defaultDirectory, n.expectedPage),
	}
	if isRetry {
		return warning
	}
	warning.Fix = n.repair(n.decompose(stripped))
	return warning
}

// ResolveTargetURL возвращает адрес, который следует подставить в скрипт.
// Корректный адрес возвращается без строки запроса; если адрес удалось
// исправить, возвращается исправление вместе с предупреждением.
func (n *URLNormalizerImpl) ResolveTargetURL(rawURL string) (string, *domain.URLWarning) {
	trimmed := strings.TrimSpace(rawURL)
	warning := n.Validate(trimmed, false)
	if warning == nil {
		return n.StripQuery(trimmed), nil
	}
	if warning.Fix == "" {
		return trimmed, warning
	}
	if retry := n.Validate(warning.Fix, true); retry != nil {
		return trimmed, retry
	}
	return warning.Fix, warning
}

// StripQuery отбрасывает строку запроса и фрагмент, идущие сразу после ожидаемой страницы.
func (n *URLNormalizerImpl) StripQuery(rawURL string) string {
	idx := strings.Index(rawURL, n.expectedPage)
	if idx < 0 {
		return rawURL
	}
	end := idx + len(n.expectedPage)
	if end < len(rawURL) && (rawURL[end] == '?' || rawURL[end] == '#') {
		return rawURL[:end]
	}
	return rawURL
}

func (n *URLNormalizerImpl) endsWithPage(u string) bool {
	return u == n.expectedPage || strings.HasSuffix(u, "/"+n.expectedPage)
}

// decompose разбирает адрес на протокол, домен, каталоги и страницу.
// Страница, отличная от ожидаемой, считается отсутствующей.
func (n *URLNormalizerImpl) decompose(rawURL string) urlParts {
	var parts urlParts

	rest := rawURL
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}

	if i := strings.Index(rest, "://"); i >= 0 {
		scheme := strings.ToLower(rest[:i])
		if scheme == "http" || scheme == "https" {
			parts.protocol = scheme
		}
		rest = rest[i+len("://"):]
	}

	domainPart, path, _ := strings.Cut(rest, "/")
	parts.domain = domainPart

	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	if len(segments) > 0 {
		last := segments[len(segments)-1]
		if last == n.expectedPage || (!strings.HasSuffix(path, "/") && strings.Contains(last, ".")) {
			segments = segments[:len(segments)-1]
			if last == n.expectedPage {
				parts.page = last
			}
		}
	}

	if len(segments) > 0 {
		parts.directories = strings.Join(segments, "/") + "/"
	}
	return parts
}

// repair подставляет значения по умолчанию и собирает адрес.
// Пустая строка означает, что протокол или домен восстановить нельзя.
func (n *URLNormalizerImpl) repair(parts urlParts) string {
	if len(parts.directories) < minPartLength {
		parts.directories = n.defaultDirectory
	}
	if len(parts.page) < minPartLength {
		parts.page = n.expectedPage
	}
	parts.directories = strings.TrimSuffix(parts.directories, "/")

	if parts.protocol == "" || parts.domain == "" || parts.directories == "" || parts.page == "" {
		return ""
	}
	return fmt.Sprintf("%s://%s/%s/%s", parts.protocol, parts.domain, parts.directories, parts.page)
}
