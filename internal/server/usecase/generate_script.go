package usecase

import (
	"errors"
	"fmt"
	"log/slog"

	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/ports"
)

var (
	// ErrNoOptions возвращается, когда список кнопок пуст.
	ErrNoOptions = errors.New("no options to encode")
	// ErrEmptyURL возвращается, когда адрес страницы не указан.
	ErrEmptyURL = errors.New("target url is empty")
)

// GeneratedScript - результат генерации скрипта.
type GeneratedScript struct {
	Script  string             `json:"script"`
	URL     string             `json:"url"`
	Warning *domain.URLWarning `json:"warning,omitempty"`
}

// GenerateScriptUseCase инкапсулирует генерацию скрипта: проверку адреса и сериализацию кнопок.
type GenerateScriptUseCase struct {
	normalizer ports.URLNormalizer
	codec      ports.OptionCodec
	template   string
}

// NewGenerateScriptUseCase создает новый экземпляр GenerateScriptUseCase.
func NewGenerateScriptUseCase(
	normalizer ports.URLNormalizer,
	codec ports.OptionCodec,
	template string,
) *GenerateScriptUseCase {
	return &GenerateScriptUseCase{
		normalizer: normalizer,
		codec:      codec,
		template:   template,
	}
}

// Generate проверяет адрес и собирает скрипт из кнопок.
// Если адрес удалось исправить, в скрипт подставляется исправление и возвращается предупреждение.
// Неисправимый адрес подставляется как есть, предупреждение также возвращается.
func (uc *GenerateScriptUseCase) Generate(options []domain.Option, rawURL string) (*GeneratedScript, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}

	targetURL, warning := uc.normalizer.ResolveTargetURL(rawURL)
	if targetURL == "" {
		return nil, ErrEmptyURL
	}
	if warning != nil {
		slog.Warn("Адрес страницы не соответствует ожидаемому виду",
			"url", rawURL, "fix", warning.Fix, "message", warning.Message)
	}

	script, err := uc.codec.Encode(options, targetURL, uc.template)
	if err != nil {
		return nil, fmt.Errorf("не удалось сериализовать кнопки: %w", err)
	}

	slog.Info("Скрипт сгенерирован", "url", targetURL, "option_count", len(options))
	return &GeneratedScript{
		Script:  script,
		URL:     targetURL,
		Warning: warning,
	}, nil
}
