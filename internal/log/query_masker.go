package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// QueryMaskerHandler - обертка для slog.Handler, которая маскирует значения
// строки запроса в адресах, попадающих в логи. Адреса панели администратора
// могут содержать токены сессии.
type QueryMaskerHandler struct {
	handler slog.Handler
}

// NewQueryMaskerHandler создает новый обработчик с маскировкой строки запроса
func NewQueryMaskerHandler(handler slog.Handler) *QueryMaskerHandler {
	return &QueryMaskerHandler{
		handler: handler,
	}
}

const maskedValue = "***"

var (
	// адрес со строкой запроса: схема, все до '?', затем запрос до пробела, кавычки или фрагмента
	urlQueryRegex = regexp.MustCompile(`(?i)\bhttps?://[^\s"'<>?#]+\?[^\s"'<>#]*`)
	// пара key=value внутри строки запроса
	queryValueRegex = regexp.MustCompile(`([?&][^=&]+=)[^&]*`)
)

// maskQuery заменяет значения параметров запроса во всех найденных адресах
func maskQuery(text string) string {
	if !strings.Contains(text, "?") {
		return text
	}
	return urlQueryRegex.ReplaceAllStringFunc(text, func(u string) string {
		return queryValueRegex.ReplaceAllString(u, "${1}"+maskedValue)
	})
}

// Enabled реализует интерфейс slog.Handler
func (h *QueryMaskerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle реализует интерфейс slog.Handler
func (h *QueryMaskerHandler) Handle(ctx context.Context, record slog.Record) error {
	// Новая запись без атрибутов: оригинальную запись slog может переиспользовать.
	r := slog.NewRecord(record.Time, record.Level, maskQuery(record.Message), record.PC)

	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, r)
}

// WithAttrs реализует интерфейс slog.Handler
func (h *QueryMaskerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		maskedAttrs[i] = maskAttr(attr)
	}
	return &QueryMaskerHandler{
		handler: h.handler.WithAttrs(maskedAttrs),
	}
}

// WithGroup реализует интерфейс slog.Handler
func (h *QueryMaskerHandler) WithGroup(name string) slog.Handler {
	return &QueryMaskerHandler{
		handler: h.handler.WithGroup(name),
	}
}

func maskAttr(a slog.Attr) slog.Attr {
	return slog.Attr{Key: a.Key, Value: maskAttributeValue(a.Value)}
}

// maskAttributeValue рекурсивно маскирует значения атрибутов
func maskAttributeValue(value slog.Value) slog.Value {
	switch value.Kind() {
	case slog.KindString:
		return slog.StringValue(maskQuery(value.String()))
	case slog.KindAny:
		if err, ok := value.Any().(error); ok {
			return slog.StringValue(maskQuery(err.Error()))
		}
		return value
	case slog.KindGroup:
		group := value.Group()
		maskedGroup := make([]slog.Attr, len(group))
		for i, attr := range group {
			maskedGroup[i] = maskAttr(attr)
		}
		return slog.GroupValue(maskedGroup...)
	default:
		return value
	}
}

// ParseLevel переводит уровень из конфигурации в slog.Level. Неизвестное значение дает info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger создает slog.Logger с маскировкой строки запроса.
// format "json" выбирает JSON-обработчик, любое другое значение - текстовый.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(NewQueryMaskerHandler(handler))
}
