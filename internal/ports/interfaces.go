package ports

import (
	"quickreply-editor/internal/domain"
)

// DataSource определяет интерфейс для получения исходного текста скрипта.
type DataSource interface {
	// Fetch загружает данные из источника и возвращает их в виде байтового среза.
	Fetch() ([]byte, error)
}

// OptionsParser определяет интерфейс для строгого разбора массива записей,
// уже извлеченного из скрипта и очищенного от экранирования.
type OptionsParser interface {
	Parse(data []byte) ([]domain.OptionRecord, error)
}

// IDGenerator выдает уникальные идентификаторы кнопок.
type IDGenerator interface {
	NewID() string
}

// OptionCodec определяет интерфейс для преобразования текста скрипта в список кнопок и обратно.
type OptionCodec interface {
	// Decode извлекает список кнопок из текста скрипта.
	Decode(script string) ([]domain.Option, error)
	// Encode подставляет список кнопок и адрес страницы в шаблон скрипта.
	Encode(options []domain.Option, targetURL, template string) (string, error)
}

// URLNormalizer определяет интерфейс для проверки и исправления адреса страницы.
type URLNormalizer interface {
	Validate(rawURL string, isRetry bool) *domain.URLWarning
	ResolveTargetURL(rawURL string) (string, *domain.URLWarning)
}

// ScriptSink принимает готовый текст скрипта (файл, stdout, буфер обмена).
type ScriptSink interface {
	Write(script string) error
}

// Exporter определяет интерфейс для вывода списка кнопок.
type Exporter interface {
	// Export принимает список кнопок и выводит их.
	Export(options []domain.Option) error
}
