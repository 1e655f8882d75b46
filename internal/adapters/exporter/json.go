package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/ports"
)

// JSONExporter реализует интерфейс Exporter для выгрузки кнопок в JSON.
// Результат можно передать обратно в команду encode.
type JSONExporter struct {
	out io.Writer
}

// NewJSONExporter создает новый экземпляр JSONExporter.
func NewJSONExporter(out io.Writer) ports.Exporter {
	return &JSONExporter{out: out}
}

// Export записывает список кнопок в виде JSON-массива с отступами.
func (e *JSONExporter) Export(options []domain.Option) error {
	if options == nil {
		options = []domain.Option{}
	}

	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(options); err != nil {
		return fmt.Errorf("failed to write options json: %w", err)
	}
	return nil
}
