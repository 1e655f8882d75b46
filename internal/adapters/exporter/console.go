package exporter

import (
	"fmt"
	"io"
	"os"
	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/ports"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ширина колонок текстовой таблицы.
const (
	labelColumnWidth  = 24
	sourceColumnWidth = 40
)

// ConsoleExporter реализует интерфейс Exporter для вывода таблицы кнопок в консоль.
type ConsoleExporter struct {
	out io.Writer
}

// NewConsoleExporter создает новый экземпляр ConsoleExporter, пишущий в stdout.
func NewConsoleExporter() ports.Exporter {
	return &ConsoleExporter{out: os.Stdout}
}

// NewConsoleExporterTo создает ConsoleExporter, пишущий в заданный поток.
func NewConsoleExporterTo(out io.Writer) ports.Exporter {
	return &ConsoleExporter{out: out}
}

// Export выводит список кнопок в виде выровненной таблицы.
func (e *ConsoleExporter) Export(options []domain.Option) error {
	var sb strings.Builder
	sb.WriteString("--- Quick Reply Buttons ---\n")
	if len(options) == 0 {
		sb.WriteString("No buttons found.\n")
	} else {
		for _, opt := range options {
			fmt.Fprintf(&sb, "%3d. %s %-7s %-6s %s\n",
				opt.Order,
				fit(opt.Label, labelColumnWidth),
				opt.Color,
				opt.Kind,
				fit(sourceOf(opt), sourceColumnWidth),
			)
		}
	}
	_, err := io.WriteString(e.out, sb.String())
	return err
}

// sourceOf возвращает то, что вставит кнопка: ключ заготовки или собственный текст.
func sourceOf(opt domain.Option) string {
	if opt.Kind == domain.KindCustom {
		return strings.ReplaceAll(opt.Content, "\n", `\n`)
	}
	return "#" + opt.Selector
}

// fit обрезает или дополняет строку пробелами до заданной ширины в колонках терминала.
func fit(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}
