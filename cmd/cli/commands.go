package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"quickreply-editor/internal/adapters/exporter"
	"quickreply-editor/internal/adapters/sink"
	"quickreply-editor/internal/core/services"
	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/ports"
)

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// parse разбирает флаги подкоманды. При ошибке возвращает код выхода и false.
func parse(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	return exitOK, true
}

func (a *app) fail(format string, args ...any) int {
	_, _ = fmt.Fprintf(a.stderr, "error: "+format+"\n", args...)
	return exitError
}

func (a *app) newOptionList() *services.OptionList {
	return services.NewOptionList(a.ids, services.OptionDefaults{
		Label: a.cfg.Userscript.DefaultLabel,
		Color: a.cfg.Userscript.DefaultColor,
	})
}

// decodeFrom читает скрипт из файла или stdin и извлекает из него кнопки.
func (a *app) decodeFrom(path string) ([]domain.Option, error) {
	data, err := a.newSource(path).Fetch()
	if err != nil {
		return nil, err
	}
	return a.codec.Decode(string(data))
}

// openOutput открывает файл для записи или возвращает stdout, если путь пуст.
func (a *app) openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return a.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}

// scriptSink собирает приемники скрипта: файл или stdout и, по запросу, буфер обмена.
func (a *app) scriptSink(out string, copyToClipboard bool) ports.ScriptSink {
	var sinks sink.MultiSink
	if out == "" {
		sinks = append(sinks, sink.NewWriterSink(a.stdout))
	} else {
		sinks = append(sinks, sink.NewFileSink(out))
	}
	if copyToClipboard {
		sinks = append(sinks, a.newClipboard())
	}
	return sinks
}

// generate собирает скрипт, печатает предупреждение об адресе и отправляет результат в приемники.
func (a *app) generate(options []domain.Option, rawURL, out string, copyToClipboard bool) int {
	result, err := a.generator.Generate(options, rawURL)
	if err != nil {
		return a.fail("%v", err)
	}

	if result.Warning != nil {
		_, _ = fmt.Fprintf(a.stderr, "warning: %s\n", result.Warning.Message)
		if result.Warning.Fix != "" {
			_, _ = fmt.Fprintf(a.stderr, "using fixed url: %s\n", result.Warning.Fix)
		}
	}

	if err := a.scriptSink(out, copyToClipboard).Write(result.Script); err != nil {
		return a.fail("%v", err)
	}
	if out != "" {
		_, _ = fmt.Fprintf(a.stderr, "script written to %s\n", out)
	}
	if copyToClipboard {
		_, _ = fmt.Fprintln(a.stderr, "copied to clipboard")
	}
	return exitOK
}

func (a *app) runDecode(args []string) int {
	fs := a.flagSet("decode")
	in := fs.String("in", "-", "userscript file, - for stdin")
	format := fs.String("format", "table", "output format: table, json or xlsx")
	out := fs.String("out", "", "output file (default stdout)")
	if code, ok := parse(fs, args); !ok {
		return code
	}

	options, err := a.decodeFrom(*in)
	if err != nil {
		return a.fail("%v", err)
	}
	slog.Debug("Скрипт разобран", "option_count", len(options))

	w, closeOut, err := a.openOutput(*out)
	if err != nil {
		return a.fail("%v", err)
	}

	var exp ports.Exporter
	switch *format {
	case "table":
		exp = exporter.NewConsoleExporterTo(w)
	case "json":
		exp = exporter.NewJSONExporter(w)
	case "xlsx":
		exp = exporter.NewExcelExporter(w)
	default:
		_ = closeOut()
		_, _ = fmt.Fprintf(a.stderr, "unknown format %q\n", *format)
		return exitUsage
	}

	exportErr := exp.Export(options)
	if err := closeOut(); err != nil && exportErr == nil {
		exportErr = err
	}
	if exportErr != nil {
		return a.fail("%v", exportErr)
	}
	return exitOK
}

func (a *app) runEncode(args []string) int {
	fs := a.flagSet("encode")
	optionsPath := fs.String("options", "-", "JSON file with the button list, - for stdin")
	rawURL := fs.String("url", "", "supporttickets.php url the script runs on")
	out := fs.String("out", "", "output file (default stdout)")
	copyToClipboard := fs.Bool("copy", false, "copy the script to the clipboard")
	if code, ok := parse(fs, args); !ok {
		return code
	}

	data, err := a.newSource(*optionsPath).Fetch()
	if err != nil {
		return a.fail("%v", err)
	}

	var options []domain.Option
	if err := json.Unmarshal(data, &options); err != nil {
		return a.fail("failed to parse options json: %v", err)
	}

	list := a.newOptionList()
	list.Replace(options)
	return a.generate(list.Options(), *rawURL, *out, *copyToClipboard)
}

func (a *app) runValidateURL(args []string) int {
	fs := a.flagSet("validate-url")
	retry := fs.Bool("retry", false, "check without proposing a fix")
	if code, ok := parse(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		_, _ = fmt.Fprintln(a.stderr, "usage: cli validate-url [-retry] URL")
		return exitUsage
	}

	warning := a.normalizer.Validate(fs.Arg(0), *retry)
	if warning == nil {
		_, _ = fmt.Fprintln(a.stdout, "ok")
		return exitOK
	}

	_, _ = fmt.Fprintln(a.stdout, warning.Message)
	if warning.Fix != "" {
		_, _ = fmt.Fprintf(a.stdout, "fix: %s\n", warning.Fix)
	}
	return exitError
}

func (a *app) runEdit(args []string) int {
	fs := a.flagSet("edit")
	in := fs.String("in", "-", "userscript file, - for stdin")
	op := fs.String("op", "", "append, remove, duplicate, move, set-order, update, clear or renumber")
	index := fs.Int("index", 0, "zero-based button index")
	dir := fs.String("dir", "", "move direction: up, down or jump")
	order := fs.Int("order", 0, "target position for set-order and jump (1-based)")
	label := fs.String("label", "", "update: button label")
	color := fs.String("color", "", "update: button colour")
	content := fs.String("content", "", "update: custom reply text")
	selector := fs.String("selector", "", "update: snippet key")
	kind := fs.String("kind", "", "update: by_id or custom")
	rawURL := fs.String("url", "", "supporttickets.php url the script runs on")
	out := fs.String("out", "", "output file (default stdout)")
	copyToClipboard := fs.Bool("copy", false, "copy the script to the clipboard")
	if code, ok := parse(fs, args); !ok {
		return code
	}

	options, err := a.decodeFrom(*in)
	if err != nil {
		return a.fail("%v", err)
	}

	list := a.newOptionList()
	list.Replace(options)

	if *index < 0 || (*op != "append" && *op != "clear" && *op != "renumber" && *index >= list.Len()) {
		return a.fail("index %d out of range (%d buttons)", *index, list.Len())
	}

	switch *op {
	case "append":
		list.Append()
	case "remove":
		list.Remove(*index)
	case "duplicate":
		list.Duplicate(*index)
	case "move":
		switch domain.Direction(*dir) {
		case domain.DirectionUp, domain.DirectionDown:
			list.Move(*index, domain.Direction(*dir))
		case domain.DirectionJump:
			list.SetOrder(*index, *order)
		default:
			_, _ = fmt.Fprintf(a.stderr, "unknown direction %q\n", *dir)
			return exitUsage
		}
	case "set-order":
		list.SetOrder(*index, *order)
	case "update":
		opt := list.Options()[*index]
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "label":
				opt.Label = *label
			case "color":
				opt.Color = *color
			case "content":
				opt.Content = *content
			case "selector":
				opt.Selector = *selector
			case "kind":
				opt.Kind = domain.OptionKind(*kind)
			}
		})
		list.Update(*index, opt)
	case "clear":
		list.Clear()
	case "renumber":
		list.Renumber()
	default:
		_, _ = fmt.Fprintf(a.stderr, "unknown op %q\n", *op)
		return exitUsage
	}

	return a.generate(list.Options(), *rawURL, *out, *copyToClipboard)
}

func (a *app) runSnippets(args []string) int {
	fs := a.flagSet("snippets")
	if code, ok := parse(fs, args); !ok {
		return code
	}
	for _, s := range a.snippets {
		_, _ = fmt.Fprintf(a.stdout, "%s\t%s\n", s.Value, s.Label)
	}
	return exitOK
}
