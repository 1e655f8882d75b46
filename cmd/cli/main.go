// Команда cli - консольный редактор кнопок быстрого ответа.
//
// Использование:
//
//	cli decode -in script.user.js [-format table|json|xlsx] [-out FILE]
//	cli encode -options options.json -url URL [-out FILE] [-copy]
//	cli validate-url [-retry] URL
//	cli edit -in script.user.js -op OP [-index N] [-dir up|down|jump] [-order N] -url URL [-out FILE] [-copy]
//	cli snippets
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"quickreply-editor/internal/adapters/idgen"
	"quickreply-editor/internal/adapters/parser"
	"quickreply-editor/internal/adapters/sink"
	"quickreply-editor/internal/adapters/source"
	"quickreply-editor/internal/core/services"
	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/log"
	"quickreply-editor/internal/pkg/config"
	"quickreply-editor/internal/ports"
	"quickreply-editor/internal/server/usecase"
	"quickreply-editor/internal/userscript"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `usage: cli <command> [flags]

commands:
  decode        print the buttons stored in a userscript
  encode        build a userscript from a JSON list of buttons
  validate-url  check a supporttickets.php url and propose a fix
  edit          decode a userscript, change its buttons and encode it again
  snippets      print the snippet catalog
`

// app содержит зависимости, общие для всех подкоманд.
type app struct {
	cfg        *config.Config
	codec      ports.OptionCodec
	normalizer ports.URLNormalizer
	generator  *usecase.GenerateScriptUseCase
	ids        ports.IDGenerator
	snippets   []domain.Snippet

	stdout io.Writer
	stderr io.Writer

	newSource    func(path string) ports.DataSource
	newClipboard func() ports.ScriptSink
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitError
	}

	// Логи идут в stderr, чтобы не смешиваться со скриптом в stdout
	slog.SetDefault(log.NewLogger(stderr, cfg.Logging.Level, cfg.Logging.Format))

	if err := cfg.Validate(); err != nil {
		slog.Error("config validation failed", "error", err)
		return exitError
	}

	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return exitError
	}
	return a.dispatch(args)
}

func newApp(cfg *config.Config, stdout, stderr io.Writer) (*app, error) {
	template, err := userscript.LoadTemplate(cfg.Userscript.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	snippets := cfg.Snippets
	if len(snippets) == 0 {
		snippets = userscript.DefaultSnippets()
	}

	ids := idgen.NewUUIDGenerator()
	codec := services.NewCodecService(parser.NewJsonParser(), ids, services.OptionDefaults{
		Label: cfg.Userscript.DefaultLabel,
		Color: cfg.Userscript.DefaultColor,
	}, cfg.Userscript.URLWildcard)
	normalizer := services.NewURLNormalizer(cfg.Userscript.ExpectedPage, cfg.Userscript.DefaultDirectory)

	return &app{
		cfg:          cfg,
		codec:        codec,
		normalizer:   normalizer,
		generator:    usecase.NewGenerateScriptUseCase(normalizer, codec, template),
		ids:          ids,
		snippets:     snippets,
		stdout:       stdout,
		stderr:       stderr,
		newSource:    source.New,
		newClipboard: sink.NewClipboardSink,
	}, nil
}

func (a *app) dispatch(args []string) int {
	if len(args) == 0 {
		_, _ = fmt.Fprint(a.stderr, usage)
		return exitUsage
	}

	var cmd func([]string) int
	switch args[0] {
	case "decode":
		cmd = a.runDecode
	case "encode":
		cmd = a.runEncode
	case "validate-url":
		cmd = a.runValidateURL
	case "edit":
		cmd = a.runEdit
	case "snippets":
		cmd = a.runSnippets
	case "help", "-h", "-help", "--help":
		_, _ = fmt.Fprint(a.stdout, usage)
		return exitOK
	default:
		_, _ = fmt.Fprintf(a.stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
	return cmd(args[1:])
}
