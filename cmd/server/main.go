package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"quickreply-editor/internal/adapters/idgen"
	"quickreply-editor/internal/adapters/parser"
	"quickreply-editor/internal/core/services"
	"quickreply-editor/internal/log"
	"quickreply-editor/internal/pkg/config"
	"quickreply-editor/internal/server"
	"quickreply-editor/internal/server/usecase"
	"quickreply-editor/internal/userscript"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

// run инкапсулирует всю логику инициализации и запуска приложения.
func run() error {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		// Логгер еще не инициализирован, выводим в stderr
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Инициализация логгера
	logger := log.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	// 3. Валидация конфигурации (после инициализации логгера)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Инициализация зависимостей
	template, err := userscript.LoadTemplate(cfg.Userscript.TemplatePath)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
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
	generator := usecase.NewGenerateScriptUseCase(normalizer, codec, template)

	// 5. Создание HTTP-сервера
	srv, err := server.New(cfg, generator, codec, normalizer, ids, snippets)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// 6. Запуск сервера и graceful shutdown
	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		slog.Info("Starting server", "addr", cfg.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		slog.Info("Signal received, shutting down...")
	case <-serverDone:
		return fmt.Errorf("server stopped unexpectedly")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	<-serverDone
	slog.Info("Application exited gracefully")
	return nil
}
