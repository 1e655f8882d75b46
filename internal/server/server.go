package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"quickreply-editor/internal/core/services"
	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/pkg/config"
	"quickreply-editor/internal/ports"
	"quickreply-editor/internal/server/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ScriptGenerator определяет интерфейс для варианта использования, который собирает скрипт.
type ScriptGenerator interface {
	Generate(options []domain.Option, rawURL string) (*usecase.GeneratedScript, error)
}

// Server представляет HTTP-сервер редактора.
// Сервер не хранит состояние: каждый запрос несет свой список кнопок.
type Server struct {
	HTTPServer *http.Server
	cfg        *config.Config
	generator  ScriptGenerator
	codec      ports.OptionCodec
	normalizer ports.URLNormalizer
	ids        ports.IDGenerator
	snippets   []domain.Snippet
}

type decodeRequest struct {
	Script string `json:"script"`
}

type encodeRequest struct {
	Options []domain.Option `json:"options"`
	URL     string          `json:"url"`
}

type validateURLRequest struct {
	URL   string `json:"url"`
	Retry bool   `json:"retry"`
}

type optionsRequest struct {
	Options   []domain.Option  `json:"options"`
	Index     int              `json:"index"`
	Direction domain.Direction `json:"direction"`
	Order     int              `json:"order"`
	Option    *domain.Option   `json:"option,omitempty"`
}

type optionsResponse struct {
	Options []domain.Option `json:"options"`
}

// New создает новый экземпляр Server
func New(
	cfg *config.Config,
	generator ScriptGenerator,
	codec ports.OptionCodec,
	normalizer ports.URLNormalizer,
	ids ports.IDGenerator,
	snippets []domain.Snippet,
) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	s := &Server{
		cfg:        cfg,
		generator:  generator,
		codec:      codec,
		normalizer: normalizer,
		ids:        ids,
		snippets:   snippets,
	}

	chiRouter := chi.NewRouter()

	// Промежуточное ПО
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.Logger)
	chiRouter.Use(middleware.Recoverer)

	// Конечная точка для проверки работоспособности
	chiRouter.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Маршруты API
	chiRouter.Route("/api/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Get("/snippets", s.handleSnippets)
		r.Post("/decode", s.handleDecode)
		r.Post("/encode", s.handleEncode)
		r.Post("/validate-url", s.handleValidateURL)
		r.Post("/options/{op}", s.handleOptions)
	})

	s.HTTPServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      chiRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// ListenAndServe запускает HTTP-сервер
func (s *Server) ListenAndServe() error {
	return s.HTTPServer.ListenAndServe()
}

// Shutdown корректно завершает работу HTTP-сервера
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Завершение работы HTTP-сервера")
	return s.HTTPServer.Shutdown(ctx)
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	limit := s.cfg.Server.MaxBodySizeMB << 20
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limit > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleSnippets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]domain.Snippet{"snippets": s.snippets})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	options, err := s.codec.Decode(req.Script)
	if err != nil {
		var decodeErr *domain.DecodeError
		if errors.As(err, &decodeErr) {
			slog.Warn("Не удалось разобрать скрипт", "error", err)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("Ошибка разбора скрипта", "error", err)
		writeError(w, http.StatusInternalServerError, "Не удалось разобрать скрипт")
		return
	}

	writeJSON(w, http.StatusOK, optionsResponse{Options: options})
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.generator.Generate(req.Options, req.URL)
	switch {
	case errors.Is(err, usecase.ErrNoOptions), errors.Is(err, usecase.ErrEmptyURL):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("Ошибка генерации скрипта", "error", err)
		writeError(w, http.StatusInternalServerError, "Не удалось сгенерировать скрипт")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidateURL(w http.ResponseWriter, r *http.Request) {
	var req validateURLRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]*domain.URLWarning{
		"warning": s.normalizer.Validate(req.URL, req.Retry),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	var req optionsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	list := services.NewOptionList(s.ids, services.OptionDefaults{
		Label: s.cfg.Userscript.DefaultLabel,
		Color: s.cfg.Userscript.DefaultColor,
	})
	list.Replace(req.Options)

	switch op := chi.URLParam(r, "op"); op {
	case "append":
		list.Append()
	case "remove":
		list.Remove(req.Index)
	case "duplicate":
		list.Duplicate(req.Index)
	case "move":
		if req.Direction == domain.DirectionJump {
			list.SetOrder(req.Index, req.Order)
		} else {
			list.Move(req.Index, req.Direction)
		}
	case "set-order":
		list.SetOrder(req.Index, req.Order)
	case "update":
		if req.Option == nil {
			writeError(w, http.StatusBadRequest, "Требуется option")
			return
		}
		list.Update(req.Index, *req.Option)
	case "clear":
		list.Clear()
	case "renumber":
		list.Renumber()
	default:
		writeError(w, http.StatusNotFound, "Неизвестная операция: "+op)
		return
	}

	writeJSON(w, http.StatusOK, optionsResponse{Options: list.Options()})
}

// decodeBody разбирает JSON тело запроса. При ошибке отвечает 400 и возвращает false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Не удалось декодировать тело запроса")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Не удалось записать ответ", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
