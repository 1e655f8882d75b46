package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quickreply-editor/internal/adapters/parser"
	"quickreply-editor/internal/core/services"
	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/pkg/config"
	"quickreply-editor/internal/server/usecase"
	"quickreply-editor/internal/userscript"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementation for ScriptGenerator
type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(options []domain.Option, rawURL string) (*usecase.GeneratedScript, error) {
	args := m.Called(options, rawURL)
	if res := args.Get(0); res != nil {
		return res.(*usecase.GeneratedScript), args.Error(1)
	}
	return nil, args.Error(1)
}

type sequenceIDs struct{ next int }

func (s *sequenceIDs) NewID() string {
	s.next++
	return fmt.Sprintf("id-%d", s.next)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.Server{Host: "localhost", Port: 8080, MaxBodySizeMB: 1},
		Userscript: config.Userscript{
			ExpectedPage:     "supporttickets.php",
			DefaultDirectory: "admin",
			URLWildcard:      "*",
			DefaultLabel:     "New Button",
			DefaultColor:     "#337ab7",
		},
	}
}

// newTestServer собирает сервер из настоящих компонентов.
func newTestServer(t *testing.T, generator ScriptGenerator) *Server {
	t.Helper()
	cfg := testConfig()
	ids := &sequenceIDs{}
	codec := services.NewCodecService(parser.NewJsonParser(), ids, services.OptionDefaults{
		Label: cfg.Userscript.DefaultLabel,
		Color: cfg.Userscript.DefaultColor,
	}, cfg.Userscript.URLWildcard)
	normalizer := services.NewURLNormalizer(cfg.Userscript.ExpectedPage, cfg.Userscript.DefaultDirectory)
	if generator == nil {
		generator = usecase.NewGenerateScriptUseCase(normalizer, codec, userscript.DefaultTemplate())
	}

	srv, err := New(cfg, generator, codec, normalizer, ids, userscript.DefaultSnippets())
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.HTTPServer.Handler.ServeHTTP(rr, req)
	return rr
}

func decodeOptions(t *testing.T, rr *httptest.ResponseRecorder) []domain.Option {
	t.Helper()
	var resp optionsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp.Options
}

func labels(options []domain.Option) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		out = append(out, o.Label)
	}
	return out
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, nil, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestServer(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("Health Check", func(t *testing.T) {
		rr := doJSON(t, srv, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "ok", resp["status"])
	})

	t.Run("Snippets", func(t *testing.T) {
		rr := doJSON(t, srv, http.MethodGet, "/api/v1/snippets", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string][]domain.Snippet
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, userscript.DefaultSnippets(), resp["snippets"])
	})

	t.Run("Decode", func(t *testing.T) {
		script := `var options = JSON.parse('[{"type":"by_id","id":"greeting","text":"","name":"Hi","colour":"#abc"}]');`
		rr := doJSON(t, srv, http.MethodPost, "/api/v1/decode", decodeRequest{Script: script})

		assert.Equal(t, http.StatusOK, rr.Code)
		options := decodeOptions(t, rr)
		require.Len(t, options, 1)
		assert.Equal(t, "greeting", options[0].Selector)
		assert.Equal(t, "#abc000", options[0].Color)
		assert.Equal(t, 1, options[0].Order)
	})

	t.Run("Decode without options block", func(t *testing.T) {
		rr := doJSON(t, srv, http.MethodPost, "/api/v1/decode", decodeRequest{Script: "console.log(1)"})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"options":[]}`, rr.Body.String())
	})

	t.Run("Decode broken array", func(t *testing.T) {
		rr := doJSON(t, srv, http.MethodPost, "/api/v1/decode", decodeRequest{Script: `JSON.parse('[{"name": }]');`})

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "failed to parse options")
	})

	t.Run("Invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/decode", strings.NewReader("{"))
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Body too large", func(t *testing.T) {
		big := decodeRequest{Script: strings.Repeat("x", 2<<20)}
		rr := doJSON(t, srv, http.MethodPost, "/api/v1/decode", big)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Encode with url fix", func(t *testing.T) {
		options := []domain.Option{{ID: "a", Order: 1, Content: "It's done", Label: "Done", Color: "#000000", Kind: domain.KindCustom}}
		rr := doJSON(t, srv, http.MethodPost, "/api/v1/encode", encodeRequest{
			Options: options,
			URL:     "http://example.com/panel/ticketsystem.php?foo=1",
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp usecase.GeneratedScript
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "http://example.com/panel/supporttickets.php", resp.URL)
		require.NotNil(t, resp.Warning)
		assert.Equal(t, resp.URL, resp.Warning.Fix)
		assert.Contains(t, resp.Script, "@match        http://example.com/panel/supporttickets.php*")
		assert.Contains(t, resp.Script, `"text":"It\'s done"`)
	})

	t.Run("Encode with empty options", func(t *testing.T) {
		rr := doJSON(t, srv, http.MethodPost, "/api/v1/encode", encodeRequest{URL: "http://e.com/admin/supporttickets.php"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Validate URL", func(t *testing.T) {
		rr := doJSON(t, srv, http.MethodPost, "/api/v1/validate-url", validateURLRequest{URL: "http://example.com/supporttickets.php"})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"warning":null}`, rr.Body.String())

		rr = doJSON(t, srv, http.MethodPost, "/api/v1/validate-url", validateURLRequest{URL: "https://example.com"})
		assert.JSONEq(t, `{"warning":{"message":"The url should look like protocol://domain/admin/supporttickets.php","fix":"https://example.com/admin/supporttickets.php"}}`, rr.Body.String())

		rr = doJSON(t, srv, http.MethodPost, "/api/v1/validate-url", validateURLRequest{URL: "https://example.com", Retry: true})
		assert.JSONEq(t, `{"warning":{"message":"The url should look like protocol://domain/admin/supporttickets.php"}}`, rr.Body.String())
	})
}

func TestServerOptions(t *testing.T) {
	srv := newTestServer(t, nil)
	abc := []domain.Option{
		{ID: "a", Label: "A", Color: "#000000", Kind: domain.KindByID},
		{ID: "b", Label: "B", Color: "#000000", Kind: domain.KindByID},
		{ID: "c", Label: "C", Color: "#000000", Kind: domain.KindByID},
	}

	testCases := []struct {
		name string
		op   string
		req  optionsRequest
		want []string
	}{
		{"append", "append", optionsRequest{Options: abc}, []string{"A", "B", "C", "New Button"}},
		{"remove", "remove", optionsRequest{Options: abc, Index: 0}, []string{"B", "C"}},
		{"duplicate", "duplicate", optionsRequest{Options: abc, Index: 2}, []string{"A", "B", "C", "C"}},
		{"move up", "move", optionsRequest{Options: abc, Index: 2, Direction: domain.DirectionUp}, []string{"A", "C", "B"}},
		{"move jump", "move", optionsRequest{Options: abc, Index: 2, Direction: domain.DirectionJump, Order: 1}, []string{"C", "A", "B"}},
		{"set-order", "set-order", optionsRequest{Options: abc, Index: 0, Order: 3}, []string{"B", "C", "A"}},
		{"clear", "clear", optionsRequest{Options: abc}, []string{}},
		{"renumber", "renumber", optionsRequest{Options: abc}, []string{"A", "B", "C"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSON(t, srv, http.MethodPost, "/api/v1/options/"+tc.op, tc.req)
			require.Equal(t, http.StatusOK, rr.Code)

			options := decodeOptions(t, rr)
			assert.Equal(t, tc.want, labels(options))
			for i, o := range options {
				assert.Equal(t, i+1, o.Order)
			}
		})
	}

	t.Run("update", func(t *testing.T) {
		rr := doJSON(t, srv, http.MethodPost, "/api/v1/options/update", optionsRequest{
			Options: abc,
			Index:   1,
			Option:  &domain.Option{Label: "Renamed", Color: "#12", Content: "text"},
		})
		require.Equal(t, http.StatusOK, rr.Code)

		options := decodeOptions(t, rr)
		assert.Equal(t, "b", options[1].ID)
		assert.Equal(t, "Renamed", options[1].Label)
		assert.Equal(t, "#120000", options[1].Color)
		assert.Equal(t, domain.KindCustom, options[1].Kind)
	})

	t.Run("update without option", func(t *testing.T) {
		rr := doJSON(t, srv, http.MethodPost, "/api/v1/options/update", optionsRequest{Options: abc})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown op", func(t *testing.T) {
		rr := doJSON(t, srv, http.MethodPost, "/api/v1/options/explode", optionsRequest{Options: abc})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestServerEncodeErrors(t *testing.T) {
	options := []domain.Option{{ID: "a", Label: "A"}}

	t.Run("внутренняя ошибка генерации", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", options, "u").Return(nil, errors.New("boom")).Once()
		srv := newTestServer(t, gen)

		rr := doJSON(t, srv, http.MethodPost, "/api/v1/encode", encodeRequest{Options: options, URL: "u"})

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "boom")
		gen.AssertExpectations(t)
	})

	t.Run("пустой адрес", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", options, "").Return(nil, usecase.ErrEmptyURL).Once()
		srv := newTestServer(t, gen)

		rr := doJSON(t, srv, http.MethodPost, "/api/v1/encode", encodeRequest{Options: options})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		gen.AssertExpectations(t)
	})
}
