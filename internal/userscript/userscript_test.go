package userscript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplate(t *testing.T) {
	tmpl := DefaultTemplate()
	assert.Contains(t, tmpl, URLPlaceholder)
	assert.Contains(t, tmpl, "JSON.parse('"+OptionsPlaceholder+"')")
}

func TestDefaultSnippetsMatchTemplate(t *testing.T) {
	tmpl := DefaultTemplate()
	for _, s := range DefaultSnippets() {
		assert.True(t, strings.Contains(tmpl, s.Value+": "), "заготовка %s отсутствует в шаблоне", s.Value)
	}
}

func TestLoadTemplate(t *testing.T) {
	t.Run("пустой путь возвращает встроенный шаблон", func(t *testing.T) {
		tmpl, err := LoadTemplate("")
		require.NoError(t, err)
		assert.Equal(t, DefaultTemplate(), tmpl)
	})

	t.Run("шаблон из файла", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.user.js")
		require.NoError(t, os.WriteFile(path, []byte("// @match {{MATCH_URL}}\nJSON.parse('{{OPTIONS}}');"), 0644))

		tmpl, err := LoadTemplate(path)
		require.NoError(t, err)
		assert.Contains(t, tmpl, "// @match {{MATCH_URL}}")
	})

	t.Run("файл не найден", func(t *testing.T) {
		_, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.js"))
		assert.Error(t, err)
	})

	t.Run("шаблон без места для кнопок", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.user.js")
		require.NoError(t, os.WriteFile(path, []byte("// nothing"), 0644))

		_, err := LoadTemplate(path)
		assert.Error(t, err)
	})
}
