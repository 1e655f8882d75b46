package sink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	got []string
	err error
}

func (r *recordingSink) Write(script string) error {
	r.got = append(r.got, script)
	return r.err
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriterSink(&buf).Write("// script"))
	assert.Equal(t, "// script", buf.String())
}

func TestFileSink(t *testing.T) {
	t.Run("Запись в файл", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.user.js")
		require.NoError(t, NewFileSink(path).Write("// script"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "// script", string(data))
	})

	t.Run("Несуществующий каталог", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.user.js")
		assert.Error(t, NewFileSink(path).Write("// script"))
	})
}

func TestClipboardSink(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("буфер обмена недоступен в этой среде")
	}

	t.Run("Текст передается в буфер обмена", func(t *testing.T) {
		var copied string
		s := &ClipboardSink{writeAll: func(text string) error {
			copied = text
			return nil
		}}
		require.NoError(t, s.Write("// script"))
		assert.Equal(t, "// script", copied)
	})

	t.Run("Ошибка буфера обмена оборачивается", func(t *testing.T) {
		s := &ClipboardSink{writeAll: func(string) error { return errors.New("no display") }}
		err := s.Write("// script")
		assert.ErrorContains(t, err, "no display")
	})
}

func TestMultiSink(t *testing.T) {
	t.Run("Все приемники получают скрипт", func(t *testing.T) {
		a, b := &recordingSink{}, &recordingSink{}
		require.NoError(t, MultiSink{a, b}.Write("x"))
		assert.Equal(t, []string{"x"}, a.got)
		assert.Equal(t, []string{"x"}, b.got)
	})

	t.Run("Остановка на первой ошибке", func(t *testing.T) {
		a, b := &recordingSink{err: errors.New("fail")}, &recordingSink{}
		assert.Error(t, MultiSink{a, b}.Write("x"))
		assert.Empty(t, b.got)
	})
}
