package sink

import (
	"io"
	"os"
	"quickreply-editor/internal/ports"

	"github.com/atotto/clipboard"
	"golang.org/x/xerrors"
)

// WriterSink реализует интерфейс ScriptSink для произвольного потока (stdout).
type WriterSink struct {
	out io.Writer
}

// NewWriterSink создает новый экземпляр WriterSink.
func NewWriterSink(out io.Writer) ports.ScriptSink {
	return &WriterSink{out: out}
}

// Write выводит скрипт в поток.
func (s *WriterSink) Write(script string) error {
	if _, err := io.WriteString(s.out, script); err != nil {
		return xerrors.Errorf("failed to write script: %w", err)
	}
	return nil
}

// FileSink реализует интерфейс ScriptSink для записи скрипта в файл.
type FileSink struct {
	path string
}

// NewFileSink создает новый экземпляр FileSink.
func NewFileSink(path string) ports.ScriptSink {
	return &FileSink{path: path}
}

// Write записывает скрипт в файл, перезаписывая его.
func (s *FileSink) Write(script string) error {
	if err := os.WriteFile(s.path, []byte(script), 0644); err != nil {
		return xerrors.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// ClipboardSink реализует интерфейс ScriptSink для системного буфера обмена.
type ClipboardSink struct {
	writeAll func(text string) error
}

// NewClipboardSink создает новый экземпляр ClipboardSink.
func NewClipboardSink() ports.ScriptSink {
	return &ClipboardSink{writeAll: clipboard.WriteAll}
}

// Write копирует скрипт в буфер обмена.
func (s *ClipboardSink) Write(script string) error {
	if clipboard.Unsupported {
		return xerrors.New("clipboard is not supported on this system")
	}
	if err := s.writeAll(script); err != nil {
		return xerrors.Errorf("failed to copy script to clipboard: %w", err)
	}
	return nil
}

// MultiSink отправляет скрипт во все приемники по очереди и останавливается на первой ошибке.
type MultiSink []ports.ScriptSink

// Write реализует интерфейс ScriptSink.
func (m MultiSink) Write(script string) error {
	for _, s := range m {
		if err := s.Write(script); err != nil {
			return err
		}
	}
	return nil
}
