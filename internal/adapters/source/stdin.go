package source

import (
	"io"
	"os"
	"quickreply-editor/internal/ports"

	"golang.org/x/term"
	"golang.org/x/xerrors"
)

// StdinSource реализует интерфейс DataSource для скрипта, переданного через конвейер.
type StdinSource struct {
	in         io.Reader
	isTerminal func() bool
}

// NewStdinSource создает источник, читающий os.Stdin.
func NewStdinSource() ports.DataSource {
	return &StdinSource{
		in: os.Stdin,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Fetch читает весь stdin. Интерактивный терминал не ждем: скрипт должен прийти из конвейера.
func (s *StdinSource) Fetch() ([]byte, error) {
	if s.isTerminal != nil && s.isTerminal() {
		return nil, xerrors.New("stdin is a terminal: pipe the script or pass -in FILE")
	}

	data, err := io.ReadAll(s.in)
	if err != nil {
		return nil, xerrors.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

// New выбирает источник по аргументу командной строки: "-" или пустой путь означают stdin.
func New(path string) ports.DataSource {
	if path == "" || path == "-" {
		return NewStdinSource()
	}
	return NewCliSource(path)
}
