package services

import (
	"fmt"

	"quickreply-editor/internal/domain"
)

// sequenceIDs - детерминированный генератор идентификаторов для тестов.
type sequenceIDs struct {
	prefix string
	next   int
}

// NewID реализует интерфейс IDGenerator
func (g *sequenceIDs) NewID() string {
	g.next++
	return fmt.Sprintf("%s%d", g.prefix, g.next)
}

// stubParser - мок-реализация OptionsParser, возвращающая заданный результат.
type stubParser struct {
	records []domain.OptionRecord
	err     error
	got     []byte
}

// Parse реализует интерфейс OptionsParser
func (p *stubParser) Parse(data []byte) ([]domain.OptionRecord, error) {
	p.got = data
	return p.records, p.err
}

var testDefaults = OptionDefaults{Label: "New Button", Color: "#337ab7"}
