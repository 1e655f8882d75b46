package idgen

import (
	"quickreply-editor/internal/ports"

	"github.com/google/uuid"
)

// UUIDGenerator реализует интерфейс IDGenerator на основе случайных UUID.
type UUIDGenerator struct{}

// NewUUIDGenerator создает новый экземпляр UUIDGenerator.
func NewUUIDGenerator() ports.IDGenerator {
	return &UUIDGenerator{}
}

// NewID возвращает новый UUID в строковом виде.
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
