package source

import (
	"fmt"
	"quickreply-editor/internal/ports"
)

// MemorySource реализует интерфейс DataSource для текста, уже находящегося в памяти
// (например, вставленного пользователем в форму).
type MemorySource struct {
	data []byte
}

// NewMemorySource создает новый экземпляр MemorySource.
func NewMemorySource(data []byte) ports.DataSource {
	return &MemorySource{data: data}
}

// Fetch возвращает данные из памяти.
func (s *MemorySource) Fetch() ([]byte, error) {
	if s.data == nil {
		return nil, fmt.Errorf("data not set")
	}

	// Возвращаем копию, чтобы вызывающий не изменил исходный текст
	dataCopy := make([]byte, len(s.data))
	copy(dataCopy, s.data)

	return dataCopy, nil
}
