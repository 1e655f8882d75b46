package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/ports"
)

// JsonParser реализует интерфейс OptionsParser для строгого разбора JSON массива записей.
type JsonParser struct{}

// NewJsonParser создает новый экземпляр JsonParser.
func NewJsonParser() ports.OptionsParser {
	return &JsonParser{}
}

// Parse преобразует срез байт с JSON массивом в список записей.
// Неизвестные ключи и данные после массива считаются ошибкой.
func (p *JsonParser) Parse(data []byte) ([]domain.OptionRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var records []domain.OptionRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json: %w", err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after options array")
	}

	if records == nil {
		records = []domain.OptionRecord{}
	}
	return records, nil
}

// MarshalRecords сериализует записи так же, как это делает JSON.stringify в браузере:
// без экранирования <, > и &, без завершающего перевода строки.
func MarshalRecords(records []domain.OptionRecord) ([]byte, error) {
	if records == nil {
		records = []domain.OptionRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
