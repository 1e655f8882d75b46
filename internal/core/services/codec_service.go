package services

import (
	"fmt"
	"strings"

	"quickreply-editor/internal/adapters/parser"
	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/ports"
	"quickreply-editor/internal/userscript"
)

// colorDigits - количество шестнадцатеричных цифр в коде цвета.
const colorDigits = 6

// OptionDefaults содержит значения, подставляемые в новые и неполные кнопки.
type OptionDefaults struct {
	Label string
	Color string
}

// CodecServiceImpl реализует интерфейс OptionCodec.
type CodecServiceImpl struct {
	parser   ports.OptionsParser
	ids      ports.IDGenerator
	defaults OptionDefaults
	wildcard string
}

// NewCodecService создает новый экземпляр CodecServiceImpl.
func NewCodecService(p ports.OptionsParser, ids ports.IDGenerator, defaults OptionDefaults, wildcard string) ports.OptionCodec {
	return &CodecServiceImpl{
		parser:   p,
		ids:      ids,
		defaults: defaults,
		wildcard: wildcard,
	}
}

// Decode извлекает список кнопок из текста скрипта.
// Если блока с кнопками нет, возвращается пустой список. При ошибке разбора
// возвращается *domain.DecodeError и nil вместо частичного результата.
func (s *CodecServiceImpl) Decode(script string) ([]domain.Option, error) {
	block, found, err := parser.ExtractBlock(script)
	if err != nil {
		return nil, &domain.DecodeError{Message: "failed to locate options", Err: err}
	}
	if !found {
		return []domain.Option{}, nil
	}

	records, err := s.parser.Parse([]byte(parser.FromEmbedded(block)))
	if err != nil {
		return nil, &domain.DecodeError{Message: "failed to parse options", Err: err}
	}

	options := make([]domain.Option, 0, len(records))
	for _, rec := range records {
		options = append(options, s.fromRecord(rec))
	}
	Renumber(options)
	return options, nil
}

// Encode подставляет список кнопок и адрес страницы в шаблон скрипта.
// Поля id и text выводятся для каждой кнопки независимо от ее типа.
func (s *CodecServiceImpl) Encode(options []domain.Option, targetURL, template string) (string, error) {
	records := make([]domain.OptionRecord, 0, len(options))
	for _, opt := range options {
		records = append(records, domain.OptionRecord{
			Type:   string(opt.Kind),
			ID:     opt.Selector,
			Text:   escapeNewlines(opt.Content),
			Name:   escapeNewlines(opt.Label),
			Colour: opt.Color,
		})
	}

	data, err := parser.MarshalRecords(records)
	if err != nil {
		return "", fmt.Errorf("failed to marshal options: %w", err)
	}

	script := strings.ReplaceAll(template, userscript.URLPlaceholder, targetURL+s.wildcard)
	script = strings.ReplaceAll(script, userscript.OptionsPlaceholder, parser.ToEmbedded(string(data)))
	return script, nil
}

// fromRecord превращает запись скрипта в кнопку, исправляя недостающие поля.
func (s *CodecServiceImpl) fromRecord(rec domain.OptionRecord) domain.Option {
	kind := domain.OptionKind(rec.Type)
	if !kind.Valid() {
		kind = InferKind(rec.Text)
	}

	label := rec.Name
	if label == "" {
		label = s.defaults.Label
	}

	color := PadColor(rec.Colour)
	if color == "" {
		color = s.defaults.Color
	}

	return domain.Option{
		ID:       s.ids.NewID(),
		Selector: rec.ID,
		Content:  rec.Text,
		Label:    label,
		Color:    color,
		Kind:     kind,
	}
}

// InferKind определяет тип кнопки по наличию собственного текста.
func InferKind(content string) domain.OptionKind {
	if content != "" {
		return domain.KindCustom
	}
	return domain.KindByID
}

// PadColor дополняет короткий код цвета вида "#abc" нулями справа до шести цифр.
// Значения без '#' возвращаются без изменений.
func PadColor(color string) string {
	if !strings.HasPrefix(color, "#") {
		return color
	}
	digits := len(color) - 1
	if digits >= colorDigits {
		return color
	}
	return color + strings.Repeat("0", colorDigits-digits)
}

func escapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}
