package parser

import (
	"errors"
	"strings"
)

// OptionsAnchor открывает встроенный массив кнопок в тексте скрипта.
const OptionsAnchor = "JSON.parse('"

// ErrUnterminatedBlock возвращается, когда после OptionsAnchor нет закрывающей кавычки.
var ErrUnterminatedBlock = errors.New("unterminated options block")

// ToEmbedded экранирует JSON для вставки в строку в одинарных кавычках внутри шаблона.
func ToEmbedded(s string) string {
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, `\"`, `\\"`)
	return s
}

// FromEmbedded снимает экранирование, добавленное шаблоном, и возвращает обычный JSON.
// Порядок замен важен: сначала кавычки, затем переводы строк.
func FromEmbedded(s string) string {
	s = strings.ReplaceAll(s, `\'`, `'`)
	s = strings.ReplaceAll(s, `\\"`, `\"`)
	s = strings.ReplaceAll(s, `\\n`, `\n`)
	return s
}

// ExtractBlock находит в скрипте текст массива кнопок между OptionsAnchor и
// первой неэкранированной одинарной кавычкой, за которой следует ')'.
// found == false означает, что якоря в тексте нет.
func ExtractBlock(script string) (block string, found bool, err error) {
	start := strings.Index(script, OptionsAnchor)
	if start < 0 {
		return "", false, nil
	}
	start += len(OptionsAnchor)

	for i := start; i < len(script); i++ {
		switch script[i] {
		case '\\':
			// Экранированный символ пропускаем целиком.
			i++
		case '\'':
			rest := strings.TrimLeft(script[i+1:], " \t")
			if !strings.HasPrefix(rest, ")") {
				return "", true, ErrUnterminatedBlock
			}
			return script[start:i], true, nil
		case '\n':
			// Строка в одинарных кавычках не может содержать перевод строки.
			return "", true, ErrUnterminatedBlock
		}
	}
	return "", true, ErrUnterminatedBlock
}
