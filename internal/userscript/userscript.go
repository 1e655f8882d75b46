// Package userscript хранит шаблон скрипта и каталог заготовок по умолчанию.
package userscript

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"quickreply-editor/internal/domain"
)

const (
	// URLPlaceholder заменяется адресом страницы с завершающим шаблоном.
	URLPlaceholder = "{{MATCH_URL}}"
	// OptionsPlaceholder заменяется экранированным массивом кнопок.
	OptionsPlaceholder = "{{OPTIONS}}"
)

//go:embed template.user.js
var defaultTemplate string

// DefaultTemplate возвращает встроенный шаблон скрипта.
func DefaultTemplate() string {
	return defaultTemplate
}

// LoadTemplate читает шаблон из файла; пустой путь означает встроенный шаблон.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return defaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("не удалось прочитать шаблон %s: %w", path, err)
	}
	tmpl := string(data)
	if !strings.Contains(tmpl, OptionsPlaceholder) {
		return "", fmt.Errorf("template %s has no %s placeholder", path, OptionsPlaceholder)
	}
	return tmpl, nil
}

// DefaultSnippets возвращает каталог заготовок, совпадающий с ключами встроенного шаблона.
func DefaultSnippets() []domain.Snippet {
	return []domain.Snippet{
		{Value: "greeting", Label: "Greeting"},
		{Value: "signature", Label: "Signature"},
		{Value: "closing", Label: "Closing notice"},
		{Value: "moreinfo", Label: "Ask for more info"},
		{Value: "escalated", Label: "Escalated"},
	}
}
