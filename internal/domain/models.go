package domain

import "fmt"

// OptionKind определяет, откуда кнопка берет текст ответа.
type OptionKind string

const (
	// KindByID - текст берется из каталога заготовок по ключу Selector.
	KindByID OptionKind = "by_id"
	// KindCustom - текст задается напрямую в поле Content.
	KindCustom OptionKind = "custom"
)

// Valid сообщает, является ли значение одним из известных типов.
func (k OptionKind) Valid() bool {
	return k == KindByID || k == KindCustom
}

// Option представляет одну кнопку быстрого ответа.
// Это наша внутренняя модель, а не запись из скрипта.
type Option struct {
	ID       string     `json:"id"`
	Order    int        `json:"order"`
	Selector string     `json:"selector"`
	Content  string     `json:"content"`
	Label    string     `json:"label"`
	Color    string     `json:"color"`
	Kind     OptionKind `json:"kind"`
}

// OptionRecord представляет одну запись массива, встроенного в userscript.
// Набор ключей фиксирован шаблоном скрипта, порядок полей совпадает с порядком сериализации.
type OptionRecord struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Text   string `json:"text"`
	Name   string `json:"name"`
	Colour string `json:"colour"`
}

// Direction задает направление перемещения кнопки в списке.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	// DirectionJump перемещает кнопку на позицию, указанную в ее поле Order.
	DirectionJump Direction = "jump"
)

// URLWarning - результат проверки адреса страницы.
// nil означает, что адрес корректен.
type URLWarning struct {
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`
}

// Snippet представляет заготовку ответа из каталога.
type Snippet struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// DecodeError возвращается, когда встроенный массив кнопок не удалось разобрать.
type DecodeError struct {
	Message string
	Err     error
}

// Error реализует интерфейс error.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает исходную ошибку парсера.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
