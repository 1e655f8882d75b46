package services

import (
	"quickreply-editor/internal/domain"
	"quickreply-editor/internal/ports"
)

// OptionList хранит редактируемый список кнопок одной сессии редактора.
// После каждого структурного изменения порядковые номера пересчитываются.
// Список не защищен мьютексом: им владеет один вызывающий.
type OptionList struct {
	options  []domain.Option
	ids      ports.IDGenerator
	defaults OptionDefaults
}

// NewOptionList создает пустой список кнопок.
func NewOptionList(ids ports.IDGenerator, defaults OptionDefaults) *OptionList {
	return &OptionList{
		options:  []domain.Option{},
		ids:      ids,
		defaults: defaults,
	}
}

// Options возвращает копию текущего списка.
func (l *OptionList) Options() []domain.Option {
	out := make([]domain.Option, len(l.options))
	copy(out, l.options)
	return out
}

// Len возвращает количество кнопок.
func (l *OptionList) Len() int {
	return len(l.options)
}

// Replace заменяет весь список, например после успешного Decode.
func (l *OptionList) Replace(options []domain.Option) {
	l.options = make([]domain.Option, len(options))
	copy(l.options, options)
	l.Renumber()
}

// Clear удаляет все кнопки.
func (l *OptionList) Clear() {
	l.options = []domain.Option{}
}

// Append добавляет в конец новую кнопку со значениями по умолчанию.
func (l *OptionList) Append() domain.Option {
	opt := domain.Option{
		ID:    l.ids.NewID(),
		Label: l.defaults.Label,
		Color: l.defaults.Color,
		Kind:  domain.KindByID,
	}
	l.options = append(l.options, opt)
	l.Renumber()
	return l.options[len(l.options)-1]
}

// Remove удаляет кнопку по индексу.
func (l *OptionList) Remove(index int) {
	if !l.inRange(index) {
		return
	}
	l.options = append(l.options[:index], l.options[index+1:]...)
	l.Renumber()
}

// Duplicate вставляет копию кнопки сразу после оригинала с новым идентификатором.
func (l *OptionList) Duplicate(index int) {
	if !l.inRange(index) {
		return
	}
	clone := l.options[index]
	clone.ID = l.ids.NewID()

	l.options = append(l.options, domain.Option{})
	copy(l.options[index+2:], l.options[index+1:])
	l.options[index+1] = clone
	l.Renumber()
}

// Move перемещает кнопку вверх, вниз или на позицию из ее поля Order.
func (l *OptionList) Move(index int, dir domain.Direction) {
	if !l.inRange(index) {
		return
	}

	switch dir {
	case domain.DirectionUp:
		if index == 0 {
			return
		}
		l.swap(index, index-1)
	case domain.DirectionDown:
		if index == len(l.options)-1 {
			return
		}
		l.swap(index, index+1)
	case domain.DirectionJump:
		target := l.options[index].Order - 1
		if target == index || target < 0 || target >= len(l.options) {
			return
		}
		opt := l.options[index]
		l.options = append(l.options[:index], l.options[index+1:]...)
		l.options = append(l.options[:target], append([]domain.Option{opt}, l.options[target:]...)...)
	default:
		return
	}
	l.Renumber()
}

// SetOrder записывает введенный пользователем номер и переносит кнопку на эту позицию.
// Если перенос невозможен, номера восстанавливаются по позициям.
func (l *OptionList) SetOrder(index, order int) {
	if !l.inRange(index) {
		return
	}
	l.options[index].Order = order
	l.Move(index, domain.DirectionJump)
	l.Renumber()
}

// Update заменяет поля кнопки по индексу, сохраняя ее идентификатор и позицию.
func (l *OptionList) Update(index int, opt domain.Option) {
	if !l.inRange(index) {
		return
	}
	opt.ID = l.options[index].ID
	opt.Order = l.options[index].Order
	opt.Color = PadColor(opt.Color)
	if opt.Color == "" {
		opt.Color = l.defaults.Color
	}
	if !opt.Kind.Valid() {
		opt.Kind = InferKind(opt.Content)
	}
	l.options[index] = opt
}

// Renumber приводит поле Order каждой кнопки в соответствие с ее позицией.
func (l *OptionList) Renumber() {
	Renumber(l.options)
}

// Renumber присваивает кнопкам порядковые номера 1..N по их позициям в срезе.
func Renumber(options []domain.Option) {
	for i := range options {
		options[i].Order = i + 1
	}
}

func (l *OptionList) inRange(index int) bool {
	return index >= 0 && index < len(l.options)
}

func (l *OptionList) swap(i, j int) {
	l.options[i], l.options[j] = l.options[j], l.options[i]
}
