package tui

import (
	"tobaccoform/internal/models"

	"github.com/charmbracelet/bubbles/textinput"
)

// brandList is the known-brand selector.
type brandList struct {
	options []models.Brand
	cursor  int
	visible bool
}

func (l *brandList) SetOptions(brands []models.Brand) {
	l.options = brands
	l.cursor = 0
}

func (l *brandList) Selected() models.Brand {
	if l.cursor < 0 || l.cursor >= len(l.options) {
		return ""
	}
	return l.options[l.cursor]
}

func (l *brandList) SetVisible(visible bool) {
	l.visible = visible
}

func (l *brandList) Up() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *brandList) Down() {
	if l.cursor < len(l.options)-1 {
		l.cursor++
	}
}

// brandField is the free-text new-brand input.
type brandField struct {
	input   textinput.Model
	visible bool
}

func newBrandField() *brandField {
	input := textinput.New()
	input.Placeholder = "New brand name"
	return &brandField{input: input}
}

func (f *brandField) Value() string {
	return f.input.Value()
}

func (f *brandField) SetValue(value string) {
	f.input.SetValue(value)
}

func (f *brandField) SetVisible(visible bool) {
	f.visible = visible
	if !visible {
		f.input.Blur()
	}
}

func (f *brandField) Focus() {
	f.input.Focus()
}
