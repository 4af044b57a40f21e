package tui

import (
	"context"
	"fmt"
	"strings"

	"tobaccoform/internal/form"
	"tobaccoform/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type formField int

const (
	focusBrand formField = iota
	focusTaste
	focusFlavour
	focusCount
)

type FormModel struct {
	ctrl         *form.Controller
	brands       *brandList
	brandInput   *brandField
	tastes       []models.Taste
	tasteIndex   int
	flavourInput textinput.Model
	focused      formField
	notice       string
	noticeOpen   bool
	logger       *zap.Logger
	width        int
	height       int
}

// FormBrandsMsg carries a finished brand fetch back to the form.
type FormBrandsMsg struct {
	Brands []models.Brand
}

// SubmittedMsg carries the server's response text for a submitted record.
type SubmittedMsg struct {
	Text string
}

func NewFormModel(lister form.BrandLister, creator form.RecordCreator, logger *zap.Logger) *FormModel {
	if logger == nil {
		logger = zap.NewNop()
	}

	flavourInput := textinput.New()
	flavourInput.Placeholder = "e.g. mint, double apple"

	m := &FormModel{
		brands:       &brandList{},
		brandInput:   newBrandField(),
		tastes:       models.Tastes(),
		flavourInput: flavourInput,
		focused:      focusBrand,
		logger:       logger,
	}
	m.ctrl = form.NewController(
		form.Bindings{
			Select:   m.brands,
			Input:    m.brandInput,
			Fields:   m,
			Notifier: m,
		},
		form.NewBrandSource(lister, logger),
		form.NewSubmitter(creator, logger),
		logger,
	)
	return m
}

func (m *FormModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadBrands())
}

func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Taste and Flavour let the controller read the remaining fields.
func (m *FormModel) Taste() models.Taste {
	return m.tastes[m.tasteIndex]
}

func (m *FormModel) Flavour() string {
	return m.flavourInput.Value()
}

// Notify opens the modal notice; it swallows input until dismissed.
func (m *FormModel) Notify(text string) {
	m.notice = text
	m.noticeOpen = true
}

func (m *FormModel) Mode() form.Mode {
	return m.ctrl.Mode()
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.noticeOpen {
			return m.updateNotice(msg)
		}
		return m.updateInput(msg)

	case FormBrandsMsg:
		m.ctrl.ApplyBrands(msg.Brands)
		return m, nil

	case SubmittedMsg:
		m.ctrl.Deliver(msg.Text)
		return m, nil
	}

	return m, nil
}

func (m *FormModel) updateNotice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ", "esc":
		m.noticeOpen = false
		m.notice = ""
	}
	return m, nil
}

func (m *FormModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "tab":
		m.focused = (m.focused + 1) % focusCount
		m.updateInputFocus()
		return m, nil
	case "shift+tab":
		m.focused = (m.focused - 1 + focusCount) % focusCount
		m.updateInputFocus()
		return m, nil
	case "ctrl+n":
		if m.ctrl.AddBrand() {
			m.focused = focusBrand
			m.updateInputFocus()
		}
		return m, nil
	case "esc", "ctrl+b":
		if m.ctrl.Back() {
			m.focused = focusBrand
			m.updateInputFocus()
			return m, m.loadBrands()
		}
		if msg.String() == "esc" {
			return m, ChangeScreen(MenuScreen)
		}
		return m, nil
	case "enter":
		return m, m.submit()
	}

	switch m.focused {
	case focusBrand:
		if m.ctrl.Mode() == form.EnterNew {
			m.brandInput.input, cmd = m.brandInput.input.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "up", "k":
			m.brands.Up()
		case "down", "j":
			m.brands.Down()
		}
	case focusTaste:
		switch msg.String() {
		case "up", "left", "k", "h":
			if m.tasteIndex > 0 {
				m.tasteIndex--
			}
		case "down", "right", "j", "l":
			if m.tasteIndex < len(m.tastes)-1 {
				m.tasteIndex++
			}
		}
	case focusFlavour:
		m.flavourInput, cmd = m.flavourInput.Update(msg)
	}

	return m, cmd
}

func (m *FormModel) updateInputFocus() {
	if m.focused == focusBrand && m.ctrl.Mode() == form.EnterNew {
		m.brandInput.Focus()
	} else {
		m.brandInput.input.Blur()
	}
	if m.focused == focusFlavour {
		m.flavourInput.Focus()
	} else {
		m.flavourInput.Blur()
	}
}

func (m *FormModel) loadBrands() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return FormBrandsMsg{Brands: ctrl.FetchBrands(context.Background())}
	}
}

// submit reads the controls now and sends the record in the background.
// Nothing guards against a second submit while the first is in flight.
func (m *FormModel) submit() tea.Cmd {
	send, err := m.ctrl.Prepare()
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		text, ok := send(context.Background())
		if !ok {
			return nil
		}
		return SubmittedMsg{Text: text}
	}
}

func (m *FormModel) View() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("🌿 Add Tobacco")

	if m.noticeOpen {
		box := noticeStyle.Render(m.notice + "\n\n" + helpStyle.Render("Enter: OK"))
		return m.place(lipgloss.JoinVertical(lipgloss.Left, title, box), lipgloss.Center)
	}

	body := m.label(focusBrand, "Brand:") + "\n" + m.renderBrand() + "\n\n" +
		m.label(focusTaste, "Taste:") + "\n" + m.renderTaste() + "\n\n" +
		m.label(focusFlavour, "Flavour:") + "\n" + m.flavourInput.View()

	var help string
	if m.ctrl.Mode() == form.EnterNew {
		help = "Tab: Next field • Esc/Ctrl+B: Back to brand list • Enter: Submit"
	} else {
		help = "Tab: Next field • ↑/↓: Choose • Ctrl+N: New brand • Enter: Submit • Esc: Menu"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		adaptiveFormStyle.Render(body),
		adaptiveHelpStyle.Render(help),
	)
	return m.place(content, lipgloss.Top)
}

func (m *FormModel) place(content string, vertical lipgloss.Position) string {
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, vertical, content)
	}
	return content
}

func (m *FormModel) label(field formField, text string) string {
	if m.focused == field {
		return labelStyle.Render("> " + text)
	}
	return labelStyle.Render(text)
}

func (m *FormModel) renderBrand() string {
	if m.brandInput.visible {
		return m.brandInput.input.View()
	}
	if len(m.brands.options) == 0 {
		return warningStyle.Render("No brands loaded • Ctrl+N to enter a new one")
	}

	var list strings.Builder
	for i, brand := range m.brands.options {
		cursor := " "
		style := menuItemStyle
		if i == m.brands.cursor {
			cursor = ">"
			style = selectedMenuItemStyle
		}
		fmt.Fprintf(&list, "%s %s\n", cursor, style.Render(brand))
	}
	return strings.TrimRight(list.String(), "\n")
}

func (m *FormModel) renderTaste() string {
	parts := make([]string, len(m.tastes))
	for i, taste := range m.tastes {
		if i == m.tasteIndex {
			parts[i] = selectedMenuItemStyle.Render(string(taste))
		} else {
			parts[i] = inputStyle.Render(string(taste))
		}
	}
	return strings.Join(parts, " ")
}
