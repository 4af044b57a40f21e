package tui

import (
	"tobaccoform/internal/form"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Screen int

const (
	MenuScreen Screen = iota
	FormScreen
	ImportScreen
	BrandsScreen
)

// Catalog is the backend the TUI talks to.
type Catalog interface {
	form.BrandLister
	form.RecordCreator
}

type Model struct {
	currentScreen Screen
	menuModel     *MenuModel
	formModel     *FormModel
	importModel   *ImportModel
	brandsModel   *BrandsModel
	quitting      bool
	width         int
	height        int
}

func NewModel(catalog Catalog, logger *zap.Logger, start Screen) Model {
	return Model{
		currentScreen: start,
		menuModel:     NewMenuModel(),
		formModel:     NewFormModel(catalog, catalog, logger),
		importModel:   NewImportModel(catalog, logger),
		brandsModel:   NewBrandsModel(form.NewBrandSource(catalog, logger)),
	}
}

func (m Model) Init() tea.Cmd {
	return m.screenInit(m.currentScreen)
}

func (m Model) screenInit(screen Screen) tea.Cmd {
	switch screen {
	case FormScreen:
		return m.formModel.Init()
	case ImportScreen:
		return m.importModel.Init()
	case BrandsScreen:
		return m.brandsModel.Init()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menuModel.SetSize(msg.Width, msg.Height)
		m.formModel.SetSize(msg.Width, msg.Height)
		m.importModel.SetSize(msg.Width, msg.Height)
		m.brandsModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			if m.currentScreen == MenuScreen {
				m.quitting = true
				return m, tea.Quit
			}
		}

	case ScreenChangeMsg:
		m.currentScreen = msg.Screen
		return m, m.screenInit(msg.Screen)

	// Async results go to their owner even if the user navigated away.
	case FormBrandsMsg, SubmittedMsg:
		_, cmd := m.formModel.Update(msg)
		return m, cmd
	case ImportLoadedMsg, ImportRowMsg:
		_, cmd := m.importModel.Update(msg)
		return m, cmd
	case BrowseBrandsMsg:
		_, cmd := m.brandsModel.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentScreen {
	case MenuScreen:
		_, cmd = m.menuModel.Update(msg)
	case FormScreen:
		_, cmd = m.formModel.Update(msg)
	case ImportScreen:
		_, cmd = m.importModel.Update(msg)
	case BrandsScreen:
		_, cmd = m.brandsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return "Thanks for using the tobacco catalog! 👋\n"
	}

	var content string
	switch m.currentScreen {
	case MenuScreen:
		content = m.menuModel.View()
	case FormScreen:
		content = m.formModel.View()
	case ImportScreen:
		content = m.importModel.View()
	case BrandsScreen:
		content = m.brandsModel.View()
	}

	return content
}

type ScreenChangeMsg struct {
	Screen Screen
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}
