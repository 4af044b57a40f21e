package tui

import (
	"context"
	"fmt"

	"tobaccoform/internal/form"
	"tobaccoform/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BrandsModel is a read-only view of the catalog's brand list.
type BrandsModel struct {
	source  *form.BrandSource
	list    *brandList
	loading bool
	width   int
	height  int
}

type BrowseBrandsMsg struct {
	Brands []models.Brand
}

func NewBrandsModel(source *form.BrandSource) *BrandsModel {
	return &BrandsModel{
		source: source,
		list:   &brandList{visible: true},
	}
}

func (m *BrandsModel) Init() tea.Cmd {
	m.loading = true
	source := m.source
	return func() tea.Msg {
		return BrowseBrandsMsg{Brands: source.Fetch(context.Background())}
	}
}

func (m *BrandsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *BrandsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BrowseBrandsMsg:
		m.source.Apply(m.list, msg.Brands)
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.list.Up()
		case "down", "j":
			m.list.Down()
		case "r":
			return m, m.Init()
		case "esc":
			return m, ChangeScreen(MenuScreen)
		}
	}
	return m, nil
}

func (m *BrandsModel) View() string {
	title := titleStyle.Render("📋 Known Brands")

	var content string
	switch {
	case m.loading:
		content = helpStyle.Render("Loading brands...")
	case len(m.list.options) == 0:
		content = warningStyle.Render("No brands found in the catalog")
	default:
		for i, brand := range m.list.options {
			cursor := " "
			style := menuItemStyle
			if i == m.list.cursor {
				cursor = ">"
				style = selectedMenuItemStyle
			}
			content += fmt.Sprintf("%s %s\n", cursor, style.Render(brand))
		}
	}

	help := helpStyle.Render("↑/↓: Navigate • r: Reload • Esc: Back to menu")

	view := lipgloss.JoinVertical(lipgloss.Left, title, content, help)
	if m.width > 0 && m.height > 0 {
		view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, view)
	}
	return view
}
