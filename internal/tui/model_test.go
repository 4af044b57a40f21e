package tui

import (
	"testing"

	"tobaccoform/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_MenuNavigation(t *testing.T) {
	m := NewModel(&fakeCatalog{}, nil, MenuScreen)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Nil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ScreenChangeMsg{Screen: ImportScreen}, cmd())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ScreenChangeMsg{Screen: BrandsScreen}, cmd())
}

func TestModel_QOnlyQuitsFromMenu(t *testing.T) {
	m := NewModel(&fakeCatalog{}, nil, FormScreen)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = updated.(Model)
	assert.False(t, m.quitting)

	updated, _ = m.Update(ScreenChangeMsg{Screen: MenuScreen})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, updated.(Model).quitting)
}

func TestModel_BrandsScreenLoads(t *testing.T) {
	catalog := &fakeCatalog{brands: []models.Brand{"Tangiers", "Darkside"}}
	m := NewModel(catalog, nil, MenuScreen)

	updated, cmd := m.Update(ScreenChangeMsg{Screen: BrandsScreen})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Loading brands")

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	view := m.View()
	assert.Contains(t, view, "Tangiers")
	assert.Contains(t, view, "Darkside")
}

func TestModel_AsyncResultRoutedToForm(t *testing.T) {
	m := NewModel(&fakeCatalog{}, nil, MenuScreen)

	updated, _ := m.Update(FormBrandsMsg{Brands: []models.Brand{"Adalya"}})
	m = updated.(Model)

	assert.Equal(t, []models.Brand{"Adalya"}, m.formModel.brands.options)
}

func TestModel_ImportRowsRoutedToImport(t *testing.T) {
	catalog := &fakeCatalog{reply: "Added"}
	m := NewModel(catalog, nil, ImportScreen)
	m.importModel.state = ImportProgressState

	updated, cmd := m.Update(ImportLoadedMsg{Records: []models.TobaccoRecord{
		{Brand: "Fumari", Taste: models.TasteSweet, Flavour: "mint"},
	}})
	m = updated.(Model)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	assert.Equal(t, ImportResultState, m.importModel.state)
	assert.Equal(t, 1, m.importModel.result.SentRows)
	assert.Contains(t, m.View(), "Import finished")
}
