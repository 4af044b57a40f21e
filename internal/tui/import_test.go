package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tobaccoform/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stockCSV = "Brand,Taste,Flavour\nFumari,sweet,mint\n,sour,lemon\nAdalya,bitter,x\nDarkside,drink,cola\n"

func writeCSV(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

// drain feeds every message produced by cmd back into m and returns the
// progress value seen after each row.
func drain(t *testing.T, m *ImportModel, cmd tea.Cmd) []float64 {
	t.Helper()
	var seen []float64
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		_, cmd = m.Update(msg)
		if _, ok := msg.(ImportRowMsg); ok {
			seen = append(seen, m.progressVal)
		}
	}
	return seen
}

func startImport(t *testing.T, m *ImportModel, path string) tea.Cmd {
	t.Helper()
	m.fileInput.SetValue(path)
	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, ImportProgressState, m.state)
	return cmd
}

func TestImportModel_SubmitsRowsWithProgress(t *testing.T) {
	catalog := &fakeCatalog{reply: "Tobacco successfully added"}
	m := NewImportModel(catalog, nil)
	path := writeCSV(t, t.TempDir(), "stock.csv", stockCSV)

	seen := drain(t, m, startImport(t, m, path))

	assert.Equal(t, []float64{0.25, 0.5, 0.75, 1}, seen)
	assert.Equal(t, ImportResultState, m.state)
	assert.Equal(t, ImportResult{
		TotalRows:   4,
		SentRows:    2,
		SkippedRows: 2,
		LastReply:   "Tobacco successfully added",
	}, m.result)

	require.Len(t, catalog.posted, 2)
	assert.Equal(t, models.TobaccoRecord{Brand: "Fumari", Taste: models.TasteSweet, Flavour: "mint"}, catalog.posted[0])
	assert.Equal(t, "Darkside", catalog.posted[1].Brand)

	view := m.View()
	assert.Contains(t, view, "Import finished")
	assert.Contains(t, view, "Skipped: 2")
}

func TestImportModel_UnreachableCatalogCountsFailures(t *testing.T) {
	catalog := &fakeCatalog{postErr: errors.New("connection refused")}
	m := NewImportModel(catalog, nil)
	path := writeCSV(t, t.TempDir(), "stock.csv", stockCSV)

	drain(t, m, startImport(t, m, path))

	assert.Equal(t, 2, m.result.FailedRows)
	assert.Zero(t, m.result.SentRows)
	assert.Empty(t, m.result.LastReply)
	assert.NoError(t, m.result.Error)
}

func TestImportModel_MissingFile(t *testing.T) {
	m := NewImportModel(&fakeCatalog{}, nil)

	drain(t, m, startImport(t, m, filepath.Join(t.TempDir(), "nope.csv")))

	assert.Equal(t, ImportResultState, m.state)
	assert.Error(t, m.result.Error)
	assert.Contains(t, m.View(), "Import failed")
}

func TestImportModel_EmptyPathDoesNothing(t *testing.T) {
	m := NewImportModel(&fakeCatalog{}, nil)

	_, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, ImportInputState, m.state)
}

func TestImportModel_KeysIgnoredWhileImporting(t *testing.T) {
	m := NewImportModel(&fakeCatalog{}, nil)
	path := writeCSV(t, t.TempDir(), "stock.csv", stockCSV)
	startImport(t, m, path)

	_, cmd := m.Update(key("esc"))
	assert.Nil(t, cmd)
	assert.Equal(t, ImportProgressState, m.state)
}

func TestImportModel_ResultKeys(t *testing.T) {
	m := NewImportModel(&fakeCatalog{reply: "ok"}, nil)
	path := writeCSV(t, t.TempDir(), "stock.csv", stockCSV)
	drain(t, m, startImport(t, m, path))
	require.Equal(t, ImportResultState, m.state)

	_, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, ImportInputState, m.state)
	assert.Empty(t, m.fileInput.Value())
	assert.Equal(t, ImportResult{}, m.result)

	_, cmd = m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, ScreenChangeMsg{Screen: MenuScreen}, cmd())
}

func TestImportModel_BrowseFiles(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "stock.csv", stockCSV)
	writeCSV(t, dir, "notes.txt", "not a csv")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	m := NewImportModel(&fakeCatalog{}, nil)
	m.Update(key("ctrl+f"))
	require.Equal(t, ImportFileSelectState, m.state)
	assert.Equal(t, []string{"stock.csv"}, m.files)

	m.Update(key("enter"))
	assert.Equal(t, ImportInputState, m.state)
	assert.Equal(t, "stock.csv", m.fileInput.Value())
}
