package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tobaccoform/internal/csv"
	"tobaccoform/internal/form"
	"tobaccoform/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type ImportState int

const (
	ImportInputState ImportState = iota
	ImportFileSelectState
	ImportProgressState
	ImportResultState
)

type ImportResult struct {
	TotalRows   int
	SentRows    int
	SkippedRows int
	FailedRows  int
	LastReply   string
	Error       error
}

// ImportLoadedMsg carries the decoded CSV rows.
type ImportLoadedMsg struct {
	Records []models.TobaccoRecord
	Err     error
}

// ImportRowMsg reports what happened to one row. A row that was neither
// skipped nor sent failed to reach the catalog.
type ImportRowMsg struct {
	Index   int
	Reply   string
	Skipped bool
	Sent    bool
}

type ImportModel struct {
	state        ImportState
	fileInput    textinput.Model
	progress     progress.Model
	progressVal  float64
	records      []models.TobaccoRecord
	result       ImportResult
	files        []string
	selectedFile int
	submitter    *form.Submitter
	logger       *zap.Logger
	width        int
	height       int
}

func NewImportModel(creator form.RecordCreator, logger *zap.Logger) *ImportModel {
	if logger == nil {
		logger = zap.NewNop()
	}

	fileInput := textinput.New()
	fileInput.Placeholder = "path/to/tobacco.csv"
	fileInput.Focus()

	progressBar := progress.New(
		progress.WithSolidFill("#8fd694"),
		progress.WithoutPercentage(),
	)

	return &ImportModel{
		state:     ImportInputState,
		fileInput: fileInput,
		progress:  progressBar,
		submitter: form.NewSubmitter(creator, logger),
		logger:    logger,
	}
}

func (m *ImportModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ImportModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	barWidth := width - 10
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 80 {
		barWidth = 80
	}
	m.progress.Width = barWidth
}

func (m *ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case ImportInputState:
			return m.updateInputState(msg)
		case ImportFileSelectState:
			return m.updateFileSelectState(msg)
		case ImportProgressState:
			return m, nil
		case ImportResultState:
			switch msg.String() {
			case "enter", " ":
				m.reset()
			case "esc":
				m.reset()
				return m, ChangeScreen(MenuScreen)
			}
			return m, nil
		}

	case ImportLoadedMsg:
		if m.state != ImportProgressState {
			return m, nil
		}
		if msg.Err != nil {
			m.result.Error = msg.Err
			m.state = ImportResultState
			return m, nil
		}
		m.records = msg.Records
		m.result.TotalRows = len(msg.Records)
		if len(m.records) == 0 {
			m.state = ImportResultState
			return m, nil
		}
		return m, m.sendRow(0)

	case ImportRowMsg:
		if m.state != ImportProgressState || msg.Index >= len(m.records) {
			return m, nil
		}
		switch {
		case msg.Skipped:
			m.result.SkippedRows++
		case msg.Sent:
			m.result.SentRows++
			m.result.LastReply = msg.Reply
		default:
			m.result.FailedRows++
		}

		next := msg.Index + 1
		m.progressVal = float64(next) / float64(len(m.records))
		if next < len(m.records) {
			return m, m.sendRow(next)
		}

		m.state = ImportResultState
		m.logger.Info("CSV import finished",
			zap.Int("total", m.result.TotalRows),
			zap.Int("sent", m.result.SentRows),
			zap.Int("skipped", m.result.SkippedRows),
			zap.Int("failed", m.result.FailedRows))
		return m, nil
	}

	return m, nil
}

func (m *ImportModel) updateInputState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		return m, ChangeScreen(MenuScreen)
	case "ctrl+f":
		return m.browseFiles()
	case "enter":
		if path := strings.TrimSpace(m.fileInput.Value()); path != "" {
			return m.startImport(path)
		}
		return m, nil
	}

	m.fileInput, cmd = m.fileInput.Update(msg)
	return m, cmd
}

func (m *ImportModel) updateFileSelectState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedFile > 0 {
			m.selectedFile--
		}
	case "down", "j":
		if m.selectedFile < len(m.files)-1 {
			m.selectedFile++
		}
	case "enter":
		if len(m.files) > 0 {
			m.fileInput.SetValue(m.files[m.selectedFile])
			m.state = ImportInputState
		}
	case "esc":
		m.state = ImportInputState
	}
	return m, nil
}

func (m *ImportModel) browseFiles() (tea.Model, tea.Cmd) {
	cwd, err := os.Getwd()
	if err != nil {
		m.logger.Warn("Cannot read working directory", zap.Error(err))
	}
	files, err := filepath.Glob(filepath.Join(cwd, "*.csv"))
	if err != nil {
		m.logger.Warn("Cannot list CSV files", zap.Error(err))
	}

	for i, file := range files {
		if rel, err := filepath.Rel(cwd, file); err == nil {
			files[i] = rel
		}
	}

	m.files = files
	m.selectedFile = 0
	m.state = ImportFileSelectState
	return m, nil
}

func (m *ImportModel) startImport(path string) (tea.Model, tea.Cmd) {
	m.state = ImportProgressState
	m.progressVal = 0
	m.records = nil
	m.result = ImportResult{}

	return m, func() tea.Msg {
		records, err := csv.NewParser(path).ParseRecords()
		if err != nil {
			return ImportLoadedMsg{Err: fmt.Errorf("failed to parse CSV: %w", err)}
		}
		return ImportLoadedMsg{Records: records}
	}
}

// sendRow submits row i in the background. Rows are sent one at a time; the
// next one starts when this one's message comes back.
func (m *ImportModel) sendRow(i int) tea.Cmd {
	record := m.records[i]
	submitter := m.submitter
	logger := m.logger
	return func() tea.Msg {
		if err := form.CheckRecord(record); err != nil {
			logger.Warn("Skipping CSV row", zap.Int("row", i+1), zap.Error(err))
			return ImportRowMsg{Index: i, Skipped: true}
		}
		text, ok := submitter.Send(context.Background(), record)
		return ImportRowMsg{Index: i, Reply: text, Sent: ok}
	}
}

func (m *ImportModel) reset() {
	m.state = ImportInputState
	m.progressVal = 0
	m.records = nil
	m.result = ImportResult{}
	m.fileInput.SetValue("")
	m.fileInput.Focus()
}

func (m *ImportModel) View() string {
	switch m.state {
	case ImportInputState:
		return m.renderInputForm()
	case ImportFileSelectState:
		return m.renderFileSelector()
	case ImportProgressState:
		return m.renderProgress()
	case ImportResultState:
		return m.renderResult()
	}
	return ""
}

func (m *ImportModel) renderInputForm() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("📥 Import Tobacco CSV")

	body := adaptiveFormStyle.Render(
		labelStyle.Render("CSV File:") + "\n" + m.fileInput.View() + "\n\n" +
			labelStyle.Render("Columns:") + "\n" + "brand, taste, flavour",
	)

	help := adaptiveHelpStyle.Render("Ctrl+F: Browse files • Enter: Import • Esc: Back to menu")

	return m.place(lipgloss.JoinVertical(lipgloss.Left, title, body, help), lipgloss.Top)
}

func (m *ImportModel) renderFileSelector() string {
	title := titleStyle.Render("📁 Select CSV File")

	if len(m.files) == 0 {
		content := warningStyle.Render("No CSV files found in current directory")
		help := helpStyle.Render("Esc: Back to form")
		return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
	}

	var list strings.Builder
	for i, file := range m.files {
		cursor := " "
		style := menuItemStyle
		if i == m.selectedFile {
			cursor = ">"
			style = selectedMenuItemStyle
		}
		fmt.Fprintf(&list, "%s %s\n", cursor, style.Render(file))
	}

	help := helpStyle.Render("↑/↓: Navigate • Enter: Select • Esc: Cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, list.String(), help)
}

func (m *ImportModel) renderProgress() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("📥 Importing Tobacco...")

	done := m.result.SentRows + m.result.SkippedRows + m.result.FailedRows
	status := fmt.Sprintf("Row %d of %d", done, m.result.TotalRows)
	content := progressStyle.Render(m.progress.ViewAs(m.progressVal) + "\n" + status)
	help := adaptiveHelpStyle.Render("Please wait while rows are being submitted...")

	return m.place(lipgloss.JoinVertical(lipgloss.Left, title, content, help), lipgloss.Center)
}

func (m *ImportModel) renderResult() string {
	title := titleStyle.Render("📥 Import Complete")

	var status string
	if m.result.Error != nil {
		status = errorStyle.Render(fmt.Sprintf("❌ Import failed: %v", m.result.Error))
	} else {
		status = successStyle.Render("✅ Import finished")
	}

	stats := fmt.Sprintf(
		"📊 Import Statistics:\n"+
			"   Total rows: %d\n"+
			"   Submitted: %d\n"+
			"   Skipped: %d\n"+
			"   Failed: %d",
		m.result.TotalRows,
		m.result.SentRows,
		m.result.SkippedRows,
		m.result.FailedRows,
	)
	if m.result.LastReply != "" {
		stats += "\n   Last reply: " + m.result.LastReply
	}

	help := helpStyle.Render("Enter: Import another file • Esc: Back to menu")

	return lipgloss.JoinVertical(lipgloss.Left, title, status, stats, help)
}

func (m *ImportModel) place(content string, vertical lipgloss.Position) string {
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, vertical, content)
	}
	return content
}
