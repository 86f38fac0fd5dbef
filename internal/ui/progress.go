// Package ui provides the terminal progress view shown while a suite runs.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	runTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("63")). // Purple
			Padding(0, 1).
			Bold(true)

	runBenchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // Cyan/Teal

	runHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666")).
			MarginTop(1)
)

// BenchStartedMsg announces the benchmark currently being measured.
type BenchStartedMsg struct {
	Path string
}

// BenchDoneMsg announces one finished benchmark.
type BenchDoneMsg struct {
	Path string
}

// SuiteDoneMsg ends the view.
type SuiteDoneMsg struct{}

// RunModel renders suite progress: the active benchmark and a bar over the
// total count.
type RunModel struct {
	Total     int
	Completed int
	Current   string
	Quitting  bool

	progress progress.Model
	width    int
}

// NewRunModel creates a progress view for a suite of total benchmarks.
func NewRunModel(total int) RunModel {
	p := progress.New(progress.WithDefaultGradient())
	return RunModel{Total: total, progress: p}
}

// Init implements tea.Model.
func (m RunModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 10
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		return m, nil

	case BenchStartedMsg:
		m.Current = msg.Path
		return m, nil

	case BenchDoneMsg:
		m.Completed++
		return m, nil

	case SuiteDoneMsg:
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m RunModel) View() string {
	if m.Quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(runTitleStyle.Render("benchtune"))
	s.WriteString("\n\n")

	if m.Current != "" {
		s.WriteString(runBenchStyle.Render(fmt.Sprintf("measuring %s", m.Current)))
		s.WriteString("\n")
	}

	percent := 0.0
	if m.Total > 0 {
		percent = float64(m.Completed) / float64(m.Total)
	}
	s.WriteString(m.progress.ViewAs(percent))
	s.WriteString(fmt.Sprintf("  %d/%d", m.Completed, m.Total))

	s.WriteString(runHelpStyle.Render("\nq: abort"))
	return s.String()
}
