package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestRunModelProgress(t *testing.T) {
	m := NewRunModel(3)

	next, _ := m.Update(BenchStartedMsg{Path: "decode/small"})
	model := next.(RunModel)
	assert.Equal(t, "decode/small", model.Current)

	next, _ = model.Update(BenchDoneMsg{Path: "decode/small"})
	model = next.(RunModel)
	assert.Equal(t, 1, model.Completed)

	view := model.View()
	assert.Contains(t, view, "1/3")
	assert.Contains(t, view, "decode/small")
}

func TestRunModelQuitKeys(t *testing.T) {
	m := NewRunModel(1)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	model := next.(RunModel)

	assert.True(t, model.Quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, model.View())
}

func TestRunModelSuiteDone(t *testing.T) {
	m := NewRunModel(1)
	_, cmd := m.Update(SuiteDoneMsg{})
	assert.NotNil(t, cmd)
}

func TestRunModelWindowResize(t *testing.T) {
	m := NewRunModel(1)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 50})
	model := next.(RunModel)
	assert.Equal(t, 80, model.progress.Width) // clamped

	next, _ = model.Update(tea.WindowSizeMsg{Width: 40, Height: 50})
	model = next.(RunModel)
	assert.Equal(t, 30, model.progress.Width)
}
