package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	statusBarFrame = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(lipgloss.Color("#ffffff")).
			PaddingLeft(1).
			PaddingRight(1).
			Width(78).
			Height(1)

	faintStatusBarFrame = statusBarFrame.Copy().
				BorderForeground(lipgloss.Color("#aaaaaa"))

	errorStatusBarFrame = statusBarFrame.Copy().
				BorderForeground(lipgloss.Color("#fc0303"))
)

// StatusBar shows the outcome of the last action
type StatusBar struct {
	status string
	err    bool
}

func (m *StatusBar) Set(status string) {
	m.status = status
	m.err = false
}

func (m *StatusBar) Error(status string) {
	m.status = status
	m.err = true
}

func (m *StatusBar) Clear() {
	m.status = ""
	m.err = false
}

func (m StatusBar) View() string {
	f := faintStatusBarFrame
	if m.status != "" {
		f = statusBarFrame
	}
	if m.err {
		f = errorStatusBarFrame
	}

	return f.Render(m.status)
}
