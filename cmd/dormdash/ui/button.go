package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dormdash/campus-eats/internal/service"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			MarginLeft(1).
			MarginRight(1)

	frameStyle = lipgloss.NewStyle()

	focusFrameStyle = lipgloss.NewStyle().
			Bold(true)
)

// button triggers a navigation action. slug is set for restaurant buttons.
type button struct {
	label  string
	action service.Action
	slug   string
	focus  bool
}

func (m button) View(accent lipgloss.Color) string {
	frame := frameStyle
	label := labelStyle

	if m.focus {
		frame = focusFrameStyle
		label = labelStyle.Copy().Foreground(accent)
	}

	return frame.Render("[") + label.Render(m.label) + frame.Render("]")
}

func (m *button) Focus() {
	m.focus = true
}

func (m *button) Blur() {
	m.focus = false
}
