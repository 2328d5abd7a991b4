package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
	// Failed shows message and re-enables the modal after a rejected submit.
	Failed(message string) Modal
}

// renderModal centers a bordered dialog over the screen.
func renderModal(theme Theme, width, height int, title, body string) string {
	styles := theme.Styles()
	content := styles.Text.Bold(true).Render(title) + "\n\n" + body

	modalWidth := 56
	if width > 0 && width-4 < modalWidth {
		modalWidth = maxInt(width-4, 20)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(1, 2).
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
