package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

var helpSections = []string{"Screens", "Navigation", "Listing", "Admin", "General"}

// renderHelp renders the help overlay from the key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := styles.WarningText.Width(12)

	var b strings.Builder
	for i, group := range m.keys.FullHelp() {
		if i > 0 {
			b.WriteString("\n")
		}
		if i < len(helpSections) {
			b.WriteString(styles.AccentText.Bold(true).Render(helpSections[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			b.WriteString(keyStyle.Render(helpKeys(binding)))
			b.WriteString(styles.Text.Render(binding.Help().Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("press any key to close"))
	return renderModal(m.theme, m.width, m.height, "Keyboard Shortcuts", b.String())
}

// helpKeys lists every key of a binding, e.g. "k/up".
func helpKeys(b key.Binding) string {
	return strings.Join(b.Keys(), "/")
}
