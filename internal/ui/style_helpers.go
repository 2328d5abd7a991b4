package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints one background color under a run of differently styled
// segments. Lipgloss resets attributes after each segment, so plain spaces
// between segments would otherwise show the terminal background.
type BgStyle struct {
	bg lipgloss.Color
}

// NewBgStyle creates a background painter for bgColor.
func NewBgStyle(bgColor string) BgStyle {
	return BgStyle{bg: lipgloss.Color(bgColor)}
}

func (b BgStyle) plain() lipgloss.Style {
	return lipgloss.NewStyle().Background(b.bg)
}

// Render applies style on the background to each word of text and joins
// the words with painted spaces.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.Space())
}

// Space returns a single painted space.
func (b BgStyle) Space() string {
	return b.Spaces(1)
}

// Spaces returns n painted spaces.
func (b BgStyle) Spaces(n int) string {
	return b.plain().Render(strings.Repeat(" ", maxInt(n, 0)))
}

// Sep paints a separator string.
func (b BgStyle) Sep(sep string) string {
	return b.plain().Render(sep)
}

// Join joins parts with a painted separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}
