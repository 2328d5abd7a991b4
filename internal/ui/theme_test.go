package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func colorOf(c lipgloss.TerminalColor) string {
	if col, ok := c.(lipgloss.Color); ok {
		return string(col)
	}
	return ""
}

func TestGetThemeFallsBack(t *testing.T) {
	assert.Equal(t, "Kanagawa", GetTheme("Kanagawa").Name)
	assert.Equal(t, "Nightfox", GetTheme("missing").Name)
	assert.Equal(t, "Nightfox", GetTheme("").Name)
}

func TestNextThemeCycles(t *testing.T) {
	names := ThemeNames()
	for i, name := range names {
		assert.Equal(t, names[(i+1)%len(names)], NextTheme(name))
	}
	assert.Equal(t, names[0], NextTheme("unknown"))
}

func TestThemesDefineBadges(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, badge := range []string{"hiring", "idle", "online", "offline", "loading", "admin", "user"} {
			assert.NotEmpty(t, th.StatusColors[badge], "%s: badge %s", name, badge)
		}
	}
}

func TestBadgeStyleFallsBackToMuted(t *testing.T) {
	th := GetTheme("Everforest")
	styles := th.Styles()
	assert.Equal(t, th.StatusColors["hiring"], colorOf(styles.BadgeStyle("hiring").GetBackground()))
	assert.Equal(t, th.Muted, colorOf(styles.BadgeStyle("unknown").GetBackground()))
}

func TestWithBackgroundKeepsBadges(t *testing.T) {
	th := GetTheme("Nightfox")
	styles := th.Styles().WithBackground(th.Surface)
	assert.Equal(t, th.Muted, colorOf(styles.BadgeStyle("unknown").GetBackground()))
}
