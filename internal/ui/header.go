package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: title, connection badge, session
// and catalog counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutWideWidth

	parts := []string{bg.Render("showcase", styles.Logo)}

	snap := m.snapshot
	switch {
	case m.loading || (!snap.Loaded && snap.LastError == nil):
		parts = append(parts, styles.BadgeStyle("loading").Render("LOADING"))
	case snap.IsOffline() || (!snap.Loaded && snap.LastError != nil):
		parts = append(parts, styles.BadgeStyle("offline").Render("OFFLINE"))
	default:
		parts = append(parts, styles.BadgeStyle("online").Render("ONLINE"))
	}

	if m.session.Authenticated() {
		badge, label := "user", m.session.Username()
		if m.session.IsAdmin() {
			badge = "admin"
			label += " (admin)"
		}
		parts = append(parts, styles.BadgeStyle(badge).Render(truncate(label, 24)))
	}

	if snap.Loaded {
		parts = append(parts, bg.Render(listingSummary(len(m.visibleItems()), len(snap.Items)), styles.Text))
		if !compact {
			parts = append(parts,
				bg.Render("Categories:", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", len(snap.Categories)), styles.Text))
		}
		if n := len(m.tracker.Hiring()); n > 0 {
			parts = append(parts,
				bg.Render("Hiring:", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", n), styles.AccentText))
		}
	}

	if ts := formatTimestamp(snap.LastUpdated, time.Now()); ts != "" && !compact {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if snap.LastError != nil && snap.Loaded {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(describeError(snap.LastError), maxErr), styles.DangerText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxHeight(1).
		Render(bg.Join(parts, "  "))
}

// formatTimestamp formats the last update time with a relative indicator.
func formatTimestamp(at, now time.Time) string {
	if at.IsZero() {
		return ""
	}
	since := now.Sub(at)
	text := at.Format("15:04:05")
	switch {
	case since < time.Minute:
		text += " (now)"
	case since < time.Hour:
		text += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		text += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return text
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.view {
	case ViewAdmin:
		commands = []cmd{
			{"tab", m.adminTab.String()},
			{"n", "New"},
			{"enter", "Edit"},
			{"d", "Delete"},
			{"j/k", "Navigate"},
			{"esc", "Listing"},
		}
	case ViewActivity:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"esc", "Listing"},
		}
	default:
		commands = []cmd{
			{"enter", "Hire"},
			{"c/C", "Category"},
			{"/", "Search"},
			{"A", "Admin"},
			{"a", "Activity"},
		}
	}

	sessionLabel := "Log in"
	if m.session.Authenticated() {
		sessionLabel = "Log out"
	}
	commands = append(commands, cmd{"L", sessionLabel}, cmd{"r", "Reload"}, cmd{"?", "More"})

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxHeight(1).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderFooter renders the notification slot above the status line.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	notice := ""
	if text, ok := m.tracker.Notices().Current(); ok {
		notice = styles.SuccessText.Bold(true).Render("✔ " + text)
	}

	status := ""
	if m.status != "" {
		style := styles.MutedText
		if m.statusErr {
			style = styles.DangerText
		}
		status = style.Render(truncate(m.status, maxInt(m.width-2, 20)))
	}
	return notice + "\n" + status
}
