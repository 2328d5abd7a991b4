package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/showcase/internal/logtail"
)

// updateActivityViewport sizes the activity viewport and refreshes its
// content. The view follows the tail unless the user scrolled up.
func (m *Model) updateActivityViewport() {
	width, height := maxInt(m.width, 20), m.contentHeight()
	if m.activity.Width == 0 {
		m.activity = viewport.New(width, height)
		m.activity.Style = lipgloss.NewStyle()
	}
	atBottom := m.activity.AtBottom() || m.activity.TotalLineCount() == 0
	m.activity.Width = width
	m.activity.Height = height
	m.activity.SetContent(m.renderActivityContent())
	if atBottom {
		m.activity.GotoBottom()
	}
}

func (m Model) renderActivityContent() string {
	styles := m.theme.Styles()
	switch {
	case m.logFile == "":
		return styles.MutedText.Render("Activity logging is disabled (log_file is empty).")
	case m.activityErr != nil:
		return styles.DangerText.Render("Could not read " + m.logFile + ": " + m.activityErr.Error())
	case len(m.activityEntries) == 0:
		return styles.MutedText.Render("No activity yet.")
	}

	lines := make([]string, 0, len(m.activityEntries))
	for _, e := range m.activityEntries {
		line := formatLogEntry(e)
		if style, ok := m.levelStyle(e.Level); ok {
			head, rest, _ := strings.Cut(line, "\n")
			line = style.Render(head)
			if rest != "" {
				line += "\n" + styles.FaintText.Render(rest)
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) levelStyle(level string) (lipgloss.Style, bool) {
	styles := m.theme.Styles()
	switch level {
	case "ERROR", "FATAL", "PANIC":
		return styles.DangerText, true
	case "WARN", "WARNING":
		return styles.WarningText, true
	case "DEBUG", "TRACE":
		return styles.FaintText, true
	}
	return lipgloss.Style{}, false
}

// formatLogEntry renders an entry as a header line followed by one indented
// line per extra field.
func formatLogEntry(e logtail.Entry) string {
	var parts []string
	if !e.Time.IsZero() {
		parts = append(parts, e.Time.In(time.Local).Format("2006-01-02 15:04:05"))
	}
	level := e.Level
	if level == "" {
		level = "INFO"
	}
	parts = append(parts, level)
	if component := strings.TrimSpace(e.Fields["component"]); component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", component))
	}
	header := strings.Join(parts, " ")
	if message := strings.TrimSpace(e.Message); message != "" {
		header += " – " + message
	}

	var b strings.Builder
	b.WriteString(header)
	for _, k := range e.FieldKeys() {
		if k == "component" {
			continue
		}
		value := strings.TrimSpace(e.Fields[k])
		if value == "" {
			continue
		}
		b.WriteString("\n    - ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(value)
	}
	return b.String()
}

// renderActivity renders the activity log view.
func (m Model) renderActivity() string {
	if m.activity.Width == 0 {
		return fitLines([]string{m.renderActivityContent()}, m.contentHeight())
	}
	return m.activity.View()
}

// handleActivityKey scrolls the activity log.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "g", "home":
		m.activity.GotoTop()
		return m, nil
	case "G", "end":
		m.activity.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.activity, cmd = m.activity.Update(msg)
	return m, cmd
}
