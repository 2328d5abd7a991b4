package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/showcase/internal/catalog"
	"github.com/five82/showcase/internal/hiring"
)

// visibleItems applies the category filter and search term to the snapshot.
func (m Model) visibleItems() []catalog.Item {
	return catalog.Visible(m.snapshot.Items, m.category, m.searchTerm())
}

func (m Model) searchTerm() string {
	return strings.TrimSpace(m.searchInput.Value())
}

// categoryOptions lists the filter bar entries: All first, then every
// category in use.
func (m Model) categoryOptions() []string {
	return append([]string{catalog.AllCategories}, m.snapshot.UsedCategories...)
}

// handleListingKey processes keyboard input for the public listing.
func (m Model) handleListingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextCategory):
		m.stepCategory(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevCategory):
		m.stepCategory(-1)
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.Hire):
		return m.hireSelected()
	}

	m.selected = moveSelection(m.keys, msg, m.selected, len(m.visibleItems()), m.contentHeight()/2)
	return m, nil
}

// handleSearchKey routes input to the search box. Enter keeps the term,
// esc clears it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.selected = 0
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.selected = clampIndex(m.selected, len(m.visibleItems()))
	return m, cmd
}

func (m *Model) stepCategory(step int) {
	options := m.categoryOptions()
	idx := indexOf(options, m.category)
	if idx < 0 {
		idx = 0
	}
	m.category = options[cycleIndex(idx, len(options), step)]
	m.selected = 0
	m.savePrefs()
}

func (m Model) hireSelected() (tea.Model, tea.Cmd) {
	items := m.visibleItems()
	if len(items) == 0 {
		return m, nil
	}
	item := items[clampIndex(m.selected, len(items))]
	if m.tracker.Hire(item.ID) {
		m.log.WithField("item", item.ID).Info("hire requested")
	}
	return m, nil
}

// renderListing renders the public listing.
func (m Model) renderListing() string {
	styles := m.theme.Styles()
	height := m.contentHeight()
	var lines []string

	lines = append(lines, m.renderFilterBar())
	if m.searching || m.searchTerm() != "" {
		lines = append(lines, m.searchInput.View())
	} else {
		lines = append(lines, styles.FaintText.Render("press / to search"))
	}
	lines = append(lines, "")

	items := m.visibleItems()
	switch {
	case !m.snapshot.Loaded && m.snapshot.LastError != nil:
		lines = append(lines,
			styles.DangerText.Render("Could not load the catalog."),
			styles.MutedText.Render(describeError(m.snapshot.LastError)),
			styles.FaintText.Render("press r to retry"))
	case !m.snapshot.Loaded:
		lines = append(lines, styles.MutedText.Render("Loading catalog..."))
	case len(items) == 0:
		lines = append(lines, styles.MutedText.Render("No services match."))
	default:
		rowsPerItem := 2
		if m.width > 0 && m.width < LayoutCompactWidth {
			rowsPerItem = 1
		}
		capacity := maxInt((height-len(lines))/rowsPerItem, 1)
		start, end := windowRange(m.selected, len(items), capacity)
		for i := start; i < end; i++ {
			lines = append(lines, m.renderListingItem(items[i], i == m.selected, rowsPerItem == 2)...)
		}
	}

	return fitLines(lines, height)
}

func (m Model) renderFilterBar() string {
	styles := m.theme.Styles()
	parts := make([]string, 0, len(m.snapshot.UsedCategories)+1)
	for _, name := range m.categoryOptions() {
		label := name
		if name == catalog.AllCategories {
			label = "All"
		}
		if name == m.category {
			parts = append(parts, styles.Selected.Render(" "+label+" "))
		} else {
			parts = append(parts, styles.MutedText.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderListingItem(item catalog.Item, selected, withDescription bool) []string {
	styles := m.theme.Styles()

	cursor := "  "
	nameStyle := styles.Text.Bold(true)
	if selected {
		cursor = styles.AccentText.Render("▸ ")
		nameStyle = styles.AccentText.Bold(true)
	}

	var b strings.Builder
	b.WriteString(cursor)
	b.WriteString(nameStyle.Render(truncate(displayName(item), 40)))
	b.WriteString("  ")
	b.WriteString(styles.SuccessText.Render("$" + item.DisplayPrice()))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(categoryLabel(item)))
	if m.tracker.State(item.ID) == hiring.Hiring {
		b.WriteString("  ")
		b.WriteString(styles.BadgeStyle("hiring").Render("Hiring..."))
	}

	lines := []string{b.String()}
	if withDescription {
		desc := truncate(item.Description, maxInt(m.width-6, 20))
		lines = append(lines, "    "+styles.MutedText.Render(desc))
	}
	return lines
}

// listingSummary renders "N services" or "V of N services".
func listingSummary(visible, total int) string {
	noun := "services"
	if total == 1 {
		noun = "service"
	}
	if visible == total {
		return fmt.Sprintf("%d %s", total, noun)
	}
	return fmt.Sprintf("%d of %d %s", visible, total, noun)
}

func displayName(item catalog.Item) string {
	if strings.TrimSpace(item.Name) == "" {
		return "(unnamed)"
	}
	return item.Name
}

// categoryLabel renders an item's category, or a placeholder once the
// category has been deleted.
func categoryLabel(item catalog.Item) string {
	if !item.HasCategory() {
		return noCategoryLabel
	}
	return item.Category
}
