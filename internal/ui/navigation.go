package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// moveSelection applies a navigation key to a cursor over count rows.
// Keys that are not navigation keys leave the cursor where it is.
func moveSelection(keys keyMap, msg tea.KeyMsg, cur, count, page int) int {
	if count <= 0 {
		return 0
	}
	page = maxInt(page, 1)
	switch {
	case key.Matches(msg, keys.Up):
		cur--
	case key.Matches(msg, keys.Down):
		cur++
	case key.Matches(msg, keys.Top):
		cur = 0
	case key.Matches(msg, keys.Bottom):
		cur = count - 1
	case key.Matches(msg, keys.PageUp):
		cur -= page
	case key.Matches(msg, keys.PageDown):
		cur += page
	}
	return clampIndex(cur, count)
}

// clampIndex keeps i within [0, n). An empty list yields 0.
func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// windowRange picks the slice of rows to draw so that selected stays
// visible, keeping it roughly centered once the list scrolls.
func windowRange(selected, total, capacity int) (start, end int) {
	if capacity <= 0 || total <= capacity {
		return 0, total
	}
	selected = clampIndex(selected, total)
	start = selected - capacity/2
	if start < 0 {
		start = 0
	}
	if start+capacity > total {
		start = total - capacity
	}
	return start, start + capacity
}
