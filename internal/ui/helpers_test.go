package ui

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/five82/showcase/internal/backend"
	"github.com/five82/showcase/internal/catalog"
	"github.com/five82/showcase/internal/logtail"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("  short  ", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "héllo", truncate("héllo", 5))
	assert.Equal(t, "unbounded", truncate("unbounded", 0))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
	assert.Equal(t, "ab", padRight("ab", 0))
}

func TestFitLines(t *testing.T) {
	assert.Equal(t, "a\nb\n", fitLines([]string{"a", "b"}, 3))
	assert.Equal(t, "a\nb", fitLines([]string{"a", "b", "c"}, 2))
	assert.Equal(t, "a\nb\nc", fitLines([]string{"a", "b", "c"}, 0))
}

func TestClampIndex(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{0, 0, 0},
		{5, 0, 0},
		{-1, 3, 0},
		{1, 3, 1},
		{3, 3, 2},
		{99, 3, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, clampIndex(tc.i, tc.n), "clampIndex(%d, %d)", tc.i, tc.n)
	}
}

func TestWindowRange(t *testing.T) {
	cases := []struct {
		name                      string
		selected, total, capacity int
		start, end                int
	}{
		{"fits", 3, 5, 10, 0, 5},
		{"top", 0, 20, 5, 0, 5},
		{"centered", 10, 20, 5, 8, 13},
		{"bottom", 19, 20, 5, 15, 20},
		{"zero capacity", 4, 20, 0, 0, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := windowRange(tc.selected, tc.total, tc.capacity)
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestCycleIndex(t *testing.T) {
	assert.Equal(t, 1, cycleIndex(0, 3, 1))
	assert.Equal(t, 0, cycleIndex(2, 3, 1))
	assert.Equal(t, 2, cycleIndex(0, 3, -1))
	assert.Equal(t, 0, cycleIndex(-1, 3, 1))
	assert.Equal(t, 2, cycleIndex(-1, 3, -1))
	assert.Equal(t, -1, cycleIndex(0, 0, 1))
}

func TestMoveSelection(t *testing.T) {
	keys := DefaultKeyMap()
	runes := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

	assert.Equal(t, 1, moveSelection(keys, runes("j"), 0, 5, 2))
	assert.Equal(t, 0, moveSelection(keys, runes("k"), 0, 5, 2))
	assert.Equal(t, 4, moveSelection(keys, runes("G"), 1, 5, 2))
	assert.Equal(t, 0, moveSelection(keys, runes("g"), 3, 5, 2))
	assert.Equal(t, 3, moveSelection(keys, tea.KeyMsg{Type: tea.KeyCtrlD}, 1, 5, 2))
	assert.Equal(t, 4, moveSelection(keys, tea.KeyMsg{Type: tea.KeyPgDown}, 3, 5, 2))
	assert.Equal(t, 2, moveSelection(keys, runes("x"), 2, 5, 2))
	assert.Equal(t, 0, moveSelection(keys, runes("j"), 0, 0, 2))
}

func TestListingSummary(t *testing.T) {
	assert.Equal(t, "1 service", listingSummary(1, 1))
	assert.Equal(t, "4 services", listingSummary(4, 4))
	assert.Equal(t, "2 of 4 services", listingSummary(2, 4))
	assert.Equal(t, "0 services", listingSummary(0, 0))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Design", categoryLabel(catalog.Item{Category: "Design"}))
	assert.Equal(t, noCategoryLabel, categoryLabel(catalog.Item{Category: catalog.NoCategory}))
	assert.Equal(t, "(unnamed)", displayName(catalog.Item{Name: "  "}))
}

func TestDescribeError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", &catalog.ValidationError{Field: "price", Reason: "must be a number"}, "invalid price: must be a number"},
		{"not found", &catalog.NotFoundError{Kind: "item", ID: "7"}, `item "7" not found; press r to reload`},
		{
			"server message",
			&catalog.UpstreamError{Op: "create item", Status: 409, Err: &backend.APIError{StatusCode: 409, Message: "name taken"}},
			"name taken",
		},
		{"unreachable", &catalog.UpstreamError{Op: "load", Err: errors.New("dial tcp: connection refused")}, "service unreachable"},
		{"bare status", &catalog.UpstreamError{Op: "load", Status: 500, Err: errors.New("boom")}, "load: boom"},
		{"wrapped", fmt.Errorf("outer: %w", &catalog.NotFoundError{Kind: "category", ID: "c"}), `category "c" not found; press r to reload`},
		{"other", errors.New("plain"), "plain"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, describeError(tc.err))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "", formatTimestamp(time.Time{}, now))
	assert.Equal(t, "11:59:30 (now)", formatTimestamp(now.Add(-30*time.Second), now))
	assert.Equal(t, "11:45:00 (15m ago)", formatTimestamp(now.Add(-15*time.Minute), now))
	assert.Equal(t, "09:00:00 (3h ago)", formatTimestamp(now.Add(-3*time.Hour), now))
	assert.Equal(t, "12:00:00", formatTimestamp(now.Add(-48*time.Hour), now))
}

func TestFormatLogEntry(t *testing.T) {
	oldLocal := time.Local
	time.Local = time.FixedZone("TestLocal", -5*60*60)
	defer func() {
		time.Local = oldLocal
	}()

	e := logtail.Entry{
		Time:    time.Date(2025, 12, 13, 10, 11, 12, 0, time.UTC),
		Level:   "WARN",
		Message: " catalog load failed ",
		Fields:  map[string]string{"component": "catalog", "failures": "2", "error": "timeout"},
	}
	got := formatLogEntry(e)
	lines := strings.Split(got, "\n")
	assert.Equal(t, "2025-12-13 05:11:12 WARN [catalog] – catalog load failed", lines[0])
	assert.Equal(t, []string{"    - error: timeout", "    - failures: 2"}, lines[1:])

	assert.Equal(t, "INFO – plain line", formatLogEntry(logtail.Entry{Message: "plain line"}))
}

func TestHelpKeysListsEveryKey(t *testing.T) {
	keys := DefaultKeyMap()
	assert.Equal(t, "k/up", helpKeys(keys.Up))
	assert.Equal(t, "enter/e", helpKeys(keys.Edit))
}

func TestBgStyleRender(t *testing.T) {
	bg := NewBgStyle("#000000")
	assert.Equal(t, "two  words", stripANSI(bg.Render("two  words", lipgloss.NewStyle())))
	assert.Equal(t, "", bg.Render("", lipgloss.NewStyle()))
	assert.Equal(t, "a - b", stripANSI(bg.Join([]string{"a", "b"}, " - ")))
}

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}
