package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which descriptions are hidden.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the minimum width to show the category column in
	// the admin item table.
	LayoutWideWidth = 100
)

// Activity display limits.
const (
	// ActivityLimit is the number of log entries the activity view shows.
	ActivityLimit = 200
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// DefaultRequestTimeout bounds a single catalog call made from the UI.
	DefaultRequestTimeout = 10 * time.Second
)
