// Package ui provides the terminal interface for showcase.
//
// The UI is a Bubble Tea program with three screens:
//
//   - Listing: the public catalog with a category filter bar, a search box
//     and a per-item Hire action
//   - Admin: item and category tables with create, edit and delete forms,
//     available to sessions holding the admin role
//   - Activity: the tail of the application's JSON log file
//
// All catalog calls run as commands off the update loop and report back as
// messages. The catalog.Store snapshot is re-read on every UI tick, so
// changes made by the background poller appear without user action.
//
// Hiring state and the notification slot live in hiring.Tracker. Its timers
// fire on their own goroutines and wake the program through Program.Send;
// the model reads tracker state at render time.
//
// # Key Bindings
//
//   - enter: Hire the selected service (listing) or edit (admin)
//   - c/C: Next/previous category
//   - /: Search
//   - A: Admin panel
//   - a: Activity log
//   - L: Log in or out
//   - r: Reload the catalog
//   - T: Cycle theme
//   - ?: Help
//   - q or Ctrl+C: Quit
package ui
