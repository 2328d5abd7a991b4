// Package app wires configuration, logging, the backend client, the catalog
// store and the UI into the Showcase TUI.
//
// Run is the composition root:
//
//  1. Load ~/.config/showcase/config.toml, with SHOWCASE_* overrides
//  2. Open the JSON log file
//  3. Restore the saved session and attach it to the backend client
//  4. Build catalog.Store over the backend adapter and a hiring.Tracker
//  5. Load the catalog once, then start the background poller
//  6. Run the UI until the user quits or the context is cancelled
//
// # Polling Behavior
//
// The poller reloads the catalog every poll_interval (default 30 seconds).
// After a failure it waits interval·2^n, capped at five minutes, and the
// store keeps the last good snapshot. A failed startup load is not fatal:
// the listing shows the error and the poller keeps trying.
package app
