// Package config loads Showcase's TOML configuration.
//
// # Overview
//
// The configuration tells Showcase where the catalog service lives, how long
// its timers run, and where it keeps its log, session and preference files.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/showcase/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but keys are missing or blank, use defaults
//  5. Apply SHOWCASE_API_URL, SHOWCASE_LOG_LEVEL and SHOWCASE_LOG_FILE
//
// cmd/showcase loads an optional .env file before calling Load, so the
// environment overrides can also live there.
//
// # TOML Format
//
// Every key is optional:
//
//	api_url = "http://127.0.0.1:3000"
//	request_timeout = "10s"
//	poll_interval = "30s"
//	hire_delay = "2s"
//	notice_ttl = "3s"
//	log_file = "~/.local/state/showcase/showcase.log"
//	log_level = "info"
//	session_path = "~/.config/showcase/session.toml"
//	prefs_path = "~/.config/showcase/prefs.toml"
//
// Durations use Go duration syntax and must be positive. An invalid value
// fails Load with an error naming the key. Path keys get tilde expansion and
// are made absolute.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and invalid durations
//
// Missing config files are NOT an error. Showcase works out of the box
// against a service on the default address.
package config
