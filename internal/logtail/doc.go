// Package logtail reads the tail of the application log for the activity view.
//
// # Overview
//
// The application writes JSON log records to a file (see internal/logging).
// This package reads the last N lines of that file and decodes them into
// Entry values that the UI renders.
//
// # Reading Log Files
//
// Read scans the file once and keeps a sliding window of at most
// 2·maxLines lines, compacting it to the newest maxLines whenever it fills,
// so memory stays O(maxLines) regardless of file size.
//
// A non-positive maxLines returns the whole file. A missing file returns
// nil, nil; the log may simply not exist yet.
//
// # Parsing
//
// ParseLine decodes one JSON record. The time, level and msg keys become
// Entry fields; every other key lands in Fields as text. Lines that are not
// JSON (a panic trace, a hand edit) are kept as message-only entries rather
// than dropped.
//
// Example usage:
//
//	entries, err := logtail.ReadEntries(cfg.LogFile, 200)
//	if err != nil {
//		return err
//	}
//	for _, e := range entries {
//		fmt.Println(e.String())
//	}
package logtail
