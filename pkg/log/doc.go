// Package log provides structured safety event logging for tracker boards.
//
// This package defines the Logger interface and the Event type used to record
// every decision the movement guard takes: movements starting and ending,
// overcurrent, under-voltage and timeout trips, inhibited starts and expired
// work sessions. It is separate from operational logging (slog): the event
// log is a complete machine-readable trace for post-mortem analysis of a
// stalled or stopped actuator.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.Logger = log.NewSlogAdapter(slog.Default())
//
//	// On the bench: write to a binary file
//	cfg.Logger, _ = log.NewFileLogger("/var/log/mysoltrk/tracker.evlog")
//
//	// Both
//	cfg.Logger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys (.evlog).
// `trackerctl events` views and filters them.
package log
