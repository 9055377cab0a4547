// Package logging provides structured logging for camctl.
//
// This package wraps a global zap logger with convenience functions for the
// patterns used throughout the tool: directory API requests and responses,
// and view state transitions.
//
// # Silent by Default
//
// camctl is an interactive terminal program, so logging is off unless
// CAMCTL_LOG_LEVEL (or --log-level) is set to "debug", "info", "warn" or
// "error". Output goes to stderr, or to the file named by CAMCTL_LOG_FILE.
// When running the TUI, always use CAMCTL_LOG_FILE so log lines do not
// corrupt the screen.
//
//	if err := logging.Initialize(""); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Structured Fields
//
//	logging.LogRequest("fetch_all", "GET", url, requestID)
//	logging.LogResponse("fetch_all", 200, requestID, elapsed)
//	logging.LogTransition("edit_opened", zap.String("device_id", id))
//
// All functions are safe for concurrent use.
package logging
