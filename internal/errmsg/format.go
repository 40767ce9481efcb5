// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Source operations
	OpSourceLoad   Op = "load audio"
	OpSourceReload Op = "reload audio"

	// Playback operations
	OpEngineOpen    Op = "open audio device"
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// State operations
	OpStateOpen   Op = "open state database"
	OpVolumeSave  Op = "save volume"
	OpHistorySave Op = "record load history"
	OpHistoryLoad Op = "read load history"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
