package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Call resolution and argument errors (shared with internal/dispatch)
	ErrUnknownModule    = "UNKNOWN_MODULE"
	ErrUnknownFunction  = "UNKNOWN_FUNCTION"
	ErrInvalidArguments = "INVALID_ARGUMENTS"
	ErrNotFound         = "NOT_FOUND"
	ErrNotConfigured    = "NOT_CONFIGURED"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// Sync errors
	ErrSyncFailed = "SYNC_FAILED"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
