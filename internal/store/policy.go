package store

// Policy constants for the derived views. These are business rules, not
// database mechanics: a task is surfaced as "today" when its deadline falls
// within the lookahead window even if it has no start date, and a task is
// "stale" when it has sat in an early-pipeline status past its threshold.
const (
	// StaleCapturedDays is the staleness threshold for captured/clarified tasks.
	StaleCapturedDays = 28

	// StaleReadyDays is the staleness threshold for ready tasks.
	StaleReadyDays = 14

	// DeadlineLookaheadDays is how far ahead a deadline pulls a task into
	// the today view when no start date is set.
	DeadlineLookaheadDays = 7

	// BusyTimeoutMs bounds how long a write waits for the lock when two
	// invocations race. Beyond it the operation fails; retry policy belongs
	// to the caller.
	BusyTimeoutMs = 5000
)
