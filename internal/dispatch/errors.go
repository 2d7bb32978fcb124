package dispatch

import (
	"fmt"
	"strings"

	"github.com/aidahq/aida/internal/schema"
)

// Stable machine-readable error codes. Agents branch on these, so they never
// change once shipped.
const (
	CodeUnknownModule    = "UNKNOWN_MODULE"
	CodeUnknownFunction  = "UNKNOWN_FUNCTION"
	CodeInvalidArguments = "INVALID_ARGUMENTS"
	CodeNotFound         = "NOT_FOUND"
	CodeNotConfigured    = "NOT_CONFIGURED"
)

// FieldError describes one field-level argument failure in terms an agent can
// act on without re-reading documentation.
type FieldError struct {
	Field    string `json:"field"`
	Received any    `json:"received"`
	Expected string `json:"expected"`
	Message  string `json:"message"`
}

// CallError is a recoverable call failure: bad resolution, bad arguments, or
// a missing entity. It is data for the caller, distinct from real faults like
// a broken database file.
type CallError struct {
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Fields     []FieldError `json:"fields,omitempty"`
	Suggestion string       `json:"suggestion,omitempty"`
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// newArgumentError converts validation issues into a CallError, recovering
// each received value from the raw input and composing a suggestion that
// names missing fields before invalid ones.
func newArgumentError(module, function string, raw any, issues []schema.Issue) *CallError {
	fields := make([]FieldError, 0, len(issues))
	var missing, invalid []string
	for _, issue := range issues {
		fields = append(fields, FieldError{
			Field:    issue.Path,
			Received: receivedValue(raw, issue.Path),
			Expected: issue.Expected(),
			Message:  issue.Message,
		})
		if issue.IsMissing() {
			missing = append(missing, issue.Path)
		} else {
			invalid = append(invalid, issue.Path)
		}
	}

	return &CallError{
		Code:       CodeInvalidArguments,
		Message:    fmt.Sprintf("invalid arguments for %s.%s", module, function),
		Fields:     fields,
		Suggestion: composeSuggestion(missing, invalid),
	}
}

func composeSuggestion(missing, invalid []string) string {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "add required field(s): "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "fix invalid field(s): "+strings.Join(invalid, ", "))
	}
	if len(parts) == 0 {
		return "Check the arguments against the function's schema."
	}
	suggestion := strings.Join(parts, "; ")
	return strings.ToUpper(suggestion[:1]) + suggestion[1:] + "."
}

// receivedValue walks the raw argument along a dot-separated issue path so the
// error can echo back exactly what was sent. A path that cannot be followed
// (a missing field, for instance) yields nil.
func receivedValue(raw any, path string) any {
	if path == "input" {
		return raw
	}
	current := raw
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil
			}
			current = value
		case []any:
			var idx int
			if _, err := fmt.Sscanf(segment, "%d", &idx); err != nil {
				return nil
			}
			if idx < 0 || idx >= len(node) {
				return nil
			}
			current = node[idx]
		default:
			return nil
		}
	}
	return current
}
