package cli

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidahq/aida/internal/dispatch"
	"github.com/aidahq/aida/internal/schema"
	"github.com/aidahq/aida/internal/store"
	"github.com/aidahq/aida/internal/todoist"
)

var callCmd = &cobra.Command{
	Use:   "call <module> <function> [args...]",
	Short: "Call a typed operation",
	Long: `Call a typed operation by module and function name.

Arguments are JSON values: an id (42), a date ("2026-03-01"), or a single
JSON object ({"title": "Boka tandläkare", "role_id": 1}). Bare words that
are not valid JSON are taken as strings, so dates work without quoting.

Output is always the JSON envelope. Validation failures report every bad
field with what was received and what was expected, and exit non-zero.`,
	Example: `  aida call tasks getTodayTasks
  aida call tasks getTask 42
  aida call tasks createTask '{"title": "Handla mat", "role_id": 1}'
  aida call journal getEntriesForDate 2026-03-01`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	module, function := args[0], args[1]
	rawArgs := parseCallArgs(args[2:])

	registry := schema.NewRegistry()

	// Resolve before touching the database: a mistyped call never opens it.
	if _, ok := registry.Lookup(module, function); !ok {
		env := &dispatch.Env{Registry: registry, Log: logger}
		_, err := dispatch.Call(cmd.Context(), env, module, function, rawArgs)
		return renderCallFailure(err)
	}

	st, err := store.Open(databasePath())
	if err != nil {
		outputError(ErrDatabaseError, err.Error(), nil, "")
		return errHandled
	}
	defer st.Close()

	env := &dispatch.Env{
		Store:    st,
		Todoist:  todoistClient(),
		Registry: registry,
		Log:      logger,
	}

	result, err := dispatch.Call(cmd.Context(), env, module, function, rawArgs)
	if err != nil {
		return renderCallFailure(err)
	}

	outputSuccess(result, resultMeta(result))
	return nil
}

// parseCallArgs decodes each CLI argument as JSON, falling back to a plain
// string for bare words like dates.
func parseCallArgs(args []string) []any {
	parsed := make([]any, 0, len(args))
	for _, arg := range args {
		var value any
		if err := json.Unmarshal([]byte(arg), &value); err != nil {
			value = strings.TrimSpace(arg)
		}
		parsed = append(parsed, value)
	}
	return parsed
}

// renderCallFailure prints the envelope for a recoverable call error and
// returns errHandled so the process still exits non-zero. Infrastructure
// faults pass through untouched.
func renderCallFailure(err error) error {
	var callErr *dispatch.CallError
	if errors.As(err, &callErr) {
		var details any
		if len(callErr.Fields) > 0 {
			details = map[string]any{"fields": callErr.Fields}
		}
		outputError(callErr.Code, callErr.Message, details, callErr.Suggestion)
		return errHandled
	}
	return handleError(ErrInternal, err, "")
}

// resultMeta adds a count for list results.
func resultMeta(result any) *Meta {
	v := reflect.ValueOf(result)
	if v.Kind() == reflect.Slice {
		return &Meta{Count: v.Len()}
	}
	return nil
}

// todoistClient builds the configured Todoist client, or nil when no token
// is set.
func todoistClient() *todoist.Client {
	c := getConfig()
	if c == nil || c.Todoist.Token == "" {
		return nil
	}
	client := todoist.NewClient(c.Todoist.Token)
	if c.Todoist.BaseURL != "" {
		client.BaseURL = c.Todoist.BaseURL
	}
	return client
}
