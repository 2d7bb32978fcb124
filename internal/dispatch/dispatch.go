// Package dispatch resolves (module, function) calls against the schema
// registry, validates their arguments, and invokes the bound query function.
//
// Resolution and validation run before any database work, so a mistyped call
// never opens a write transaction. All argument failures come back as
// *CallError values with field-level detail; only infrastructure faults (a
// broken database, an unreachable API) surface as plain errors.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aidahq/aida/internal/schema"
	"github.com/aidahq/aida/internal/store"
	"github.com/aidahq/aida/internal/todoist"
)

// Env carries everything an invocation may touch.
type Env struct {
	Store    *store.Store
	Todoist  *todoist.Client
	Registry schema.Registry
	Log      zerolog.Logger
}

// Call validates and executes one operation. rawArgs is the JSON-decoded
// argument list from the command line.
func Call(ctx context.Context, env *Env, module, function string, rawArgs []any) (any, error) {
	funcs, ok := env.Registry[module]
	if !ok {
		return nil, &CallError{
			Code:    CodeUnknownModule,
			Message: fmt.Sprintf("unknown module %q", module),
			Suggestion: fmt.Sprintf("Available modules: %s.",
				strings.Join(env.Registry.Modules(), ", ")),
		}
	}
	spec, ok := funcs[function]
	if !ok {
		return nil, &CallError{
			Code:    CodeUnknownFunction,
			Message: fmt.Sprintf("unknown function %q in module %q", function, module),
			Suggestion: fmt.Sprintf("Available functions in %s: %s.",
				module, strings.Join(env.Registry.Functions(module), ", ")),
		}
	}

	args, callErr := checkArgs(module, function, spec, rawArgs)
	if callErr != nil {
		return nil, callErr
	}

	env.Log.Debug().
		Str("module", module).
		Str("function", function).
		Int("args", len(args)).
		Msg("dispatching call")

	result, err := invoke(ctx, env, module, function, args)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, &CallError{
				Code:       CodeNotFound,
				Message:    err.Error(),
				Suggestion: "Check the id; the entity may have been deleted.",
			}
		}
		return nil, err
	}
	return result, nil
}

// checkArgs enforces the declared arity and validates the single argument.
// It returns the normalized argument list: empty for no-argument functions,
// one element otherwise.
func checkArgs(module, function string, spec *schema.FuncSpec, rawArgs []any) ([]any, *CallError) {
	arityErr := func(message, suggestion string) *CallError {
		return &CallError{
			Code:       CodeInvalidArguments,
			Message:    fmt.Sprintf("%s.%s: %s", module, function, message),
			Suggestion: suggestion,
		}
	}

	switch spec.Mode {
	case schema.ModeNone:
		if len(rawArgs) != 0 {
			return nil, arityErr(
				fmt.Sprintf("takes no arguments, got %d", len(rawArgs)),
				"Call this function without arguments.")
		}
		return nil, nil

	case schema.ModePositional:
		if len(rawArgs) == 0 {
			if spec.Optional {
				return []any{nil}, nil
			}
			return nil, arityErr("missing required argument",
				"Pass exactly one argument.")
		}
		if len(rawArgs) > 1 {
			return nil, arityErr(
				fmt.Sprintf("takes one argument, got %d", len(rawArgs)),
				"Pass exactly one argument.")
		}
		value, issues := spec.Scalar.ValidateScalar(rawArgs[0])
		if len(issues) > 0 {
			return nil, newArgumentError(module, function, rawArgs[0], issues)
		}
		return []any{value}, nil

	case schema.ModeObject:
		if len(rawArgs) == 0 {
			if spec.Optional {
				rawArgs = []any{map[string]any{}}
			} else {
				return nil, arityErr("missing required argument",
					"Pass a single JSON object argument.")
			}
		}
		if len(rawArgs) > 1 {
			return nil, arityErr(
				fmt.Sprintf("takes one argument, got %d", len(rawArgs)),
				"Pass a single JSON object argument.")
		}
		obj, ok := rawArgs[0].(map[string]any)
		if !ok {
			if _, isArray := rawArgs[0].([]any); isArray {
				return nil, arityErr("expected a JSON object, got an array",
					"Pass a single JSON object, not an array.")
			}
			return nil, arityErr(
				fmt.Sprintf("expected a JSON object, got %s", jsonTypeName(rawArgs[0])),
				"Pass a single JSON object argument.")
		}
		normalized, issues := spec.Object.ValidateObject(obj)
		if len(issues) > 0 {
			return nil, newArgumentError(module, function, obj, issues)
		}
		return []any{normalized}, nil
	}

	return nil, arityErr(fmt.Sprintf("unsupported argument mode %q", spec.Mode), "")
}

func jsonTypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
