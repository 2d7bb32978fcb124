package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aidahq/aida/internal/dates"
)

// ValidateObject validates a JSON-decoded object against the schema.
// On success it returns a normalized copy of the object with declared
// defaults applied to omitted optional fields. Issues are returned as data,
// never as an error: the caller formats them for self-correction.
func (s *ObjectSchema) ValidateObject(input map[string]any) (map[string]any, []Issue) {
	var issues []Issue
	normalized := make(map[string]any, len(input))

	// Required fields first so missing-field issues lead the report.
	// Sorted iteration keeps the issue order stable across runs.
	for _, name := range sortedKeys(s.Fields) {
		def := s.Fields[name]
		if !def.Required {
			continue
		}
		val, ok := input[name]
		if !ok || val == nil {
			issues = append(issues, Issue{
				Path:    name,
				Kind:    KindMissing,
				Message: "required field is missing",
			})
		}
	}

	for _, name := range sortedKeys(input) {
		value := input[name]
		def, ok := s.Fields[name]
		if !ok {
			issues = append(issues, Issue{
				Path:    name,
				Kind:    KindUnknownField,
				Message: fmt.Sprintf("unknown field '%s'", name),
			})
			continue
		}
		if value == nil {
			// Explicit null clears an optional field; required-null was
			// already reported above.
			if !def.Required {
				normalized[name] = nil
			}
			continue
		}

		coerced, fieldIssues := validateValue(name, value, def)
		if len(fieldIssues) > 0 {
			issues = append(issues, fieldIssues...)
			continue
		}
		normalized[name] = coerced
	}

	// Apply defaults for omitted optional fields.
	for name, def := range s.Fields {
		if def.Default == nil {
			continue
		}
		if _, present := normalized[name]; !present {
			if _, supplied := input[name]; !supplied {
				normalized[name] = def.Default
			}
		}
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return normalized, nil
}

// ValidateScalar validates a single positional argument.
func (s *ScalarSchema) ValidateScalar(value any) (any, []Issue) {
	switch s.Kind {
	case ScalarID:
		n, ok := asInt(value)
		if !ok {
			return nil, []Issue{{
				Path:     "input",
				Kind:     KindTypeMismatch,
				Message:  fmt.Sprintf("expected a positive integer id, got %s", typeName(value)),
				WantType: "integer",
			}}
		}
		if n < 1 {
			return nil, []Issue{{
				Path:    "input",
				Kind:    KindRange,
				Message: fmt.Sprintf("id must be a positive integer, got %d", n),
				Min:     floatPtr(1),
			}}
		}
		return n, nil

	case ScalarDate:
		str, ok := value.(string)
		if !ok {
			return nil, []Issue{{
				Path:     "input",
				Kind:     KindTypeMismatch,
				Message:  fmt.Sprintf("expected a date string, got %s", typeName(value)),
				WantType: "string",
			}}
		}
		if !dates.IsValidDate(str) {
			return nil, []Issue{{
				Path:    "input",
				Kind:    KindFormat,
				Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", str),
			}}
		}
		return str, nil
	}

	return nil, []Issue{{
		Path:    "input",
		Kind:    KindTypeMismatch,
		Message: fmt.Sprintf("unsupported scalar kind %q", s.Kind),
	}}
}

// validateValue checks one field value against its definition, returning the
// coerced value on success.
func validateValue(path string, value any, def *FieldDef) (any, []Issue) {
	switch def.Type {
	case FieldTypeString:
		str, ok := value.(string)
		if !ok {
			return nil, []Issue{typeIssue(path, value, "string")}
		}
		if def.NonEmpty && strings.TrimSpace(str) == "" {
			return nil, []Issue{{
				Path:    path,
				Kind:    KindFormat,
				Message: "must be a non-empty string",
			}}
		}
		return str, nil

	case FieldTypeInt:
		n, ok := asInt(value)
		if !ok {
			return nil, []Issue{typeIssue(path, value, "integer")}
		}
		if iss := checkRange(path, float64(n), def); iss != nil {
			return nil, []Issue{*iss}
		}
		return n, nil

	case FieldTypeNumber, FieldTypeFraction:
		f, ok := asFloat(value)
		if !ok {
			return nil, []Issue{typeIssue(path, value, "number")}
		}
		if iss := checkRange(path, f, def); iss != nil {
			return nil, []Issue{*iss}
		}
		return f, nil

	case FieldTypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, []Issue{typeIssue(path, value, "boolean")}
		}
		return b, nil

	case FieldTypeDate:
		str, ok := value.(string)
		if !ok {
			return nil, []Issue{typeIssue(path, value, "string")}
		}
		if !dates.IsValidDate(str) {
			return nil, []Issue{{
				Path:    path,
				Kind:    KindFormat,
				Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", str),
			}}
		}
		return str, nil

	case FieldTypeDatetime:
		str, ok := value.(string)
		if !ok {
			return nil, []Issue{typeIssue(path, value, "string")}
		}
		if !dates.IsValidDatetime(str) {
			return nil, []Issue{{
				Path:    path,
				Kind:    KindFormat,
				Message: fmt.Sprintf("invalid datetime %q, expected ISO 8601", str),
			}}
		}
		return str, nil

	case FieldTypeEnum:
		str, ok := value.(string)
		if !ok {
			return nil, []Issue{typeIssue(path, value, "string")}
		}
		for _, allowed := range def.Enum {
			if str == allowed {
				return str, nil
			}
		}
		return nil, []Issue{{
			Path:    path,
			Kind:    KindEnum,
			Message: fmt.Sprintf("invalid value %q", str),
			Enum:    def.Enum,
		}}

	case FieldTypeStringArray:
		arr, ok := value.([]any)
		if !ok {
			return nil, []Issue{typeIssue(path, value, "array of strings")}
		}
		out := make([]any, 0, len(arr))
		var issues []Issue
		for i, item := range arr {
			str, ok := item.(string)
			if !ok {
				issues = append(issues, typeIssue(fmt.Sprintf("%s.%d", path, i), item, "string"))
				continue
			}
			out = append(out, str)
		}
		if len(issues) > 0 {
			return nil, issues
		}
		return out, nil

	case FieldTypeCriteriaArray:
		arr, ok := value.([]any)
		if !ok {
			return nil, []Issue{typeIssue(path, value, "array of criteria objects")}
		}
		out := make([]any, 0, len(arr))
		var issues []Issue
		for i, item := range arr {
			obj, ok := item.(map[string]any)
			if !ok {
				issues = append(issues, typeIssue(fmt.Sprintf("%s.%d", path, i), item, "object"))
				continue
			}
			norm, itemIssues := validateCriterion(fmt.Sprintf("%s.%d", path, i), obj)
			if len(itemIssues) > 0 {
				issues = append(issues, itemIssues...)
				continue
			}
			out = append(out, norm)
		}
		if len(issues) > 0 {
			return nil, issues
		}
		return out, nil
	}

	return nil, []Issue{{
		Path:    path,
		Kind:    KindTypeMismatch,
		Message: fmt.Sprintf("unsupported field type %q", def.Type),
	}}
}

// validateCriterion validates one finish-criteria checklist item.
func validateCriterion(path string, obj map[string]any) (map[string]any, []Issue) {
	var issues []Issue

	criterion, ok := obj["criterion"].(string)
	if !ok || strings.TrimSpace(criterion) == "" {
		issues = append(issues, Issue{
			Path:     path + ".criterion",
			Kind:     KindTypeMismatch,
			Message:  "criterion must be a non-empty string",
			WantType: "string",
		})
	}

	done := false
	if rawDone, present := obj["done"]; present {
		b, ok := rawDone.(bool)
		if !ok {
			issues = append(issues, typeIssue(path+".done", rawDone, "boolean"))
		} else {
			done = b
		}
	}

	for _, key := range sortedKeys(obj) {
		if key != "criterion" && key != "done" {
			issues = append(issues, Issue{
				Path:    path + "." + key,
				Kind:    KindUnknownField,
				Message: fmt.Sprintf("unknown field '%s'", key),
			})
		}
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return map[string]any{"criterion": criterion, "done": done}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func typeIssue(path string, value any, want string) Issue {
	return Issue{
		Path:     path,
		Kind:     KindTypeMismatch,
		Message:  fmt.Sprintf("expected %s, got %s", want, typeName(value)),
		WantType: want,
	}
}

func checkRange(path string, f float64, def *FieldDef) *Issue {
	if def.Min != nil && f < *def.Min {
		return &Issue{
			Path:    path,
			Kind:    KindRange,
			Message: fmt.Sprintf("value %s is below minimum %s", trimFloat(f), trimFloat(*def.Min)),
			Min:     def.Min,
		}
	}
	if def.Max != nil && f > *def.Max {
		return &Issue{
			Path:    path,
			Kind:    KindRange,
			Message: fmt.Sprintf("value %s is above maximum %s", trimFloat(f), trimFloat(*def.Max)),
			Max:     def.Max,
		}
	}
	return nil
}

// asInt accepts JSON numbers that are integral. encoding/json decodes all
// numbers as float64, so 3 arrives as 3.0.
func asInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// typeName names the JSON type of a decoded value, distinguishing "array"
// from other non-object types for clearer mismatch messages.
func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
