// Package schema defines the argument schemas for every callable operation
// and the registry mapping (module, function) pairs to them.
//
// The schemas validate *shape* only: types, formats, enum membership, ranges.
// Referential integrity (does role_id 7 exist?) is deliberately left to the
// database foreign keys, so a syntactically valid but dangling id fails at
// the SQL layer, not here.
package schema

import "fmt"

// FieldType is the value type of a schema field.
type FieldType string

const (
	FieldTypeString        FieldType = "string"
	FieldTypeInt           FieldType = "int"
	FieldTypeNumber        FieldType = "number"
	FieldTypeBool          FieldType = "bool"
	FieldTypeDate          FieldType = "date"
	FieldTypeDatetime      FieldType = "datetime"
	FieldTypeFraction      FieldType = "fraction"
	FieldTypeEnum          FieldType = "enum"
	FieldTypeStringArray   FieldType = "string_array"
	FieldTypeCriteriaArray FieldType = "criteria_array"
)

// FieldDef defines a single field of an object schema.
type FieldDef struct {
	Type     FieldType
	Required bool
	NonEmpty bool     // strings only: reject empty/whitespace-only values
	Enum     []string // enum type: allowed values
	Min      *float64
	Max      *float64
	Default  any // applied to omitted optional fields
}

// ObjectSchema validates a single JSON object argument field-by-field.
type ObjectSchema struct {
	Fields map[string]*FieldDef
}

// ScalarKind is the kind of a positional scalar argument.
type ScalarKind string

const (
	ScalarID   ScalarKind = "id"   // positive integer
	ScalarDate ScalarKind = "date" // YYYY-MM-DD string
)

// ScalarSchema validates the single scalar argument of a positional function.
type ScalarSchema struct {
	Kind ScalarKind
}

// ArgMode classifies how many and what shape of arguments a function expects.
type ArgMode string

const (
	// ModeNone: the function takes no arguments.
	ModeNone ArgMode = "none"
	// ModePositional: exactly one scalar argument (id or date string).
	ModePositional ArgMode = "positional"
	// ModeObject: exactly one JSON object argument.
	ModeObject ArgMode = "object"
)

// FuncSpec is a registry entry: the declared argument mode and schema for one
// callable function. Optional relaxes the arity check to allow zero-argument
// calls (the omitted argument is defaulted by the implementation).
type FuncSpec struct {
	Mode     ArgMode
	Object   *ObjectSchema
	Scalar   *ScalarSchema
	Optional bool
}

// IssueKind classifies a validation failure structurally, independent of any
// particular validation library's vocabulary.
type IssueKind string

const (
	KindMissing      IssueKind = "missing_required"
	KindTypeMismatch IssueKind = "type_mismatch"
	KindEnum         IssueKind = "enum_violation"
	KindRange        IssueKind = "range_violation"
	KindFormat       IssueKind = "format_violation"
	KindUnknownField IssueKind = "unknown_field"
)

// Issue is a single field-level validation failure.
type Issue struct {
	Path     string // dot-joined field path; "input" for root-level failures
	Kind     IssueKind
	Message  string
	WantType string   // type mismatch: expected primitive type name
	Enum     []string // enum violation: allowed values
	Min      *float64 // range violation
	Max      *float64
}

// Expected renders a human-readable expectation for the issue, derived from
// its structural kind.
func (i Issue) Expected() string {
	switch i.Kind {
	case KindMissing:
		return "required value"
	case KindTypeMismatch:
		return i.WantType
	case KindEnum:
		return "one of: " + joinComma(i.Enum)
	case KindRange:
		if i.Min != nil {
			return fmt.Sprintf("minimum %s", trimFloat(*i.Min))
		}
		if i.Max != nil {
			return fmt.Sprintf("maximum %s", trimFloat(*i.Max))
		}
		return "value in range"
	case KindFormat:
		return "valid format"
	case KindUnknownField:
		return "a known field"
	default:
		return "valid string"
	}
}

// IsMissing reports whether the issue indicates a required value was absent.
func (i Issue) IsMissing() bool {
	return i.Kind == KindMissing
}

func joinComma(values []string) string {
	out := ""
	for idx, v := range values {
		if idx > 0 {
			out += ", "
		}
		out += v
	}
	return out
}

// trimFloat formats a float without a trailing ".0" for integral values.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func floatPtr(f float64) *float64 {
	return &f
}
