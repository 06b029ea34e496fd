// Package schema validates untrusted tool arguments before they reach
// the scene store. Each tool declares a closed argument shape; failures
// come back as field-level issues the calling agent can act on.
package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Issue is one field-level validation failure.
type Issue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Issue codes.
const (
	CodeRequired     = "required"
	CodeType         = "type"
	CodeEnum         = "enum"
	CodeRange        = "range"
	CodeUnknownField = "unknown_field"
	CodeEmpty        = "empty"
)

// Type is the expected JSON type of a field.
type Type int

const (
	String Type = iota
	Number
	Bool
	Object
	Array
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Object:
		return "object"
	case Array:
		return "array"
	}
	return "unknown"
}

// Field describes one property of an argument object.
type Field struct {
	Type     Type
	Required bool
	Enum     []string         // for String: allowed values
	Min, Max *float64         // for Number: inclusive bounds
	Int      bool             // for Number: must be a whole number
	Fields   map[string]Field // for Object: nested shape
	Closed   bool             // for Object: reject unknown keys
	Elem     *Field           // for Array: element shape
	NonEmpty bool             // for Array: must have at least one entry
}

// ObjectShape is a top-level argument shape.
type ObjectShape struct {
	Fields map[string]Field
	Closed bool
}

// registry of per-tool argument shapes, populated in tools.go.
var registry = map[string]ObjectShape{}

// Register installs the argument shape for a tool. Called from package
// initialization only.
func Register(tool string, shape ObjectShape) {
	registry[tool] = shape
}

// Validate checks raw arguments against the registered shape for the
// tool. A nil result means the arguments are well-formed. Unregistered
// tool names validate nothing — the dispatcher rejects those earlier.
func Validate(tool string, args map[string]any) []Issue {
	shape, ok := registry[tool]
	if !ok {
		return nil
	}
	return validateObject("", args, shape.Fields, shape.Closed)
}

func validateObject(path string, obj map[string]any, fields map[string]Field, closed bool) []Issue {
	var issues []Issue

	// Deterministic order so repeated calls report identically
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f := fields[name]
		val, present := obj[name]
		fieldPath := joinPath(path, name)
		if !present || val == nil {
			if f.Required {
				issues = append(issues, Issue{
					Path:    fieldPath,
					Code:    CodeRequired,
					Message: fmt.Sprintf("%s is required", fieldPath),
				})
			}
			continue
		}
		issues = append(issues, validateValue(fieldPath, val, f)...)
	}

	if closed {
		var unknown []string
		for key := range obj {
			if _, known := fields[key]; !known {
				unknown = append(unknown, key)
			}
		}
		sort.Strings(unknown)
		for _, key := range unknown {
			issues = append(issues, Issue{
				Path:    joinPath(path, key),
				Code:    CodeUnknownField,
				Message: fmt.Sprintf("unknown field %q", key),
			})
		}
	}
	return issues
}

func validateValue(path string, val any, f Field) []Issue {
	switch f.Type {
	case String:
		s, ok := val.(string)
		if !ok {
			return []Issue{typeIssue(path, f.Type, val)}
		}
		if len(f.Enum) > 0 && !contains(f.Enum, s) {
			return []Issue{{
				Path:    path,
				Code:    CodeEnum,
				Message: fmt.Sprintf("%s must be one of: %s", path, strings.Join(f.Enum, ", ")),
			}}
		}
	case Number:
		n, ok := val.(float64)
		if !ok {
			return []Issue{typeIssue(path, f.Type, val)}
		}
		if f.Int && n != math.Trunc(n) {
			return []Issue{{
				Path:    path,
				Code:    CodeType,
				Message: fmt.Sprintf("%s must be a whole number", path),
			}}
		}
		if f.Min != nil && n < *f.Min {
			return []Issue{rangeIssue(path, f)}
		}
		if f.Max != nil && n > *f.Max {
			return []Issue{rangeIssue(path, f)}
		}
	case Bool:
		if _, ok := val.(bool); !ok {
			return []Issue{typeIssue(path, f.Type, val)}
		}
	case Object:
		obj, ok := val.(map[string]any)
		if !ok {
			return []Issue{typeIssue(path, f.Type, val)}
		}
		return validateObject(path, obj, f.Fields, f.Closed)
	case Array:
		list, ok := val.([]any)
		if !ok {
			return []Issue{typeIssue(path, f.Type, val)}
		}
		if f.NonEmpty && len(list) == 0 {
			return []Issue{{
				Path:    path,
				Code:    CodeEmpty,
				Message: fmt.Sprintf("%s must not be empty", path),
			}}
		}
		if f.Elem == nil {
			return nil
		}
		var issues []Issue
		for i, item := range list {
			issues = append(issues, validateValue(fmt.Sprintf("%s[%d]", path, i), item, *f.Elem)...)
		}
		return issues
	}
	return nil
}

func typeIssue(path string, want Type, got any) Issue {
	return Issue{
		Path:    path,
		Code:    CodeType,
		Message: fmt.Sprintf("%s must be a %s, got %T", path, want, got),
	}
}

func rangeIssue(path string, f Field) Issue {
	switch {
	case f.Min != nil && f.Max != nil:
		return Issue{Path: path, Code: CodeRange,
			Message: fmt.Sprintf("%s must be between %v and %v", path, *f.Min, *f.Max)}
	case f.Min != nil:
		return Issue{Path: path, Code: CodeRange,
			Message: fmt.Sprintf("%s must be >= %v", path, *f.Min)}
	default:
		return Issue{Path: path, Code: CodeRange,
			Message: fmt.Sprintf("%s must be <= %v", path, *f.Max)}
	}
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func bound(v float64) *float64 {
	return &v
}
