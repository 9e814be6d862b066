package registry

import (
	"fmt"
	"strings"
)

// MalformedRegistryError reports schema violations detected while loading a
// registry source. All problems are collected before the load fails, so a
// broken catalogue surfaces every defect at once.
type MalformedRegistryError struct {
	Problems []string
}

// Error implements the error interface.
func (e *MalformedRegistryError) Error() string {
	switch len(e.Problems) {
	case 0:
		return "malformed registry"
	case 1:
		return "malformed registry: " + e.Problems[0]
	default:
		return fmt.Sprintf("malformed registry (%d problems):\n  %s",
			len(e.Problems), strings.Join(e.Problems, "\n  "))
	}
}

// UnknownFieldError reports a lookup for a field name absent from the
// registry.
type UnknownFieldError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field: %q", e.Name)
}

// UnknownValueError reports a value id that is not among a field's allowed
// values.
type UnknownValueError struct {
	Field   string
	ValueID string
}

// Error implements the error interface.
func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("field %q has no allowed value %q", e.Field, e.ValueID)
}

// ValidationError reports a candidate value that does not satisfy a field's
// constraint. It is recoverable: callers surface it to the user or the
// assistant for correction, never coerce silently.
type ValidationError struct {
	Field     string
	Candidate string
	Reason    string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for field %q: %s", e.Candidate, e.Field, e.Reason)
}
