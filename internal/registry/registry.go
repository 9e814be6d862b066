// Package registry implements the data-field catalogue: the controlled
// vocabulary against which legal-text fragments are mapped to SHACL
// property shapes.
//
// A Registry is loaded once from its YAML source, validated, and immutable
// thereafter. Callers receive it by explicit reference; there is no
// process-wide singleton. Concurrent readers need no coordination. Live
// reloading is supported through Handle, which swaps whole registry
// snapshots atomically.
//
// Accepted wire formats for scalar assignments are fixed here: dates are
// ISO-8601 calendar dates (2006-01-02), booleans are exactly "true" or
// "false", integers are optionally signed base-10 literals fitting int64.
package registry

import (
	"fmt"
	"strconv"
	"time"
)

// Registry is the immutable, validated field catalogue, queryable by field
// name. Construct one with Load, LoadFile, or New.
type Registry struct {
	fields map[string]Field
	order  []string
}

// New builds a registry from already-constructed fields, applying the same
// semantic validation as Load. It exists so tests and tools can assemble
// synthetic catalogues without a YAML source.
func New(fields []Field) (*Registry, error) {
	v := newValidator()
	for _, f := range fields {
		v.checkField(f)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	r := &Registry{fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		if _, dup := r.fields[f.Name]; dup {
			return nil, &MalformedRegistryError{
				Problems: []string{fmt.Sprintf("duplicate field name %q", f.Name)},
			}
		}
		r.fields[f.Name] = f
		r.order = append(r.order, f.Name)
	}
	return r, nil
}

// Len returns the number of fields in the catalogue.
func (r *Registry) Len() int {
	return len(r.fields)
}

// Names returns all field names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Fields returns all fields in declaration order.
func (r *Registry) Fields() []Field {
	out := make([]Field, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.fields[name])
	}
	return out
}

// Get returns the field registered under name, or UnknownFieldError.
func (r *Registry) Get(name string) (Field, error) {
	f, ok := r.fields[name]
	if !ok {
		return Field{}, &UnknownFieldError{Name: name}
	}
	return f, nil
}

// Has reports whether a field is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// AllValueIDs returns the allowed-value ids of an enumerated field in
// declaration order. Non-enumerated fields yield an empty sequence.
func (r *Registry) AllValueIDs(name string) ([]string, error) {
	f, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return f.ValueIDs(), nil
}

// ResolveValueLabel returns the display label for one of a field's allowed
// value ids. Resolution operates on ids only; labels are never matched, so
// locale differences cannot change the outcome.
func (r *Registry) ResolveValueLabel(name, valueID string) (string, error) {
	f, err := r.Get(name)
	if err != nil {
		return "", err
	}
	for _, v := range f.Constraint.Values {
		if v.ID == valueID {
			return v.Label, nil
		}
	}
	return "", &UnknownValueError{Field: name, ValueID: valueID}
}

// ValidateAssignment checks a prospective value against the named field's
// constraint. Enumerated fields require an allowed id; scalar fields
// require a lexically valid literal for the declared datatype;
// unconstrained fields accept anything.
func (r *Registry) ValidateAssignment(name, candidate string) error {
	f, err := r.Get(name)
	if err != nil {
		return err
	}

	switch f.Constraint.Kind {
	case KindNone:
		return nil
	case KindEnumerated:
		for _, v := range f.Constraint.Values {
			if v.ID == candidate {
				return nil
			}
		}
		return &ValidationError{
			Field:     name,
			Candidate: candidate,
			Reason:    "not among the allowed value ids",
		}
	case KindScalar:
		return validateScalar(name, candidate, f.Constraint.Datatype)
	default:
		return &ValidationError{
			Field:     name,
			Candidate: candidate,
			Reason:    fmt.Sprintf("unsupported constraint kind %d", f.Constraint.Kind),
		}
	}
}

// validateScalar checks the lexical form of a scalar literal.
func validateScalar(field, candidate string, st ScalarType) error {
	switch st {
	case ScalarString:
		return nil
	case ScalarBoolean:
		if candidate == "true" || candidate == "false" {
			return nil
		}
		return &ValidationError{
			Field:     field,
			Candidate: candidate,
			Reason:    `not a boolean literal (accepted tokens: "true", "false")`,
		}
	case ScalarInteger:
		if _, err := strconv.ParseInt(candidate, 10, 64); err != nil {
			return &ValidationError{
				Field:     field,
				Candidate: candidate,
				Reason:    "not a base-10 integer literal",
			}
		}
		return nil
	case ScalarDate:
		// time.Parse rejects impossible calendar dates such as 2024-02-30.
		if _, err := time.Parse("2006-01-02", candidate); err != nil {
			return &ValidationError{
				Field:     field,
				Candidate: candidate,
				Reason:    "not an ISO-8601 calendar date (YYYY-MM-DD)",
			}
		}
		return nil
	default:
		return &ValidationError{
			Field:     field,
			Candidate: candidate,
			Reason:    fmt.Sprintf("unsupported scalar type %d", st),
		}
	}
}
