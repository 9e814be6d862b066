package registry

import (
	"strings"

	"github.com/foerderfunke/shaclgen/internal/vocab"
)

// AllowedValue is one permitted discrete answer for an enumerated field,
// identified by a unique id and a human-readable label.
type AllowedValue struct {
	ID    string
	Label string
}

// Example is one example answer shown to the user. ValueID is set when the
// source encoded the example as "Label (value-id)"; plain examples carry
// only a label.
type Example struct {
	Label   string
	ValueID string
}

// ScalarType enumerates the scalar datatypes a field constraint may declare.
type ScalarType int

const (
	ScalarString ScalarType = iota
	ScalarBoolean
	ScalarInteger
	ScalarDate
)

// String returns the prefixed XSD name for the scalar type.
func (s ScalarType) String() string {
	switch s {
	case ScalarBoolean:
		return vocab.XSDBoolean
	case ScalarInteger:
		return vocab.XSDInteger
	case ScalarDate:
		return vocab.XSDDate
	default:
		return vocab.XSDString
	}
}

// ParseScalarType maps a datatype token ("date", "xsd:date", ...) to its
// ScalarType. Returns false for tokens outside the supported set.
func ParseScalarType(token string) (ScalarType, bool) {
	switch strings.TrimPrefix(token, "xsd:") {
	case "string":
		return ScalarString, true
	case "boolean":
		return ScalarBoolean, true
	case "integer":
		return ScalarInteger, true
	case "date":
		return ScalarDate, true
	default:
		return ScalarString, false
	}
}

// ConstraintKind tags the constraint variant selected at load time.
// A field is scalar-typed, enumerated, or unconstrained; never a mix.
type ConstraintKind int

const (
	// KindNone marks a purely descriptive field (empty constraints
	// record). Such fields validate trivially and produce no shape.
	KindNone ConstraintKind = iota
	// KindScalar marks a free-typed field with a declared datatype.
	KindScalar
	// KindEnumerated marks a field restricted to a fixed value set.
	KindEnumerated
)

// String returns the string representation of the constraint kind.
func (k ConstraintKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindEnumerated:
		return "enumerated"
	default:
		return "unconstrained"
	}
}

// Constraint is the validated constraint record of a field. The Kind tag
// determines which members are meaningful: Scalar carries Datatype,
// Enumerated carries Values. Targets and MaxCount may accompany either.
type Constraint struct {
	Kind             ConstraintKind
	TargetSubjectsOf string
	TargetObjectsOf  string
	Datatype         ScalarType     // valid when Kind == KindScalar
	Values           []AllowedValue // valid when Kind == KindEnumerated
	MaxCount         int            // 0 means unbounded
}

// Field is one semantic question/attribute in the catalogue, corresponding
// to one RDF predicate.
type Field struct {
	Name        string
	Path        string
	Datatype    string // datatype token as written in the source document
	Description string
	Examples    []Example
	Synonyms    []string
	Constraint  Constraint
}

// IsConstrained reports whether the field carries a shape-relevant
// constraint. Unconstrained fields are descriptive only.
func (f Field) IsConstrained() bool {
	return f.Constraint.Kind != KindNone
}

// IsEnumerated reports whether the field is restricted to a fixed value set.
func (f Field) IsEnumerated() bool {
	return f.Constraint.Kind == KindEnumerated
}

// ValueIDs returns the ids of the field's allowed values in declaration
// order, or nil when the field is not enumerated.
func (f Field) ValueIDs() []string {
	if !f.IsEnumerated() {
		return nil
	}
	ids := make([]string, len(f.Constraint.Values))
	for i, v := range f.Constraint.Values {
		ids[i] = v.ID
	}
	return ids
}

// parseExample splits a source example string into its label and optional
// trailing parenthesized value id: "German (staatsbuergerschaft-ao-ger)"
// becomes {Label: "German", ValueID: "staatsbuergerschaft-ao-ger"}.
func parseExample(raw string) Example {
	raw = strings.TrimSpace(raw)
	if !strings.HasSuffix(raw, ")") {
		return Example{Label: raw}
	}
	open := strings.LastIndex(raw, "(")
	if open <= 0 {
		return Example{Label: raw}
	}
	id := strings.TrimSpace(raw[open+1 : len(raw)-1])
	label := strings.TrimSpace(raw[:open])
	if id == "" || label == "" {
		return Example{Label: raw}
	}
	return Example{Label: label, ValueID: id}
}

// encodeExample is the inverse of parseExample, reproducing the source
// encoding for round-trips.
func encodeExample(ex Example) string {
	if ex.ValueID == "" {
		return ex.Label
	}
	return ex.Label + " (" + ex.ValueID + ")"
}
