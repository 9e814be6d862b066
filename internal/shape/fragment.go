// Package shape turns registry fields into SHACL property-shape fragments
// and assembles them into requirement profiles for export.
package shape

import (
	"fmt"

	"github.com/foerderfunke/shaclgen/internal/registry"
)

// IncompleteConstraintError reports an attempt to build a property shape
// from a descriptive-only field. Callers are expected to filter such fields
// before building, so hitting this error indicates a defect upstream.
type IncompleteConstraintError struct {
	Field string
}

func (e *IncompleteConstraintError) Error() string {
	return fmt.Sprintf("field %q has an empty constraints record and carries no shape", e.Field)
}

// Fragment is one SHACL property shape derived from a single field. Either
// Datatype or In is set, never both; MaxCount zero means unbounded.
type Fragment struct {
	FieldName        string
	Path             string
	TargetSubjectsOf string
	TargetObjectsOf  string
	Datatype         string
	In               []registry.AllowedValue
	MaxCount         int
	Description      string
}

// IsEnumerated reports whether the fragment constrains values to a fixed
// set rather than a datatype.
func (f Fragment) IsEnumerated() bool {
	return len(f.In) > 0
}

// BuildPropertyShape derives the property-shape fragment for a constrained
// field. Unconstrained fields are rejected with IncompleteConstraintError.
func BuildPropertyShape(f registry.Field) (Fragment, error) {
	if !f.IsConstrained() {
		return Fragment{}, &IncompleteConstraintError{Field: f.Name}
	}

	frag := Fragment{
		FieldName:        f.Name,
		Path:             f.Path,
		TargetSubjectsOf: f.Constraint.TargetSubjectsOf,
		TargetObjectsOf:  f.Constraint.TargetObjectsOf,
		MaxCount:         f.Constraint.MaxCount,
		Description:      f.Description,
	}

	switch f.Constraint.Kind {
	case registry.KindEnumerated:
		frag.In = append(frag.In, f.Constraint.Values...)
	case registry.KindScalar:
		frag.Datatype = f.Constraint.Datatype.String()
	}
	return frag, nil
}

// BuildAll derives fragments for every constrained field in the catalogue,
// in declaration order. Unconstrained fields are skipped, not errors.
func BuildAll(reg *registry.Registry) []Fragment {
	var out []Fragment
	for _, f := range reg.Fields() {
		if !f.IsConstrained() {
			continue
		}
		frag, err := BuildPropertyShape(f)
		if err != nil {
			continue
		}
		out = append(out, frag)
	}
	return out
}
