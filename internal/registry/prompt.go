package registry

import (
	"strconv"
	"strings"
)

// PromptFormat renders the catalogue in the plain-text layout the assistant
// prompt embeds, one block per field in declaration order.
func (r *Registry) PromptFormat() string {
	var b strings.Builder
	b.WriteString("Available data fields:")

	for _, name := range r.order {
		f := r.fields[name]
		b.WriteString("\n\nField: " + f.Name)
		b.WriteString("\nPath: " + f.Path)
		b.WriteString("\nType: " + f.Datatype)
		b.WriteString("\nDescription: " + f.Description)

		if len(f.Examples) > 0 {
			labels := make([]string, len(f.Examples))
			for i, ex := range f.Examples {
				labels[i] = encodeExample(ex)
			}
			b.WriteString("\nExamples: " + strings.Join(labels, ", "))
		}
		if len(f.Synonyms) > 0 {
			b.WriteString("\nAlso known as: " + strings.Join(f.Synonyms, ", "))
		}

		switch f.Constraint.Kind {
		case KindEnumerated:
			b.WriteString("\nAllowed values: " + strings.Join(f.ValueIDs(), ", "))
		case KindScalar:
			b.WriteString("\nConstraint datatype: " + f.Constraint.Datatype.String())
		}
		if f.Constraint.MaxCount > 0 {
			b.WriteString("\nMax count: " + strconv.Itoa(f.Constraint.MaxCount))
		}
	}

	return b.String()
}
