package shape

import (
	"fmt"
	"io"
	"strings"

	"github.com/foerderfunke/shaclgen/internal/vocab"
)

// Serialize writes a profile as Turtle. Output is deterministic: the prefix
// block first, then the profile triples, then the main person shape with
// its property shapes in fragment order.
func Serialize(w io.Writer, p Profile) error {
	var b strings.Builder

	writePrefixes(&b)

	b.WriteString(p.ProfileIRI() + " a " + vocab.FFClassRequirementProfile + " ;\n")
	if p.Label != "" {
		b.WriteString("    rdfs:label " + turtleString(p.Label) + " ;\n")
	}
	if p.Description != "" {
		b.WriteString("    rdfs:comment " + turtleString(p.Description) + " ;\n")
	}
	b.WriteString("    " + vocab.FFPropHasMainPersonShape + " " + p.MainPersonShapeIRI() + " .\n\n")

	b.WriteString(p.MainPersonShapeIRI() + " a " + vocab.SHClassNodeShape + ", " + vocab.FFClassEligibilityConstraint + " ;\n")
	b.WriteString("    " + vocab.SHPropTargetClass + " " + vocab.FFClassCitizen)
	for _, frag := range p.Fragments {
		b.WriteString(" ;\n")
		writePropertyBlock(&b, frag)
	}
	b.WriteString(" .\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// SerializeFragment writes a single fragment as a standalone node shape,
// the form the field preview shows. Target declarations from the field's
// constraints are carried onto the shape.
func SerializeFragment(w io.Writer, frag Fragment) error {
	var b strings.Builder

	writePrefixes(&b)

	b.WriteString(vocab.PrefixFF + frag.FieldName + "Shape a " + vocab.SHClassNodeShape)
	if frag.TargetSubjectsOf != "" {
		b.WriteString(" ;\n    " + vocab.SHPropTargetSubjects + " " + frag.TargetSubjectsOf)
	}
	if frag.TargetObjectsOf != "" {
		b.WriteString(" ;\n    " + vocab.SHPropTargetObjects + " " + frag.TargetObjectsOf)
	}
	b.WriteString(" ;\n")
	writePropertyBlock(&b, frag)
	b.WriteString(" .\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writePrefixes(b *strings.Builder) {
	for _, binding := range vocab.Prefixes() {
		name := strings.TrimSuffix(binding.Prefix, ":")
		fmt.Fprintf(b, "@prefix %s: <%s> .\n", name, binding.Namespace)
	}
	b.WriteString("\n")
}

func writePropertyBlock(b *strings.Builder, frag Fragment) {
	b.WriteString("    " + vocab.SHPropProperty + " [\n")
	b.WriteString("        " + vocab.SHPropPath + " " + frag.Path + " ;\n")

	if frag.IsEnumerated() {
		ids := make([]string, len(frag.In))
		for i, v := range frag.In {
			ids[i] = vocab.PrefixFF + v.ID
		}
		b.WriteString("        " + vocab.SHPropIn + " (" + strings.Join(ids, " ") + ") ;\n")
	} else if frag.Datatype != "" {
		b.WriteString("        " + vocab.SHPropDatatype + " " + frag.Datatype + " ;\n")
	}

	if frag.MaxCount > 0 {
		fmt.Fprintf(b, "        %s %d ;\n", vocab.SHPropMaxCount, frag.MaxCount)
	}
	if frag.Description != "" {
		b.WriteString("        " + vocab.SHPropDescription + " " + turtleString(frag.Description) + " ;\n")
	}
	b.WriteString("    ]")
}

// turtleString quotes a literal for Turtle output.
func turtleString(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return `"` + replacer.Replace(s) + `"`
}
