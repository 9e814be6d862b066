// Package instance builds citizen subject instances from field assignments,
// renders them as Turtle, and checks them against property-shape fragments.
package instance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/foerderfunke/shaclgen/internal/registry"
	"github.com/foerderfunke/shaclgen/internal/vocab"
)

// Citizen is one subject instance: an identifier plus field assignments.
// A field may carry several values, dual citizenship being the canonical
// case.
type Citizen struct {
	ID         string
	Properties map[string][]string
}

// New builds a citizen instance, validating every assignment against the
// catalogue. The identifier is normalized to a URI-safe lowercase form.
func New(id string, properties map[string][]string, reg *registry.Registry) (*Citizen, error) {
	safeID := SanitizeID(id)
	if safeID == "" {
		return nil, fmt.Errorf("instance id must not be empty")
	}

	for _, name := range sortedKeys(properties) {
		for _, value := range properties[name] {
			if err := reg.ValidateAssignment(name, value); err != nil {
				return nil, err
			}
		}
	}

	return &Citizen{ID: safeID, Properties: properties}, nil
}

// SanitizeID normalizes an instance identifier to a URI-safe form.
func SanitizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(id)
}

// Subject returns the prefixed IRI of the citizen.
func (c *Citizen) Subject() string {
	return vocab.PrefixFF + "citizen_" + c.ID
}

// Turtle renders the instance triples. Assigned fields are emitted in
// catalogue declaration order so the output is deterministic; fields the
// catalogue does not know render as string literals.
func (c *Citizen) Turtle(reg *registry.Registry) string {
	var b strings.Builder
	b.WriteString("@prefix " + vocab.PrefixFF + " <" + vocab.NamespaceFF + "> .\n")
	b.WriteString("@prefix " + vocab.PrefixXSD + " <" + vocab.NamespaceXSD + "> .\n\n")

	b.WriteString(c.Subject() + " a " + vocab.FFClassCitizen)

	emit := func(name string) {
		f, err := reg.Get(name)
		predicate := vocab.PrefixFF + name
		if err == nil && f.Path != "" {
			predicate = f.Path
		}
		for _, value := range c.Properties[name] {
			b.WriteString(" ;\n    " + predicate + " " + renderLiteral(f, value))
		}
	}

	seen := map[string]bool{}
	for _, name := range reg.Names() {
		if _, ok := c.Properties[name]; ok {
			emit(name)
			seen[name] = true
		}
	}
	// Assignments outside the catalogue, in stable order.
	for _, name := range sortedKeys(c.Properties) {
		if !seen[name] {
			emit(name)
		}
	}

	b.WriteString(" .\n")
	return b.String()
}

// renderLiteral converts a validated value to its Turtle object form based
// on the field's constraint.
func renderLiteral(f registry.Field, value string) string {
	switch f.Constraint.Kind {
	case registry.KindEnumerated:
		return vocab.PrefixFF + value
	case registry.KindScalar:
		switch f.Constraint.Datatype {
		case registry.ScalarBoolean, registry.ScalarInteger:
			return value
		case registry.ScalarDate:
			return quoteString(value) + "^^" + vocab.XSDDate
		}
	}
	return quoteString(value)
}

func quoteString(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return `"` + replacer.Replace(s) + `"`
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
