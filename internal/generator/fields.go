package generator

import (
	"regexp"
	"strings"

	"github.com/foerderfunke/shaclgen/internal/registry"
	"github.com/foerderfunke/shaclgen/internal/vocab"
)

var (
	pathRe        = regexp.MustCompile(`sh:path\s+ff:(\w+)`)
	datatypeRe    = regexp.MustCompile(`sh:datatype\s+xsd:(\w+)`)
	descriptionRe = regexp.MustCompile(`sh:description\s+"((?:[^"\\]|\\.)*)"`)
)

// SuggestedFields extracts property paths from generated Turtle that the
// catalogue does not know yet. Each one becomes a draft Field for the
// analyst to review; nothing is added to the registry automatically.
func SuggestedFields(turtle string, reg *registry.Registry) []registry.Field {
	matches := pathRe.FindAllStringSubmatchIndex(turtle, -1)
	if len(matches) == 0 {
		return nil
	}

	var fields []registry.Field
	seen := map[string]bool{}

	for i, m := range matches {
		name := turtle[m[2]:m[3]]
		if seen[name] || (reg != nil && reg.Has(name)) {
			continue
		}

		// The property block runs from this sh:path to the next one.
		end := len(turtle)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		block := turtle[m[0]:end]

		datatype := vocab.XSDString
		if dm := datatypeRe.FindStringSubmatch(block); dm != nil {
			datatype = vocab.PrefixXSD + dm[1]
		}
		description := "Field for " + name
		if dm := descriptionRe.FindStringSubmatch(block); dm != nil {
			description = strings.ReplaceAll(dm[1], `\"`, `"`)
		}

		field := registry.Field{
			Name:        name,
			Path:        vocab.PrefixFF + name,
			Datatype:    datatype,
			Description: description,
		}
		if st, ok := registry.ParseScalarType(datatype); ok {
			field.Constraint = registry.Constraint{Kind: registry.KindScalar, Datatype: st}
		}

		seen[name] = true
		fields = append(fields, field)
	}
	return fields
}
