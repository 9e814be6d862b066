package registry

import (
	"strings"

	"github.com/foerderfunke/shaclgen/internal/vocab"
)

// Suggest proposes a new field for a term the catalogue does not cover yet.
// The suggestion is a draft for the analyst to review, never added to the
// registry automatically. The datatype is guessed from common term
// patterns and defaults to string.
func Suggest(term string) Field {
	name := strings.ToLower(strings.TrimSpace(term))
	name = strings.NewReplacer(" ", "_", "-", "_").Replace(name)

	f := Field{
		Name:        name,
		Path:        vocab.PrefixFF + name,
		Datatype:    guessDatatype(term),
		Description: "Field for " + term,
	}
	if !strings.EqualFold(term, name) {
		f.Synonyms = []string{term}
	}

	st, _ := ParseScalarType(f.Datatype)
	f.Constraint = Constraint{Kind: KindScalar, Datatype: st}
	return f
}

// guessDatatype maps common term patterns to a scalar datatype token.
func guessDatatype(term string) string {
	lower := strings.ToLower(term)
	switch {
	case containsAny(lower, "age", "years", "anzahl", "amount", "income", "einkommen", "euro"):
		return vocab.XSDInteger
	case containsAny(lower, "date", "datum", "when", "seit"):
		return vocab.XSDDate
	case containsAny(lower, "is ", "has ", "can ", "ist ", "hat "):
		return vocab.XSDBoolean
	default:
		return vocab.XSDString
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
