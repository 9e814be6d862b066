package registry

import "strings"

// FindMatching looks up a field for a free-text term, the way the mapping
// workflow resolves assistant suggestions that are not exact field names.
// Exact matches on name or synonym win over partial matches on name,
// synonyms, or example labels. Matching is case-insensitive. Returns false
// when nothing matches.
func (r *Registry) FindMatching(term string) (Field, bool) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return Field{}, false
	}

	// Exact name or synonym.
	for _, name := range r.order {
		f := r.fields[name]
		if strings.ToLower(f.Name) == needle {
			return f, true
		}
		for _, syn := range f.Synonyms {
			if strings.ToLower(syn) == needle {
				return f, true
			}
		}
	}

	// Partial matches, in declaration order so results are deterministic.
	for _, name := range r.order {
		f := r.fields[name]
		if strings.Contains(strings.ToLower(f.Name), needle) {
			return f, true
		}
		for _, syn := range f.Synonyms {
			if strings.Contains(strings.ToLower(syn), needle) {
				return f, true
			}
		}
		for _, ex := range f.Examples {
			if strings.Contains(strings.ToLower(ex.Label), needle) {
				return f, true
			}
		}
	}

	return Field{}, false
}
