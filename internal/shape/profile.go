package shape

import (
	"strings"

	"github.com/foerderfunke/shaclgen/internal/registry"
	"github.com/foerderfunke/shaclgen/internal/vocab"
)

// Profile is a complete requirement profile for one benefit: the profile
// node, its main person shape, and the property shapes constraining the
// applicant.
type Profile struct {
	// Benefit is the lowercase local name of the benefit, such as
	// "buergergeld". Profile and shape IRIs derive from it.
	Benefit     string
	Label       string
	Description string
	Fragments   []Fragment
}

// NewProfile assembles a profile for a benefit from registry fields. Field
// names outside the catalogue or without constraints are reported through
// the returned error; the profile carries the fragments that built cleanly.
func NewProfile(benefit string, reg *registry.Registry, fieldNames []string) (Profile, error) {
	p := Profile{Benefit: normalizeBenefit(benefit), Label: benefit}

	var firstErr error
	for _, name := range fieldNames {
		f, err := reg.Get(name)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		frag, err := BuildPropertyShape(f)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		p.Fragments = append(p.Fragments, frag)
	}
	return p, firstErr
}

// ProfileIRI returns the prefixed IRI of the requirement-profile node.
func (p Profile) ProfileIRI() string {
	return vocab.PrefixFF + p.Benefit
}

// MainPersonShapeIRI returns the prefixed IRI of the profile's node shape.
func (p Profile) MainPersonShapeIRI() string {
	return vocab.PrefixFF + p.Benefit + "MainPersonShape"
}

// normalizeBenefit lowercases a benefit name and strips characters that
// cannot appear in a prefixed local name.
func normalizeBenefit(benefit string) string {
	lower := strings.ToLower(strings.TrimSpace(benefit))
	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "profile"
	}
	return b.String()
}
