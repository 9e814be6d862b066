package shape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foerderfunke/shaclgen/internal/registry"
)

func buergergeldProfile(t *testing.T) Profile {
	t.Helper()
	reg, err := registry.New([]registry.Field{enumeratedField(), scalarField()})
	require.NoError(t, err)

	p, err := NewProfile("Buergergeld", reg, []string{"staatsbuergerschaft", "geburtsdatum"})
	require.NoError(t, err)
	return p
}

func TestNewProfile(t *testing.T) {
	p := buergergeldProfile(t)

	require.Equal(t, "buergergeld", p.Benefit)
	require.Equal(t, "ff:buergergeld", p.ProfileIRI())
	require.Equal(t, "ff:buergergeldMainPersonShape", p.MainPersonShapeIRI())
	require.Len(t, p.Fragments, 2)
}

func TestNewProfile_ReportsUnknownField(t *testing.T) {
	reg, err := registry.New([]registry.Field{enumeratedField()})
	require.NoError(t, err)

	p, err := NewProfile("buergergeld", reg, []string{"staatsbuergerschaft", "no_such_field"})
	var unknown *registry.UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	// The clean fragment still builds.
	require.Len(t, p.Fragments, 1)
}

func TestNewProfile_ReportsUnconstrainedField(t *testing.T) {
	reg, err := registry.New([]registry.Field{descriptiveField()})
	require.NoError(t, err)

	_, err = NewProfile("buergergeld", reg, []string{"pensionable"})
	var incomplete *IncompleteConstraintError
	require.ErrorAs(t, err, &incomplete)
}

func TestSerialize(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, Serialize(&buf, buergergeldProfile(t)))
	out := buf.String()

	require.Contains(t, out, "@prefix ff: <https://foerderfunke.org/default#> .")
	require.Contains(t, out, "@prefix sh: <http://www.w3.org/ns/shacl#> .")
	require.Contains(t, out, "@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .")

	require.Contains(t, out, "ff:buergergeld a ff:RequirementProfile ;")
	require.Contains(t, out, "ff:hasMainPersonShape ff:buergergeldMainPersonShape .")
	require.Contains(t, out, "ff:buergergeldMainPersonShape a sh:NodeShape, ff:EligibilityConstraint ;")
	require.Contains(t, out, "sh:targetClass ff:Citizen")

	require.Contains(t, out, "sh:path ff:staatsbuergerschaft ;")
	require.Contains(t, out, "sh:in (ff:staatsbuergerschaft-ao-ger ff:staatsbuergerschaft-ao-eu) ;")
	require.Contains(t, out, "sh:path ff:geburtsdatum ;")
	require.Contains(t, out, "sh:datatype xsd:date ;")
	require.Contains(t, out, "sh:maxCount 1 ;")
	require.Contains(t, out, `sh:description "What is the person's date of birth?" ;`)
}

func TestSerialize_Deterministic(t *testing.T) {
	p := buergergeldProfile(t)

	var first, second strings.Builder
	require.NoError(t, Serialize(&first, p))
	require.NoError(t, Serialize(&second, p))
	require.Equal(t, first.String(), second.String())
}

func TestSerializeFragment(t *testing.T) {
	frag, err := BuildPropertyShape(enumeratedField())
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, SerializeFragment(&buf, frag))
	out := buf.String()

	require.Contains(t, out, "ff:staatsbuergerschaftShape a sh:NodeShape ;")
	require.Contains(t, out, "sh:targetSubjectsOf ff:staatsbuergerschaft ;")
	require.Contains(t, out, "sh:in (ff:staatsbuergerschaft-ao-ger ff:staatsbuergerschaft-ao-eu) ;")
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "] ."))
}

func TestTurtleString_EscapesQuotesAndNewlines(t *testing.T) {
	require.Equal(t, `"say \"hi\"\nbye"`, turtleString("say \"hi\"\nbye"))
}
