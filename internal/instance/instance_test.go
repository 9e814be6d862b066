package instance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foerderfunke/shaclgen/internal/registry"
)

func testCatalogue(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New([]registry.Field{
		{
			Name:        "staatsbuergerschaft",
			Path:        "ff:staatsbuergerschaft",
			Datatype:    "xsd:string",
			Description: "Citizenship",
			Constraint: registry.Constraint{
				Kind: registry.KindEnumerated,
				Values: []registry.AllowedValue{
					{ID: "staatsbuergerschaft-ao-ger", Label: "German"},
					{ID: "staatsbuergerschaft-ao-eu", Label: "EU citizen"},
					{ID: "staatsbuergerschaft-ao-3rd", Label: "Third country"},
				},
				MaxCount: 1,
			},
		},
		{
			Name:        "geburtsdatum",
			Path:        "ff:geburtsdatum",
			Datatype:    "xsd:date",
			Description: "Date of birth",
			Constraint:  registry.Constraint{Kind: registry.KindScalar, Datatype: registry.ScalarDate},
		},
		{
			Name:        "kinder_unter_18",
			Path:        "ff:kinder_unter_18",
			Datatype:    "xsd:boolean",
			Description: "Has children under 18",
			Constraint:  registry.Constraint{Kind: registry.KindScalar, Datatype: registry.ScalarBoolean},
		},
	})
	require.NoError(t, err)
	return reg
}

func TestNew_ValidatesAssignments(t *testing.T) {
	reg := testCatalogue(t)

	citizen, err := New("Max Muster-1", map[string][]string{
		"staatsbuergerschaft": {"staatsbuergerschaft-ao-ger"},
		"geburtsdatum":        {"1990-05-17"},
	}, reg)
	require.NoError(t, err)
	require.Equal(t, "max_muster_1", citizen.ID)
	require.Equal(t, "ff:citizen_max_muster_1", citizen.Subject())
}

func TestNew_RejectsUnknownField(t *testing.T) {
	_, err := New("a", map[string][]string{"schuhgroesse": {"42"}}, testCatalogue(t))

	var unknown *registry.UnknownFieldError
	require.ErrorAs(t, err, &unknown)
}

func TestNew_RejectsInvalidValue(t *testing.T) {
	reg := testCatalogue(t)

	_, err := New("a", map[string][]string{"geburtsdatum": {"2024-02-30"}}, reg)
	var invalid *registry.ValidationError
	require.ErrorAs(t, err, &invalid)

	_, err = New("a", map[string][]string{"staatsbuergerschaft": {"German"}}, reg)
	require.ErrorAs(t, err, &invalid)
}

func TestNew_RejectsEmptyID(t *testing.T) {
	_, err := New("   ", nil, testCatalogue(t))
	require.Error(t, err)
}

func TestTurtle_DeterministicOrderAndLiterals(t *testing.T) {
	reg := testCatalogue(t)

	citizen, err := New("anna", map[string][]string{
		"kinder_unter_18":     {"true"},
		"geburtsdatum":        {"1990-05-17"},
		"staatsbuergerschaft": {"staatsbuergerschaft-ao-eu"},
	}, reg)
	require.NoError(t, err)

	turtle := citizen.Turtle(reg)

	require.True(t, strings.HasPrefix(turtle, "@prefix ff: <https://foerderfunke.org/default#> .\n"))
	require.Contains(t, turtle, "ff:citizen_anna a ff:Citizen")
	require.Contains(t, turtle, "ff:staatsbuergerschaft ff:staatsbuergerschaft-ao-eu")
	require.Contains(t, turtle, `ff:geburtsdatum "1990-05-17"^^xsd:date`)
	require.Contains(t, turtle, "ff:kinder_unter_18 true")
	require.True(t, strings.HasSuffix(turtle, " .\n"))

	// Catalogue declaration order, not map iteration order.
	require.Less(t,
		strings.Index(turtle, "ff:staatsbuergerschaft"),
		strings.Index(turtle, "ff:geburtsdatum"),
	)
	require.Less(t,
		strings.Index(turtle, "ff:geburtsdatum"),
		strings.Index(turtle, "ff:kinder_unter_18"),
	)

	require.Equal(t, turtle, citizen.Turtle(reg))
}

func TestTurtle_MultiValuedField(t *testing.T) {
	reg := testCatalogue(t)

	citizen, err := New("dual", map[string][]string{
		"staatsbuergerschaft": {"staatsbuergerschaft-ao-ger", "staatsbuergerschaft-ao-eu"},
	}, reg)
	require.NoError(t, err)

	turtle := citizen.Turtle(reg)
	require.Equal(t, 2, strings.Count(turtle, "ff:staatsbuergerschaft ff:staatsbuergerschaft-ao-"))
}

func TestSanitizeID(t *testing.T) {
	require.Equal(t, "max_muster", SanitizeID("Max Muster"))
	require.Equal(t, "a_b_c", SanitizeID("a-b c"))
	require.Equal(t, "plain", SanitizeID("plain"))
}
