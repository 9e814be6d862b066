package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// catalogueYAML is a small but representative registry source covering an
// enumerated field, two scalar fields, and a descriptive-only field.
const catalogueYAML = `
staatsbuergerschaft:
  name: staatsbuergerschaft
  path: ff:staatsbuergerschaft
  datatype: enumerated
  description: What is the person's citizenship?
  examples:
    - "German (staatsbuergerschaft-ao-ger)"
    - "EU citizen (staatsbuergerschaft-ao-eu)"
    - "Non-EU citizen (staatsbuergerschaft-ao-3rd)"
  synonyms:
    - citizenship
    - nationality
  constraints:
    targetSubjectsOf: ff:staatsbuergerschaft
    allowed_values:
      - id: staatsbuergerschaft-ao-ger
        label: German
      - id: staatsbuergerschaft-ao-eu
        label: EU citizen
      - id: staatsbuergerschaft-ao-3rd
        label: Non-EU citizen
    maxCount: '1'
geburtsdatum:
  name: geburtsdatum
  path: ff:geburtsdatum
  datatype: xsd:date
  description: What is the person's date of birth?
  examples:
    - "1990-05-17"
  synonyms:
    - date of birth
  constraints:
    targetSubjectsOf: ff:geburtsdatum
    datatype: xsd:date
    maxCount: '1'
kinder_unter_18:
  name: kinder_unter_18
  path: ff:kinder_unter_18
  datatype: xsd:boolean
  description: Does the person have children under 18?
  examples: []
  synonyms:
    - minor children
  constraints:
    targetSubjectsOf: ff:kinder_unter_18
    datatype: xsd:boolean
    maxCount: '1'
pensionable:
  name: pensionable
  path: ff:pensionable
  datatype: xsd:boolean
  description: Derived flag, person has reached pension age.
  examples: []
  synonyms: []
  constraints: {}
`

func loadCatalogue(t *testing.T) *Registry {
	t.Helper()
	reg, err := Load(strings.NewReader(catalogueYAML))
	require.NoError(t, err)
	return reg
}

func TestLoad_PreservesDeclarationOrder(t *testing.T) {
	reg := loadCatalogue(t)

	require.Equal(t, 4, reg.Len())
	require.Equal(t,
		[]string{"staatsbuergerschaft", "geburtsdatum", "kinder_unter_18", "pensionable"},
		reg.Names())
}

func TestLoad_RoundTripIdentity(t *testing.T) {
	reg := loadCatalogue(t)

	// get(name) for every declared name returns a field whose name equals
	// the lookup key.
	for _, name := range reg.Names() {
		f, err := reg.Get(name)
		require.NoError(t, err)
		require.Equal(t, name, f.Name)
	}
}

func TestLoad_ConstraintKinds(t *testing.T) {
	reg := loadCatalogue(t)

	enum, err := reg.Get("staatsbuergerschaft")
	require.NoError(t, err)
	require.Equal(t, KindEnumerated, enum.Constraint.Kind)
	require.Equal(t, 1, enum.Constraint.MaxCount)
	require.Equal(t, "ff:staatsbuergerschaft", enum.Constraint.TargetSubjectsOf)

	date, err := reg.Get("geburtsdatum")
	require.NoError(t, err)
	require.Equal(t, KindScalar, date.Constraint.Kind)
	require.Equal(t, ScalarDate, date.Constraint.Datatype)

	derived, err := reg.Get("pensionable")
	require.NoError(t, err)
	require.Equal(t, KindNone, derived.Constraint.Kind)
	require.False(t, derived.IsConstrained())
}

func TestLoad_ParsesExamplePairs(t *testing.T) {
	reg := loadCatalogue(t)

	f, err := reg.Get("staatsbuergerschaft")
	require.NoError(t, err)
	require.Len(t, f.Examples, 3)
	require.Equal(t, Example{Label: "German", ValueID: "staatsbuergerschaft-ao-ger"}, f.Examples[0])

	// Plain examples keep an empty value id.
	date, err := reg.Get("geburtsdatum")
	require.NoError(t, err)
	require.Equal(t, Example{Label: "1990-05-17"}, date.Examples[0])
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantProblem string
	}{
		{
			name: "missing path",
			yaml: `
alter:
  name: alter
  description: age in years
`,
			wantProblem: "missing path",
		},
		{
			name: "missing name",
			yaml: `
alter:
  path: ff:alter
`,
			wantProblem: "missing name",
		},
		{
			name: "name does not match key",
			yaml: `
alter:
  name: einkommen
  path: ff:alter
`,
			wantProblem: "does not match its mapping key",
		},
		{
			name: "duplicate allowed value id",
			yaml: `
wohnsitz:
  name: wohnsitz
  path: ff:wohnsitz
  constraints:
    allowed_values:
      - id: wohnsitz-ao-de
        label: Germany
      - id: wohnsitz-ao-de
        label: Germany again
`,
			wantProblem: "duplicate allowed value id",
		},
		{
			name: "datatype and allowed_values both present",
			yaml: `
wohnsitz:
  name: wohnsitz
  path: ff:wohnsitz
  constraints:
    datatype: xsd:string
    allowed_values:
      - id: wohnsitz-ao-de
        label: Germany
`,
			wantProblem: "both datatype and allowed_values",
		},
		{
			name: "maxCount not a positive integer",
			yaml: `
alter:
  name: alter
  path: ff:alter
  constraints:
    datatype: xsd:integer
    maxCount: einmal
`,
			wantProblem: "not a positive-integer string",
		},
		{
			name: "maxCount zero",
			yaml: `
alter:
  name: alter
  path: ff:alter
  constraints:
    datatype: xsd:integer
    maxCount: '0'
`,
			wantProblem: "not a positive-integer string",
		},
		{
			name: "unsupported constraint datatype",
			yaml: `
alter:
  name: alter
  path: ff:alter
  constraints:
    datatype: xsd:duration
`,
			wantProblem: "unsupported constraint datatype",
		},
		{
			name:        "top level is not a mapping",
			yaml:        `- just\n- a\n- list`,
			wantProblem: "must be a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			require.Error(t, err)

			var malformed *MalformedRegistryError
			require.ErrorAs(t, err, &malformed)
			require.Contains(t, err.Error(), tt.wantProblem)
		})
	}
}

func TestLoad_CollectsAllProblems(t *testing.T) {
	src := `
a:
  name: a
b:
  name: b
`
	_, err := Load(strings.NewReader(src))
	require.Error(t, err)

	var malformed *MalformedRegistryError
	require.ErrorAs(t, err, &malformed)
	require.Len(t, malformed.Problems, 2, "both missing paths should be reported")
}

func TestLoad_EmptyDocument(t *testing.T) {
	reg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 0, reg.Len())
}

func TestLoad_IgnoresUnknownKeys(t *testing.T) {
	src := `
alter:
  name: alter
  path: ff:alter
  category: personal
  constraints:
    datatype: xsd:integer
    minCount: '1'
`
	reg, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	f, err := reg.Get("alter")
	require.NoError(t, err)
	require.Equal(t, KindScalar, f.Constraint.Kind)
	require.Equal(t, ScalarInteger, f.Constraint.Datatype)
}
