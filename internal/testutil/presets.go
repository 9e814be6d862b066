package testutil

import (
	"testing"

	"github.com/foerderfunke/shaclgen/internal/store"
)

// buergergeldTurtle is a small but complete requirement profile used by
// the presets.
const buergergeldTurtle = `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix ff: <https://foerderfunke.org/default#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

ff:buergergeld a ff:RequirementProfile ;
    ff:hasMainPersonShape ff:buergergeldMainPersonShape .

ff:buergergeldMainPersonShape a sh:NodeShape ;
    sh:targetClass ff:Citizen ;
    sh:property [
        sh:path ff:geburtsdatum ;
        sh:datatype xsd:date ;
        sh:maxCount 1 ;
    ] .
`

// SeedGenerationContext populates the store with one shape, a feedback
// round on it, a curated example, and a guideline. Returns the shape ID.
func SeedGenerationContext(t *testing.T, db *store.DB) string {
	t.Helper()
	b := NewBuilder(t, db).
		WithShape("buergergeld",
			LegalText("§ 7 SGB II Leistungen erhalten Personen, die das 15. Lebensjahr vollendet haben."),
			Turtle(buergergeldTurtle),
			Description("Buergergeld eligibility")).
		WithFeedback("buergergeld",
			"geburtsdatum should be limited to one value",
			buergergeldTurtle).
		WithExample(
			"§ 1 WoGG Wohngeld dient der wirtschaftlichen Sicherung angemessenen Wohnens.",
			buergergeldTurtle,
			"minimal single-property profile").
		WithGuideline("Always set sh:maxCount 1 on date fields.")
	b.Build()
	return b.ShapeID("buergergeld")
}

// SeedInstances populates the store with two subject instances, one of
// them multi-valued.
func SeedInstances(t *testing.T, db *store.DB) {
	t.Helper()
	NewBuilder(t, db).
		WithInstance("maria", map[string][]string{
			"geburtsdatum":        {"1990-05-17"},
			"staatsbuergerschaft": {"staatsbuergerschaft-ao-ger", "staatsbuergerschaft-ao-eu"},
		}).
		WithInstance("jonas", map[string][]string{
			"geburtsdatum": {"2001-11-02"},
		}).
		Build()
}
