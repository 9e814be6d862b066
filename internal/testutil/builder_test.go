package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_WithShape(t *testing.T) {
	db := NewTestDB(t)

	NewBuilder(t, db).
		WithShape("buergergeld").
		Build()

	s, err := db.ShapeRepository().FindByName("buergergeld")
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)
	require.Contains(t, s.Turtle, "@prefix sh:")
}

func TestBuilder_ShapeOptions(t *testing.T) {
	db := NewTestDB(t)

	NewBuilder(t, db).
		WithShape("wohngeld",
			LegalText("§ 1 WoGG"),
			Turtle("@prefix ff: <https://foerderfunke.org/default#> .\n"),
			Description("housing benefit")).
		Build()

	s, err := db.ShapeRepository().FindByName("wohngeld")
	require.NoError(t, err)
	require.Equal(t, "§ 1 WoGG", s.LegalText)
	require.Equal(t, "housing benefit", s.Description)
}

func TestBuilder_FeedbackResolvesShapeID(t *testing.T) {
	db := NewTestDB(t)

	b := NewBuilder(t, db).
		WithShape("buergergeld").
		WithFeedback("buergergeld", "tighten maxCount", "improved turtle")
	b.Build()

	rounds, err := db.ContextRepository().FeedbackForShape(b.ShapeID("buergergeld"))
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	require.Equal(t, "tighten maxCount", rounds[0].Feedback)
}

func TestBuilder_ExamplesGuidelinesInstances(t *testing.T) {
	db := NewTestDB(t)

	NewBuilder(t, db).
		WithExample("legal text", "turtle", "note").
		WithGuideline("keep shapes small").
		WithInstance("maria", map[string][]string{"geburtsdatum": {"1990-05-17"}}).
		Build()

	examples, err := db.ExampleRepository().List()
	require.NoError(t, err)
	require.Len(t, examples, 1)

	guidelines, err := db.ContextRepository().Guidelines()
	require.NoError(t, err)
	require.Len(t, guidelines, 1)

	inst, err := db.InstanceRepository().FindByID("maria")
	require.NoError(t, err)
	require.Equal(t, []string{"1990-05-17"}, inst.Properties["geburtsdatum"])
}

func TestSeedGenerationContext(t *testing.T) {
	db := NewTestDB(t)

	shapeID := SeedGenerationContext(t, db)
	require.NotEmpty(t, shapeID)

	rounds, err := db.ContextRepository().FeedbackForShape(shapeID)
	require.NoError(t, err)
	require.Len(t, rounds, 1)

	examples, err := db.ExampleRepository().List()
	require.NoError(t, err)
	require.Len(t, examples, 1)
}

func TestSeedInstances(t *testing.T) {
	db := NewTestDB(t)

	SeedInstances(t, db)

	instances, err := db.InstanceRepository().List()
	require.NoError(t, err)
	require.Len(t, instances, 2)

	maria, err := db.InstanceRepository().FindByID("maria")
	require.NoError(t, err)
	require.Len(t, maria.Properties["staatsbuergerschaft"], 2)
}
