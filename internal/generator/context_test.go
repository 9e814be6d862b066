package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foerderfunke/shaclgen/internal/registry"
	"github.com/foerderfunke/shaclgen/internal/testutil"
)

// newSeededGenerator wires a generator against a real store populated with
// one shape, its feedback round, a curated example, and a guideline.
func newSeededGenerator(t *testing.T, client *scriptedClient) (*Generator, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	shapeID := testutil.SeedGenerationContext(t, db)

	gen, err := New(Config{
		Assistant: client,
		Catalogue: registry.NewHandle("", testCatalogue(t)),
		Examples:  db.ExampleRepository(),
		Context:   db.ContextRepository(),
	})
	require.NoError(t, err)
	return gen, shapeID
}

func TestGenerator_GenerateIncludesStoredContext(t *testing.T) {
	client := &scriptedClient{replies: []string{"```turtle\n" + generatedTurtle + "\n```"}}
	gen, _ := newSeededGenerator(t, client)

	_, err := gen.Generate(context.Background(), "§ 9 SGB II: Hilfebeduerftig ist ...")
	require.NoError(t, err)

	require.Len(t, client.calls, 1)
	user := client.calls[0][1].Content
	require.Contains(t, user, "EXAMPLE MAPPINGS:")
	require.Contains(t, user, "§ 1 WoGG")
	require.Contains(t, user, "ADDITIONAL GUIDELINES:")
	require.Contains(t, user, "Always set sh:maxCount 1 on date fields.")
	require.Contains(t, user, "RELEVANT FEEDBACK FROM PREVIOUS GENERATIONS:")
	require.Contains(t, user, "geburtsdatum should be limited to one value")
}

func TestGenerator_ImproveExcludesOwnFeedback(t *testing.T) {
	client := &scriptedClient{replies: []string{"```turtle\n" + generatedTurtle + "\n```"}}
	gen, shapeID := newSeededGenerator(t, client)

	_, err := gen.Improve(context.Background(), shapeID,
		generatedTurtle, "einkommen_monatlich needs sh:maxCount 1")
	require.NoError(t, err)

	require.Len(t, client.calls, 1)
	user := client.calls[0][1].Content
	require.Contains(t, user, "CURRENT SHAPE:")
	// The only stored feedback round belongs to this shape, so the history
	// section must be absent.
	require.NotContains(t, user, "PREVIOUS FEEDBACK AND IMPROVEMENTS:")
	require.NotContains(t, user, "geburtsdatum should be limited to one value")
}
