package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foerderfunke/shaclgen/internal/store"
)

// feedbackData holds one feedback round to be inserted, keyed by the name
// of the shape it belongs to.
type feedbackData struct {
	shapeName      string
	feedback       string
	improvedTurtle string
}

// Builder accumulates test data and inserts it in the correct order.
type Builder struct {
	t          *testing.T
	db         *store.DB
	shapes     []store.Shape
	feedback   []feedbackData
	examples   []store.Example
	guidelines []string
	instances  []store.Instance
}

// NewBuilder creates a builder for the given test store.
func NewBuilder(t *testing.T, db *store.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db}
}

// WithShape adds a shape with optional configuration.
func (b *Builder) WithShape(name string, opts ...ShapeOption) *Builder {
	s := defaultShape(name)
	for _, opt := range opts {
		opt(&s)
	}
	b.shapes = append(b.shapes, s)
	return b
}

// WithFeedback adds a feedback round on a shape added via WithShape.
func (b *Builder) WithFeedback(shapeName, feedback, improvedTurtle string) *Builder {
	b.feedback = append(b.feedback, feedbackData{shapeName, feedback, improvedTurtle})
	return b
}

// WithExample adds a curated few-shot example.
func (b *Builder) WithExample(legalText, turtle, annotations string) *Builder {
	b.examples = append(b.examples, store.Example{
		LegalText:   legalText,
		Turtle:      turtle,
		Annotations: annotations,
	})
	return b
}

// WithGuideline adds a generation guideline.
func (b *Builder) WithGuideline(text string) *Builder {
	b.guidelines = append(b.guidelines, text)
	return b
}

// WithInstance adds a subject instance.
func (b *Builder) WithInstance(id string, properties map[string][]string) *Builder {
	b.instances = append(b.instances, store.Instance{ID: id, Properties: properties})
	return b
}

// Build inserts all accumulated data. Shapes go first so feedback rows can
// resolve their shape IDs by name.
func (b *Builder) Build() {
	b.t.Helper()

	shapeIDs := make(map[string]string, len(b.shapes))
	for i := range b.shapes {
		require.NoError(b.t, b.db.ShapeRepository().Save(&b.shapes[i]))
		shapeIDs[b.shapes[i].Name] = b.shapes[i].ID
	}
	for _, fb := range b.feedback {
		id, ok := shapeIDs[fb.shapeName]
		require.True(b.t, ok, "feedback references unknown shape %q", fb.shapeName)
		require.NoError(b.t, b.db.ContextRepository().AddFeedback(&store.Feedback{
			ShapeID:        id,
			Feedback:       fb.feedback,
			ImprovedTurtle: fb.improvedTurtle,
		}))
	}
	for i := range b.examples {
		require.NoError(b.t, b.db.ExampleRepository().Add(&b.examples[i]))
	}
	for _, text := range b.guidelines {
		require.NoError(b.t, b.db.ContextRepository().AddGuideline(&store.Guideline{Text: text}))
	}
	for i := range b.instances {
		require.NoError(b.t, b.db.InstanceRepository().Save(&b.instances[i]))
	}
}

// ShapeID returns the generated ID of a shape inserted by Build. Valid
// only after Build has run.
func (b *Builder) ShapeID(name string) string {
	b.t.Helper()
	for i := range b.shapes {
		if b.shapes[i].Name == name {
			require.NotEmpty(b.t, b.shapes[i].ID, "Build has not run yet")
			return b.shapes[i].ID
		}
	}
	b.t.Fatalf("no shape named %q in builder", name)
	return ""
}
