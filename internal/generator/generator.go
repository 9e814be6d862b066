package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/foerderfunke/shaclgen/internal/cachemanager"
	"github.com/foerderfunke/shaclgen/internal/llm"
	"github.com/foerderfunke/shaclgen/internal/log"
	"github.com/foerderfunke/shaclgen/internal/registry"
	"github.com/foerderfunke/shaclgen/internal/store"
	"github.com/foerderfunke/shaclgen/internal/tracing"
)

// Prompt context limits, oldest entries are dropped first.
const (
	maxPromptExamples = 3
	maxPromptFeedback = 5
)

// Config wires a Generator's collaborators. Assistant and Catalogue are
// required; the repositories and tracer are optional.
type Config struct {
	Assistant llm.Client
	Catalogue *registry.Handle
	Examples  *store.ExampleRepository
	Context   *store.ContextRepository
	Tracer    trace.Tracer
	CacheTTL  time.Duration
}

// Generator produces and improves SHACL mappings for legal texts.
type Generator struct {
	assistant llm.Client
	catalogue *registry.Handle
	examples  *store.ExampleRepository
	context   *store.ContextRepository
	cache     cachemanager.CacheManager[string, string]
	cacheTTL  time.Duration
	tracer    trace.Tracer
}

// Result is the outcome of one generation run.
type Result struct {
	Turtle          string
	SuggestedFields []registry.Field
	CacheHit        bool
}

// ImproveResult is the outcome of one feedback round.
type ImproveResult struct {
	Turtle          string
	Diff            []Segment
	SuggestedFields []registry.Field
}

// New creates a Generator from cfg.
func New(cfg Config) (*Generator, error) {
	if cfg.Assistant == nil {
		return nil, fmt.Errorf("assistant client is required")
	}
	if cfg.Catalogue == nil {
		return nil, fmt.Errorf("field catalogue is required")
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("generator")
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = cachemanager.DefaultExpiration
	}

	return &Generator{
		assistant: cfg.Assistant,
		catalogue: cfg.Catalogue,
		examples:  cfg.Examples,
		context:   cfg.Context,
		cache:     cachemanager.NewInMemoryCacheManager[string, string]("assistant-replies", ttl, cachemanager.DefaultCleanupInterval),
		cacheTTL:  ttl,
		tracer:    tracer,
	}, nil
}

// Generate maps legal text to a SHACL shape. Identical prompts within the
// cache TTL reuse the previous assistant reply instead of calling out
// again.
func (g *Generator) Generate(ctx context.Context, legalText string) (*Result, error) {
	ctx, span := g.tracer.Start(ctx, tracing.SpanPrefixGenerate+"shape",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	span.SetAttributes(
		attribute.String(tracing.AttrModel, g.assistant.Model()),
		attribute.Int(tracing.AttrLegalTextLen, len(legalText)),
	)

	result, err := g.generate(ctx, span, legalText)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (g *Generator) generate(ctx context.Context, span trace.Span, legalText string) (*Result, error) {
	reg := g.catalogue.Snapshot()

	examples, err := g.promptExamples()
	if err != nil {
		return nil, err
	}
	feedback, err := g.promptFeedback("")
	if err != nil {
		return nil, err
	}
	guidelines, err := g.promptGuidelines()
	if err != nil {
		return nil, err
	}

	prompt := buildGenerationPrompt(legalText, reg, examples, feedback, guidelines)
	span.AddEvent(tracing.EventPromptBuilt)

	reply, cacheHit, err := g.chat(ctx, span, generationSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, cacheHit))

	turtle, err := g.finishTurtle(ctx, reply)
	if err != nil {
		return nil, err
	}
	span.AddEvent(tracing.EventTurtleExtracted)

	suggested := SuggestedFields(turtle, reg)
	if len(suggested) > 0 {
		span.AddEvent(tracing.EventSuggestionsFound)
	}
	span.SetAttributes(attribute.Int(tracing.AttrNewFields, len(suggested)))

	log.Info(log.CatLLM, "shape generated",
		"legalTextLen", len(legalText),
		"turtleLen", len(turtle),
		"newFields", len(suggested),
		"cacheHit", cacheHit,
	)
	return &Result{Turtle: turtle, SuggestedFields: suggested, CacheHit: cacheHit}, nil
}

// Improve reworks an existing shape according to feedback. Feedback rounds
// recorded for other shapes are included as context; rounds for shapeID
// itself are excluded so the assistant does not anchor on its own earlier
// output.
func (g *Generator) Improve(ctx context.Context, shapeID, currentTurtle, feedbackText string) (*ImproveResult, error) {
	ctx, span := g.tracer.Start(ctx, tracing.SpanPrefixGenerate+"improve",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	span.SetAttributes(
		attribute.String(tracing.AttrModel, g.assistant.Model()),
		attribute.String(tracing.AttrShapeID, shapeID),
	)

	result, err := g.improve(ctx, span, shapeID, currentTurtle, feedbackText)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (g *Generator) improve(ctx context.Context, span trace.Span, shapeID, currentTurtle, feedbackText string) (*ImproveResult, error) {
	reg := g.catalogue.Snapshot()

	history, err := g.promptFeedback(shapeID)
	if err != nil {
		return nil, err
	}
	guidelines, err := g.promptGuidelines()
	if err != nil {
		return nil, err
	}

	prompt := buildImprovementPrompt(currentTurtle, feedbackText, reg, history, guidelines)
	span.AddEvent(tracing.EventPromptBuilt)

	reply, err := g.assistant.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: improvementSystemPrompt},
		{Role: llm.RoleUser, Content: prompt},
	})
	if err != nil {
		return nil, err
	}
	span.AddEvent(tracing.EventAssistantCalled)

	turtle, err := g.finishTurtle(ctx, reply)
	if err != nil {
		return nil, err
	}
	span.AddEvent(tracing.EventTurtleExtracted)

	suggested := SuggestedFields(turtle, reg)
	span.SetAttributes(attribute.Int(tracing.AttrNewFields, len(suggested)))

	return &ImproveResult{
		Turtle:          turtle,
		Diff:            WordDiff(currentTurtle, turtle),
		SuggestedFields: suggested,
	}, nil
}

// chat sends the exchange, consulting the reply cache first. Improvement
// runs bypass this path since feedback should always reach the assistant.
func (g *Generator) chat(ctx context.Context, span trace.Span, system, user string) (string, bool, error) {
	key := promptKey(g.assistant.Model(), system, user)
	if cached, ok := g.cache.Get(ctx, key); ok {
		log.Debug(log.CatCache, "assistant reply served from cache", "key", key[:12])
		return cached, true, nil
	}

	reply, err := g.assistant.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	})
	if err != nil {
		return "", false, err
	}
	span.AddEvent(tracing.EventAssistantCalled)

	g.cache.Set(ctx, key, reply, g.cacheTTL)
	return reply, false, nil
}

// finishTurtle extracts and repairs the Turtle payload of a reply. When
// local normalization cannot produce something plausible, the assistant
// gets one repair round.
func (g *Generator) finishTurtle(ctx context.Context, reply string) (string, error) {
	turtle := NormalizeTurtle(ExtractTurtle(reply))
	if err := checkTurtle(turtle); err == nil {
		return turtle, nil
	}

	log.Warn(log.CatLLM, "assistant output failed turtle checks, requesting repair")
	repaired, err := g.assistant.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: repairSystemPrompt},
		{Role: llm.RoleUser, Content: buildRepairPrompt(turtle)},
	})
	if err != nil {
		return "", fmt.Errorf("turtle repair round failed: %w", err)
	}

	turtle = NormalizeTurtle(ExtractTurtle(repaired))
	if err := checkTurtle(turtle); err != nil {
		return "", fmt.Errorf("assistant produced invalid turtle: %w", err)
	}
	return turtle, nil
}

// checkTurtle runs cheap structural checks over a Turtle document. It is
// not a parser; it catches the failure modes assistants actually produce,
// truncated output and unbalanced brackets.
func checkTurtle(turtle string) error {
	if !strings.Contains(turtle, "@prefix") {
		return fmt.Errorf("no prefix declarations found")
	}

	var brackets, parens int
	inString := false
	escaped := false
	for _, r := range turtle {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '[':
			brackets++
		case ']':
			brackets--
		case '(':
			parens++
		case ')':
			parens--
		}
	}
	if inString {
		return fmt.Errorf("unterminated string literal")
	}
	if brackets != 0 {
		return fmt.Errorf("unbalanced blank node brackets")
	}
	if parens != 0 {
		return fmt.Errorf("unbalanced list parentheses")
	}
	if !strings.HasSuffix(strings.TrimSpace(turtle), ".") {
		return fmt.Errorf("document does not end with a statement terminator")
	}
	return nil
}

func (g *Generator) promptExamples() ([]store.Example, error) {
	if g.examples == nil {
		return nil, nil
	}
	examples, err := g.examples.List()
	if err != nil {
		return nil, fmt.Errorf("load prompt examples: %w", err)
	}
	if len(examples) > maxPromptExamples {
		examples = examples[:maxPromptExamples]
	}
	return examples, nil
}

// promptFeedback returns past feedback rounds, excluding those recorded
// for excludeShapeID.
func (g *Generator) promptFeedback(excludeShapeID string) ([]store.Feedback, error) {
	if g.context == nil {
		return nil, nil
	}
	all, err := g.context.AllFeedback()
	if err != nil {
		return nil, fmt.Errorf("load feedback history: %w", err)
	}

	var filtered []store.Feedback
	for _, fb := range all {
		if excludeShapeID != "" && fb.ShapeID == excludeShapeID {
			continue
		}
		filtered = append(filtered, fb)
		if len(filtered) == maxPromptFeedback {
			break
		}
	}
	return filtered, nil
}

func (g *Generator) promptGuidelines() ([]store.Guideline, error) {
	if g.context == nil {
		return nil, nil
	}
	guidelines, err := g.context.Guidelines()
	if err != nil {
		return nil, fmt.Errorf("load guidelines: %w", err)
	}
	return guidelines, nil
}

func promptKey(model, system, user string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + system + "\x00" + user))
	return hex.EncodeToString(sum[:])
}
