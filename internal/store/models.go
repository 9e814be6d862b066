package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Shape is a stored SHACL mapping: the legal text it was generated from and
// the resulting Turtle.
type Shape struct {
	ID          string
	Name        string
	LegalText   string
	Turtle      string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Example is a curated legal-text to Turtle mapping used as a few-shot
// example in generation prompts.
type Example struct {
	ID          int64
	LegalText   string
	Turtle      string
	Annotations string
	CreatedAt   time.Time
}

// Feedback is one feedback round on a stored shape, together with the
// improved Turtle the assistant produced for it.
type Feedback struct {
	ID             int64
	ShapeID        string
	Feedback       string
	ImprovedTurtle string
	CreatedAt      time.Time
}

// Guideline is a free-text generation guideline injected into every prompt.
type Guideline struct {
	ID        int64
	Text      string
	CreatedAt time.Time
}

// Instance is a stored subject instance: field name to value assignments
// plus the rendered Turtle. Fields may carry several values, dual
// citizenship being the canonical case.
type Instance struct {
	ID         string
	Properties map[string][]string
	Turtle     string
	CreatedAt  time.Time
}

// shapeRow mirrors the shapes table with Unix timestamps.
type shapeRow struct {
	ID          string
	Name        string
	LegalText   string
	Turtle      string
	Description string
	CreatedAt   int64
	UpdatedAt   int64
}

func (r shapeRow) toDomain() Shape {
	return Shape{
		ID:          r.ID,
		Name:        r.Name,
		LegalText:   r.LegalText,
		Turtle:      r.Turtle,
		Description: r.Description,
		CreatedAt:   time.Unix(r.CreatedAt, 0),
		UpdatedAt:   time.Unix(r.UpdatedAt, 0),
	}
}

func encodeProperties(props map[string][]string) (string, error) {
	if props == nil {
		props = map[string][]string{}
	}
	raw, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("encode instance properties: %w", err)
	}
	return string(raw), nil
}

func decodeProperties(raw string) (map[string][]string, error) {
	props := map[string][]string{}
	if raw == "" {
		return props, nil
	}
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		return nil, fmt.Errorf("decode instance properties: %w", err)
	}
	return props, nil
}
