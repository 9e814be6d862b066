package store

import (
	"database/sql"
	"fmt"
	"time"
)

// ContextRepository persists the generator context: feedback history and
// free-text guidelines that flow into every prompt.
type ContextRepository struct {
	db *sql.DB
}

// AddFeedback stores one feedback round for a shape.
func (r *ContextRepository) AddFeedback(fb *Feedback) error {
	fb.CreatedAt = time.Now()
	result, err := r.db.Exec(
		`INSERT INTO feedback (shape_id, feedback, improved_turtle, created_at) VALUES (?, ?, ?, ?)`,
		fb.ShapeID, fb.Feedback, fb.ImprovedTurtle, fb.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	fb.ID = id
	return nil
}

// FeedbackForShape returns the feedback history of one shape, oldest first.
func (r *ContextRepository) FeedbackForShape(shapeID string) ([]Feedback, error) {
	return r.queryFeedback(
		`SELECT id, shape_id, feedback, improved_turtle, created_at FROM feedback
		 WHERE shape_id = ? ORDER BY created_at, id`, shapeID)
}

// AllFeedback returns the full feedback history, oldest first.
func (r *ContextRepository) AllFeedback() ([]Feedback, error) {
	return r.queryFeedback(
		`SELECT id, shape_id, feedback, improved_turtle, created_at FROM feedback
		 ORDER BY created_at, id`)
}

func (r *ContextRepository) queryFeedback(query string, args ...any) ([]Feedback, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var history []Feedback
	for rows.Next() {
		var fb Feedback
		var createdAt int64
		if err := rows.Scan(&fb.ID, &fb.ShapeID, &fb.Feedback, &fb.ImprovedTurtle, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		fb.CreatedAt = time.Unix(createdAt, 0)
		history = append(history, fb)
	}
	return history, rows.Err()
}

// AddGuideline stores a new generation guideline.
func (r *ContextRepository) AddGuideline(g *Guideline) error {
	g.CreatedAt = time.Now()
	result, err := r.db.Exec(
		`INSERT INTO guidelines (text, created_at) VALUES (?, ?)`,
		g.Text, g.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert guideline: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	g.ID = id
	return nil
}

// Guidelines returns all guidelines, oldest first.
func (r *ContextRepository) Guidelines() ([]Guideline, error) {
	rows, err := r.db.Query(`SELECT id, text, created_at FROM guidelines ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list guidelines: %w", err)
	}
	defer rows.Close()

	var guidelines []Guideline
	for rows.Next() {
		var g Guideline
		var createdAt int64
		if err := rows.Scan(&g.ID, &g.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan guideline: %w", err)
		}
		g.CreatedAt = time.Unix(createdAt, 0)
		guidelines = append(guidelines, g)
	}
	return guidelines, rows.Err()
}

// DeleteGuideline removes a guideline by ID. Missing rows are a no-op.
func (r *ContextRepository) DeleteGuideline(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM guidelines WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete guideline: %w", err)
	}
	return nil
}
