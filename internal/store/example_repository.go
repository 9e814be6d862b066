package store

import (
	"database/sql"
	"fmt"
	"time"
)

// ExampleRepository persists the few-shot example mappings.
type ExampleRepository struct {
	db *sql.DB
}

// Add stores a new example and assigns its ID.
func (r *ExampleRepository) Add(example *Example) error {
	example.CreatedAt = time.Now()
	result, err := r.db.Exec(
		`INSERT INTO examples (legal_text, turtle, annotations, created_at) VALUES (?, ?, ?, ?)`,
		example.LegalText, example.Turtle, example.Annotations, example.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert example: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	example.ID = id
	return nil
}

// List returns all examples oldest first, the order they appear in prompts.
func (r *ExampleRepository) List() ([]Example, error) {
	rows, err := r.db.Query(
		`SELECT id, legal_text, turtle, annotations, created_at FROM examples ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	defer rows.Close()

	var examples []Example
	for rows.Next() {
		var ex Example
		var createdAt int64
		if err := rows.Scan(&ex.ID, &ex.LegalText, &ex.Turtle, &ex.Annotations, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan example: %w", err)
		}
		ex.CreatedAt = time.Unix(createdAt, 0)
		examples = append(examples, ex)
	}
	return examples, rows.Err()
}

// Delete removes an example by ID. Deleting a missing example is a no-op.
func (r *ExampleRepository) Delete(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM examples WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete example: %w", err)
	}
	return nil
}
