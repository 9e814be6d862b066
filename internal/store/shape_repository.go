package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const shapeColumns = `id, name, legal_text, turtle, description, created_at, updated_at`

// ShapeRepository persists generated shapes.
type ShapeRepository struct {
	db *sql.DB
}

func scanShape(scanner interface{ Scan(...any) error }) (shapeRow, error) {
	var row shapeRow
	err := scanner.Scan(
		&row.ID, &row.Name, &row.LegalText, &row.Turtle, &row.Description,
		&row.CreatedAt, &row.UpdatedAt,
	)
	return row, err
}

// Save persists a shape. A shape without an ID gets a fresh UUID and an
// insert; a shape with an ID is updated in place.
func (r *ShapeRepository) Save(shape *Shape) error {
	now := time.Now()

	if shape.ID == "" {
		shape.ID = uuid.NewString()
		shape.CreatedAt = now
		shape.UpdatedAt = now
		_, err := r.db.Exec(
			`INSERT INTO shapes (id, name, legal_text, turtle, description, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			shape.ID, shape.Name, shape.LegalText, shape.Turtle, shape.Description,
			shape.CreatedAt.Unix(), shape.UpdatedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert shape: %w", err)
		}
		return nil
	}

	shape.UpdatedAt = now
	result, err := r.db.Exec(
		`UPDATE shapes SET name = ?, legal_text = ?, turtle = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		shape.Name, shape.LegalText, shape.Turtle, shape.Description,
		shape.UpdatedAt.Unix(), shape.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shape: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return &ShapeNotFoundError{ID: shape.ID}
	}
	return nil
}

// FindByID retrieves a shape by its ID.
func (r *ShapeRepository) FindByID(id string) (Shape, error) {
	row, err := scanShape(r.db.QueryRow(
		`SELECT `+shapeColumns+` FROM shapes WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return Shape{}, &ShapeNotFoundError{ID: id}
	}
	if err != nil {
		return Shape{}, fmt.Errorf("failed to find shape by id: %w", err)
	}
	return row.toDomain(), nil
}

// FindByName retrieves a shape by its unique name.
func (r *ShapeRepository) FindByName(name string) (Shape, error) {
	row, err := scanShape(r.db.QueryRow(
		`SELECT `+shapeColumns+` FROM shapes WHERE name = ?`, name,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return Shape{}, &ShapeNotFoundError{Name: name}
	}
	if err != nil {
		return Shape{}, fmt.Errorf("failed to find shape by name: %w", err)
	}
	return row.toDomain(), nil
}

// List returns all shapes ordered by name.
func (r *ShapeRepository) List() ([]Shape, error) {
	rows, err := r.db.Query(`SELECT ` + shapeColumns + ` FROM shapes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shapes: %w", err)
	}
	defer rows.Close()

	var shapes []Shape
	for rows.Next() {
		row, err := scanShape(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shape: %w", err)
		}
		shapes = append(shapes, row.toDomain())
	}
	return shapes, rows.Err()
}

// Delete removes a shape and, through the foreign key, its feedback rows.
func (r *ShapeRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM shapes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shape: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return &ShapeNotFoundError{ID: id}
	}
	return nil
}
