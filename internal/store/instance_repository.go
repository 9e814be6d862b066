package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InstanceRepository persists citizen instances and their property maps.
type InstanceRepository struct {
	db *sql.DB
}

// Save persists an instance. Instances without an ID get a fresh UUID.
func (r *InstanceRepository) Save(instance *Instance) error {
	props, err := encodeProperties(instance.Properties)
	if err != nil {
		return err
	}

	if instance.ID == "" {
		instance.ID = uuid.NewString()
		instance.CreatedAt = time.Now()
		_, err := r.db.Exec(
			`INSERT INTO instances (id, properties, turtle, created_at) VALUES (?, ?, ?, ?)`,
			instance.ID, props, instance.Turtle, instance.CreatedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert instance: %w", err)
		}
		return nil
	}

	result, err := r.db.Exec(
		`UPDATE instances SET properties = ?, turtle = ? WHERE id = ?`,
		props, instance.Turtle, instance.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update instance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return &InstanceNotFoundError{ID: instance.ID}
	}
	return nil
}

// FindByID retrieves an instance by its ID.
func (r *InstanceRepository) FindByID(id string) (Instance, error) {
	var instance Instance
	var props string
	var createdAt int64

	err := r.db.QueryRow(
		`SELECT id, properties, turtle, created_at FROM instances WHERE id = ?`, id,
	).Scan(&instance.ID, &props, &instance.Turtle, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Instance{}, &InstanceNotFoundError{ID: id}
	}
	if err != nil {
		return Instance{}, fmt.Errorf("failed to find instance: %w", err)
	}

	instance.CreatedAt = time.Unix(createdAt, 0)
	instance.Properties, err = decodeProperties(props)
	if err != nil {
		return Instance{}, err
	}
	return instance, nil
}

// List returns all instances, oldest first.
func (r *InstanceRepository) List() ([]Instance, error) {
	rows, err := r.db.Query(
		`SELECT id, properties, turtle, created_at FROM instances ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	defer rows.Close()

	var instances []Instance
	for rows.Next() {
		var instance Instance
		var props string
		var createdAt int64
		if err := rows.Scan(&instance.ID, &props, &instance.Turtle, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan instance: %w", err)
		}
		instance.CreatedAt = time.Unix(createdAt, 0)
		instance.Properties, err = decodeProperties(props)
		if err != nil {
			return nil, err
		}
		instances = append(instances, instance)
	}
	return instances, rows.Err()
}

// Delete removes an instance by ID.
func (r *InstanceRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM instances WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete instance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return &InstanceNotFoundError{ID: id}
	}
	return nil
}
