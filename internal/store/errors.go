package store

import "fmt"

// ShapeNotFoundError reports a lookup miss in the shapes table.
type ShapeNotFoundError struct {
	ID   string
	Name string
}

func (e *ShapeNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("shape %q not found", e.Name)
	}
	return fmt.Sprintf("shape with id %q not found", e.ID)
}

// InstanceNotFoundError reports a lookup miss in the instances table.
type InstanceNotFoundError struct {
	ID string
}

func (e *InstanceNotFoundError) Error() string {
	return fmt.Sprintf("instance with id %q not found", e.ID)
}
