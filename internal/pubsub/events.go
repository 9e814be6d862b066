// Package pubsub provides a generic publish/subscribe event broker.
package pubsub

import "time"

// EventType labels what happened to produce an event.
type EventType string

const (
	// LoggedEvent carries one formatted log entry.
	LoggedEvent EventType = "logged"
	// ReloadedEvent signals that the catalogue was reloaded from disk.
	ReloadedEvent EventType = "reloaded"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
