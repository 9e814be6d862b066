package registry

import (
	"context"
	"sync/atomic"

	"github.com/foerderfunke/shaclgen/internal/pubsub"
)

// Handle provides live reloading of the catalogue through atomic snapshot
// swaps. Readers call Snapshot and keep a consistent registry for as long
// as they hold it; Reload never mutates a registry in place.
type Handle struct {
	current atomic.Pointer[Registry]
	path    string
	events  *pubsub.Broker[string]
}

// NewHandle wraps an initial registry loaded from path. The path is kept so
// Reload can re-read the same source.
func NewHandle(path string, initial *Registry) *Handle {
	h := &Handle{path: path, events: pubsub.NewBroker[string]()}
	h.current.Store(initial)
	return h
}

// Snapshot returns the current registry. The returned value is immutable
// and stays valid across concurrent reloads.
func (h *Handle) Snapshot() *Registry {
	return h.current.Load()
}

// Reload re-reads the source file and swaps in the new registry atomically.
// On failure the previous snapshot stays active and no event is published.
func (h *Handle) Reload() error {
	next, err := LoadFile(h.path)
	if err != nil {
		return err
	}
	h.current.Store(next)
	h.events.Publish(pubsub.ReloadedEvent, h.path)
	return nil
}

// Swap replaces the current registry with a pre-built one, for callers that
// load from sources other than the original file.
func (h *Handle) Swap(next *Registry) {
	h.current.Store(next)
}

// Events returns a subscription that receives the catalogue path after
// every successful Reload, until ctx is cancelled.
func (h *Handle) Events(ctx context.Context) <-chan pubsub.Event[string] {
	return h.events.Subscribe(ctx)
}

// Path returns the source file path the handle reloads from.
func (h *Handle) Path() string {
	return h.path
}
