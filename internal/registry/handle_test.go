package registry

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/foerderfunke/shaclgen/internal/pubsub"
)

func writeCatalogue(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datafields.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHandle_Reload(t *testing.T) {
	path := writeCatalogue(t, catalogueYAML)
	initial, err := LoadFile(path)
	require.NoError(t, err)

	h := NewHandle(path, initial)
	require.Equal(t, path, h.Path())
	require.Same(t, initial, h.Snapshot())

	extended := catalogueYAML + `
wohnort:
  name: wohnort
  path: ff:wohnort
  datatype: xsd:string
  description: Where does the person live?
  examples: []
  synonyms: []
  constraints: {}
`
	require.NoError(t, os.WriteFile(path, []byte(extended), 0o644))
	require.NoError(t, h.Reload())

	require.Equal(t, initial.Len()+1, h.Snapshot().Len())
	require.True(t, h.Snapshot().Has("wohnort"))

	// The old snapshot is untouched.
	require.False(t, initial.Has("wohnort"))
}

func TestHandle_ReloadKeepsPreviousOnFailure(t *testing.T) {
	path := writeCatalogue(t, catalogueYAML)
	initial, err := LoadFile(path)
	require.NoError(t, err)
	h := NewHandle(path, initial)

	require.NoError(t, os.WriteFile(path, []byte("alter:\n  path: ff:alter\n"), 0o644))

	err = h.Reload()
	var malformed *MalformedRegistryError
	require.ErrorAs(t, err, &malformed)
	require.Same(t, initial, h.Snapshot())
}

func TestHandle_Swap(t *testing.T) {
	path := writeCatalogue(t, catalogueYAML)
	initial, err := LoadFile(path)
	require.NoError(t, err)
	h := NewHandle(path, initial)

	next, err := New([]Field{{Name: "alter", Path: "ff:alter"}})
	require.NoError(t, err)

	h.Swap(next)
	require.Same(t, next, h.Snapshot())
}

func TestHandle_EventsOnReload(t *testing.T) {
	path := writeCatalogue(t, catalogueYAML)
	initial, err := LoadFile(path)
	require.NoError(t, err)
	h := NewHandle(path, initial)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := h.Events(ctx)

	require.NoError(t, h.Reload())
	select {
	case ev := <-events:
		require.Equal(t, pubsub.ReloadedEvent, ev.Type)
		require.Equal(t, path, ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("no reload event received")
	}

	// A failed reload publishes nothing.
	require.NoError(t, os.WriteFile(path, []byte("alter:\n  path: ff:alter\n"), 0o644))
	require.Error(t, h.Reload())
	select {
	case ev := <-events:
		t.Fatalf("unexpected event after failed reload: %+v", ev)
	default:
	}
}

func TestHandle_ConcurrentReadersDuringReload(t *testing.T) {
	path := writeCatalogue(t, catalogueYAML)
	initial, err := LoadFile(path)
	require.NoError(t, err)
	h := NewHandle(path, initial)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				snap := h.Snapshot()
				// A snapshot stays internally consistent regardless of
				// concurrent swaps.
				for _, name := range snap.Names() {
					require.True(t, snap.Has(name))
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		require.NoError(t, h.Reload())
	}
	wg.Wait()
}
