// Package testutil provides test helpers for seeding the shape store.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foerderfunke/shaclgen/internal/store"
)

// NewTestDB creates a fully migrated store in a temp directory. The
// database is closed when the test finishes.
func NewTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "shaclgen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
