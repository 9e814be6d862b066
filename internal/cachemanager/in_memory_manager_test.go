package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

type cachedShape struct {
	Name   string
	Turtle string
}

func TestNewInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, cachedShape]("shape-cache", DefaultExpiration, DefaultCleanupInterval)
	shape := cachedShape{
		Name: "buergergeld",
	}
	cache.Set(context.Background(), "shape:1", shape, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "shape:1")
	require.True(t, ok)
	require.Equal(t, shape, got)
}

func TestNewInMemoryCacheManager_GetExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("shape-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "benefit", "buergergeld", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "benefit")
	require.True(t, ok)
	require.Equal(t, "buergergeld", got)
}

func TestNewInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("shape-cache", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "benefit")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestNewInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("shape-cache", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("benefit", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "benefit")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestNewInMemoryCacheManager_GetWithRefresh_WithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("shape-cache", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.GetWithRefresh(context.Background(), "benefit", time.Minute*60)
	require.False(t, ok)
	require.Equal(t, "", got)
}

func TestNewInMemoryCacheManager_GetWithRefresh_WithExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("shape-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "benefit", "buergergeld", DefaultExpiration)

	got, ok := cache.GetWithRefresh(context.Background(), "benefit", time.Minute*60)
	require.True(t, ok)
	require.Equal(t, "buergergeld", got)
}

func TestNewInMemoryCacheManager_DeleteWithNoKeysDoesNothing(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("shape-cache", DefaultExpiration, DefaultCleanupInterval)

	err := cache.Delete(context.Background())
	require.NoError(t, err)
}

func TestNewInMemoryCacheManager_DeleteExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("shape-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "benefit", "buergergeld", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "benefit")
	require.True(t, ok)
	require.Equal(t, "buergergeld", got)

	err := cache.Delete(context.Background(), "benefit")
	require.NoError(t, err)

	got, ok = cache.Get(context.Background(), "benefit")
	require.False(t, ok)
	require.Equal(t, "", got)
}

func TestNewInMemoryCacheManager_Flush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("shape-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "benefit", "buergergeld", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "benefit")
	require.True(t, ok)
	require.Equal(t, "buergergeld", got)

	err := cache.Flush(context.Background())
	require.NoError(t, err)

	got, ok = cache.Get(context.Background(), "benefit")
	require.False(t, ok)
	require.Equal(t, "", got)
}
