package cache

import (
	"context"
	"testing"
	"time"

	"github.com/quantmind-br/blitzpack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *BadgerCache {
	t.Helper()
	c, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBadgerCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	key := "https://stackblitz.com/api/projects/demo?include_files=true"
	value := []byte(`{"project":{"appFiles":{}}}`)

	require.NoError(t, c.Set(ctx, key, value, time.Hour))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
	assert.True(t, c.Has(ctx, key))
}

func TestBadgerCache_Miss(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "https://example.com/never-set")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.False(t, c.Has(context.Background(), "https://example.com/never-set"))
}

func TestBadgerCache_Delete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestBadgerCache_Clear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Clear())

	assert.False(t, c.Has(ctx, "a"))
	assert.False(t, c.Has(ctx, "b"))
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Empty(t, opts.Directory)
	assert.False(t, opts.InMemory)
	assert.False(t, opts.Logger)
}

func TestGenerateKey_Normalization(t *testing.T) {
	// Equivalent URLs hash to the same key
	assert.Equal(t,
		GenerateKey("https://Stackblitz.com/api/projects/demo"),
		GenerateKey("https://stackblitz.com:443/api/projects/demo"))

	// Fragments are ignored
	assert.Equal(t,
		GenerateKey("https://stackblitz.com/a"),
		GenerateKey("https://stackblitz.com/a#frag"))

	// Different paths hash differently
	assert.NotEqual(t,
		GenerateKey("https://stackblitz.com/a"),
		GenerateKey("https://stackblitz.com/b"))
}
