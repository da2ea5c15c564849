package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v"))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", "v"))
	now = now.Add(59 * time.Second)
	_, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

type view struct {
	ID    string `json:"id"`
	Total int    `json:"total"`
}

func TestViewCache(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0)
	c := NewViewCache[view](kv, "view:")

	_, ok := c.Get(ctx, "1")
	assert.False(t, ok)

	c.Set(ctx, "1", &view{ID: "1", Total: 3})
	got, ok := c.Get(ctx, "1")
	require.True(t, ok)
	assert.Equal(t, 3, got.Total)

	raw, ok, _ := kv.Get(ctx, "view:1")
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"1","total":3}`, raw)

	require.NoError(t, kv.Set(ctx, "view:2", "not json"))
	_, ok = c.Get(ctx, "2")
	assert.False(t, ok)

	c.Delete(ctx, "1")
	_, ok = c.Get(ctx, "1")
	assert.False(t, ok)
}

func TestMemoryEvictKeepsFreshValue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "stale", "v"))
	now = now.Add(2 * time.Minute)
	// "fresh" was rewritten after a reader saw it expired.
	require.NoError(t, m.Set(ctx, "fresh", "v2"))

	m.evict("stale")
	m.evict("fresh")

	assert.Equal(t, 1, m.Len())
	v, ok, err := m.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}
