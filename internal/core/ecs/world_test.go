package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolGenerations(t *testing.T) {
	p := NewPool()
	a := p.Create()
	require.False(t, a.IsZero())
	require.True(t, p.Alive(a))

	p.Destroy(a)
	require.False(t, p.Alive(a))
	require.Equal(t, 0, p.Len())

	b := p.Create()
	require.Equal(t, a.Index(), b.Index())
	require.NotEqual(t, a.Generation(), b.Generation())
	require.False(t, p.Alive(a), "stale id must not resolve to the recycled slot")
	require.True(t, p.Alive(b))

	p.Destroy(a) // stale, ignored
	require.True(t, p.Alive(b))
	require.False(t, p.Alive(NoEntity))
}

func TestWorldOrderAndDeferredDestroy(t *testing.T) {
	w := NewWorld()
	names := NewStore[string]()
	w.Register(names)

	ids := make([]EntityID, 4)
	for i := range ids {
		ids[i] = w.CreateEntity()
		n := string(rune('a' + i))
		names.Set(ids[i], &n)
	}
	require.Equal(t, ids, w.Order())

	// Destroy while iterating a snapshot.
	for _, id := range w.Order() {
		if id == ids[1] || id == ids[2] {
			w.MarkForDestruction(id)
			w.MarkForDestruction(id)
		}
	}
	require.True(t, w.Alive(ids[1]))
	require.True(t, w.Pending(ids[1]))
	require.Equal(t, 4, w.Len())

	require.Equal(t, 2, w.FlushDestroyQueue())
	require.Equal(t, []EntityID{ids[0], ids[3]}, w.Order())
	require.False(t, w.Alive(ids[1]))
	require.False(t, names.Has(ids[2]))
	require.Equal(t, 2, names.Len())
	require.Equal(t, 0, w.FlushDestroyQueue())
}
