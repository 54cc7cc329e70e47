package world

import (
	"math/rand"
	"testing"

	"github.com/shapehunt/engine/internal/core/ecs"
	"github.com/shapehunt/engine/internal/entity"
	"github.com/shapehunt/engine/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState() *State {
	m := entity.Movement{Enabled: true, LerpStrength: 0.1, VelocityLimit: 3, SwitchRate: 30}
	return NewState(entity.Bounds{W: 800, H: 600}, m, rand.New(rand.NewSource(1)))
}

func TestSpawnAndLookup(t *testing.T) {
	s := newTestState()
	a := s.SpawnRandom(entity.Circle(10, "red"))
	b := s.Spawn(entity.Rect(20, 20, "blue"), 100, 100, entity.Movement{})

	require.Equal(t, 2, s.Count())
	got, ok := s.Get(b.EntityID())
	require.True(t, ok)
	require.Same(t, b, got)

	x, y, ok := s.Position(a.EntityID())
	require.True(t, ok)
	assert.True(t, x >= 10 && x <= 790 && y >= 10 && y <= 590)
	assert.Equal(t, s.Movement, a.Movement())
}

func TestRemoveIsDeferredAndIdsGoStale(t *testing.T) {
	s := newTestState()
	a := s.SpawnRandom(entity.Circle(10, "red"))
	b := s.SpawnRandom(entity.Circle(10, "red"))
	c := s.SpawnRandom(entity.Circle(10, "red"))

	visited := 0
	s.Each(func(e *entity.Interactor) {
		visited++
		s.Remove(a.EntityID())
		s.Remove(e.EntityID())
	})
	assert.Equal(t, 3, visited)
	assert.Equal(t, 0, s.Count())
	_, _, ok := s.Position(b.EntityID())
	assert.False(t, ok)

	assert.Equal(t, 3, s.Flush())
	d := s.SpawnRandom(entity.Circle(10, "red"))
	_, ok = s.Get(c.EntityID())
	assert.False(t, ok)
	_, ok = s.Get(d.EntityID())
	assert.True(t, ok)
}

func TestHitTestPrefersTopmost(t *testing.T) {
	s := newTestState()
	bottom := s.Spawn(entity.Circle(30, "a"), 200, 200, entity.Movement{})
	top := s.Spawn(entity.Circle(30, "b"), 210, 200, entity.Movement{})

	hit, ok := s.HitTest(205, 200)
	require.True(t, ok)
	assert.Same(t, top, hit)

	top.SetVisible(false)
	hit, ok = s.HitTest(205, 200)
	require.True(t, ok)
	assert.Same(t, bottom, hit)

	bottom.StartExit()
	_, ok = s.HitTest(205, 200)
	assert.False(t, ok)
}

func TestNearest(t *testing.T) {
	s := newTestState()
	far := s.Spawn(entity.Circle(5, "a"), 700, 500, entity.Movement{})
	near := s.Spawn(entity.Circle(5, "a"), 110, 100, entity.Movement{})

	got, ok := s.Nearest(100, 100, nil)
	require.True(t, ok)
	assert.Same(t, near, got)

	got, ok = s.Nearest(100, 100, func(e *entity.Interactor) bool { return e != near })
	require.True(t, ok)
	assert.Same(t, far, got)

	_, ok = s.Nearest(0, 0, func(*entity.Interactor) bool { return false })
	assert.False(t, ok)
}

func TestUpdateAllRemovesFinishedExits(t *testing.T) {
	s := newTestState()
	e := s.SpawnRandom(entity.Circle(10, "red"))
	keep := s.SpawnRandom(entity.Circle(10, "red"))
	e.StartExit()

	var removed []ecs.EntityID
	ctx := s.UpdateContext(func(id ecs.EntityID) {
		removed = append(removed, id)
		s.Remove(id)
	})
	for i := 0; i < 60; i++ {
		s.UpdateAll(ctx)
		s.Flush()
	}
	require.Equal(t, []ecs.EntityID{e.EntityID()}, removed)
	require.Equal(t, 1, s.Count())
	_, ok := s.Get(keep.EntityID())
	require.True(t, ok)
}

func TestDrawAllAndClear(t *testing.T) {
	s := newTestState()
	s.SpawnRandom(entity.Circle(10, "red"))
	s.SpawnRandom(entity.Rect(10, 10, "red"))
	c := render.NewRecorder(800, 600)
	s.DrawAll(c)
	assert.Equal(t, 1, c.Count("circle"))
	assert.Equal(t, 1, c.Count("rect"))

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.All())
}
