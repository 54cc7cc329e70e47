package world

import (
	"testing"

	"github.com/shapehunt/engine/internal/core/ecs"
	"github.com/shapehunt/engine/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestGridWithin(t *testing.T) {
	g := NewGrid()
	g.Add(1, 10, 10, 5)
	g.Add(2, 70, 10, 5)   // next cell over
	g.Add(3, -30, -30, 5) // negative cell
	g.Add(4, 500, 500, 40)

	assert.ElementsMatch(t, []ecs.EntityID{1}, g.Within(10, 10, 1))
	assert.ElementsMatch(t, []ecs.EntityID{1, 2}, g.Within(40, 10, 25))
	assert.ElementsMatch(t, []ecs.EntityID{1, 3}, g.Within(-10, -10, 25))
	// a large shape reaches into the query from several cells away
	assert.ElementsMatch(t, []ecs.EntityID{4}, g.Within(430, 500, 31))
	assert.Empty(t, g.Within(300, 300, 10))
	assert.Equal(t, 4, g.Len())
}

func TestIndexSkipsExiting(t *testing.T) {
	s := newTestState()
	a := s.Spawn(entity.Circle(10, "a"), 100, 100, entity.Movement{})
	b := s.Spawn(entity.Circle(10, "b"), 110, 100, entity.Movement{})
	b.StartExit()

	idx := s.Index()
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, []ecs.EntityID{a.EntityID()}, idx.Within(105, 100, 0))
}
