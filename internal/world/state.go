package world

import (
	"math"
	"math/rand"

	"github.com/shapehunt/engine/internal/core/ecs"
	"github.com/shapehunt/engine/internal/entity"
	"github.com/shapehunt/engine/internal/render"
)

// State is the entity field of one game session: every interactor, its draw
// and hit-test order, the viewport and the session-wide globals.
// Accessed only from the game loop goroutine, no locks needed.
type State struct {
	ecs         *ecs.World
	interactors *ecs.Store[entity.Interactor]

	Bounds      entity.Bounds
	Globals     entity.Globals
	Movement    entity.Movement // default for spawned shapes
	ExitWeights entity.ExitWeights

	rng *rand.Rand
}

func NewState(bounds entity.Bounds, movement entity.Movement, rng *rand.Rand) *State {
	w := ecs.NewWorld()
	store := ecs.NewStore[entity.Interactor]()
	w.Register(store)
	return &State{
		ecs:         w,
		interactors: store,
		Bounds:      bounds,
		Movement:    movement,
		ExitWeights: entity.DefaultExitWeights,
		rng:         rng,
	}
}

// Rand is the session's random source.
func (s *State) Rand() *rand.Rand { return s.rng }

// Spawn places a new interactor on top of the others. Its exit animation is
// drawn from ExitWeights.
func (s *State) Spawn(shape entity.Shape, x, y float64, m entity.Movement) *entity.Interactor {
	id := s.ecs.CreateEntity()
	e := entity.New(id, shape, x, y, m, entity.PickExitAnimation(s.rng, s.ExitWeights))
	s.interactors.Set(id, e)
	return e
}

// SpawnRandom places shape at a uniformly random in-bounds position with the
// default movement.
func (s *State) SpawnRandom(shape entity.Shape) *entity.Interactor {
	x, y := s.RandomPoint(shape.BoundsRadius())
	return s.Spawn(shape, x, y, s.Movement)
}

// RandomPoint returns a point at least r away from every edge.
func (s *State) RandomPoint(r float64) (float64, float64) {
	x := r + s.rng.Float64()*math.Max(0, s.Bounds.W-2*r)
	y := r + s.rng.Float64()*math.Max(0, s.Bounds.H-2*r)
	return x, y
}

// Center returns the middle of the viewport.
func (s *State) Center() (float64, float64) {
	return s.Bounds.W / 2, s.Bounds.H / 2
}

// Get returns a live interactor. Ids queued for removal or stale are not found.
func (s *State) Get(id ecs.EntityID) (*entity.Interactor, bool) {
	if !s.ecs.Alive(id) || s.ecs.Pending(id) {
		return nil, false
	}
	return s.interactors.Get(id)
}

// Position implements entity.Lookup.
func (s *State) Position(id ecs.EntityID) (float64, float64, bool) {
	e, ok := s.Get(id)
	if !ok {
		return 0, 0, false
	}
	x, y := e.Position()
	return x, y, true
}

// Each calls fn for every live interactor in insertion order. It ranges over
// a copy, so fn may spawn or remove interactors.
func (s *State) Each(fn func(e *entity.Interactor)) {
	for _, id := range s.ecs.Order() {
		if e, ok := s.Get(id); ok {
			fn(e)
		}
	}
}

// All returns the live interactors in insertion order.
func (s *State) All() []*entity.Interactor {
	out := make([]*entity.Interactor, 0, s.ecs.Len())
	s.Each(func(e *entity.Interactor) { out = append(out, e) })
	return out
}

// Count returns the number of live interactors not queued for removal.
func (s *State) Count() int {
	n := 0
	s.Each(func(*entity.Interactor) { n++ })
	return n
}

// Remove queues id for removal at the end of the tick.
func (s *State) Remove(id ecs.EntityID) {
	s.ecs.MarkForDestruction(id)
}

// Flush destroys every queued interactor and returns how many went.
func (s *State) Flush() int {
	return s.ecs.FlushDestroyQueue()
}

// Clear removes every interactor immediately.
func (s *State) Clear() {
	for _, id := range s.ecs.Order() {
		s.ecs.MarkForDestruction(id)
	}
	s.ecs.FlushDestroyQueue()
}

// HitTest returns the topmost enabled, visible interactor under (x,y).
func (s *State) HitTest(x, y float64) (*entity.Interactor, bool) {
	order := s.ecs.Order()
	for i := len(order) - 1; i >= 0; i-- {
		e, ok := s.Get(order[i])
		if !ok || !e.Enabled() || !e.Visible() {
			continue
		}
		if e.Contains(x, y) {
			return e, true
		}
	}
	return nil, false
}

// Nearest returns the live interactor closest to (x,y) accepted by keep.
func (s *State) Nearest(x, y float64, keep func(e *entity.Interactor) bool) (*entity.Interactor, bool) {
	var best *entity.Interactor
	bestD := math.Inf(1)
	s.Each(func(e *entity.Interactor) {
		if keep != nil && !keep(e) {
			return
		}
		ex, ey := e.Position()
		if d := math.Hypot(ex-x, ey-y); d < bestD {
			best, bestD = e, d
		}
	})
	return best, best != nil
}

// UpdateContext builds the per-tick context for the entity update protocol.
// remove is called when an exit animation completes; nil queues the removal
// without further notification.
func (s *State) UpdateContext(remove func(id ecs.EntityID)) *entity.Context {
	if remove == nil {
		remove = s.Remove
	}
	return &entity.Context{
		Bounds:  s.Bounds,
		Rand:    s.rng,
		Globals: &s.Globals,
		Lookup:  s,
		Remove:  remove,
	}
}

// UpdateAll runs one tick of the update protocol on every interactor.
func (s *State) UpdateAll(ctx *entity.Context) {
	s.Each(func(e *entity.Interactor) { e.Update(ctx) })
}

// DrawAll renders every interactor bottom to top.
func (s *State) DrawAll(c render.Canvas) {
	s.Each(func(e *entity.Interactor) { e.Draw(c) })
}

// Index snapshots every live interactor that is not exiting into a Grid.
// Positions are not tracked afterwards; rebuild once per tick.
func (s *State) Index() *Grid {
	g := NewGrid()
	s.Each(func(e *entity.Interactor) {
		if e.Exiting() {
			return
		}
		x, y := e.Position()
		g.Add(e.EntityID(), x, y, e.BoundsRadius())
	})
	return g
}
