package entity

import (
	"math"

	"github.com/shapehunt/engine/internal/core/ecs"
)

// ModifierKind tags each modifier variant.
type ModifierKind int

const (
	KindFreeze ModifierKind = iota + 1
	KindFollow
	KindJitter
	KindTeleport
	KindPull
)

func (k ModifierKind) String() string {
	switch k {
	case KindFreeze:
		return "freeze"
	case KindFollow:
		return "follow"
	case KindJitter:
		return "jitter"
	case KindTeleport:
		return "teleport"
	case KindPull:
		return "pull"
	}
	return "unknown"
}

// Modifier is a per-tick behavior applied before integration, in list order.
type Modifier interface {
	Kind() ModifierKind
	Apply(e *Interactor, ctx *Context)
	// Clone returns an independent copy including internal countdowns.
	Clone() Modifier
}

// Freeze has Chance per tick to freeze the interactor for Length ticks.
type Freeze struct {
	Chance float64
	Length int

	remaining int
	holding   bool
}

func (m *Freeze) Kind() ModifierKind { return KindFreeze }

func (m *Freeze) Apply(e *Interactor, ctx *Context) {
	if m.remaining == 0 && m.Length > 0 && ctx.Rand.Float64() < m.Chance {
		m.remaining = m.Length
	}
	if m.remaining > 0 {
		m.remaining--
		m.holding = true
		e.state.Frozen = true
		return
	}
	// Only release a freeze this modifier set.
	if m.holding {
		m.holding = false
		e.state.Frozen = false
	}
}

// Remaining returns the ticks left in the current freeze.
func (m *Freeze) Remaining() int { return m.remaining }

func (m *Freeze) Clone() Modifier {
	c := *m
	return &c
}

// Follow steers velocity toward another interactor. A stale target is a no-op.
type Follow struct {
	Target   ecs.EntityID
	Strength float64 // 0..1 blend between current velocity and the pursuit velocity
}

func (m *Follow) Kind() ModifierKind { return KindFollow }

func (m *Follow) Apply(e *Interactor, ctx *Context) {
	if ctx.Lookup == nil || m.Target.IsZero() {
		return
	}
	tx, ty, ok := ctx.Lookup.Position(m.Target)
	if !ok {
		return
	}
	dx, dy := tx-e.x, ty-e.y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return
	}
	speed := e.movement.VelocityLimit
	if speed <= 0 {
		speed = 1
	}
	px, py := dx/d*speed, dy/d*speed
	s := m.Strength
	e.vx = e.vx*(1-s) + px*s
	e.vy = e.vy*(1-s) + py*s
	e.tvx = e.tvx*(1-s) + px*s
	e.tvy = e.tvy*(1-s) + py*s
}

func (m *Follow) Clone() Modifier {
	c := *m
	return &c
}

// Jitter adds uniform noise in [-Rate, Rate] to the position every tick.
type Jitter struct {
	Rate float64
}

func (m *Jitter) Kind() ModifierKind { return KindJitter }

func (m *Jitter) Apply(e *Interactor, ctx *Context) {
	e.x += (ctx.Rand.Float64()*2 - 1) * m.Rate
	e.y += (ctx.Rand.Float64()*2 - 1) * m.Rate
}

func (m *Jitter) Clone() Modifier {
	c := *m
	return &c
}

// Teleport has Chance per tick to move the interactor to a random in-bounds spot.
type Teleport struct {
	Chance float64
}

func (m *Teleport) Kind() ModifierKind { return KindTeleport }

func (m *Teleport) Apply(e *Interactor, ctx *Context) {
	if ctx.Rand.Float64() >= m.Chance {
		return
	}
	r := e.BoundsRadius()
	e.x = r + ctx.Rand.Float64()*math.Max(0, ctx.Bounds.W-2*r)
	e.y = r + ctx.Rand.Float64()*math.Max(0, ctx.Bounds.H-2*r)
}

func (m *Teleport) Clone() Modifier {
	c := *m
	return &c
}

// Pull drags the position a Strength fraction of the way toward (X,Y) every
// tick. It moves the interactor even while its movement is disabled.
type Pull struct {
	X, Y     float64
	Strength float64
}

func (m *Pull) Kind() ModifierKind { return KindPull }

func (m *Pull) Apply(e *Interactor, _ *Context) {
	e.x += (m.X - e.x) * m.Strength
	e.y += (m.Y - e.y) * m.Strength
	e.vx, e.vy = 0, 0
}

func (m *Pull) Clone() Modifier {
	c := *m
	return &c
}

// CloneModifiers deep-copies a modifier list.
func CloneModifiers(mods []Modifier) []Modifier {
	if mods == nil {
		return nil
	}
	out := make([]Modifier, len(mods))
	for i, m := range mods {
		out[i] = m.Clone()
	}
	return out
}
