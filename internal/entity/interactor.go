package entity

import (
	"github.com/shapehunt/engine/internal/core/ecs"
)

// Movement configures the wandering motion of an interactor.
type Movement struct {
	Enabled       bool    `toml:"enabled" yaml:"enabled"`
	LerpStrength  float64 `toml:"lerp_strength" yaml:"lerp_strength"`   // 0..1, per-tick easing toward the target velocity
	VelocityLimit float64 `toml:"velocity_limit" yaml:"velocity_limit"` // px per tick on each axis
	SwitchRate    int     `toml:"switch_rate" yaml:"switch_rate"`       // ticks between target velocity picks
}

// State is the generic per-entity flag bag.
type State struct {
	Frozen bool
}

// Bounds is the viewport the interactors live in.
type Bounds struct {
	W, H float64
}

// Globals are session-wide values that override per-entity behavior.
type Globals struct {
	FlashlightIntensity float64
	FlashlightMax       float64
	// FreezeAtFullFlashlight arms the hard freeze; set by game modes that
	// stop every shape while the flashlight is at full power.
	FreezeAtFullFlashlight bool
}

// HardFrozen reports whether the global freeze overrides every interactor.
func (g *Globals) HardFrozen() bool {
	if g == nil || !g.FreezeAtFullFlashlight || g.FlashlightMax <= 0 {
		return false
	}
	return g.FlashlightIntensity >= g.FlashlightMax
}

// Rand is the random source used by modifiers and retargeting.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Lookup resolves another interactor's position by id. Stale ids report ok=false.
type Lookup interface {
	Position(id ecs.EntityID) (x, y float64, ok bool)
}

// Context carries everything one Update needs besides the interactor itself.
type Context struct {
	Bounds  Bounds
	Rand    Rand
	Globals *Globals
	Lookup  Lookup
	// Remove is called once when an exit animation completes.
	Remove func(id ecs.EntityID)
}

// Handle is the mutation capability catalog events use to take over an
// interactor for the duration of an event and hand it back afterwards.
type Handle interface {
	EntityID() ecs.EntityID
	Position() (x, y float64)
	SetPosition(x, y float64)
	Velocity() (vx, vy float64)
	SetVelocity(vx, vy float64)
	BoundsRadius() float64
	Movement() Movement
	SetMovement(m Movement)
	Modifiers() []Modifier
	SetModifiers(mods []Modifier)
	AddModifier(m Modifier)
	Frozen() bool
	SetFrozen(frozen bool)
	Visible() bool
	SetVisible(visible bool)
	Enabled() bool
	SetEnabled(enabled bool)
}

var _ Handle = (*Interactor)(nil)

// Interactor is a visible, clickable, movable shape.
type Interactor struct {
	id    ecs.EntityID
	Shape Shape
	Boss  bool

	x, y     float64
	vx, vy   float64
	tvx, tvy float64 // target velocity

	movement  Movement
	state     State
	modifiers []Modifier

	enabled bool
	visible bool
	alpha   float64
	scale   float64

	exit        ExitKind
	exitStarted bool
	exitFrame   int
	removed     bool

	frame int
}

// New creates an enabled, visible interactor centered at (x,y).
func New(id ecs.EntityID, shape Shape, x, y float64, m Movement, exit ExitKind) *Interactor {
	return &Interactor{
		id:       id,
		Shape:    shape,
		x:        x,
		y:        y,
		movement: m,
		enabled:  true,
		visible:  true,
		alpha:    1,
		scale:    1,
		exit:     exit,
	}
}

func (e *Interactor) EntityID() ecs.EntityID { return e.id }

func (e *Interactor) Position() (float64, float64) { return e.x, e.y }
func (e *Interactor) SetPosition(x, y float64)     { e.x, e.y = x, y }
func (e *Interactor) Velocity() (float64, float64) { return e.vx, e.vy }
func (e *Interactor) SetVelocity(vx, vy float64)   { e.vx, e.vy = vx, vy }

func (e *Interactor) TargetVelocity() (float64, float64) { return e.tvx, e.tvy }

func (e *Interactor) BoundsRadius() float64 { return e.Shape.BoundsRadius() }

func (e *Interactor) Movement() Movement     { return e.movement }
func (e *Interactor) SetMovement(m Movement) { e.movement = m }

// Modifiers returns the live modifier list. Use SetModifiers to replace it.
func (e *Interactor) Modifiers() []Modifier { return e.modifiers }

func (e *Interactor) SetModifiers(mods []Modifier) { e.modifiers = mods }

func (e *Interactor) AddModifier(m Modifier) { e.modifiers = append(e.modifiers, m) }

// RemoveModifiers drops every modifier of the given kind and returns how many went.
func (e *Interactor) RemoveModifiers(kind ModifierKind) int {
	kept := e.modifiers[:0:0]
	for _, m := range e.modifiers {
		if m.Kind() != kind {
			kept = append(kept, m)
		}
	}
	n := len(e.modifiers) - len(kept)
	e.modifiers = kept
	return n
}

// HasModifier reports whether a modifier of the given kind is attached.
func (e *Interactor) HasModifier(kind ModifierKind) bool {
	for _, m := range e.modifiers {
		if m.Kind() == kind {
			return true
		}
	}
	return false
}

func (e *Interactor) Frozen() bool          { return e.state.Frozen }
func (e *Interactor) SetFrozen(frozen bool) { e.state.Frozen = frozen }

func (e *Interactor) Visible() bool           { return e.visible }
func (e *Interactor) SetVisible(visible bool) { e.visible = visible }

func (e *Interactor) Enabled() bool           { return e.enabled }
func (e *Interactor) SetEnabled(enabled bool) { e.enabled = enabled }

func (e *Interactor) Alpha() float64 { return e.alpha }
func (e *Interactor) Scale() float64 { return e.scale }

// Frame returns the number of ticks that reached the retarget step.
func (e *Interactor) Frame() int { return e.frame }

// Removed reports whether the exit animation finished and removal was requested.
func (e *Interactor) Removed() bool { return e.removed }

// Contains hit-tests a point against the current shape, position and scale.
func (e *Interactor) Contains(px, py float64) bool {
	return e.Shape.Contains(e.x, e.y, e.scale, px, py)
}

// FindModifier returns the first attached modifier of type T.
func FindModifier[T Modifier](e *Interactor) (T, bool) {
	for _, m := range e.modifiers {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
