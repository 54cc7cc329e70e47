package entity

import "github.com/shapehunt/engine/internal/core/ecs"

// Snapshot is a deep copy of the parts of an interactor that catalog events
// take over: movement, modifiers, frozen state, visibility, enabled flag and
// optionally position.
type Snapshot struct {
	ID        ecs.EntityID
	movement  Movement
	modifiers []Modifier
	frozen    bool
	visible   bool
	enabled   bool
	x, y      float64
	hasPos    bool
}

// Capture snapshots h without its position.
func Capture(h Handle) Snapshot {
	return Snapshot{
		ID:        h.EntityID(),
		movement:  h.Movement(),
		modifiers: CloneModifiers(h.Modifiers()),
		frozen:    h.Frozen(),
		visible:   h.Visible(),
		enabled:   h.Enabled(),
	}
}

// CaptureWithPosition snapshots h including where it stands.
func CaptureWithPosition(h Handle) Snapshot {
	s := Capture(h)
	s.x, s.y = h.Position()
	s.hasPos = true
	return s
}

// Restore reapplies the snapshot. Modifiers are cloned again so one snapshot
// can be restored more than once.
func (s Snapshot) Restore(h Handle) {
	h.SetMovement(s.movement)
	h.SetModifiers(CloneModifiers(s.modifiers))
	h.SetFrozen(s.frozen)
	h.SetVisible(s.visible)
	h.SetEnabled(s.enabled)
	if s.hasPos {
		h.SetPosition(s.x, s.y)
	}
}
