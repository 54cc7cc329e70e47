package system

import (
	"time"

	"github.com/shapehunt/engine/internal/core/event"
	coresys "github.com/shapehunt/engine/internal/core/system"
)

// BusSystem delivers the events emitted during the previous tick.
// Phase 1 (PreUpdate).
type BusSystem struct {
	bus *event.Bus
}

func NewBusSystem(bus *event.Bus) *BusSystem {
	return &BusSystem{bus: bus}
}

func (s *BusSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *BusSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
