package system

import (
	"time"

	coresys "github.com/shapehunt/engine/internal/core/system"
	"github.com/shapehunt/engine/internal/world"
)

// CleanupSystem flushes the deferred interactor removal queue at tick end.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.Flush()
}
