package system

import (
	"time"

	"github.com/shapehunt/engine/internal/core/ecs"
	"github.com/shapehunt/engine/internal/core/event"
	coresys "github.com/shapehunt/engine/internal/core/system"
	"github.com/shapehunt/engine/internal/entity"
	"github.com/shapehunt/engine/internal/world"
)

// EntitySystem runs the update protocol on every interactor after the
// timers had their turn. Phase 3 (PostUpdate).
type EntitySystem struct {
	world *world.State
	ctx   *entity.Context
}

func NewEntitySystem(ws *world.State, bus *event.Bus) *EntitySystem {
	s := &EntitySystem{world: ws}
	s.ctx = ws.UpdateContext(func(id ecs.EntityID) {
		ws.Remove(id)
		event.Emit(bus, event.EntityRemoved{EntityID: id})
	})
	return s
}

func (s *EntitySystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *EntitySystem) Update(_ time.Duration) {
	s.world.UpdateAll(s.ctx)
}
