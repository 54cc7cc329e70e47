package system

import (
	"time"

	coresys "github.com/shapehunt/engine/internal/core/system"
	"github.com/shapehunt/engine/internal/core/timer"
	"github.com/shapehunt/engine/internal/render"
	"github.com/shapehunt/engine/internal/world"
)

// RenderSystem draws interactors bottom to top and then the timer overlays
// on top of them. Phase 4 (Render).
type RenderSystem struct {
	world  *world.State
	timers *timer.Registry
	canvas render.Canvas
}

func NewRenderSystem(ws *world.State, timers *timer.Registry, c render.Canvas) *RenderSystem {
	return &RenderSystem{world: ws, timers: timers, canvas: c}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseRender }

func (s *RenderSystem) Update(_ time.Duration) {
	s.canvas.SetAlpha(1)
	s.world.DrawAll(s.canvas)
	s.canvas.SetAlpha(1)
	s.timers.RenderFront(s.canvas)
}
