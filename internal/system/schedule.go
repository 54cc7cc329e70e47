package system

import (
	"time"

	coresys "github.com/shapehunt/engine/internal/core/system"
	"github.com/shapehunt/engine/internal/core/timer"
	"github.com/shapehunt/engine/internal/director"
)

// DirectorSystem lets the director pick the next random event.
// Phase 2 (Update), registered before TimerSystem.
type DirectorSystem struct {
	director *director.Director
}

func NewDirectorSystem(dir *director.Director) *DirectorSystem {
	return &DirectorSystem{director: dir}
}

func (s *DirectorSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *DirectorSystem) Update(_ time.Duration) {
	s.director.Update()
}

// TimerSystem advances every named timer. Phase 2 (Update).
type TimerSystem struct {
	timers *timer.Registry
}

func NewTimerSystem(timers *timer.Registry) *TimerSystem {
	return &TimerSystem{timers: timers}
}

func (s *TimerSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *TimerSystem) Update(_ time.Duration) {
	s.timers.Update()
}
