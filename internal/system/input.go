package system

import (
	"time"

	coresys "github.com/shapehunt/engine/internal/core/system"
	"github.com/shapehunt/engine/internal/director"
	"github.com/shapehunt/engine/internal/world"
	"go.uber.org/zap"
)

// CommandKind tags a host input command.
type CommandKind int

const (
	CmdClick      CommandKind = iota // X, Y
	CmdTrigger                       // Key
	CmdFlashlight                    // Value
)

// Command is one input from the host layer.
type Command struct {
	Kind  CommandKind
	X, Y  float64
	Key   string
	Value float64
}

// InputSystem drains host commands queued since the last tick and applies
// them to the session. Phase 0 (Input). Enqueue is safe from any goroutine;
// everything else runs on the game loop.
type InputSystem struct {
	queue      chan Command
	maxPerTick int
	world      *world.State
	director   *director.Director
	log        *zap.Logger
}

func NewInputSystem(queueSize, maxPerTick int, ws *world.State, dir *director.Director, log *zap.Logger) *InputSystem {
	return &InputSystem{
		queue:      make(chan Command, queueSize),
		maxPerTick: maxPerTick,
		world:      ws,
		director:   dir,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

// Enqueue queues cmd for the next tick. A full queue drops the command.
func (s *InputSystem) Enqueue(cmd Command) bool {
	select {
	case s.queue <- cmd:
		return true
	default:
		s.log.Warn("input queue full, command dropped", zap.Int("kind", int(cmd.Kind)))
		return false
	}
}

func (s *InputSystem) Update(_ time.Duration) {
	for i := 0; i < s.maxPerTick; i++ {
		select {
		case cmd := <-s.queue:
			s.apply(cmd)
		default:
			return
		}
	}
}

func (s *InputSystem) apply(cmd Command) {
	switch cmd.Kind {
	case CmdClick:
		s.click(cmd.X, cmd.Y)
	case CmdTrigger:
		if !s.director.Trigger(cmd.Key) {
			s.log.Debug("trigger ignored", zap.String("event", cmd.Key))
		}
	case CmdFlashlight:
		g := &s.world.Globals
		v := cmd.Value
		if v < 0 {
			v = 0
		}
		if g.FlashlightMax > 0 && v > g.FlashlightMax {
			v = g.FlashlightMax
		}
		g.FlashlightIntensity = v
	}
}

// click finds the topmost shape under the pointer and sends it off.
func (s *InputSystem) click(x, y float64) {
	perf := s.director.Performance()
	e, ok := s.world.HitTest(x, y)
	if !ok {
		perf.Miss()
		return
	}
	e.StartExit()
	perf.Find()
	s.log.Debug("shape found",
		zap.Uint64("entity", uint64(e.EntityID())),
		zap.String("exit", e.Exit().String()),
		zap.Int("streak", perf.Streak),
	)
}
