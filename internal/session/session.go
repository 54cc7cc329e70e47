// Package session owns everything one game needs: the clock, the timer
// registry, the interactor field, the event bus, the catalog, the director
// and the per-phase systems. Sessions do not share state, so tests and hosts
// can run several side by side.
package session

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shapehunt/engine/internal/catalog"
	"github.com/shapehunt/engine/internal/config"
	"github.com/shapehunt/engine/internal/core/clock"
	"github.com/shapehunt/engine/internal/core/event"
	coresys "github.com/shapehunt/engine/internal/core/system"
	"github.com/shapehunt/engine/internal/core/timer"
	"github.com/shapehunt/engine/internal/data"
	"github.com/shapehunt/engine/internal/director"
	"github.com/shapehunt/engine/internal/entity"
	"github.com/shapehunt/engine/internal/render"
	"github.com/shapehunt/engine/internal/system"
	"github.com/shapehunt/engine/internal/world"
	"go.uber.org/zap"
)

const (
	inputQueueSize  = 64
	inputMaxPerTick = 32
	minShapeSize    = 12.0
	shapeSizeSpread = 18.0
)

var palette = []string{"#e53935", "#1e88e5", "#fdd835", "#8e24aa", "#fb8c00", "#00acc1"}

// Deps are optional collaborators. Zero values get working defaults.
type Deps struct {
	Log    *zap.Logger
	Clock  clock.Clock
	Params *data.EventTable
	Policy director.Policy
	Canvas render.Canvas
}

// Stats counts what happened in a session, fed from the event bus.
type Stats struct {
	Triggered  int
	Finished   int
	Removed    int
	Explosions int
	Infections int
	Bosses     int
	Toasts     int
}

type Session struct {
	ID uuid.UUID

	Timers   *timer.Registry
	World    *world.State
	Bus      *event.Bus
	Catalog  *catalog.Catalog
	Director *director.Director

	clock  clock.Clock
	runner *coresys.Runner
	input  *system.InputSystem
	log    *zap.Logger
	stats  Stats
	last   time.Time
	closed bool
}

// New builds a session from cfg and spawns the initial shapes.
func New(cfg *config.Config, d Deps) *Session {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = clock.NewMonotonic()
	}
	if d.Params == nil {
		d.Params = data.DefaultEventTable()
	}
	if d.Canvas == nil {
		d.Canvas = render.Nop{W: cfg.Session.Width, H: cfg.Session.Height}
	}

	id := uuid.New()
	log := d.Log.With(zap.String("session", id.String()))

	seed := cfg.Session.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ws := world.NewState(entity.Bounds{W: cfg.Session.Width, H: cfg.Session.Height}, cfg.Movement, rng)
	ws.Globals = entity.Globals{
		FlashlightIntensity:    cfg.Flashlight.Intensity,
		FlashlightMax:          cfg.Flashlight.Max,
		FreezeAtFullFlashlight: cfg.Flashlight.FreezeAtFull,
	}

	timers := timer.NewRegistry(d.Clock, log.Named("timer"))
	bus := event.NewBus()
	cat := catalog.New(catalog.Deps{
		Timers: timers,
		World:  ws,
		Bus:    bus,
		Log:    log.Named("catalog"),
		Params: d.Params,
		Rand:   rng,
	})
	dir := director.New(director.Config{
		Enabled:       cfg.Director.Enabled,
		MinGap:        cfg.Director.MinGap,
		MaxGap:        cfg.Director.MaxGap,
		Cooldown:      cfg.Director.Cooldown,
		ToastDuration: cfg.Director.ToastDuration,
	}, director.Deps{
		Clock:   d.Clock,
		Timers:  timers,
		Catalog: cat,
		Bus:     bus,
		Policy:  d.Policy,
		Log:     log.Named("director"),
		Rand:    rng,
	})

	s := &Session{
		ID:       id,
		Timers:   timers,
		World:    ws,
		Bus:      bus,
		Catalog:  cat,
		Director: dir,
		clock:    d.Clock,
		runner:   coresys.NewRunner(),
		log:      log,
		last:     d.Clock.Now(),
	}

	s.input = system.NewInputSystem(inputQueueSize, inputMaxPerTick, ws, dir, log.Named("input"))
	s.runner.Register(s.input)
	s.runner.Register(system.NewBusSystem(bus))
	s.runner.Register(system.NewDirectorSystem(dir))
	s.runner.Register(system.NewTimerSystem(timers))
	s.runner.Register(system.NewEntitySystem(ws, bus))
	s.runner.Register(system.NewRenderSystem(ws, timers, d.Canvas))
	s.runner.Register(system.NewCleanupSystem(ws))

	s.subscribe()
	s.SpawnShapes(cfg.Session.InitialShapes)

	log.Info("session started",
		zap.Int64("seed", seed),
		zap.Int("shapes", ws.Count()),
		zap.Bool("director", cfg.Director.Enabled),
	)
	return s
}

func (s *Session) subscribe() {
	event.Subscribe(s.Bus, func(event.EventTriggered) { s.stats.Triggered++ })
	event.Subscribe(s.Bus, func(event.EventFinished) { s.stats.Finished++ })
	event.Subscribe(s.Bus, func(event.EntityRemoved) { s.stats.Removed++ })
	event.Subscribe(s.Bus, func(event.Infected) { s.stats.Infections++ })
	event.Subscribe(s.Bus, func(ev event.ToastShown) {
		s.stats.Toasts++
		s.log.Info("toast", zap.String("text", ev.Text))
	})
	event.Subscribe(s.Bus, func(ev event.Explosion) {
		s.stats.Explosions++
		s.log.Debug("explosion", zap.Float64("x", ev.X), zap.Float64("y", ev.Y), zap.Int("particles", ev.Particles))
	})
	event.Subscribe(s.Bus, func(ev event.BossSpawned) {
		s.stats.Bosses++
		s.log.Info("boss on the field", zap.Uint64("entity", uint64(ev.EntityID)))
	})
}

// SpawnShapes places n random shapes at random points.
func (s *Session) SpawnShapes(n int) {
	rng := s.World.Rand()
	for i := 0; i < n; i++ {
		size := minShapeSize + rng.Float64()*shapeSizeSpread
		color := palette[rng.Intn(len(palette))]
		var shape entity.Shape
		switch rng.Intn(3) {
		case 0:
			shape = entity.Circle(size, color)
		case 1:
			shape = entity.Rect(size*2, size*2, color)
		default:
			shape = entity.Triangle(size*2, color)
		}
		s.World.SpawnRandom(shape)
	}
}

// Tick advances the session one frame using the time since the last Tick.
func (s *Session) Tick() {
	if s.closed {
		return
	}
	now := s.clock.Now()
	dt := now.Sub(s.last)
	s.last = now
	s.runner.Tick(dt)
}

// Ticks returns the number of frames run so far.
func (s *Session) Ticks() uint64 { return s.runner.Ticks() }

// Stats returns counters delivered through the bus so far.
func (s *Session) Stats() Stats { return s.stats }

// Click queues a pointer click for the next tick.
func (s *Session) Click(x, y float64) bool {
	return s.input.Enqueue(system.Command{Kind: system.CmdClick, X: x, Y: y})
}

// Trigger queues a forced catalog event for the next tick.
func (s *Session) Trigger(key string) bool {
	return s.input.Enqueue(system.Command{Kind: system.CmdTrigger, Key: key})
}

// SetFlashlight queues a flashlight intensity change for the next tick.
func (s *Session) SetFlashlight(v float64) bool {
	return s.input.Enqueue(system.Command{Kind: system.CmdFlashlight, Value: v})
}

// Close cancels every timer without running end handlers and clears the
// field. Further Ticks do nothing.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	pending := s.Timers.Len()
	s.Timers.CancelAll()
	s.World.Clear()
	s.log.Info("session closed",
		zap.Uint64("ticks", s.runner.Ticks()),
		zap.Int("timers_dropped", pending),
		zap.Int("events", s.stats.Triggered),
	)
}
