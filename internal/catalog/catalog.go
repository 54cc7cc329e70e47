// Package catalog holds the timed gameplay events. Each event snapshots the
// interactors it takes over, registers one named timer whose callbacks drive
// a progress-keyed phase machine, and hands the interactors back when the
// timer ends.
package catalog

import (
	"math/rand"
	"time"

	"github.com/shapehunt/engine/internal/core/event"
	"github.com/shapehunt/engine/internal/core/timer"
	"github.com/shapehunt/engine/internal/data"
	"github.com/shapehunt/engine/internal/entity"
	"github.com/shapehunt/engine/internal/world"
	"go.uber.org/zap"
)

// Timer names. Distinct names let compound events chain without colliding.
const (
	NameBlackHole = "black_hole"
	NameZombie    = "zombie"
	NameBoats     = "boats"
	NameCurtains  = "curtains"
	NameWarning   = "warning"
	NameFormation = "formation"
	NameBoss      = "boss"
)

// Names returns the disruptive event names the director treats as busy.
func Names() []string {
	return []string{NameBlackHole, NameZombie, NameBoats, NameCurtains, NameWarning, NameFormation, NameBoss}
}

// Deps is everything catalog events need from the session.
type Deps struct {
	Timers *timer.Registry
	World  *world.State
	Bus    *event.Bus
	Log    *zap.Logger
	Params *data.EventTable
	Rand   *rand.Rand // defaults to the world's source
}

// Catalog triggers gameplay events against one session.
type Catalog struct {
	timers *timer.Registry
	world  *world.State
	bus    *event.Bus
	log    *zap.Logger
	params *data.EventTable
	rng    *rand.Rand
}

func New(d Deps) *Catalog {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Params == nil {
		d.Params = data.DefaultEventTable()
	}
	if d.Rand == nil {
		d.Rand = d.World.Rand()
	}
	return &Catalog{
		timers: d.Timers,
		world:  d.World,
		bus:    d.Bus,
		log:    d.Log,
		params: d.Params,
		rng:    d.Rand,
	}
}

// Params returns the tuning table the catalog reads.
func (c *Catalog) Params() *data.EventTable { return c.params }

// Run starts the event configured under key with its table parameters.
// Unknown keys report false.
func (c *Catalog) Run(key string) bool {
	p := c.params.Get(key)
	if p == nil {
		c.log.Warn("unknown catalog event", zap.String("event", key))
		return false
	}
	switch key {
	case data.KeyBlackHole:
		c.BlackHole(p.Duration())
	case data.KeyZombie:
		c.ZombieInfection(p.Duration())
	case data.KeyBoats:
		c.BoatLines(p.Duration(), p.Lanes)
	case data.KeyWarningThenBoats:
		c.WarningThenBoats(p.Warning(), p.Duration(), p.Lanes)
	case data.KeyCurtains:
		c.Curtains(p.Duration(), nil)
	case data.KeyFormation:
		c.Formation(p.Duration())
	case data.KeyBoss:
		c.BossEntrance(p.Warning(), entity.Circle(p.Radius, bossColor))
	case data.KeyWarning:
		c.Warning(p.Duration(), p.Text)
	default:
		c.log.Warn("catalog event has no routine", zap.String("event", key))
		return false
	}
	return true
}

// param returns the table entry for key, falling back to the built-in tuning.
func (c *Catalog) param(key string) *data.EventParams {
	if p := c.params.Get(key); p != nil {
		return p
	}
	return data.DefaultEventTable().Get(key)
}

// capture snapshots every live interactor that is not leaving the field.
func (c *Catalog) capture(withPos bool) []entity.Snapshot {
	var snaps []entity.Snapshot
	c.world.Each(func(e *entity.Interactor) {
		if e.Exiting() {
			return
		}
		if withPos {
			snaps = append(snaps, entity.CaptureWithPosition(e))
		} else {
			snaps = append(snaps, entity.Capture(e))
		}
	})
	return snaps
}

// restore hands interactors back. Ids removed or exiting since the capture
// are skipped.
func (c *Catalog) restore(snaps []entity.Snapshot) {
	for _, s := range snaps {
		if e, ok := c.live(s); ok {
			s.Restore(e)
		}
	}
}

func (c *Catalog) live(s entity.Snapshot) (*entity.Interactor, bool) {
	e, ok := c.world.Get(s.ID)
	if !ok || e.Exiting() {
		return nil, false
	}
	return e, true
}

// takeOver strips modifiers and motion so the event alone moves e.
func takeOver(e *entity.Interactor) {
	m := e.Movement()
	m.Enabled = false
	e.SetMovement(m)
	e.SetModifiers(nil)
	e.SetFrozen(false)
	e.SetVelocity(0, 0)
}

func (c *Catalog) triggered(name string) {
	c.log.Info("event triggered", zap.String("event", name))
	if c.bus != nil {
		event.Emit(c.bus, event.EventTriggered{Name: name})
	}
}

func (c *Catalog) finished(name string) {
	c.log.Info("event finished", zap.String("event", name))
	if c.bus != nil {
		event.Emit(c.bus, event.EventFinished{Name: name})
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// elapsed is how far into a d-long timer we are given time left.
func elapsed(left, d time.Duration) time.Duration {
	if e := d - left; e > 0 {
		return e
	}
	return 0
}
