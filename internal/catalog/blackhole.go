package catalog

import (
	"time"

	"github.com/shapehunt/engine/internal/core/event"
	"github.com/shapehunt/engine/internal/core/timer"
	"github.com/shapehunt/engine/internal/data"
	"github.com/shapehunt/engine/internal/entity"
	"github.com/shapehunt/engine/internal/render"
)

// BlackHolePhase is the stage of a black hole, keyed purely on progress.
type BlackHolePhase int

const (
	Growing   BlackHolePhase = iota // 0-10%
	Pulling                         // 10-50%
	Holding                         // 50-80%
	Shrinking                       // 80-100%
)

func (p BlackHolePhase) String() string {
	switch p {
	case Growing:
		return "growing"
	case Pulling:
		return "pulling"
	case Holding:
		return "holding"
	case Shrinking:
		return "shrinking"
	}
	return "unknown"
}

const (
	blackHoleGrowEnd   = 0.1
	blackHolePullEnd   = 0.5
	blackHoleShrinkAt  = 0.8
	blackHoleParticles = 48
	blackHoleColor     = "#000000"
)

// BlackHolePhaseAt maps progress in [0,1] to a phase.
func BlackHolePhaseAt(progress float64) BlackHolePhase {
	switch {
	case progress < blackHoleGrowEnd:
		return Growing
	case progress < blackHolePullEnd:
		return Pulling
	case progress < blackHoleShrinkAt:
		return Holding
	default:
		return Shrinking
	}
}

// BlackHoleRadius is the drawn radius at progress for a hole of full radius r.
func BlackHoleRadius(progress, r float64) float64 {
	switch BlackHolePhaseAt(progress) {
	case Growing:
		if progress < 0 {
			return 0
		}
		return lerp(0, r, progress/blackHoleGrowEnd)
	case Shrinking:
		t := (progress - blackHoleShrinkAt) / (1 - blackHoleShrinkAt)
		if t > 1 {
			t = 1
		}
		return lerp(r, 0, t)
	default:
		return r
	}
}

// BlackHole opens a hole in the middle of the field for d. From 10% every
// interactor is pulled to the center, from 80% the captured ones vanish as
// the hole closes, and at the end they are handed back scattered across the
// field with an explosion.
func (c *Catalog) BlackHole(d time.Duration) {
	p := c.param(data.KeyBlackHole)
	r := p.Radius
	strength := p.Strength
	if strength <= 0 {
		strength = 0.08
	}
	cx, cy := c.world.Center()
	snaps := c.capture(false)

	var pulling, hidden bool

	c.timers.Start(NameBlackHole, d, timer.Hooks{
		OnStart: func() { c.triggered(NameBlackHole) },
		OnUpdate: func(left time.Duration) {
			phase := BlackHolePhaseAt(timer.ProgressOf(left, d))
			if phase >= Pulling && !pulling {
				pulling = true
				for _, s := range snaps {
					if e, ok := c.live(s); ok {
						takeOver(e)
						e.AddModifier(&entity.Pull{X: cx, Y: cy, Strength: strength})
					}
				}
			}
			if phase == Shrinking && !hidden {
				hidden = true
				for _, s := range snaps {
					if e, ok := c.live(s); ok {
						e.SetVisible(false)
						e.SetEnabled(false)
					}
				}
			}
		},
		OnFront: func(left time.Duration, cv render.Canvas) {
			rad := BlackHoleRadius(timer.ProgressOf(left, d), r)
			if rad > 0 {
				cv.SetAlpha(1)
				cv.FillCircle(cx, cy, rad, blackHoleColor)
			}
		},
		OnEnd: func() {
			for _, s := range snaps {
				e, ok := c.live(s)
				if !ok {
					continue
				}
				s.Restore(e)
				x, y := c.world.RandomPoint(e.BoundsRadius())
				e.SetPosition(x, y)
			}
			if c.bus != nil {
				event.Emit(c.bus, event.Explosion{X: cx, Y: cy, Particles: blackHoleParticles})
			}
			c.finished(NameBlackHole)
		},
	})
}
