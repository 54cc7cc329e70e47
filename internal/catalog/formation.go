package catalog

import (
	"math"
	"time"

	"github.com/shapehunt/engine/internal/core/ecs"
	"github.com/shapehunt/engine/internal/core/timer"
	"github.com/shapehunt/engine/internal/data"
)

const (
	formationGatherEnd = 0.3
	formationReleaseAt = 0.8
	formationEase      = 0.15
	formationSpin      = 0.01 // radians per tick while holding
)

// RingSlot is the position of slot i of n on a ring of radius r around (cx,cy).
func RingSlot(i, n int, cx, cy, r, turn float64) (float64, float64) {
	a := 2*math.Pi*float64(i)/float64(n) + turn
	return cx + r*math.Cos(a), cy + r*math.Sin(a)
}

// Formation gathers every interactor on a ring around the center, spins the
// ring slowly, and releases them at 80% of d.
func (c *Catalog) Formation(d time.Duration) {
	p := c.param(data.KeyFormation)
	cx, cy := c.world.Center()
	snaps := c.capture(false)
	var members []ecs.EntityID
	var released bool
	turn := 0.0

	release := func() {
		if released {
			return
		}
		released = true
		c.restore(snaps)
	}

	c.timers.Start(NameFormation, d, timer.Hooks{
		OnStart: func() {
			c.triggered(NameFormation)
			for _, s := range snaps {
				if e, ok := c.live(s); ok {
					takeOver(e)
					members = append(members, e.EntityID())
				}
			}
		},
		OnUpdate: func(left time.Duration) {
			progress := timer.ProgressOf(left, d)
			if progress >= formationReleaseAt {
				release()
				return
			}
			if progress >= formationGatherEnd {
				turn += formationSpin
			}
			n := len(members)
			for i, id := range members {
				e, ok := c.world.Get(id)
				if !ok || e.Exiting() {
					continue
				}
				r := math.Min(p.Radius, math.Min(c.world.Bounds.W, c.world.Bounds.H)/2-e.BoundsRadius())
				tx, ty := RingSlot(i, n, cx, cy, math.Max(0, r), turn)
				x, y := e.Position()
				e.SetPosition(x+(tx-x)*formationEase, y+(ty-y)*formationEase)
			}
		},
		OnEnd: func() {
			release()
			c.finished(NameFormation)
		},
	})
}
