package catalog

import (
	"time"

	"github.com/shapehunt/engine/internal/core/ecs"
	"github.com/shapehunt/engine/internal/core/timer"
	"github.com/shapehunt/engine/internal/data"
)

type rider struct {
	id  ecs.EntityID
	y   float64
	dir float64
}

// LaneY is the vertical center of lane i out of n across height h.
func LaneY(i, n int, h float64) float64 {
	return h * (float64(i) + 0.5) / float64(n)
}

// BoatLines lines every interactor up in horizontal lanes for d. Even lanes
// sail right, odd lanes left, and riders wrap at the edges. Interactors keep
// the position they reached when the event ends.
func (c *Catalog) BoatLines(d time.Duration, lanes int) {
	c.sail(d, lanes, c.param(data.KeyBoats).Speed)
}

// sail runs the boats event with riders moving speed px per tick.
func (c *Catalog) sail(d time.Duration, lanes int, speed float64) {
	if speed <= 0 {
		speed = 3
	}
	if lanes < 1 {
		lanes = 1
	}
	snaps := c.capture(false)
	var riders []rider

	c.timers.Start(NameBoats, d, timer.Hooks{
		OnStart: func() {
			c.triggered(NameBoats)
			i := 0
			for _, s := range snaps {
				e, ok := c.live(s)
				if !ok {
					continue
				}
				lane := i % lanes
				i++
				dir := 1.0
				if lane%2 == 1 {
					dir = -1
				}
				y := LaneY(lane, lanes, c.world.Bounds.H)
				takeOver(e)
				x, _ := e.Position()
				e.SetPosition(x, y)
				riders = append(riders, rider{id: e.EntityID(), y: y, dir: dir})
			}
		},
		OnUpdate: func(time.Duration) {
			w := c.world.Bounds.W
			for _, rd := range riders {
				e, ok := c.world.Get(rd.id)
				if !ok || e.Exiting() {
					continue
				}
				r := e.BoundsRadius()
				x, _ := e.Position()
				x += rd.dir * speed
				switch {
				case x > w-r:
					x = r
				case x < r:
					x = w - r
				}
				e.SetPosition(x, rd.y)
				e.SetVelocity(rd.dir*speed, 0)
			}
		},
		OnEnd: func() {
			c.restore(snaps)
			c.finished(NameBoats)
		},
	})
}
