package catalog

import (
	"time"

	"github.com/shapehunt/engine/internal/core/event"
	"github.com/shapehunt/engine/internal/core/timer"
	"github.com/shapehunt/engine/internal/data"
	"github.com/shapehunt/engine/internal/entity"
	"github.com/shapehunt/engine/internal/render"
	"go.uber.org/zap"
)

const (
	warningBlink = 250 * time.Millisecond
	warningSize  = 48
	warningColor = "#ff1744"
	bossColor    = "#8b0000"
)

// BannerVisible reports whether a blinking banner is lit after elapsed.
func BannerVisible(elapsed time.Duration) bool {
	return (elapsed/warningBlink)%2 == 0
}

// Warning blinks text in the middle of the screen for d.
func (c *Catalog) Warning(d time.Duration, text string) {
	c.banner(NameWarning, d, text, nil)
}

// WarningThenBoats shows the boats warning for warnD and starts the boats
// for boatD when it ends, sailing at the warning_boats speed.
func (c *Catalog) WarningThenBoats(warnD, boatD time.Duration, lanes int) {
	p := c.param(data.KeyWarningThenBoats)
	c.banner(NameWarning, warnD, p.Text, func() {
		c.sail(boatD, lanes, p.Speed)
	})
}

// BossEntrance shows a warning for warnD, then spawns a jittering boss with
// the given shape at a random point.
func (c *Catalog) BossEntrance(warnD time.Duration, shape entity.Shape) {
	p := c.param(data.KeyBoss)
	jitter := p.Strength
	c.banner(NameBoss, warnD, p.Text, func() {
		x, y := c.world.RandomPoint(shape.BoundsRadius())
		boss := c.world.Spawn(shape, x, y, c.world.Movement)
		boss.Boss = true
		if jitter > 0 {
			boss.AddModifier(&entity.Jitter{Rate: jitter})
		}
		c.log.Info("boss spawned", zap.Uint64("entity", uint64(boss.EntityID())))
		if c.bus != nil {
			event.Emit(c.bus, event.BossSpawned{EntityID: boss.EntityID()})
		}
	})
}

// banner registers a blinking text overlay under name. then runs from the
// timer's end handler, after the record is gone.
func (c *Catalog) banner(name string, d time.Duration, text string, then func()) {
	c.timers.Start(name, d, timer.Hooks{
		OnStart: func() { c.triggered(name) },
		OnFront: func(left time.Duration, cv render.Canvas) {
			if text == "" || !BannerVisible(elapsed(left, d)) {
				return
			}
			cv.SetAlpha(1)
			cv.Text(cv.Width()/2, cv.Height()/2, warningSize, text, warningColor)
		},
		OnEnd: func() {
			c.finished(name)
			if then != nil {
				then()
			}
		},
	})
}
