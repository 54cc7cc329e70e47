package catalog

import (
	"time"

	"github.com/shapehunt/engine/internal/core/timer"
	"github.com/shapehunt/engine/internal/render"
)

const (
	curtainCloseEnd = 0.4
	curtainOpenAt   = 0.6
	curtainColor    = "#7b1113"
)

// CurtainCover is the fraction of the screen the curtains cover at progress.
func CurtainCover(progress float64) float64 {
	switch {
	case progress <= 0:
		return 0
	case progress < curtainCloseEnd:
		return progress / curtainCloseEnd
	case progress < curtainOpenAt:
		return 1
	case progress >= 1:
		return 0
	default:
		return 1 - (progress-curtainOpenAt)/(1-curtainOpenAt)
	}
}

// Curtains draws two curtains closing over the field, holding shut, and
// opening again. onClosed runs once while they are shut; a timer that ends
// before ever reaching that point still runs it on the way out.
func (c *Catalog) Curtains(d time.Duration, onClosed func()) {
	var closed bool
	fire := func() {
		if closed {
			return
		}
		closed = true
		if onClosed != nil {
			onClosed()
		}
	}

	c.timers.Start(NameCurtains, d, timer.Hooks{
		OnStart: func() { c.triggered(NameCurtains) },
		OnUpdate: func(left time.Duration) {
			if timer.ProgressOf(left, d) >= curtainCloseEnd {
				fire()
			}
		},
		OnFront: func(left time.Duration, cv render.Canvas) {
			cover := CurtainCover(timer.ProgressOf(left, d))
			if cover <= 0 {
				return
			}
			half := cv.Width() / 2 * cover
			cv.SetAlpha(1)
			cv.FillRect(0, 0, half, cv.Height(), curtainColor)
			cv.FillRect(cv.Width()-half, 0, half, cv.Height(), curtainColor)
		},
		OnEnd: func() {
			fire()
			c.finished(NameCurtains)
		},
	})
}
