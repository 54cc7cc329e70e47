package entity

// Update runs one tick of the interactor state machine:
//
//  1. global hard freeze (flashlight at max in an arming mode) zeroes velocity and stops
//  2. a running exit animation advances one frame; completion requests removal
//  3. modifiers apply in list order
//  4. frozen or immobile interactors skip integration but stay clamped in bounds
//  5. every SwitchRate ticks a new target velocity is drawn
//  6. velocity eases toward the target by LerpStrength
//  7. position integrates velocity
//  8. edges clamp the position and flip the velocity component
func (e *Interactor) Update(ctx *Context) {
	if e.removed {
		return
	}
	if ctx.Globals.HardFrozen() {
		e.vx, e.vy = 0, 0
		return
	}

	if e.exitStarted && e.stepExit(ctx) {
		e.removed = true
		if ctx.Remove != nil {
			ctx.Remove(e.id)
		}
		return
	}

	for _, m := range e.modifiers {
		m.Apply(e, ctx)
	}

	if e.state.Frozen || !e.movement.Enabled {
		e.clamp(ctx.Bounds)
		return
	}

	rate := e.movement.SwitchRate
	if rate < 1 {
		rate = 1
	}
	if e.frame%rate == 0 {
		lim := e.movement.VelocityLimit
		e.tvx = (ctx.Rand.Float64()*2 - 1) * lim
		e.tvy = (ctx.Rand.Float64()*2 - 1) * lim
	}
	e.frame++

	k := e.movement.LerpStrength
	e.vx += k * (e.tvx - e.vx)
	e.vy += k * (e.tvy - e.vy)

	e.x += e.vx
	e.y += e.vy

	e.reflect(ctx.Bounds)
}

func (e *Interactor) reflect(b Bounds) {
	r := e.BoundsRadius()
	if e.x < r {
		e.x = r
		e.vx = -e.vx
	} else if e.x > b.W-r {
		e.x = b.W - r
		e.vx = -e.vx
	}
	if e.y < r {
		e.y = r
		e.vy = -e.vy
	} else if e.y > b.H-r {
		e.y = b.H - r
		e.vy = -e.vy
	}
}

func (e *Interactor) clamp(b Bounds) {
	r := e.BoundsRadius()
	e.x = clampf(e.x, r, b.W-r)
	e.y = clampf(e.y, r, b.H-r)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
