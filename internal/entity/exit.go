package entity

// ExitKind is the animation played when an interactor leaves the field.
type ExitKind int

const (
	ExitFade ExitKind = iota
	ExitShiver
	ExitBlast
)

func (k ExitKind) String() string {
	switch k {
	case ExitFade:
		return "fade"
	case ExitShiver:
		return "shiver"
	case ExitBlast:
		return "blast"
	}
	return "unknown"
}

const (
	fadeFrames   = 30
	shiverFrames = 40
	shiverMax    = 6.0 // px of jitter at the end of the ramp
	blastFrames  = 30
	blastScale   = 1.0 // extra scale reached at the end of a blast
)

// ExitWeights gives the relative odds of each exit animation.
type ExitWeights struct {
	Fade   float64 `yaml:"fade"`
	Shiver float64 `yaml:"shiver"`
	Blast  float64 `yaml:"blast"`
}

// DefaultExitWeights picks each animation with equal odds.
var DefaultExitWeights = ExitWeights{Fade: 1, Shiver: 1, Blast: 1}

// PickExitAnimation draws an exit animation by weight. Non-positive weights
// never win; all-zero weights fall back to fade.
func PickExitAnimation(rng Rand, w ExitWeights) ExitKind {
	kinds := [...]ExitKind{ExitFade, ExitShiver, ExitBlast}
	weights := [...]float64{w.Fade, w.Shiver, w.Blast}
	total := 0.0
	for _, v := range weights {
		if v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return ExitFade
	}
	roll := rng.Float64() * total
	acc := 0.0
	for i, v := range weights {
		if v <= 0 {
			continue
		}
		acc += v
		if roll < acc {
			return kinds[i]
		}
	}
	return kinds[len(kinds)-1]
}

// Exit returns the animation chosen at construction.
func (e *Interactor) Exit() ExitKind { return e.exit }

// StartExit triggers the exit animation. Further calls are ignored.
// The interactor stops reacting to clicks at once.
func (e *Interactor) StartExit() {
	if e.exitStarted {
		return
	}
	e.exitStarted = true
	e.exitFrame = 0
	e.enabled = false
}

// Exiting reports whether the exit animation is running.
func (e *Interactor) Exiting() bool { return e.exitStarted }

// stepExit advances the exit animation one frame and reports completion.
func (e *Interactor) stepExit(ctx *Context) bool {
	e.exitFrame++
	switch e.exit {
	case ExitShiver:
		ramp := float64(e.exitFrame) / shiverFrames
		if ramp > 1 {
			ramp = 1
		}
		amp := shiverMax * ramp
		e.x += (ctx.Rand.Float64()*2 - 1) * amp
		e.y += (ctx.Rand.Float64()*2 - 1) * amp
		return e.exitFrame >= shiverFrames
	case ExitBlast:
		t := float64(e.exitFrame) / blastFrames
		if t > 1 {
			t = 1
		}
		e.scale = 1 + blastScale*t
		e.alpha = 1 - t
		return e.exitFrame >= blastFrames
	default:
		e.alpha -= 1.0 / fadeFrames
		if e.alpha <= 0 {
			e.alpha = 0
			return true
		}
		return false
	}
}
