// Package director decides when gameplay events fire. Once per tick it
// checks the busy and gap rules and, when clear, draws a weighted random
// event from the catalog.
package director

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/shapehunt/engine/internal/catalog"
	"github.com/shapehunt/engine/internal/core/clock"
	"github.com/shapehunt/engine/internal/core/event"
	"github.com/shapehunt/engine/internal/core/timer"
	"github.com/shapehunt/engine/internal/data"
	"github.com/shapehunt/engine/internal/render"
	"github.com/shapehunt/engine/internal/scripting"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToastName is the throwaway timer that shows an event announcement.
const ToastName = "toast"

const (
	toastSize  = 28
	toastColor = "#ffffff"
	toastFade  = 0.25 // fraction of the toast spent fading out
)

// Config controls the pacing of random events.
type Config struct {
	Enabled       bool
	MinGap        time.Duration // shortest wait between draws
	MaxGap        time.Duration // longest wait between draws
	Cooldown      time.Duration // quiet time after an event fires
	ToastDuration time.Duration
}

// Policy rewrites the weight table before each draw.
// *scripting.Engine implements it.
type Policy interface {
	AdjustWeights(ctx scripting.WeightContext, weights map[string]int) map[string]int
}

// Deps are the session collaborators the director drives.
type Deps struct {
	Clock   clock.Clock
	Timers  *timer.Registry
	Catalog *catalog.Catalog
	Bus     *event.Bus
	Policy  Policy // optional
	Log     *zap.Logger
	Rand    *rand.Rand
}

type Director struct {
	cfg     Config
	clock   clock.Clock
	timers  *timer.Registry
	catalog *catalog.Catalog
	params  *data.EventTable
	bus     *event.Bus
	policy  Policy
	log     *zap.Logger
	rng     *rand.Rand
	title   cases.Caser

	perf      Performance
	nextTryAt time.Time
	busyUntil time.Time
	fired     int
}

// New creates a director whose first draw comes one random gap from now.
func New(cfg Config, d Deps) *Director {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if cfg.MaxGap < cfg.MinGap {
		cfg.MaxGap = cfg.MinGap
	}
	dir := &Director{
		cfg:     cfg,
		clock:   d.Clock,
		timers:  d.Timers,
		catalog: d.Catalog,
		params:  d.Catalog.Params(),
		bus:     d.Bus,
		policy:  d.Policy,
		log:     d.Log,
		rng:     d.Rand,
		title:   cases.Title(language.English),
		perf:    Performance{Level: 1},
	}
	dir.nextTryAt = d.Clock.Now().Add(dir.gap())
	return dir
}

// Performance returns the live player performance.
func (d *Director) Performance() *Performance { return &d.perf }

// Fired returns how many events the director has started.
func (d *Director) Fired() int { return d.fired }

// NextTryAt is the earliest time of the next random draw.
func (d *Director) NextTryAt() time.Time { return d.nextTryAt }

// BusyUntil is the end of the post-event cooldown.
func (d *Director) BusyUntil() time.Time { return d.busyUntil }

// Busy reports whether a disruptive event is running or the cooldown holds.
func (d *Director) Busy() bool {
	for _, name := range catalog.Names() {
		if d.timers.IsActive(name) {
			return true
		}
	}
	return d.clock.Now().Before(d.busyUntil)
}

// Update runs once per tick and fires at most one event.
func (d *Director) Update() {
	if !d.cfg.Enabled || d.Busy() {
		return
	}
	now := d.clock.Now()
	if now.Before(d.nextTryAt) {
		return
	}
	key, ok := Pick(d.weights(), d.rng.Float64())
	if !ok {
		d.nextTryAt = now.Add(d.gap())
		return
	}
	d.fire(key, now)
}

// Trigger forces the event under key unless the director is busy.
func (d *Director) Trigger(key string) bool {
	if d.Busy() {
		d.log.Debug("trigger refused, busy", zap.String("event", key))
		return false
	}
	return d.fire(key, d.clock.Now())
}

func (d *Director) fire(key string, now time.Time) bool {
	if !d.catalog.Run(key) {
		return false
	}
	d.fired++
	d.nextTryAt = now.Add(d.gap())
	d.busyUntil = now.Add(d.cfg.Cooldown)
	d.toast(d.toastText(key))
	d.log.Info("director fired event",
		zap.String("event", key),
		zap.Time("next_try_at", d.nextTryAt),
		zap.Time("busy_until", d.busyUntil),
	)
	return true
}

// weights returns the table weights after the policy had its say.
func (d *Director) weights() map[string]int {
	w := d.params.Weights()
	if d.policy != nil {
		w = d.policy.AdjustWeights(d.perf.context(), w)
	}
	return w
}

// gap draws a wait in [MinGap, MaxGap].
func (d *Director) gap() time.Duration {
	span := d.cfg.MaxGap - d.cfg.MinGap
	if span <= 0 {
		return d.cfg.MinGap
	}
	return d.cfg.MinGap + time.Duration(d.rng.Int63n(int64(span)+1))
}

func (d *Director) toastText(key string) string {
	text := strings.ReplaceAll(key, "_", " ")
	if p := d.params.Get(key); p != nil && p.Toast != "" {
		text = p.Toast
	}
	return d.title.String(text)
}

// toast announces text for ToastDuration. A newer toast replaces the old one.
func (d *Director) toast(text string) {
	dur := d.cfg.ToastDuration
	if dur <= 0 {
		return
	}
	d.timers.Start(ToastName, dur, timer.Hooks{
		OnFront: func(left time.Duration, c render.Canvas) {
			alpha := 1.0
			if f := float64(left) / float64(dur); f < toastFade {
				alpha = f / toastFade
			}
			c.SetAlpha(alpha)
			c.Text(c.Width()/2, toastSize*2, toastSize, text, toastColor)
			c.SetAlpha(1)
		},
	})
	if d.bus != nil {
		event.Emit(d.bus, event.ToastShown{Text: text})
	}
}

// Pick draws a key from weights with a uniform roll in [0,1). Keys are
// walked in sorted order so the same roll always picks the same key.
// Non-positive weights never win; an empty or all-zero table picks nothing.
func Pick(weights map[string]int, roll float64) (string, bool) {
	keys := make([]string, 0, len(weights))
	total := 0
	for k, w := range weights {
		if w > 0 {
			keys = append(keys, k)
			total += w
		}
	}
	if total == 0 {
		return "", false
	}
	sort.Strings(keys)

	target := roll * float64(total)
	acc := 0
	for _, k := range keys {
		acc += weights[k]
		if target < float64(acc) {
			return k, true
		}
	}
	return keys[len(keys)-1], true
}
