package timer

import (
	"fmt"
	"time"

	"github.com/shapehunt/engine/internal/core/clock"
	"github.com/shapehunt/engine/internal/render"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

// UpdateFunc is called once per Update with the time left before the deadline.
type UpdateFunc func(left time.Duration)

// FrontFunc is called once per RenderFront, after all entities were drawn.
type FrontFunc func(left time.Duration, c render.Canvas)

// Hooks is the callback bundle of one named timer. Every field is optional.
type Hooks struct {
	OnStart  func()
	OnUpdate UpdateFunc
	OnFront  FrontFunc
	OnEnd    func()
}

// Empty reports whether no callback is set.
func (h Hooks) Empty() bool {
	return h.OnStart == nil && h.OnUpdate == nil && h.OnFront == nil && h.OnEnd == nil
}

type record struct {
	name     string
	endAt    time.Time
	duration time.Duration
	hooks    Hooks
}

// Registry is the named-timer scheduler. A name maps to at most one live
// record. Single-goroutine access only (game loop).
type Registry struct {
	clock   clock.Clock
	log     *zap.Logger
	ins     *instruments
	records map[string]*record
	order   []*record // insertion order of the most recent Start per name
}

// NewRegistry creates an empty registry reading time from c.
func NewRegistry(c clock.Clock, log *zap.Logger) *Registry {
	ins, err := newInstruments(meter())
	if err != nil {
		log.Warn("timer metrics disabled", zap.Error(err))
		ins, _ = newInstruments(noop.NewMeterProvider().Meter(instrumentationName))
	}
	return &Registry{
		clock:   c,
		log:     log,
		ins:     ins,
		records: make(map[string]*record, 16),
		order:   make([]*record, 0, 16),
	}
}

// Start registers name for d. When name is not active OnStart fires
// immediately. When it is active the deadline and every callback are replaced
// and OnStart is not fired again; the previous OnEnd is dropped.
// A negative d is already expired and ends on the next Update.
func (r *Registry) Start(name string, d time.Duration, hooks Hooks) {
	if hooks.Empty() {
		r.log.Warn("timer started without callbacks", zap.String("timer", name))
	}
	rec := &record{
		name:     name,
		endAt:    r.clock.Now().Add(d),
		duration: d,
		hooks:    hooks,
	}

	_, existed := r.records[name]
	if existed {
		r.unlink(name)
	}
	r.records[name] = rec
	r.order = append(r.order, rec)

	if existed {
		r.ins.add(r.ins.restarted, name)
		r.log.Debug("timer restarted", zap.String("timer", name), zap.Duration("duration", d))
		return
	}
	r.ins.add(r.ins.started, name)
	r.log.Debug("timer started", zap.String("timer", name), zap.Duration("duration", d))
	if hooks.OnStart != nil {
		r.invoke(name, "start", hooks.OnStart)
	}
}

// Update advances every active timer. Records removed or replaced by an
// earlier callback in the same pass are skipped; records started during the
// pass are first seen on the next Update.
func (r *Registry) Update() {
	if len(r.order) == 0 {
		return
	}
	pass := make([]*record, len(r.order))
	copy(pass, r.order)

	for _, rec := range pass {
		if !r.current(rec) {
			continue
		}
		now := r.clock.Now()
		left := leftAt(rec, now)
		if left > 0 && rec.hooks.OnUpdate != nil {
			fn := rec.hooks.OnUpdate
			r.invoke(rec.name, "update", func() { fn(left) })
		}
		if !r.current(rec) || now.Before(rec.endAt) {
			continue
		}
		// Remove before OnEnd so the handler may Start the same name again.
		r.remove(rec.name)
		r.ins.add(r.ins.ended, rec.name)
		if rec.hooks.OnEnd != nil {
			r.invoke(rec.name, "end", rec.hooks.OnEnd)
		}
	}
}

// RenderFront calls OnFront on every active timer. Deadlines are untouched.
func (r *Registry) RenderFront(c render.Canvas) {
	if len(r.order) == 0 {
		return
	}
	pass := make([]*record, len(r.order))
	copy(pass, r.order)

	now := r.clock.Now()
	for _, rec := range pass {
		if rec.hooks.OnFront == nil || !r.current(rec) {
			continue
		}
		fn := rec.hooks.OnFront
		left := leftAt(rec, now)
		r.invoke(rec.name, "front", func() { fn(left, c) })
	}
}

// IsActive reports whether name has a live record.
func (r *Registry) IsActive(name string) bool {
	_, ok := r.records[name]
	return ok
}

// TimeLeft returns the time until name's deadline, or 0 when not active.
func (r *Registry) TimeLeft(name string) time.Duration {
	rec, ok := r.records[name]
	if !ok {
		return 0
	}
	return leftAt(rec, r.clock.Now())
}

// Progress returns the elapsed fraction of name's duration in [0,1], or 0
// when not active.
func (r *Registry) Progress(name string) float64 {
	rec, ok := r.records[name]
	if !ok {
		return 0
	}
	return ProgressOf(leftAt(rec, r.clock.Now()), rec.duration)
}

// Cancel removes name. When runOnEnd is set its OnEnd still fires.
// Unknown names are ignored.
func (r *Registry) Cancel(name string, runOnEnd bool) {
	rec, ok := r.records[name]
	if !ok {
		return
	}
	r.remove(name)
	r.ins.add(r.ins.cancelled, name)
	r.log.Debug("timer cancelled", zap.String("timer", name), zap.Bool("run_on_end", runOnEnd))
	if runOnEnd && rec.hooks.OnEnd != nil {
		r.invoke(name, "end", rec.hooks.OnEnd)
	}
}

// CancelAll drops every timer without running OnEnd. Used at session teardown.
func (r *Registry) CancelAll() {
	for name := range r.records {
		r.ins.add(r.ins.cancelled, name)
	}
	clear(r.records)
	r.order = r.order[:0]
}

// Len returns the number of active timers.
func (r *Registry) Len() int {
	return len(r.records)
}

// ProgressOf converts time left of a d-long timer into elapsed fraction.
func ProgressOf(left, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	p := 1 - float64(left)/float64(d)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func leftAt(rec *record, now time.Time) time.Duration {
	left := rec.endAt.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

func (r *Registry) current(rec *record) bool {
	return r.records[rec.name] == rec
}

func (r *Registry) remove(name string) {
	delete(r.records, name)
	r.unlink(name)
}

func (r *Registry) unlink(name string) {
	for i, rec := range r.order {
		if rec.name == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// invoke runs one callback and recovers a panic so the remaining timers of
// the tick still run.
func (r *Registry) invoke(name, phase string, fn func()) {
	defer func() {
		if v := recover(); v != nil {
			r.ins.add(r.ins.panics, name)
			r.log.Error("timer callback panicked",
				zap.String("timer", name),
				zap.String("phase", phase),
				zap.String("panic", fmt.Sprint(v)),
			)
		}
	}()
	fn()
}
