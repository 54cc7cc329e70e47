package timer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/shapehunt/engine/internal/core/timer"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// instruments groups the registry's lifecycle counters. The global meter is a
// no-op until the host installs a provider.
type instruments struct {
	started   metric.Int64Counter
	restarted metric.Int64Counter
	ended     metric.Int64Counter
	cancelled metric.Int64Counter
	panics    metric.Int64Counter
}

func newInstruments(m metric.Meter) (*instruments, error) {
	ins := &instruments{}

	var err error
	if ins.started, err = m.Int64Counter("timer.started",
		metric.WithDescription("Timers registered under a name that was not active")); err != nil {
		return nil, fmt.Errorf("creating started counter: %w", err)
	}
	if ins.restarted, err = m.Int64Counter("timer.restarted",
		metric.WithDescription("Start calls that replaced an active timer")); err != nil {
		return nil, fmt.Errorf("creating restarted counter: %w", err)
	}
	if ins.ended, err = m.Int64Counter("timer.ended",
		metric.WithDescription("Timers removed because their deadline passed")); err != nil {
		return nil, fmt.Errorf("creating ended counter: %w", err)
	}
	if ins.cancelled, err = m.Int64Counter("timer.cancelled",
		metric.WithDescription("Timers removed by Cancel")); err != nil {
		return nil, fmt.Errorf("creating cancelled counter: %w", err)
	}
	if ins.panics, err = m.Int64Counter("timer.callback.panics",
		metric.WithDescription("Timer callbacks that panicked and were recovered")); err != nil {
		return nil, fmt.Errorf("creating panics counter: %w", err)
	}
	return ins, nil
}

func (ins *instruments) add(c metric.Int64Counter, name string, attrs ...attribute.KeyValue) {
	attrs = append(attrs, attribute.String("timer", name))
	c.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}
