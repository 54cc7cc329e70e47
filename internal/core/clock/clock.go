package clock

import (
	"sync"
	"time"
)

// Clock is the monotonic time source consumed by the timer registry, the
// director and every catalog event. The game loop never reads time.Now directly.
type Clock interface {
	Now() time.Time
}

// Monotonic reads the host's monotonic clock.
type Monotonic struct{}

func NewMonotonic() *Monotonic {
	return &Monotonic{}
}

func (Monotonic) Now() time.Time {
	return time.Now()
}

// Mock is a controllable clock for tests and replays.
type Mock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set jumps the clock to t. Going backwards is allowed; registry math clamps.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
