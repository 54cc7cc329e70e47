package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shapehunt/engine/internal/catalog"
	"github.com/shapehunt/engine/internal/config"
	"github.com/shapehunt/engine/internal/core/clock"
	"github.com/shapehunt/engine/internal/data"
	"github.com/shapehunt/engine/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const frame = 16 * time.Millisecond

func testConfig(shapes int) *config.Config {
	cfg := config.Default()
	cfg.Session.Seed = 7
	cfg.Session.InitialShapes = shapes
	cfg.Director.Enabled = false
	return cfg
}

func newSession(t *testing.T, cfg *config.Config) (*Session, *clock.Mock, *render.Recorder) {
	t.Helper()
	clk := clock.NewMock(time.Unix(100, 0))
	rec := render.NewRecorder(cfg.Session.Width, cfg.Session.Height)
	s := New(cfg, Deps{Log: zaptest.NewLogger(t), Clock: clk, Canvas: rec})
	t.Cleanup(s.Close)
	return s, clk, rec
}

func run(s *Session, clk *clock.Mock, n int) {
	for i := 0; i < n; i++ {
		clk.Advance(frame)
		s.Tick()
	}
}

func TestNewSpawnsShapes(t *testing.T) {
	s, _, _ := newSession(t, testConfig(5))
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, 5, s.World.Count())
	assert.Equal(t, 0, s.Timers.Len())
}

func TestClickFindsAndRemovesShape(t *testing.T) {
	s, clk, _ := newSession(t, testConfig(5))
	target := s.World.All()[0]
	x, y := target.Position()
	want, ok := s.World.HitTest(x, y)
	require.True(t, ok)

	require.True(t, s.Click(x, y))
	run(s, clk, 1)
	assert.True(t, want.Exiting())
	assert.Equal(t, 1, s.Director.Performance().Finds)

	run(s, clk, 60)
	assert.Equal(t, 4, s.World.Count())
	_, ok = s.World.Get(want.EntityID())
	assert.False(t, ok)
	assert.Equal(t, 1, s.Stats().Removed)
}

func TestClickOnEmptySpaceIsAMiss(t *testing.T) {
	s, clk, _ := newSession(t, testConfig(0))
	s.Click(10, 10)
	run(s, clk, 1)
	perf := s.Director.Performance()
	assert.Equal(t, 1, perf.Misses)
	assert.Equal(t, 0, perf.Finds)
}

func TestTriggerRunsEventToCompletion(t *testing.T) {
	s, clk, rec := newSession(t, testConfig(6))
	s.Trigger(data.KeyBlackHole)
	run(s, clk, 1)
	require.True(t, s.Timers.IsActive(catalog.NameBlackHole))
	assert.Equal(t, 1, s.Director.Fired())

	run(s, clk, 300)
	assert.False(t, s.Timers.IsActive(catalog.NameBlackHole))
	st := s.Stats()
	assert.Equal(t, 1, st.Triggered)
	assert.Equal(t, 1, st.Finished)
	assert.Equal(t, 1, st.Explosions)
	assert.Equal(t, 1, st.Toasts)
	assert.Equal(t, 6, s.World.Count())
	for _, e := range s.World.All() {
		assert.True(t, e.Visible())
		assert.True(t, e.Movement().Enabled)
	}
	assert.NotZero(t, rec.Count("circle")+rec.Count("rect")+rec.Count("triangle"))
}

func TestFlashlightHardFreeze(t *testing.T) {
	cfg := testConfig(4)
	cfg.Flashlight.FreezeAtFull = true
	s, clk, _ := newSession(t, cfg)

	s.SetFlashlight(1e6)
	run(s, clk, 1)
	assert.Equal(t, cfg.Flashlight.Max, s.World.Globals.FlashlightIntensity)

	before := make(map[uint64][2]float64)
	for _, e := range s.World.All() {
		x, y := e.Position()
		before[uint64(e.EntityID())] = [2]float64{x, y}
	}
	run(s, clk, 30)
	for _, e := range s.World.All() {
		x, y := e.Position()
		assert.Equal(t, before[uint64(e.EntityID())], [2]float64{x, y})
	}
}

func TestDirectorFiresOnItsOwn(t *testing.T) {
	cfg := testConfig(8)
	cfg.Director.Enabled = true
	cfg.Director.MinGap = time.Second
	cfg.Director.MaxGap = time.Second
	cfg.Director.Cooldown = time.Second
	s, clk, _ := newSession(t, cfg)

	run(s, clk, 70)
	assert.Equal(t, 1, s.Director.Fired())
	assert.True(t, s.Director.Busy())
}

func TestCloseDropsEverything(t *testing.T) {
	s, clk, _ := newSession(t, testConfig(3))
	s.Trigger(data.KeyCurtains)
	run(s, clk, 1)
	require.Positive(t, s.Timers.Len())

	s.Close()
	assert.Equal(t, 0, s.Timers.Len())
	assert.Equal(t, 0, s.World.Count())
	ticks := s.Ticks()
	run(s, clk, 5)
	assert.Equal(t, ticks, s.Ticks())
	assert.Equal(t, 0, s.Stats().Finished)
}
