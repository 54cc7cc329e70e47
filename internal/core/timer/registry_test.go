package timer

import (
	"testing"
	"time"

	"github.com/shapehunt/engine/internal/core/clock"
	"github.com/shapehunt/engine/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestRegistry() (*Registry, *clock.Mock) {
	c := clock.NewMock(epoch)
	return NewRegistry(c, zap.NewNop()), c
}

func TestDeadlineFiresOnEndOnce(t *testing.T) {
	r, c := newTestRegistry()
	done := false
	r.Start("E", 1000*time.Millisecond, Hooks{OnEnd: func() { done = true }})

	c.Advance(999 * time.Millisecond)
	r.Update()
	require.True(t, r.IsActive("E"))
	require.False(t, done)

	c.Advance(2 * time.Millisecond)
	r.Update()
	require.False(t, r.IsActive("E"))
	require.True(t, done)
}

func TestActiveUntilDeadline(t *testing.T) {
	for _, d := range []time.Duration{0, time.Millisecond, 16 * time.Millisecond, 250 * time.Millisecond} {
		r, c := newTestRegistry()
		r.Start("x", d, Hooks{OnEnd: func() {}})
		for elapsed := time.Duration(0); elapsed < d; elapsed += time.Millisecond {
			c.Set(epoch.Add(elapsed))
			r.Update()
			require.True(t, r.IsActive("x"), "d=%s elapsed=%s", d, elapsed)
		}
		c.Set(epoch.Add(d))
		r.Update()
		require.False(t, r.IsActive("x"), "d=%s", d)
	}
}

func TestRestartReplacesCallbacksWithoutOnStart(t *testing.T) {
	r, c := newTestRegistry()
	starts, firstEnds, secondEnds := 0, 0, 0
	firstUpdates, secondUpdates := 0, 0

	r.Start("X", time.Second, Hooks{
		OnStart:  func() { starts++ },
		OnUpdate: func(time.Duration) { firstUpdates++ },
		OnEnd:    func() { firstEnds++ },
	})
	r.Start("X", 2*time.Second, Hooks{
		OnStart:  func() { starts++ },
		OnUpdate: func(time.Duration) { secondUpdates++ },
		OnEnd:    func() { secondEnds++ },
	})
	require.Equal(t, 1, starts)
	require.Equal(t, 2*time.Second, r.TimeLeft("X"))

	c.Advance(500 * time.Millisecond)
	r.Update()
	c.Advance(2 * time.Second)
	r.Update()

	assert.Equal(t, 1, starts)
	assert.Equal(t, 0, firstUpdates)
	assert.Equal(t, 1, secondUpdates)
	assert.Equal(t, 0, firstEnds)
	assert.Equal(t, 1, secondEnds)
}

func TestCancelFromOwnUpdate(t *testing.T) {
	r, c := newTestRegistry()
	ends := 0
	r.Start("self", time.Second, Hooks{
		OnUpdate: func(time.Duration) { r.Cancel("self", true) },
		OnEnd:    func() { ends++ },
	})

	c.Advance(100 * time.Millisecond)
	require.NotPanics(t, r.Update)
	require.Equal(t, 1, ends)
	require.False(t, r.IsActive("self"))

	c.Advance(2 * time.Second)
	r.Update()
	require.Equal(t, 1, ends)
}

func TestCancelOnUpdateAtDeadlineDoesNotDoubleEnd(t *testing.T) {
	r, c := newTestRegistry()
	ends := 0
	r.Start("self", time.Second, Hooks{
		OnUpdate: func(time.Duration) { r.Cancel("self", true) },
		OnEnd:    func() { ends++ },
	})
	// Deadline already passed: OnUpdate is skipped, OnEnd runs once.
	c.Advance(3 * time.Second)
	r.Update()
	require.Equal(t, 1, ends)
}

func TestTimeLeftNonIncreasing(t *testing.T) {
	r, c := newTestRegistry()
	r.Start("t", 100*time.Millisecond, Hooks{OnEnd: func() {}})

	prev := r.TimeLeft("t")
	require.Equal(t, 100*time.Millisecond, prev)
	for i := 0; i < 15; i++ {
		c.Advance(9 * time.Millisecond)
		left := r.TimeLeft("t")
		require.LessOrEqual(t, left, prev)
		prev = left
	}
	require.Equal(t, time.Duration(0), prev)
}

func TestTolerantLookups(t *testing.T) {
	r, _ := newTestRegistry()
	assert.False(t, r.IsActive("missing"))
	assert.Equal(t, time.Duration(0), r.TimeLeft("missing"))
	assert.Equal(t, 0.0, r.Progress("missing"))
	assert.NotPanics(t, func() { r.Cancel("missing", true) })
}

func TestNegativeDurationExpiresOnNextUpdate(t *testing.T) {
	r, _ := newTestRegistry()
	ended := false
	started := false
	r.Start("neg", -time.Second, Hooks{OnStart: func() { started = true }, OnEnd: func() { ended = true }})
	require.True(t, started)
	require.True(t, r.IsActive("neg"))
	require.Equal(t, time.Duration(0), r.TimeLeft("neg"))

	r.Update()
	require.True(t, ended)
	require.False(t, r.IsActive("neg"))
}

func TestOnEndMayRestartSameName(t *testing.T) {
	r, c := newTestRegistry()
	rounds := 0
	var loop func()
	loop = func() {
		rounds++
		if rounds < 3 {
			r.Start("loop", 10*time.Millisecond, Hooks{OnEnd: loop})
		}
	}
	r.Start("loop", 10*time.Millisecond, Hooks{OnEnd: loop})

	for i := 0; i < 5; i++ {
		c.Advance(10 * time.Millisecond)
		r.Update()
	}
	require.Equal(t, 3, rounds)
	require.False(t, r.IsActive("loop"))
}

func TestUpdateOrderFollowsLatestStart(t *testing.T) {
	r, c := newTestRegistry()
	var seen []string
	track := func(name string) Hooks {
		return Hooks{OnUpdate: func(time.Duration) { seen = append(seen, name) }}
	}
	r.Start("a", time.Second, track("a"))
	r.Start("b", time.Second, track("b"))
	r.Start("c", time.Second, track("c"))
	r.Start("a", time.Second, track("a"))

	c.Advance(time.Millisecond)
	r.Update()
	require.Equal(t, []string{"b", "c", "a"}, seen)
}

func TestTimerStartedDuringUpdateWaitsForNextPass(t *testing.T) {
	r, c := newTestRegistry()
	childUpdates := 0
	r.Start("parent", time.Second, Hooks{OnUpdate: func(time.Duration) {
		if !r.IsActive("child") {
			r.Start("child", time.Second, Hooks{OnUpdate: func(time.Duration) { childUpdates++ }})
		}
	}})

	c.Advance(time.Millisecond)
	r.Update()
	require.Equal(t, 0, childUpdates)

	c.Advance(time.Millisecond)
	r.Update()
	require.Equal(t, 1, childUpdates)
}

func TestCancelOtherDuringPassSkipsIt(t *testing.T) {
	r, c := newTestRegistry()
	otherUpdates, otherEnds := 0, 0
	r.Start("first", time.Second, Hooks{OnUpdate: func(time.Duration) { r.Cancel("second", false) }})
	r.Start("second", time.Second, Hooks{
		OnUpdate: func(time.Duration) { otherUpdates++ },
		OnEnd:    func() { otherEnds++ },
	})

	c.Advance(time.Millisecond)
	r.Update()
	require.Equal(t, 0, otherUpdates)
	require.Equal(t, 0, otherEnds)
}

func TestPanickingCallbackDoesNotStopTick(t *testing.T) {
	r, c := newTestRegistry()
	healthy := 0
	r.Start("bad", time.Second, Hooks{OnUpdate: func(time.Duration) { panic("boom") }})
	r.Start("good", time.Second, Hooks{OnUpdate: func(time.Duration) { healthy++ }})

	c.Advance(time.Millisecond)
	require.NotPanics(t, r.Update)
	require.Equal(t, 1, healthy)
	require.True(t, r.IsActive("bad"))
}

func TestRenderFrontPassesCanvasAndKeepsDeadlines(t *testing.T) {
	r, c := newTestRegistry()
	canvas := render.NewRecorder(800, 600)
	updates := 0
	r.Start("overlay", time.Second, Hooks{
		OnUpdate: func(time.Duration) { updates++ },
		OnFront: func(left time.Duration, cv render.Canvas) {
			cv.FillRect(0, 0, cv.Width(), cv.Height(), "black")
		},
	})

	c.Advance(2 * time.Second)
	r.RenderFront(canvas)
	require.Equal(t, 1, canvas.Count("rect"))
	require.True(t, r.IsActive("overlay"))
	require.Equal(t, 0, updates)

	r.Update()
	require.False(t, r.IsActive("overlay"))
}

func TestProgressAndCancelAll(t *testing.T) {
	r, c := newTestRegistry()
	ends := 0
	r.Start("p", 4*time.Second, Hooks{OnEnd: func() { ends++ }})
	r.Start("q", 4*time.Second, Hooks{OnEnd: func() { ends++ }})

	c.Advance(time.Second)
	require.InDelta(t, 0.25, r.Progress("p"), 1e-9)
	require.Equal(t, 2, r.Len())

	r.CancelAll()
	require.Equal(t, 0, r.Len())
	require.Equal(t, 0, ends)
}

func TestProgressOf(t *testing.T) {
	assert.Equal(t, 0.0, ProgressOf(time.Second, time.Second))
	assert.InDelta(t, 0.5, ProgressOf(500*time.Millisecond, time.Second), 1e-9)
	assert.Equal(t, 1.0, ProgressOf(0, time.Second))
	assert.Equal(t, 1.0, ProgressOf(0, 0))
}
