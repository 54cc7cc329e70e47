package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonotonicAdvances(t *testing.T) {
	c := NewMonotonic()
	t1 := c.Now()
	time.Sleep(2 * time.Millisecond)
	require.True(t, c.Now().After(t1))
}

func TestMockAdvanceAndSet(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMock(start)
	require.True(t, m.Now().Equal(start))

	m.Advance(999 * time.Millisecond)
	require.Equal(t, 999*time.Millisecond, m.Now().Sub(start))

	m.Advance(2 * time.Millisecond)
	require.Equal(t, 1001*time.Millisecond, m.Now().Sub(start))

	later := start.Add(time.Hour)
	m.Set(later)
	require.True(t, m.Now().Equal(later))
}
