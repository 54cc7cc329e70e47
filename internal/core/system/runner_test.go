package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type probe struct {
	phase Phase
	name  string
	log   *[]string
}

func (p probe) Phase() Phase { return p.phase }

func (p probe) Update(time.Duration) { *p.log = append(*p.log, p.name) }

func TestRunnerPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(probe{PhaseCleanup, "cleanup", &log})
	r.Register(probe{PhaseRender, "entities", &log})
	r.Register(probe{PhaseUpdate, "director", &log})
	r.Register(probe{PhaseRender, "front", &log})
	r.Register(probe{PhaseUpdate, "timers", &log})

	r.Tick(16 * time.Millisecond)
	require.Equal(t, []string{"director", "timers", "entities", "front", "cleanup"}, log)
	require.Equal(t, uint64(1), r.Ticks())

	log = log[:0]
	r.TickPhase(PhaseRender, 0)
	require.Equal(t, []string{"entities", "front"}, log)
	require.Equal(t, uint64(1), r.Ticks())
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "post_update", PhasePostUpdate.String())
	require.Equal(t, "unknown", Phase(42).String())
}
