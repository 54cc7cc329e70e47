package director

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceLevelsAndStreak(t *testing.T) {
	var p Performance
	for i := 0; i < 9; i++ {
		p.Find()
	}
	assert.Equal(t, 1, p.Level)
	p.Find()
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 10, p.Streak)

	p.Miss()
	assert.Equal(t, 0, p.Streak)
	assert.Equal(t, 1, p.Misses)

	assert.Equal(t, 1, Performance{}.context().Level)
}
