package director

import "github.com/shapehunt/engine/internal/scripting"

// findsPerLevel is how many finds it takes to climb one level.
const findsPerLevel = 10

// Performance tracks how the player is doing. The director policy reads it
// to bias event weights.
type Performance struct {
	Finds  int
	Misses int
	Streak int // consecutive finds since the last miss
	Level  int
}

// Find records a found shape.
func (p *Performance) Find() {
	p.Finds++
	p.Streak++
	p.Level = 1 + p.Finds/findsPerLevel
}

// Miss records a click that hit nothing.
func (p *Performance) Miss() {
	p.Misses++
	p.Streak = 0
}

func (p Performance) context() scripting.WeightContext {
	level := p.Level
	if level < 1 {
		level = 1
	}
	return scripting.WeightContext{
		Finds:  p.Finds,
		Misses: p.Misses,
		Streak: p.Streak,
		Level:  level,
	}
}
