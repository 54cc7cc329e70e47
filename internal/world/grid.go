package world

import (
	"math"

	"github.com/shapehunt/engine/internal/core/ecs"
)

// Grid is a cell-based index of interactor positions taken at one instant.
// Radius queries only look at the cells the query square overlaps.
// Accessed only from the game loop goroutine, no locks.

const cellSize = 64.0

type cellKey struct {
	cx int32
	cy int32
}

func toCellCoord(v float64) int32 {
	return int32(math.Floor(v / cellSize))
}

type gridEntry struct {
	id   ecs.EntityID
	x, y float64
	r    float64 // bounds radius
}

type Grid struct {
	cells map[cellKey][]gridEntry
	size  int
	maxR  float64
}

func NewGrid() *Grid {
	return &Grid{
		cells: make(map[cellKey][]gridEntry),
	}
}

// Add places an interactor into the grid.
func (g *Grid) Add(id ecs.EntityID, x, y, r float64) {
	k := cellKey{cx: toCellCoord(x), cy: toCellCoord(y)}
	g.cells[k] = append(g.cells[k], gridEntry{id: id, x: x, y: y, r: r})
	g.size++
	if r > g.maxR {
		g.maxR = r
	}
}

// Len returns the number of indexed interactors.
func (g *Grid) Len() int { return g.size }

// Within returns the ids whose shapes reach within r of (x,y): the center
// distance is at most r plus the shape's bounds radius. Ids come back in
// cell order, then insertion order.
func (g *Grid) Within(x, y, r float64) []ecs.EntityID {
	reach := r + g.maxR
	x0, x1 := toCellCoord(x-reach), toCellCoord(x+reach)
	y0, y1 := toCellCoord(y-reach), toCellCoord(y+reach)

	var result []ecs.EntityID
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			for _, e := range g.cells[cellKey{cx: cx, cy: cy}] {
				if math.Hypot(e.x-x, e.y-y) <= r+e.r {
					result = append(result, e.id)
				}
			}
		}
	}
	return result
}
