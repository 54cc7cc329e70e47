package catalog

import (
	"time"

	"github.com/shapehunt/engine/internal/core/ecs"
	"github.com/shapehunt/engine/internal/core/event"
	"github.com/shapehunt/engine/internal/core/timer"
	"github.com/shapehunt/engine/internal/data"
	"github.com/shapehunt/engine/internal/entity"
	"go.uber.org/zap"
)

const zombieColor = "#4caf50"

// ZombieInfection turns one random interactor into a zombie for d. Zombies
// chase the nearest healthy interactor and infect every healthy one they
// touch. When the timer ends everyone is cured and handed back.
func (c *Catalog) ZombieInfection(d time.Duration) {
	p := c.param(data.KeyZombie)
	reach := p.Radius
	strength := p.Strength
	snaps := c.capture(false)

	infected := make(map[ecs.EntityID]bool)
	colors := make(map[ecs.EntityID]string)
	var zombies []ecs.EntityID // infection order

	infect := func(e *entity.Interactor) {
		id := e.EntityID()
		if infected[id] {
			return
		}
		infected[id] = true
		zombies = append(zombies, id)
		colors[id] = e.Shape.Color
		e.Shape.Color = zombieColor
		e.RemoveModifiers(entity.KindFollow)
		e.AddModifier(&entity.Follow{Strength: strength})
		if c.bus != nil {
			event.Emit(c.bus, event.Infected{EntityID: id})
		}
	}

	healthy := func(e *entity.Interactor) bool {
		return !infected[e.EntityID()] && !e.Exiting()
	}

	c.timers.Start(NameZombie, d, timer.Hooks{
		OnStart: func() {
			c.triggered(NameZombie)
			var pool []*entity.Interactor
			for _, s := range snaps {
				if e, ok := c.live(s); ok {
					pool = append(pool, e)
				}
			}
			if len(pool) == 0 {
				return
			}
			zero := pool[c.rng.Intn(len(pool))]
			infect(zero)
			c.log.Debug("patient zero", zap.Uint64("entity", uint64(zero.EntityID())))
		},
		OnUpdate: func(time.Duration) {
			idx := c.world.Index()
			// Infections made this tick start chasing on the next one.
			for _, id := range zombies {
				z, ok := c.world.Get(id)
				if !ok || z.Exiting() {
					continue
				}
				zx, zy := z.Position()
				for _, hit := range idx.Within(zx, zy, reach+z.BoundsRadius()) {
					if e, ok := c.world.Get(hit); ok && healthy(e) {
						infect(e)
					}
				}
				f, ok := entity.FindModifier[*entity.Follow](z)
				if !ok {
					continue
				}
				f.Target = ecs.NoEntity
				if target, ok := c.world.Nearest(zx, zy, healthy); ok {
					f.Target = target.EntityID()
				}
			}
		},
		OnEnd: func() {
			for _, id := range zombies {
				if e, ok := c.world.Get(id); ok {
					e.Shape.Color = colors[id]
					e.RemoveModifiers(entity.KindFollow)
				}
			}
			c.restore(snaps)
			c.finished(NameZombie)
		},
	})
}
