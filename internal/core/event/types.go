package event

import "github.com/shapehunt/engine/internal/core/ecs"

// Gameplay notifications. Emitted during a tick, delivered on the next one.

// EventTriggered is emitted when a catalog event starts its timer.
type EventTriggered struct {
	Name string
}

// EventFinished is emitted from a catalog event's end handler.
type EventFinished struct {
	Name string
}

// ToastShown is emitted when the director announces an event.
type ToastShown struct {
	Text string
}

// Explosion is the follow-up visual spawned by events such as the black hole.
type Explosion struct {
	X, Y      float64
	Particles int
}

// EntityRemoved is emitted when an exit animation completes.
type EntityRemoved struct {
	EntityID ecs.EntityID
}

// BossSpawned is emitted when a boss entrance sequence places its boss.
type BossSpawned struct {
	EntityID ecs.EntityID
}

// Infected is emitted each time the zombie event converts an entity.
type Infected struct {
	EntityID ecs.EntityID
}
