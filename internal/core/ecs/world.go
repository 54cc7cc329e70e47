package ecs

// World owns the id pool, the registered component stores, the insertion
// order of live entities and a deferred destruction queue.
//
// Insertion order is meaningful to callers (draw order, hit-test priority),
// so it is kept as an explicit slice rather than derived from map iteration.
type World struct {
	pool         *Pool
	stores       []Removable
	order        []EntityID
	destroyQueue []EntityID
	queued       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewPool(),
		stores:       make([]Removable, 0, 4),
		order:        make([]EntityID, 0, 64),
		destroyQueue: make([]EntityID, 0, 16),
		queued:       make(map[EntityID]struct{}, 16),
	}
}

// Register adds a component store that is cleared on destroy.
func (w *World) Register(store Removable) {
	w.stores = append(w.stores, store)
}

// CreateEntity allocates an id and appends it to the order (topmost).
func (w *World) CreateEntity() EntityID {
	id := w.pool.Create()
	w.order = append(w.order, id)
	return id
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len returns the number of live entities, including ones queued for removal.
func (w *World) Len() int { return len(w.order) }

// Order returns a copy of the live ids in insertion order. Callers may
// destroy entities while ranging over it.
func (w *World) Order() []EntityID {
	out := make([]EntityID, len(w.order))
	copy(out, w.order)
	return out
}

// MarkForDestruction queues id for the next FlushDestroyQueue. Queuing the
// same id twice is harmless.
func (w *World) MarkForDestruction(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	if _, dup := w.queued[id]; dup {
		return
	}
	w.queued[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending reports whether id is queued for destruction.
func (w *World) Pending(id EntityID) bool {
	_, ok := w.queued[id]
	return ok
}

// FlushDestroyQueue destroys all queued entities. The order slice is rebuilt
// by filtering, never spliced in place.
func (w *World) FlushDestroyQueue() int {
	if len(w.destroyQueue) == 0 {
		return 0
	}
	kept := make([]EntityID, 0, len(w.order))
	for _, id := range w.order {
		if _, gone := w.queued[id]; !gone {
			kept = append(kept, id)
		}
	}
	w.order = kept

	n := len(w.destroyQueue)
	for _, id := range w.destroyQueue {
		for _, s := range w.stores {
			s.Remove(id)
		}
		w.pool.Destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	clear(w.queued)
	return n
}
