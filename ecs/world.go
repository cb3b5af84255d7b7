package ecs

import "github.com/milk9111/en/ecs/component"

var (
	ErrEntityNotAlive       = component.ErrEntityNotAlive
	ErrNilComponent         = component.ErrNilComponent
	ErrInvalidComponentKind = component.ErrInvalidComponentKind
)

// World owns entities and one sparse set per component kind.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity with no components.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns all live entities in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}

// Count returns the number of live entities.
func Count(w *World) int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// Clear destroys every entity. Handles issued before the call stay dead even
// though their slots are reused afterwards.
func Clear(w *World) {
	if w == nil {
		return
	}
	for _, e := range w.entities.live() {
		w.entities.destroy(e)
	}
	for _, s := range w.stores {
		s.clear()
	}
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil || id == 0 {
		return nil
	}
	s, ok := w.stores[id]
	if !ok && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
