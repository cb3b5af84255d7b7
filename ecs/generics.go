package ecs

import "github.com/milk9111/en/ecs/component"

// Add stores value as e's component of the given kind, replacing any previous
// value. The world keeps the pointer; callers mutate components in place.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return ErrInvalidComponentKind
	}
	if value == nil {
		return ErrNilComponent
	}
	if !IsAlive(w, e) {
		return ErrEntityNotAlive
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.store(kind.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	value, ok := w.store(kind.ID(), false).Get(e).(*T)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// First returns the first live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := w.store(kind.ID(), false)
	if s == nil || s.Len() == 0 {
		return 0, false
	}
	return s.dense[0], true
}

// ForEach calls fn for every entity carrying kind. Iteration runs over a
// snapshot, so fn may add, remove or destroy freely; entities destroyed before
// their turn are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range s.Entities() {
		if a, ok := Get(w, e, kind); ok {
			fn(e, a)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if fn == nil {
		return
	}
	for _, e := range IntersectEntities(w.store(ka.ID(), false), w.store(kb.ID(), false)) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if fn == nil {
		return
	}
	for _, e := range IntersectEntities(w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false)) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if fn == nil {
		return
	}
	for _, e := range IntersectEntities(w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false), w.store(kd.ID(), false)) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		d, ok := Get(w, e, kd)
		if !ok {
			continue
		}
		fn(e, a, b, c, d)
	}
}
