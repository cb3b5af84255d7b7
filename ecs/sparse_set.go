package ecs

// SparseSet stores one component kind keyed by entity slot. Values are kept as
// `any` (always a *T for the kind's T) so the world can hold every kind in one
// map; the typed helpers in generics.go do the assertion.
type SparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

// Has reports whether the slot of e holds a value for this exact handle.
func (s *SparseSet) Has(e Entity) bool {
	idx, ok := s.index(e)
	return ok && idx >= 0
}

func (s *SparseSet) index(e Entity) (int, bool) {
	if s == nil {
		return -1, false
	}
	slot := int(e.id()) - 1
	if slot < 0 || slot >= len(s.sparse) {
		return -1, false
	}
	idx := s.sparse[slot]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return -1, false
	}
	return idx, true
}

// Get returns the stored value for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	idx, ok := s.index(e)
	if !ok {
		return nil
	}
	return s.values[idx]
}

// Set inserts or replaces the value for e.
func (s *SparseSet) Set(e Entity, v any) {
	if s == nil || !e.Valid() {
		return
	}
	slot := int(e.id()) - 1
	for len(s.sparse) <= slot {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[slot]; idx >= 0 && idx < len(s.dense) && s.dense[idx].id() == e.id() {
		// Same slot, possibly a stale generation: the new handle takes over.
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[slot] = len(s.dense) - 1
}

// Remove deletes the value for e if present.
func (s *SparseSet) Remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[int(moved.id())-1] = idx

	s.dense[last] = 0
	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[int(e.id())-1] = -1
	return true
}

// Len returns the number of stored values.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Entities returns a copy of the dense entity list, safe to range over while
// the set is mutated.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return append([]Entity(nil), s.dense...)
}

func (s *SparseSet) clear() {
	if s == nil {
		return
	}
	s.dense = s.dense[:0]
	s.values = s.values[:0]
	s.sparse = s.sparse[:0]
}
