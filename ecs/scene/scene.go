// Package scene saves the live world to a MessagePack blob and loads it back
// into fresh entities.
//
// Persisted ids are the raw bits of the entity handle at save time. They only
// correlate components of one entity inside one payload; Load maps them onto
// newly created entities. Entities with no components are not saved.
package scene

import (
	"errors"
	"fmt"

	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrDecode = errors.New("scene: decode failed")

// Entry pairs a persisted entity id with one component value.
type Entry[T any] struct {
	_msgpack struct{} `msgpack:",as_array"`
	ID       uint64
	Value    T
}

func collect[T any](w *ecs.World, h component.ComponentHandle[T]) []Entry[T] {
	var out []Entry[T]
	ecs.ForEach(w, h.Kind(), func(e ecs.Entity, v *T) {
		out = append(out, Entry[T]{ID: uint64(e), Value: *v})
	})
	return out
}

// remap assigns a new entity to each persisted id the first time it is seen.
type remap struct {
	ids map[uint64]ecs.Entity
}

func (r *remap) resolve(w *ecs.World, id uint64) ecs.Entity {
	if e, ok := r.ids[id]; ok {
		return e
	}
	if r.ids == nil {
		r.ids = make(map[uint64]ecs.Entity)
	}
	e := ecs.CreateEntity(w)
	r.ids[id] = e
	return e
}

func insert[T any](w *ecs.World, ids *remap, h component.ComponentHandle[T], entries []Entry[T]) error {
	for i := range entries {
		e := ids.resolve(w, entries[i].ID)
		v := entries[i].Value
		if err := ecs.Add(w, e, h.Kind(), &v); err != nil {
			return fmt.Errorf("scene: restore %s for id %d: %w", h.Name(), entries[i].ID, err)
		}
	}
	return nil
}

// Restore adds the scene's components to w on new entities. It does not clear
// w first; Load does.
func (s *Scene) Restore(w *ecs.World) error {
	if s == nil {
		return nil
	}
	return s.restore(w, &remap{})
}

func Encode(s *Scene) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("scene: encode: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (*Scene, error) {
	var s Scene
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &s, nil
}

// Save captures w and encodes it.
func Save(w *ecs.World) ([]byte, error) {
	return Encode(Capture(w))
}

// Load replaces the contents of w with the decoded scene. The payload is fully
// decoded before w is touched; on a decode error w is left empty and the
// returned error wraps ErrDecode.
func Load(w *ecs.World, data []byte) error {
	ecs.Clear(w)
	s, err := Decode(data)
	if err != nil {
		return err
	}
	if err := s.Restore(w); err != nil {
		ecs.Clear(w)
		return err
	}
	return nil
}
