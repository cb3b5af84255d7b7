// Package schema is the run-time view of the component schema: an ordered
// table of kinds that tooling and the cloner drive without knowing the
// concrete component types.
package schema

import (
	"errors"
	"fmt"

	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
)

var ErrUnknownKind = errors.New("schema: unknown component kind")

// Kind is the type-erased descriptor of one component kind.
type Kind interface {
	Name() string
	ID() component.ComponentID
	// AddDefault inserts a default-constructed value, replacing any existing one.
	AddDefault(w *ecs.World, e ecs.Entity) error
	Has(w *ecs.World, e ecs.Entity) bool
	Remove(w *ecs.World, e ecs.Entity) bool
	// Copy clones src's value onto dst. It reports false when src lacks the kind.
	Copy(w *ecs.World, src, dst ecs.Entity) bool
	// Fields returns facade refs into the live component on e.
	Fields(w *ecs.World, e ecs.Entity) ([]component.Ref, bool)
}

type kind[T any, PT interface {
	*T
	component.Fielder
}] struct {
	handle component.ComponentHandle[T]
	newFn  func() T
	clone  func(T) T
}

func newKind[T any, PT interface {
	*T
	component.Fielder
}](h component.ComponentHandle[T], newFn func() T, clone func(T) T) Kind {
	return &kind[T, PT]{handle: h, newFn: newFn, clone: clone}
}

func (k *kind[T, PT]) Name() string { return k.handle.Name() }

func (k *kind[T, PT]) ID() component.ComponentID { return k.handle.Kind().ID() }

func (k *kind[T, PT]) AddDefault(w *ecs.World, e ecs.Entity) error {
	v := k.newFn()
	if err := ecs.Add(w, e, k.handle.Kind(), &v); err != nil {
		return fmt.Errorf("schema: add %s: %w", k.Name(), err)
	}
	return nil
}

func (k *kind[T, PT]) Has(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, k.handle.Kind())
}

func (k *kind[T, PT]) Remove(w *ecs.World, e ecs.Entity) bool {
	return ecs.Remove(w, e, k.handle.Kind())
}

func (k *kind[T, PT]) Copy(w *ecs.World, src, dst ecs.Entity) bool {
	v, ok := ecs.Get(w, src, k.handle.Kind())
	if !ok {
		return false
	}
	out := k.clone(*v)
	return ecs.Add(w, dst, k.handle.Kind(), &out) == nil
}

func (k *kind[T, PT]) Fields(w *ecs.World, e ecs.Entity) ([]component.Ref, bool) {
	v, ok := ecs.Get(w, e, k.handle.Kind())
	if !ok {
		return nil, false
	}
	return PT(v).Fields(), true
}

var byName map[string]Kind

func init() {
	byName = make(map[string]Kind, len(kinds))
	for _, k := range kinds {
		if _, dup := byName[k.Name()]; dup {
			panic("schema: kind " + k.Name() + " registered twice")
		}
		byName[k.Name()] = k
	}
}

// Kinds returns every kind in schema declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Names returns the kind names in declaration order, for add-component menus.
func Names() []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.Name()
	}
	return out
}

func Lookup(name string) (Kind, error) {
	k, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// Present returns the kinds e carries, in declaration order.
func Present(w *ecs.World, e ecs.Entity) []Kind {
	var out []Kind
	for _, k := range kinds {
		if k.Has(w, e) {
			out = append(out, k)
		}
	}
	return out
}
