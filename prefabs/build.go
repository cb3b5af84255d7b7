package prefabs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
	"github.com/milk9111/en/ecs/schema"
	"github.com/milk9111/en/sprite"
)

var ErrUnknownComponent = errors.New("prefabs: unknown component")

// Build creates an entity from spec. Components are added in schema order
// with their defaults, then the listed fields are set through the reflection
// facade. A sprite field given as a string is resolved by name in sprites.
// On error the partly built entity is destroyed.
func Build(w *ecs.World, spec EntitySpec, sprites *sprite.Manager) (ecs.Entity, error) {
	if err := checkKinds(spec); err != nil {
		return 0, err
	}
	e := ecs.CreateEntity(w)
	for _, k := range schema.Kinds() {
		fields, ok := spec.Components[k.Name()]
		if !ok {
			continue
		}
		if err := k.AddDefault(w, e); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("prefabs: %s: %w", spec.Name, err)
		}
		refs, _ := k.Fields(w, e)
		if err := applyFields(refs, fields, sprites); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("prefabs: %s: %s: %w", spec.Name, k.Name(), err)
		}
	}
	return e, nil
}

// Spawn loads the named prefab and builds it.
func Spawn(w *ecs.World, name string, sprites *sprite.Manager) (ecs.Entity, error) {
	spec, err := LoadSpec(name)
	if err != nil {
		return 0, err
	}
	return Build(w, spec, sprites)
}

func checkKinds(spec EntitySpec) error {
	names := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := schema.Lookup(name); err != nil {
			return fmt.Errorf("%w %q in %s", ErrUnknownComponent, name, spec.Name)
		}
	}
	return nil
}

func applyFields(refs []component.Ref, fields map[string]any, sprites *sprite.Manager) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref, ok := findRef(refs, name)
		if !ok {
			return fmt.Errorf("%w: %q", component.ErrUnknownField, name)
		}
		v := fields[name]
		if s, isName := v.(string); isName && ref.Shape() == component.ShapeSprite {
			id, found := sprites.Lookup(s)
			if !found {
				return fmt.Errorf("field %q: unknown sprite %q", name, s)
			}
			v = id
		}
		if err := ref.Set(v); err != nil {
			return err
		}
	}
	return nil
}

func findRef(refs []component.Ref, name string) (component.Ref, bool) {
	for _, r := range refs {
		if r.Name() == name {
			return r, true
		}
	}
	return component.Ref{}, false
}
