package schema

import "github.com/milk9111/en/ecs"

// Duplicate spawns a new entity holding a copy of every component src carries.
// A dead src yields a fresh entity with no components.
func Duplicate(w *ecs.World, src ecs.Entity) ecs.Entity {
	dst := ecs.CreateEntity(w)
	if !ecs.IsAlive(w, src) {
		return dst
	}
	for _, k := range kinds {
		k.Copy(w, src, dst)
	}
	return dst
}
