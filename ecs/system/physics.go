package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
)

// PhysicsOrder runs the physics step after gameplay systems have set velocities.
const PhysicsOrder = 100

func init() {
	Register(Descriptor{Name: "physics", Order: PhysicsOrder, Run: physicsStep})
}

type body struct {
	e      ecs.Entity
	bb     cp.BB
	static bool
}

// colliderBB is centred on pos.
func colliderBB(pos *component.Pos, col *component.Collider) cp.BB {
	return cp.NewBBForExtents(cp.Vector{X: float64(pos.X), Y: float64(pos.Y)}, float64(col.W)/2, float64(col.H)/2)
}

// physicsStep integrates velocity with linear damping, then pushes each
// moving collider out of whatever it overlaps along the shallower axis and
// stops it on that axis. Bounds are sampled once before integration.
func physicsStep(ctx *Context) {
	if ctx == nil {
		return
	}
	w := ctx.World()
	dt := ctx.Dt()

	var bodies []body
	ecs.ForEach2(w, component.PosComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, pos *component.Pos, col *component.Collider) {
		bodies = append(bodies, body{e: e, bb: colliderBB(pos, col), static: col.IsStatic})
	})

	ecs.ForEach2(w, component.PosComponent.Kind(), component.VelComponent.Kind(), func(_ ecs.Entity, pos *component.Pos, vel *component.Vel) {
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		vel.X -= vel.X * vel.D * dt
		vel.Y -= vel.Y * vel.D * dt
	})

	ecs.ForEach3(w, component.PosComponent.Kind(), component.ColliderComponent.Kind(), component.VelComponent.Kind(),
		func(e ecs.Entity, pos *component.Pos, col *component.Collider, vel *component.Vel) {
			if col.IsStatic {
				return
			}
			a := colliderBB(pos, col)
			for _, b := range bodies {
				if b.e == e || !a.Intersects(b.bb) {
					continue
				}
				ow, oh := overlap(a, b.bb)
				if ow <= 0 || oh <= 0 {
					continue
				}
				ac, bc := a.Center(), b.bb.Center()
				if ow < oh {
					if ac.X < bc.X {
						ow = -ow
					}
					pos.X += float32(ow)
					vel.X = 0
				} else {
					if ac.Y < bc.Y {
						oh = -oh
					}
					pos.Y += float32(oh)
					vel.Y = 0
				}
			}
		})
}

func overlap(a, b cp.BB) (w, h float64) {
	w = min(a.R, b.R) - max(a.L, b.L)
	h = min(a.T, b.T) - max(a.B, b.B)
	return w, h
}
