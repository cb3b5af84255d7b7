package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
)

func init() {
	Register(Descriptor{Name: "player_control", Run: playerControl})
}

// playerControl turns WASD into an impulse of Player.Speed along the
// normalized direction and faces the sprite the way the player walks.
func playerControl(ctx *Context) {
	if ctx == nil {
		return
	}
	in := ctx.Input()

	var dx, dy float32
	if in.KeyDown(ebiten.KeyD) {
		dx++
	}
	if in.KeyDown(ebiten.KeyA) {
		dx--
	}
	if in.KeyDown(ebiten.KeyW) {
		dy--
	}
	if in.KeyDown(ebiten.KeyS) {
		dy++
	}
	if l := float32(math.Hypot(float64(dx), float64(dy))); l > 0 {
		dx /= l
		dy /= l
	}

	ecs.ForEach3(ctx.World(), component.VelComponent.Kind(), component.RenderComponent.Kind(), component.PlayerComponent.Kind(),
		func(_ ecs.Entity, vel *component.Vel, ren *component.Render, p *component.Player) {
			switch {
			case dx > 0:
				ren.FlipX = false
			case dx < 0:
				ren.FlipX = true
			}
			vel.X += dx * p.Speed
			vel.Y += dy * p.Speed
		})
}
