package system

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
	"github.com/milk9111/en/sprite"
	"golang.org/x/image/colornames"
)

// Camera is the world-space point drawn at the centre of the screen.
type Camera struct {
	X, Y float64
	Zoom float64
}

// Follow eases the camera toward the last entity carrying Pos and
// CameraAnchor. Smoothness is a rate per second; zero snaps.
func (c *Camera) Follow(w *ecs.World, dt float64) {
	if c == nil {
		return
	}
	var (
		target *component.Pos
		anchor *component.CameraAnchor
	)
	ecs.ForEach2(w, component.PosComponent.Kind(), component.CameraAnchorComponent.Kind(), func(_ ecs.Entity, p *component.Pos, a *component.CameraAnchor) {
		target, anchor = p, a
	})
	if target == nil {
		if c.Zoom <= 0 {
			c.Zoom = 1
		}
		return
	}
	t := 1.0
	if anchor.Smoothness > 0 {
		t = 1 - math.Exp(-float64(anchor.Smoothness)*dt*10)
	}
	c.X += (float64(target.X) - c.X) * t
	c.Y += (float64(target.Y) - c.Y) * t
	c.Zoom = float64(anchor.Zoom)
	if c.Zoom <= 0 {
		c.Zoom = 1
	}
}

type RenderSystem struct {
	Camera Camera
	Debug  bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{Camera: Camera{Zoom: 1}}
}

// Draw renders every Pos+Render entity ordered by layer. A Render whose
// sprite cache is empty resolves its handle against sprites first.
func (r *RenderSystem) Draw(w *ecs.World, sprites *sprite.Manager, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	type item struct {
		e   ecs.Entity
		pos *component.Pos
		ren *component.Render
	}
	var items []item
	ecs.ForEach2(w, component.PosComponent.Kind(), component.RenderComponent.Kind(), func(e ecs.Entity, p *component.Pos, ren *component.Render) {
		items = append(items, item{e, p, ren})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ren.Layer != items[j].ren.Layer {
			return items[i].ren.Layer < items[j].ren.Layer
		}
		return items[i].e.Index() < items[j].e.Index()
	})

	zoom := r.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	for _, it := range items {
		ren := it.ren
		if ren.Cached == nil && sprites != nil {
			if f, ok := sprites.Frame(ren.SpriteID); ok {
				ren.Cached = f
			}
		}
		sx, sy := r.toScreen(float64(it.pos.X), float64(it.pos.Y), zoom, sw, sh)
		wpx, hpx := float64(ren.W)*zoom, float64(ren.H)*zoom

		img := ren.Cached.SubImage()
		if img == nil {
			vector.FillRect(screen, float32(sx-wpx/2), float32(sy-hpx/2), float32(wpx), float32(hpx), renderColor(ren), false)
			continue
		}

		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		fx, fy := 1.0, 1.0
		if ren.FlipX {
			fx = -1
		}
		if ren.FlipY {
			fy = -1
		}
		op.GeoM.Scale(fx*wpx/float64(b.Dx()), fy*hpx/float64(b.Dy()))
		op.GeoM.Translate(sx, sy)
		op.ColorScale.Scale(ren.R(), ren.G(), ren.B(), ren.A())
		screen.DrawImage(img, op)
	}

	if r.Debug {
		r.drawDebug(w, screen, zoom, sw, sh)
	}
}

func (r *RenderSystem) toScreen(x, y, zoom float64, sw, sh int) (float64, float64) {
	return (x-r.Camera.X)*zoom + float64(sw)/2, (y-r.Camera.Y)*zoom + float64(sh)/2
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image, zoom float64, sw, sh int) {
	ecs.ForEach2(w, component.PosComponent.Kind(), component.ColliderComponent.Kind(), func(_ ecs.Entity, p *component.Pos, col *component.Collider) {
		x, y := r.toScreen(float64(p.X), float64(p.Y), zoom, sw, sh)
		cw, ch := float64(col.W)*zoom, float64(col.H)*zoom
		clr := colornames.Lime
		if col.IsStatic {
			clr = colornames.Orange
		}
		vector.StrokeRect(screen, float32(x-cw/2), float32(y-ch/2), float32(cw), float32(ch), 1, clr, false)
	})
	text := fmt.Sprintf("entities: %d\ncamera: %.0f,%.0f x%.2f\nfps: %.0f", ecs.Count(w), r.Camera.X, r.Camera.Y, zoom, ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func renderColor(ren *component.Render) color.Color {
	c := func(f float32) uint8 {
		return uint8(math.Round(float64(max(0, min(1, f))) * 255))
	}
	return color.NRGBA{R: c(ren.R()), G: c(ren.G()), B: c(ren.B()), A: c(ren.A())}
}

// InvalidateSpriteCaches drops every Render's cached sprite, e.g. after the
// sprite sheets were reloaded and old frames point at stale images.
func InvalidateSpriteCaches(w *ecs.World) {
	ecs.ForEach(w, component.RenderComponent.Kind(), func(_ ecs.Entity, ren *component.Render) {
		ren.InvalidateSprite()
	})
}
