package component

// PPU is the number of world units per tile.
const PPU = 128.0

func (r *Render) R() float32 { return r.Color[0] }
func (r *Render) G() float32 { return r.Color[1] }
func (r *Render) B() float32 { return r.Color[2] }
func (r *Render) A() float32 { return r.Color[3] }

// InvalidateSprite drops the cached sprite lookup so the next draw resolves
// SpriteID again.
func (r *Render) InvalidateSprite() {
	if r != nil {
		r.Cached = nil
	}
}

// invalidateDerived runs after a sprite handle field was edited through a Ref.
// Render is the only kind that caches a value derived from its handle.
func invalidateDerived(owner any) {
	if r, ok := owner.(*Render); ok {
		r.InvalidateSprite()
	}
}
