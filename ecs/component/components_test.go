package component

import (
	"testing"

	"github.com/milk9111/en/sprite"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDefaults(t *testing.T) {
	t.Run("vel_damping", func(t *testing.T) {
		v := NewVel()
		if v.D != 10 || v.X != 0 || v.Y != 0 {
			t.Fatalf("NewVel() = %+v, want {X:0 Y:0 D:10}", v)
		}
	})

	t.Run("render", func(t *testing.T) {
		r := NewRender()
		if r.W != PPU || r.H != PPU {
			t.Fatalf("size = %vx%v, want %vx%v", r.W, r.H, PPU, PPU)
		}
		if r.Color != [4]float32{1, 1, 1, 1} {
			t.Fatalf("color = %v, want white", r.Color)
		}
		if r.SpriteID != 0 || r.Cached != nil {
			t.Fatalf("unexpected sprite state %+v", r)
		}
	})

	t.Run("table", func(t *testing.T) {
		cases := []struct {
			name string
			got  any
			want any
		}{
			{"pos", NewPos(), Pos{}},
			{"camera", NewCameraAnchor(), CameraAnchor{Zoom: 1, Smoothness: 1}},
			{"player", NewPlayer(), Player{Speed: 50}},
			{"collider", NewCollider(), Collider{W: PPU, H: PPU, IsStatic: true}},
			{"script", NewScript(), Script{Enabled: true}},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				if c.got != c.want {
					t.Fatalf("got %+v, want %+v", c.got, c.want)
				}
			})
		}
	})

	t.Run("independent", func(t *testing.T) {
		a, b := NewRender(), NewRender()
		a.Color[0] = 0
		a.W = 1
		if b.Color[0] != 1 || b.W != PPU {
			t.Fatalf("mutating one default changed another: %+v", b)
		}
	})
}

func TestCloneDropsTransient(t *testing.T) {
	frame := &sprite.Frame{}
	r := NewRender()
	r.SpriteID = 3
	r.Cached = frame

	c := r.Clone()
	if c.Cached != nil {
		t.Fatalf("clone kept the cached sprite")
	}
	if c.SpriteID != 3 {
		t.Fatalf("clone lost SpriteID")
	}
	c.Color[1] = 0
	if r.Color[1] != 1 {
		t.Fatalf("clone aliases the color array")
	}
	if r.Cached != frame {
		t.Fatalf("Clone modified its receiver")
	}
}

func TestDecodeMissingFieldsKeepDefaults(t *testing.T) {
	data, err := msgpack.Marshal(map[string]any{"x": float32(3.5), "unknown": "ignored"})
	if err != nil {
		t.Fatal(err)
	}
	var v Vel
	if err := msgpack.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.X != 3.5 || v.Y != 0 || v.D != 10 {
		t.Fatalf("decoded %+v, want {X:3.5 Y:0 D:10}", v)
	}
}

func TestEncodeSkipsTransient(t *testing.T) {
	r := NewRender()
	r.Cached = &sprite.Frame{}
	data, err := msgpack.Marshal(&r)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := msgpack.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["cached_sprite"]; ok {
		t.Fatalf("transient field was encoded")
	}
	for _, key := range []string{"s_id", "w", "h", "color", "layer", "flip_x", "flip_y"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("encoded Render is missing %q: %v", key, m)
		}
	}
}

func TestHandles(t *testing.T) {
	if PosComponent.Name() != "Pos" {
		t.Fatalf("name = %q", PosComponent.Name())
	}
	if !PosComponent.Kind().Valid() || PosComponent.Kind().ID() == VelComponent.Kind().ID() {
		t.Fatalf("component ids must be valid and distinct")
	}
}
