package component

import (
	"errors"
	"testing"

	"github.com/milk9111/en/sprite"
)

func TestFieldsOrderAndShapes(t *testing.T) {
	r := NewRender()
	refs := r.Fields()
	want := []struct {
		name  string
		shape Shape
	}{
		{"s_id", ShapeSprite},
		{"w", ShapeF32},
		{"h", ShapeF32},
		{"color", ShapeColor},
		{"layer", ShapeF32},
		{"flip_x", ShapeBool},
		{"flip_y", ShapeBool},
	}
	if len(refs) != len(want) {
		t.Fatalf("got %d fields, want %d", len(refs), len(want))
	}
	for i, w := range want {
		if refs[i].Name() != w.name || refs[i].Shape() != w.shape {
			t.Fatalf("field %d = %s/%s, want %s/%s", i, refs[i].Name(), refs[i].Shape(), w.name, w.shape)
		}
	}
}

func TestShapeOfProbeOrder(t *testing.T) {
	var (
		f32 float32
		f64 float64
		i32 int32
		u32 uint32
		i64 int64
		u64 uint64
		s   string
		c   [4]float32
		v   [2]float32
		b   bool
		id  sprite.ID
		bad int
	)
	cases := []struct {
		ptr  any
		want Shape
	}{
		{&f32, ShapeF32}, {&f64, ShapeF64}, {&i32, ShapeI32}, {&u32, ShapeU32},
		{&i64, ShapeI64}, {&u64, ShapeU64}, {&s, ShapeString}, {&c, ShapeColor},
		{&v, ShapeVec2}, {&b, ShapeBool}, {&id, ShapeSprite}, {&bad, ShapeInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.want.String(), func(t *testing.T) {
			if got := shapeOf(tc.ptr); got != tc.want {
				t.Fatalf("shapeOf(%T) = %s, want %s", tc.ptr, got, tc.want)
			}
		})
	}
}

func TestRefSet(t *testing.T) {
	cases := []struct {
		name    string
		field   string
		value   any
		wantErr error
		check   func(*Render) bool
	}{
		{"f32_from_int", "w", 64, nil, func(r *Render) bool { return r.W == 64 }},
		{"f32_from_float64", "layer", 2.5, nil, func(r *Render) bool { return r.Layer == 2.5 }},
		{"bool", "flip_x", true, nil, func(r *Render) bool { return r.FlipX }},
		{"color_from_any", "color", []any{0, 0.5, 1, 1}, nil, func(r *Render) bool { return r.Color == [4]float32{0, 0.5, 1, 1} }},
		{"color_wrong_len", "color", []float32{1, 2}, ErrShapeMismatch, nil},
		{"bool_from_string", "flip_y", "yes", ErrShapeMismatch, nil},
		{"sprite_negative", "s_id", -1, ErrShapeMismatch, nil},
		{"unknown", "nope", 1, ErrUnknownField, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRender()
			ref, err := FieldOf(&r, tc.field)
			if err == nil {
				err = ref.Set(tc.value)
			}
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !tc.check(&r) {
				t.Fatalf("value not applied: %+v", r)
			}
		})
	}
}

func TestIntegerRanges(t *testing.T) {
	type ints struct {
		I32 int32
		U32 uint32
		U64 uint64
	}
	var v ints
	i32 := newRef(&v, "i32", &v.I32)
	u32 := newRef(&v, "u32", &v.U32)
	u64 := newRef(&v, "u64", &v.U64)

	if err := i32.Set(int64(1) << 40); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("i32 overflow: got %v", err)
	}
	if err := u32.Set(-1); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("u32 negative: got %v", err)
	}
	if err := u64.Set(uint64(1) << 63); err != nil || v.U64 != 1<<63 {
		t.Fatalf("u64 large: err=%v v=%d", err, v.U64)
	}
	if err := i32.Set(1.5); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("fractional to int: got %v", err)
	}
	if err := i32.Set(7.0); err != nil || v.I32 != 7 {
		t.Fatalf("whole float to int: err=%v v=%d", err, v.I32)
	}
}

func TestSpriteEditInvalidatesCache(t *testing.T) {
	t.Run("set_changed", func(t *testing.T) {
		r := NewRender()
		r.Cached = &sprite.Frame{}
		ref, _ := FieldOf(&r, "s_id")
		if err := ref.Set(sprite.ID(2)); err != nil {
			t.Fatal(err)
		}
		if r.Cached != nil || r.SpriteID != 2 {
			t.Fatalf("cache not invalidated: %+v", r)
		}
	})

	t.Run("set_same_keeps_cache", func(t *testing.T) {
		r := NewRender()
		frame := &sprite.Frame{}
		r.Cached = frame
		ref, _ := FieldOf(&r, "s_id")
		if err := ref.Set(0); err != nil {
			t.Fatal(err)
		}
		if r.Cached != frame {
			t.Fatalf("unchanged handle dropped the cache")
		}
	})

	t.Run("visit", func(t *testing.T) {
		r := NewRender()
		r.Cached = &sprite.Frame{}
		ref, _ := FieldOf(&r, "s_id")
		ref.Visit(spriteBumper{})
		if r.SpriteID != 1 || r.Cached != nil {
			t.Fatalf("visit edit did not invalidate: %+v", r)
		}
	})

	t.Run("other_fields_keep_cache", func(t *testing.T) {
		r := NewRender()
		frame := &sprite.Frame{}
		r.Cached = frame
		ref, _ := FieldOf(&r, "w")
		_ = ref.Set(1)
		if r.Cached != frame {
			t.Fatalf("editing w dropped the sprite cache")
		}
	})
}

type spriteBumper struct{ NopEditor }

func (spriteBumper) Sprite(_ string, v *sprite.ID) { *v++ }

type recorder struct {
	NopEditor
	seen []string
}

func (r *recorder) Float32(name string, _ *float32) { r.seen = append(r.seen, "f32:"+name) }
func (r *recorder) String(name string, _ *string) { r.seen = append(r.seen, "string:"+name) }
func (r *recorder) Bool(name string, _ *bool) { r.seen = append(r.seen, "bool:"+name) }

func TestVisitDispatchesOnce(t *testing.T) {
	s := NewScript()
	rec := &recorder{}
	for _, ref := range s.Fields() {
		ref.Visit(rec)
	}
	want := []string{"string:path", "bool:enabled"}
	if len(rec.seen) != len(want) {
		t.Fatalf("visited %v, want %v", rec.seen, want)
	}
	for i := range want {
		if rec.seen[i] != want[i] {
			t.Fatalf("visited %v, want %v", rec.seen, want)
		}
	}
}

func TestRefEditsLiveValue(t *testing.T) {
	p := NewPos()
	ref, err := FieldOf(&p, "y")
	if err != nil {
		t.Fatal(err)
	}
	if err := ref.Set(float32(4)); err != nil {
		t.Fatal(err)
	}
	if p.Y != 4 || ref.Get().(float32) != 4 {
		t.Fatalf("ref does not alias the component: %+v", p)
	}
}
