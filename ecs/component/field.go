package component

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/en/sprite"
)

var (
	ErrUnknownField  = errors.New("component: unknown field")
	ErrShapeMismatch = errors.New("component: value does not fit field shape")
)

// Shape is the closed set of field value shapes tooling can edit.
type Shape uint8

const (
	ShapeInvalid Shape = iota
	ShapeF32
	ShapeF64
	ShapeI32
	ShapeU32
	ShapeI64
	ShapeU64
	ShapeString
	ShapeColor
	ShapeVec2
	ShapeBool
	ShapeSprite
)

var shapeNames = [...]string{
	ShapeInvalid: "invalid",
	ShapeF32:     "f32",
	ShapeF64:     "f64",
	ShapeI32:     "i32",
	ShapeU32:     "u32",
	ShapeI64:     "i64",
	ShapeU64:     "u64",
	ShapeString:  "string",
	ShapeColor:   "color",
	ShapeVec2:    "vec2",
	ShapeBool:    "bool",
	ShapeSprite:  "sprite",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// probeOrder is the trial order used to classify a field pointer: numbers,
// then strings, then arrays, then booleans, then the sprite handle. First
// match wins. Adding a field type means adding a probe here and a case to
// Get, Set and Visit.
var probeOrder = [...]struct {
	shape Shape
	match func(any) bool
}{
	{ShapeF32, func(p any) bool { _, ok := p.(*float32); return ok }},
	{ShapeF64, func(p any) bool { _, ok := p.(*float64); return ok }},
	{ShapeI32, func(p any) bool { _, ok := p.(*int32); return ok }},
	{ShapeU32, func(p any) bool { _, ok := p.(*uint32); return ok }},
	{ShapeI64, func(p any) bool { _, ok := p.(*int64); return ok }},
	{ShapeU64, func(p any) bool { _, ok := p.(*uint64); return ok }},
	{ShapeString, func(p any) bool { _, ok := p.(*string); return ok }},
	{ShapeColor, func(p any) bool { _, ok := p.(*[4]float32); return ok }},
	{ShapeVec2, func(p any) bool { _, ok := p.(*[2]float32); return ok }},
	{ShapeBool, func(p any) bool { _, ok := p.(*bool); return ok }},
	{ShapeSprite, func(p any) bool { _, ok := p.(*sprite.ID); return ok }},
}

func shapeOf(ptr any) Shape {
	for _, probe := range probeOrder {
		if probe.match(ptr) {
			return probe.shape
		}
	}
	return ShapeInvalid
}

// Fielder is implemented by every generated component kind.
type Fielder interface {
	Fields() []Ref
}

// Ref is a mutable, shape-tagged view of one field of a live component value.
// It stays valid as long as the component it was taken from.
type Ref struct {
	name  string
	shape Shape
	ptr   any
	owner any
}

func newRef(owner any, name string, ptr any) Ref {
	shape := shapeOf(ptr)
	if shape == ShapeInvalid {
		panic(fmt.Sprintf("component: field %q has unsupported type %T", name, ptr))
	}
	return Ref{name: name, shape: shape, ptr: ptr, owner: owner}
}

// FieldOf returns the named field of c.
func FieldOf(c Fielder, name string) (Ref, error) {
	if c == nil {
		return Ref{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	for _, ref := range c.Fields() {
		if ref.name == name {
			return ref, nil
		}
	}
	return Ref{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func (r Ref) Name() string { return r.name }

func (r Ref) Shape() Shape { return r.shape }

func (r Ref) Valid() bool { return r.shape != ShapeInvalid && r.ptr != nil }

// Get returns a copy of the field value as its Go type.
func (r Ref) Get() any {
	switch p := r.ptr.(type) {
	case *float32:
		return *p
	case *float64:
		return *p
	case *int32:
		return *p
	case *uint32:
		return *p
	case *int64:
		return *p
	case *uint64:
		return *p
	case *string:
		return *p
	case *[4]float32:
		return *p
	case *[2]float32:
		return *p
	case *bool:
		return *p
	case *sprite.ID:
		return *p
	}
	return nil
}

// Set converts v to the field's shape and stores it. Numbers convert across
// widths when the value is representable; arrays accept fixed arrays or
// slices of the right length.
func (r Ref) Set(v any) error {
	fail := func() error {
		return fmt.Errorf("%w: %s %q <- %T", ErrShapeMismatch, r.shape, r.name, v)
	}
	switch p := r.ptr.(type) {
	case *float32:
		f, ok := toFloat(v)
		if !ok {
			return fail()
		}
		*p = float32(f)
	case *float64:
		f, ok := toFloat(v)
		if !ok {
			return fail()
		}
		*p = f
	case *int32:
		i, ok := toInt(v)
		if !ok || i < math.MinInt32 || i > math.MaxInt32 {
			return fail()
		}
		*p = int32(i)
	case *uint32:
		i, ok := toInt(v)
		if !ok || i < 0 || i > math.MaxUint32 {
			return fail()
		}
		*p = uint32(i)
	case *int64:
		i, ok := toInt(v)
		if !ok {
			return fail()
		}
		*p = i
	case *uint64:
		if u, ok := v.(uint64); ok {
			*p = u
			return nil
		}
		i, ok := toInt(v)
		if !ok || i < 0 {
			return fail()
		}
		*p = uint64(i)
	case *string:
		s, ok := v.(string)
		if !ok {
			return fail()
		}
		*p = s
	case *[4]float32:
		vals, ok := toFloats(v, 4)
		if !ok {
			return fail()
		}
		copy(p[:], vals)
	case *[2]float32:
		vals, ok := toFloats(v, 2)
		if !ok {
			return fail()
		}
		copy(p[:], vals)
	case *bool:
		b, ok := v.(bool)
		if !ok {
			return fail()
		}
		*p = b
	case *sprite.ID:
		var id sprite.ID
		if direct, ok := v.(sprite.ID); ok {
			id = direct
		} else {
			i, ok := toInt(v)
			if !ok || i < 0 || i > math.MaxInt32 {
				return fail()
			}
			id = sprite.ID(i)
		}
		if *p != id {
			*p = id
			invalidateDerived(r.owner)
		}
	default:
		return fail()
	}
	return nil
}

// Editor receives a typed pointer for the shape of the visited field.
// Embed NopEditor to handle only some shapes.
type Editor interface {
	Float32(name string, v *float32)
	Float64(name string, v *float64)
	Int32(name string, v *int32)
	Uint32(name string, v *uint32)
	Int64(name string, v *int64)
	Uint64(name string, v *uint64)
	String(name string, v *string)
	Color(name string, v *[4]float32)
	Vec2(name string, v *[2]float32)
	Bool(name string, v *bool)
	Sprite(name string, v *sprite.ID)
}

// NopEditor ignores every shape.
type NopEditor struct{}

func (NopEditor) Float32(string, *float32) {}
func (NopEditor) Float64(string, *float64) {}
func (NopEditor) Int32(string, *int32) {}
func (NopEditor) Uint32(string, *uint32) {}
func (NopEditor) Int64(string, *int64) {}
func (NopEditor) Uint64(string, *uint64) {}
func (NopEditor) String(string, *string) {}
func (NopEditor) Color(string, *[4]float32) {}
func (NopEditor) Vec2(string, *[2]float32) {}
func (NopEditor) Bool(string, *bool) {}
func (NopEditor) Sprite(string, *sprite.ID) {}

// Visit hands the field to exactly one Editor method. A changed sprite handle
// drops whatever the owning component derived from it.
func (r Ref) Visit(ed Editor) {
	if ed == nil {
		return
	}
	switch r.shape {
	case ShapeF32:
		ed.Float32(r.name, r.ptr.(*float32))
	case ShapeF64:
		ed.Float64(r.name, r.ptr.(*float64))
	case ShapeI32:
		ed.Int32(r.name, r.ptr.(*int32))
	case ShapeU32:
		ed.Uint32(r.name, r.ptr.(*uint32))
	case ShapeI64:
		ed.Int64(r.name, r.ptr.(*int64))
	case ShapeU64:
		ed.Uint64(r.name, r.ptr.(*uint64))
	case ShapeString:
		ed.String(r.name, r.ptr.(*string))
	case ShapeColor:
		ed.Color(r.name, r.ptr.(*[4]float32))
	case ShapeVec2:
		ed.Vec2(r.name, r.ptr.(*[2]float32))
	case ShapeBool:
		ed.Bool(r.name, r.ptr.(*bool))
	case ShapeSprite:
		p := r.ptr.(*sprite.ID)
		before := *p
		ed.Sprite(r.name, p)
		if *p != before {
			invalidateDerived(r.owner)
		}
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case sprite.ID:
		return int64(n), true
	case float32:
		return toInt(float64(n))
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func toFloats(v any, n int) ([]float32, bool) {
	var out []float32
	switch a := v.(type) {
	case [4]float32:
		out = a[:]
	case [2]float32:
		out = a[:]
	case []float32:
		out = a
	case []float64:
		out = make([]float32, len(a))
		for i, f := range a {
			out[i] = float32(f)
		}
	case []any:
		out = make([]float32, len(a))
		for i, e := range a {
			f, ok := toFloat(e)
			if !ok {
				return nil, false
			}
			out[i] = float32(f)
		}
	default:
		return nil, false
	}
	if len(out) != n {
		return nil, false
	}
	return out, true
}
