package system

import (
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
	"github.com/milk9111/en/ecs/schema"
	"github.com/milk9111/en/sprite"
)

// buildScriptEngine exposes e to a script. Field access goes through the
// schema registry and the reflection facade, so scripts can touch any kind.
func buildScriptEngine(ctx *Context, e ecs.Entity, state *tengo.Map) *tengo.ImmutableMap {
	w := ctx.World()
	if state == nil {
		state = &tengo.Map{Value: map[string]tengo.Object{}}
	}
	values := map[string]tengo.Object{
		"dt":     &tengo.Float{Value: float64(ctx.Dt())},
		"entity": &tengo.Int{Value: int64(e)},
		"state":  state,
	}

	field := func(args []tengo.Object) (component.Ref, bool) {
		if len(args) < 2 {
			return component.Ref{}, false
		}
		k, err := schema.Lookup(objectAsString(args[0]))
		if err != nil {
			return component.Ref{}, false
		}
		refs, ok := k.Fields(w, e)
		if !ok {
			return component.Ref{}, false
		}
		name := objectAsString(args[1])
		for _, ref := range refs {
			if ref.Name() == name {
				return ref, true
			}
		}
		return component.Ref{}, false
	}

	values["get"] = &tengo.UserFunction{Name: "get", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ref, ok := field(args)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return valueToObject(ref.Get()), nil
	}}

	values["set"] = &tengo.UserFunction{Name: "set", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		ref, ok := field(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		if err := ref.Set(objectToAny(args[2])); err != nil {
			return &tengo.Error{Value: &tengo.String{Value: err.Error()}}, nil
		}
		return tengo.TrueValue, nil
	}}

	values["has"] = &tengo.UserFunction{Name: "has", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		k, err := schema.Lookup(objectAsString(args[0]))
		if err != nil || !k.Has(w, e) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["add"] = &tengo.UserFunction{Name: "add", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		k, err := schema.Lookup(objectAsString(args[0]))
		if err != nil {
			return tengo.FalseValue, nil
		}
		if k.Has(w, e) {
			return tengo.TrueValue, nil
		}
		if err := k.AddDefault(w, e); err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["remove"] = &tengo.UserFunction{Name: "remove", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := objectAsString(args[0])
		k, err := schema.Lookup(name)
		if err != nil {
			return tengo.FalseValue, nil
		}
		// Removing the running Script is deferred so the loop over scripts
		// keeps a stable view.
		if name == component.ScriptComponent.Name() {
			ctx.Commands().Do(func(w *ecs.World) { k.Remove(w, e) })
			return tengo.TrueValue, nil
		}
		if !k.Remove(w, e) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["despawn"] = &tengo.UserFunction{Name: "despawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ctx.Commands().Despawn(e)
		return tengo.TrueValue, nil
	}}

	values["key"] = &tengo.UserFunction{Name: "key", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(objectAsString(args[0]))); err != nil {
			return tengo.FalseValue, nil
		}
		if ctx.Input().KeyDown(k) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func valueToObject(v any) tengo.Object {
	switch x := v.(type) {
	case float32:
		return &tengo.Float{Value: float64(x)}
	case float64:
		return &tengo.Float{Value: x}
	case int32:
		return &tengo.Int{Value: int64(x)}
	case uint32:
		return &tengo.Int{Value: int64(x)}
	case int64:
		return &tengo.Int{Value: x}
	case uint64:
		return &tengo.Int{Value: int64(x)}
	case sprite.ID:
		return &tengo.Int{Value: int64(x)}
	case string:
		return &tengo.String{Value: x}
	case bool:
		if x {
			return tengo.TrueValue
		}
		return tengo.FalseValue
	case [4]float32:
		return floatArray(x[:])
	case [2]float32:
		return floatArray(x[:])
	}
	return tengo.UndefinedValue
}

func floatArray(fs []float32) *tengo.Array {
	out := &tengo.Array{Value: make([]tengo.Object, len(fs))}
	for i, f := range fs {
		out.Value[i] = &tengo.Float{Value: float64(f)}
	}
	return out
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return v.Value
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.ImmutableArray:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case nil, *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
