package scene

import (
	"bytes"
	"errors"
	"testing"

	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
	"github.com/milk9111/en/ecs/schema"
	"github.com/vmihailenco/msgpack/v5"
)

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v T) {
	t.Helper()
	if err := ecs.Add(w, e, h.Kind(), &v); err != nil {
		t.Fatal(err)
	}
}

func roundTrip(t *testing.T, w *ecs.World) *ecs.World {
	t.Helper()
	data, err := Save(w)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	out := ecs.NewWorld()
	if err := Load(out, data); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return out
}

func TestScenarioRoundTrip(t *testing.T) {
	w := ecs.NewWorld()
	e1 := ecs.CreateEntity(w)
	mustAdd(t, w, e1, component.PosComponent, component.Pos{X: 1, Y: 2})
	mustAdd(t, w, e1, component.RenderComponent, component.NewRender())
	e2 := ecs.CreateEntity(w)
	mustAdd(t, w, e2, component.PosComponent, component.Pos{X: 5, Y: 5})

	got := roundTrip(t, w)

	if n := ecs.Count(got); n != 2 {
		t.Fatalf("expected 2 entities, got %d", n)
	}
	var withRender, posOnly int
	for _, e := range ecs.Entities(got) {
		p, ok := ecs.Get(got, e, component.PosComponent.Kind())
		if !ok {
			t.Fatalf("entity %s lost Pos", e)
		}
		kinds := schema.Present(got, e)
		switch *p {
		case component.Pos{X: 1, Y: 2}:
			r, ok := ecs.Get(got, e, component.RenderComponent.Kind())
			if !ok || r.Color != [4]float32{1, 1, 1, 1} || len(kinds) != 2 {
				t.Fatalf("E1 restored as %d kinds, render=%+v", len(kinds), r)
			}
			withRender++
		case component.Pos{X: 5, Y: 5}:
			if len(kinds) != 1 {
				t.Fatalf("E2 gained components: %d kinds", len(kinds))
			}
			posOnly++
		default:
			t.Fatalf("unexpected Pos %+v", *p)
		}
	}
	if withRender != 1 || posOnly != 1 {
		t.Fatalf("got %d render entities and %d pos-only entities", withRender, posOnly)
	}
}

func TestRoundTripAllKinds(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	ren := component.NewRender()
	ren.SpriteID = 7
	ren.Color = [4]float32{0.1, 0.2, 0.3, 0.4}
	ren.FlipY = true
	mustAdd(t, w, e, component.PosComponent, component.Pos{X: -3, Y: 9})
	mustAdd(t, w, e, component.VelComponent, component.Vel{X: 1, Y: 2, D: 0.5})
	mustAdd(t, w, e, component.RenderComponent, ren)
	mustAdd(t, w, e, component.CameraAnchorComponent, component.CameraAnchor{Zoom: 2, Smoothness: 0.25})
	mustAdd(t, w, e, component.PlayerComponent, component.Player{Speed: 80})
	mustAdd(t, w, e, component.ColliderComponent, component.Collider{W: 10, H: 20})
	mustAdd(t, w, e, component.ScriptComponent, component.Script{Path: "scripts/bob.tengo"})

	got := roundTrip(t, w)
	ents := ecs.Entities(got)
	if len(ents) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(ents))
	}
	g := ents[0]

	check := func(name string, ok bool) {
		t.Helper()
		if !ok {
			t.Fatalf("%s did not survive the round trip", name)
		}
	}
	v, _ := ecs.Get(got, g, component.VelComponent.Kind())
	check("Vel", v != nil && *v == component.Vel{X: 1, Y: 2, D: 0.5})
	r, _ := ecs.Get(got, g, component.RenderComponent.Kind())
	check("Render", r != nil && r.SpriteID == 7 && r.Color == ren.Color && r.FlipY && r.W == component.PPU)
	c, _ := ecs.Get(got, g, component.CameraAnchorComponent.Kind())
	check("CameraAnchor", c != nil && *c == component.CameraAnchor{Zoom: 2, Smoothness: 0.25})
	p, _ := ecs.Get(got, g, component.PlayerComponent.Kind())
	check("Player", p != nil && p.Speed == 80)
	col, _ := ecs.Get(got, g, component.ColliderComponent.Kind())
	check("Collider", col != nil && *col == component.Collider{W: 10, H: 20})
	s, _ := ecs.Get(got, g, component.ScriptComponent.Kind())
	check("Script", s != nil && *s == component.Script{Path: "scripts/bob.tengo"})
}

func TestZeroComponentEntitiesAreDropped(t *testing.T) {
	w := ecs.NewWorld()
	ecs.CreateEntity(w)
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PlayerComponent, component.NewPlayer())

	got := roundTrip(t, w)
	if n := ecs.Count(got); n != 1 {
		t.Fatalf("expected the empty placeholder to be dropped, got %d entities", n)
	}
}

func TestLoadReplacesWorld(t *testing.T) {
	src := ecs.NewWorld()
	e := ecs.CreateEntity(src)
	mustAdd(t, src, e, component.PosComponent, component.Pos{X: 1})
	data, err := Save(src)
	if err != nil {
		t.Fatal(err)
	}

	dst := ecs.NewWorld()
	old := ecs.CreateEntity(dst)
	mustAdd(t, dst, old, component.VelComponent, component.NewVel())

	if err := Load(dst, data); err != nil {
		t.Fatal(err)
	}
	if ecs.IsAlive(dst, old) {
		t.Fatalf("Load kept an entity from before")
	}
	if _, ok := ecs.First(dst, component.VelComponent.Kind()); ok {
		t.Fatalf("Load merged instead of replacing")
	}

	// Loading the same payload twice yields fresh entities both times.
	if err := Load(dst, data); err != nil {
		t.Fatal(err)
	}
	if n := ecs.Count(dst); n != 1 {
		t.Fatalf("expected 1 entity after reload, got %d", n)
	}
}

func TestCorruptPayloadLeavesEmptyWorld(t *testing.T) {
	good := ecs.NewWorld()
	e := ecs.CreateEntity(good)
	mustAdd(t, good, e, component.PosComponent, component.Pos{X: 1})
	data, err := Save(good)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		data []byte
	}{
		{"truncated", data[:len(data)/2]},
		{"garbage", []byte{0xc1, 0xff, 0x00, 0x13}},
		{"wrong_shape", mustMarshal(t, map[string]any{"Pos": "not a list"})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			for i := 0; i < 3; i++ {
				x := ecs.CreateEntity(w)
				mustAdd(t, w, x, component.PosComponent, component.Pos{X: float32(i)})
			}
			err := Load(w, tc.data)
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("got %v, want ErrDecode", err)
			}
			if n := ecs.Count(w); n != 0 {
				t.Fatalf("corrupt load left %d entities", n)
			}
		})
	}
}

func TestSharedPersistedIDGroupsComponents(t *testing.T) {
	s := &Scene{
		Pos:    []Entry[component.Pos]{{ID: 42, Value: component.Pos{X: 1}}, {ID: 7, Value: component.Pos{X: 2}}},
		Player: []Entry[component.Player]{{ID: 42, Value: component.Player{Speed: 3}}},
	}
	data, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()
	if err := Load(w, data); err != nil {
		t.Fatal(err)
	}
	if n := ecs.Count(w); n != 2 {
		t.Fatalf("expected 2 entities, got %d", n)
	}
	e, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		t.Fatal("player missing")
	}
	p, ok := ecs.Get(w, e, component.PosComponent.Kind())
	if !ok || p.X != 1 {
		t.Fatalf("persisted id 42 did not group Pos with Player: %+v", p)
	}
}

func TestMissingFieldsFallBackToDefaults(t *testing.T) {
	data := mustMarshal(t, map[string]any{
		"Vel":     []any{[]any{uint64(1), map[string]any{"x": float32(2)}}},
		"Removed": []any{[]any{uint64(1), map[string]any{"a": 1}}},
	})
	w := ecs.NewWorld()
	if err := Load(w, data); err != nil {
		t.Fatal(err)
	}
	e, ok := ecs.First(w, component.VelComponent.Kind())
	if !ok {
		t.Fatal("Vel missing")
	}
	v, _ := ecs.Get(w, e, component.VelComponent.Kind())
	if v.X != 2 || v.D != 10 {
		t.Fatalf("got %+v, want X=2 with default D=10", v)
	}
}

func TestSaveIsDeterministic(t *testing.T) {
	build := func() *ecs.World {
		w := ecs.NewWorld()
		for i := 0; i < 5; i++ {
			e := ecs.CreateEntity(w)
			mustAdd(t, w, e, component.PosComponent, component.Pos{X: float32(i)})
			if i%2 == 0 {
				mustAdd(t, w, e, component.ScriptComponent, component.Script{Path: "a"})
			}
		}
		return w
	}
	a, err := Save(build())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Save(build())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("identical worlds encoded differently")
	}
}

func TestCaptureCopiesValues(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PosComponent, component.Pos{X: 1})
	s := Capture(w)

	p, _ := ecs.Get(w, e, component.PosComponent.Kind())
	p.X = 99
	if s.Pos[0].Value.X != 1 {
		t.Fatalf("Capture aliases live store memory")
	}
	if s.Pos[0].ID != uint64(e) || s.Len() != 1 {
		t.Fatalf("unexpected capture %+v", s.Pos)
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := msgpack.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
