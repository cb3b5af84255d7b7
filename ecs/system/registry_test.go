package system

import (
	"strings"
	"testing"

	"github.com/milk9111/en/ecs"
)

func TestRunAllInvokesEverySystemOnce(t *testing.T) {
	r := NewRegistry()
	calls := make(map[string]int)
	var order []string
	for _, d := range []struct {
		name  string
		order int
	}{{"late", 10}, {"a", 0}, {"early", -5}, {"b", 0}} {
		name := d.name
		r.Register(Descriptor{Name: name, Order: d.order, Run: func(*Context) {
			calls[name]++
			order = append(order, name)
		}})
	}

	ctx := NewContext(ecs.NewWorld(), nil, 0.016)
	r.RunAll(ctx)
	r.RunAll(ctx)

	for _, name := range []string{"late", "a", "early", "b"} {
		if calls[name] != 2 {
			t.Fatalf("%s ran %d times over two frames, want 2", name, calls[name])
		}
	}
	want := "early,a,b,late,early,a,b,late"
	if got := strings.Join(order, ","); got != want {
		t.Fatalf("dispatch order %s, want %s", got, want)
	}
}

func TestRegisterPanics(t *testing.T) {
	noop := func(*Context) {}
	cases := []struct {
		name  string
		setup func(r *Registry)
		d     Descriptor
	}{
		{"empty_name", nil, Descriptor{Run: noop}},
		{"nil_run", nil, Descriptor{Name: "x"}},
		{"duplicate", func(r *Registry) { r.Register(Descriptor{Name: "x", Run: noop}) }, Descriptor{Name: "x", Run: noop}},
		{"after_dispatch", func(r *Registry) { r.RunAll(NewContext(ecs.NewWorld(), nil, 0)) }, Descriptor{Name: "y", Run: noop}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			if tc.setup != nil {
				tc.setup(r)
			}
			defer func() {
				if recover() == nil {
					t.Fatalf("Register did not panic")
				}
			}()
			r.Register(tc.d)
		})
	}
}

func TestCommandsApplyBetweenSystems(t *testing.T) {
	r := NewRegistry()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	var aliveInSecond bool
	r.Register(Descriptor{Name: "despawner", Run: func(ctx *Context) { ctx.Commands().Despawn(e) }})
	r.Register(Descriptor{Name: "observer", Run: func(ctx *Context) { aliveInSecond = ecs.IsAlive(ctx.World(), e) }})

	r.RunAll(NewContext(w, nil, 0.016))
	if aliveInSecond {
		t.Fatalf("queued despawn was not applied before the next system")
	}
}

func TestDefaultRegistryBuiltins(t *testing.T) {
	descs := Default.Descriptors()
	index := make(map[string]int)
	for i, d := range descs {
		index[d.Name] = i
	}
	for _, name := range []string{"player_control", "scripts", "physics"} {
		if _, ok := index[name]; !ok {
			t.Fatalf("system %q not registered; have %v", name, descs)
		}
	}
	if index["physics"] < index["player_control"] || index["physics"] < index["scripts"] {
		t.Fatalf("physics must run after gameplay systems: %v", descs)
	}
}

func TestNewContextClampsDt(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float32
	}{
		{"normal", 0.016, 0.016},
		{"long_frame", 0.5, MaxFrameTime},
		{"negative", -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewContext(nil, nil, tc.in).Dt(); got != tc.want {
				t.Fatalf("Dt() = %v, want %v", got, tc.want)
			}
		})
	}
}
