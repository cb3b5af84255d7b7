package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
	"gopkg.in/yaml.v3"
)

func testWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	a := ecs.CreateEntity(w)
	if err := ecs.Add(w, a, component.PosComponent.Kind(), &component.Pos{X: 1, Y: 2}); err != nil {
		t.Fatal(err)
	}
	r := component.NewRender()
	r.SpriteID = 2
	if err := ecs.Add(w, a, component.RenderComponent.Kind(), &r); err != nil {
		t.Fatal(err)
	}
	b := ecs.CreateEntity(w)
	if err := ecs.Add(w, b, component.ScriptComponent.Kind(), &component.Script{Path: "scripts/bob.tengo", Enabled: true}); err != nil {
		t.Fatal(err)
	}
	return w
}

func TestDumpWorld(t *testing.T) {
	entities, err := dumpWorld(testWorld(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entities) != 2 {
		t.Fatalf("dumped %d entities, want 2", len(entities))
	}
	var kinds []string
	for _, c := range entities[0].Components {
		kinds = append(kinds, c.Kind)
	}
	if got := strings.Join(kinds, ","); got != "Pos,Render" {
		t.Fatalf("kinds = %s", got)
	}

	out, err := yaml.Marshal(map[string]any{"entities": entities})
	if err != nil {
		t.Fatal(err)
	}
	text := string(out)
	for _, want := range []string{
		"fields: {x: 1, y: 2}",
		"s_id: 2",
		"color: [1, 1, 1, 1]",
		"path: scripts/bob.tengo",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("dump lacks %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "cached") {
		t.Errorf("transient field dumped:\n%s", text)
	}
}

func rowText(s tcell.Screen, y, from, to int) string {
	var b strings.Builder
	for x := from; x < to; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestBrowser(t *testing.T) {
	entities, err := dumpWorld(testWorld(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 10)

	b, err := newBrowser(screen, entities)
	if err != nil {
		t.Fatal(err)
	}
	b.draw()
	if got := rowText(screen, 0, 0, 20); !strings.HasPrefix(got, "2 entities") {
		t.Fatalf("header = %q", got)
	}
	mid := b.listWidth(80)
	if got := rowText(screen, 1, mid+2, 80); !strings.Contains(got, "kind: Pos") {
		t.Fatalf("detail of first entity = %q", got)
	}

	if !b.handle(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)) {
		t.Fatalf("down quit the browser")
	}
	b.move(5)
	if b.cursor != 1 {
		t.Fatalf("cursor = %d, want clamped to 1", b.cursor)
	}
	b.draw()
	if got := rowText(screen, 1, mid+2, 80); !strings.Contains(got, "kind: Script") {
		t.Fatalf("detail of second entity = %q", got)
	}
	if b.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatalf("q did not quit")
	}
}
