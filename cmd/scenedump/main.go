// Command scenedump prints a saved scene as YAML, one entry per entity, with
// field values read through the reflection facade.
//
//	scenedump -in scene.bin
//	scenedump -gdata en -copy
//	scenedump -tui
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/en/assets"
	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/scene"
	"github.com/milk9111/en/sprite"
	"github.com/milk9111/en/storage"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

func main() {
	in := flag.String("in", "scene.bin", "scene file")
	gdataApp := flag.String("gdata", "", "read the scene saved by the gdata store of this app instead of -in")
	spriteDir := flag.String("sprites", "", "sprite directory used to name sprite handles (embedded sheets when empty)")
	noNames := flag.Bool("ids", false, "print sprite handles as numbers")
	copyOut := flag.Bool("copy", false, "also copy the dump to the clipboard")
	tui := flag.Bool("tui", false, "browse the scene interactively instead of printing it")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("scenedump: ")

	var store storage.SceneStore = storage.FileStore{Path: *in}
	if *gdataApp != "" {
		s, err := storage.OpenGdata(*gdataApp)
		if err != nil {
			log.Fatal(err)
		}
		store = s
	}
	data, err := store.Load()
	if err != nil {
		log.Fatal(err)
	}

	w := ecs.NewWorld()
	if err := scene.Load(w, data); err != nil {
		log.Fatal(err)
	}

	var sprites *sprite.Manager
	if !*noNames {
		sprites = sprite.NewManager()
		fsys, dir := assets.Sprites(*spriteDir)
		if err := sprites.LoadAll(fsys, dir); err != nil {
			log.Printf("sprite names unavailable: %v", err)
			sprites = nil
		}
	}

	entities, err := dumpWorld(w, sprites)
	if err != nil {
		log.Fatal(err)
	}
	if *tui {
		screen, err := tcell.NewScreen()
		if err != nil {
			log.Fatal(err)
		}
		if err := browse(screen, entities); err != nil {
			log.Fatal(err)
		}
		return
	}

	out, err := yaml.Marshal(map[string]any{"entities": entities})
	if err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		log.Fatal(err)
	}

	if *copyOut {
		if err := clipboard.Init(); err != nil {
			log.Fatalf("clipboard: %v", err)
		}
		clipboard.Write(clipboard.FmtText, out)
	}
}
