package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/en/config"
	"github.com/pkg/profile"
)

func main() {
	configPath := flag.String("config", "", "config file layered over the defaults (default ./en.yaml if present)")
	scenePath := flag.String("scene", "", "scene file to load and save; forces the file store")
	debug := flag.Bool("debug", false, "draw collider bounds and stats")
	profileMode := flag.String("profile", "", "write a profile to the working directory: cpu or mem")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown -profile %q (want cpu or mem)", *profileMode)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *scenePath != "" {
		cfg.Scene.Store = config.StoreFile
		cfg.Scene.Path = *scenePath
	}
	if *debug {
		cfg.Debug = true
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
