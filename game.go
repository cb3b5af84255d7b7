package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/en/assets"
	"github.com/milk9111/en/config"
	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
	"github.com/milk9111/en/ecs/scene"
	"github.com/milk9111/en/ecs/schema"
	"github.com/milk9111/en/ecs/system"
	"github.com/milk9111/en/prefabs"
	"github.com/milk9111/en/sound"
	"github.com/milk9111/en/sprite"
	"github.com/milk9111/en/storage"
)

const statusFrames = 120

type Game struct {
	cfg     *config.Config
	world   *ecs.World
	sprites *sprite.Manager
	store   storage.SceneStore
	render  *system.RenderSystem
	input   system.Input
	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI
	sound   *sound.Player

	// selected is the target of duplicate and delete: the last spawned or
	// duplicated entity, falling back to the player.
	selected ecs.Entity

	paused bool
	last   time.Time

	status      string
	statusTicks int
}

func NewGame(cfg *config.Config) (*Game, error) {
	prefabs.DiskDir = cfg.PrefabsDir

	store, err := openStore(cfg.Scene)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		world:   ecs.NewWorld(),
		sprites: sprite.NewManager(),
		store:   store,
		render:  system.NewRenderSystem(),
		input:   system.EbitenInput{},
		sound:   &sound.Player{Volume: cfg.Audio.Volume},
	}
	g.render.Debug = cfg.Debug
	if cfg.Audio.Enabled {
		if err := g.sound.Init(); err != nil {
			log.Printf("[game] audio disabled: %v", err)
		}
	}

	if err := g.loadSprites(); err != nil {
		return nil, err
	}

	if store.Exists() {
		g.loadScene()
	} else {
		for _, name := range cfg.StartupPrefabs {
			if _, err := prefabs.Spawn(g.world, name, g.sprites); err != nil {
				log.Printf("[game] startup prefab %s: %v", name, err)
			}
		}
	}

	if cfg.Sprites.Watch {
		g.watcher = startWatcher(cfg.PrefabsDir, cfg.Sprites.Dir)
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func openStore(c config.Scene) (storage.SceneStore, error) {
	if c.Store == config.StoreGdata {
		return storage.OpenGdata(c.AppName)
	}
	return storage.FileStore{Path: c.Path}, nil
}

// startWatcher watches whichever of dirs exist on disk. Hot reload is a
// convenience, so failures only log.
func startWatcher(dirs ...string) *prefabs.Watcher {
	var existing []string
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			existing = append(existing, d)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	w, err := prefabs.NewWatcher(existing...)
	if err != nil {
		log.Printf("[game] hot reload disabled: %v", err)
		return nil
	}
	return w
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) loadSprites() error {
	fsys, dir := assets.Sprites(g.cfg.Sprites.Dir)
	g.sprites.Reset()
	if err := g.sprites.LoadAll(fsys, dir); err != nil {
		return fmt.Errorf("load sprites: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	now := time.Now()
	dt := g.cfg.MaxFrameTime
	if !g.last.IsZero() {
		dt = min(now.Sub(g.last).Seconds(), g.cfg.MaxFrameTime)
	}
	g.last = now

	g.drainWatcher()
	g.handleHotkeys()
	if g.statusTicks > 0 {
		g.statusTicks--
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	ctx := system.NewContext(g.world, g.sprites, dt).
		WithInput(g.input).
		WithScripts(prefabs.Files())
	system.RunAll(ctx)
	g.render.Camera.Follow(g.world, float64(ctx.Dt()))
	return nil
}

func (g *Game) handleHotkeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		g.saveScene()
	case inpututil.IsKeyJustPressed(ebiten.KeyF9):
		g.loadScene()
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.render.Debug = !g.render.Debug
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.spawnAtCamera()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.duplicateSelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		g.deleteSelected()
	}
}

func (g *Game) saveScene() {
	data, err := scene.Save(g.world)
	if err == nil {
		err = g.store.Save(data)
	}
	if err != nil {
		log.Printf("[scene] save failed: %v", err)
		g.setStatus("save failed")
		g.sound.Play(sound.CueError)
		return
	}
	g.sound.Play(sound.CueSave)
	g.setStatus(fmt.Sprintf("saved %d entities", ecs.Count(g.world)))
}

func (g *Game) loadScene() {
	data, err := g.store.Load()
	if err != nil {
		if errors.Is(err, storage.ErrNoScene) {
			g.setStatus("no saved scene")
			return
		}
		log.Printf("[scene] read failed: %v", err)
		g.setStatus("load failed")
		g.sound.Play(sound.CueError)
		return
	}
	if err := scene.Load(g.world, data); err != nil {
		log.Printf("[scene] load failed: %v (falling back to an empty world)", err)
		g.setStatus("load failed, world cleared")
		g.sound.Play(sound.CueError)
		return
	}
	g.sound.Play(sound.CueLoad)
	g.setStatus(fmt.Sprintf("loaded %d entities", ecs.Count(g.world)))
}

func (g *Game) spawnAtCamera() {
	name := g.cfg.SpawnPrefab
	if name == "" {
		return
	}
	e, err := prefabs.Spawn(g.world, name, g.sprites)
	if err != nil {
		log.Printf("[game] spawn %s: %v", name, err)
		g.setStatus("spawn failed")
		g.sound.Play(sound.CueError)
		return
	}
	g.sound.Play(sound.CueSpawn)
	if pos, ok := ecs.Get(g.world, e, component.PosComponent.Kind()); ok {
		pos.X = float32(g.render.Camera.X)
		pos.Y = float32(g.render.Camera.Y)
	}
	g.selected = e
	g.setStatus("spawned " + name)
}

func (g *Game) selection() (ecs.Entity, bool) {
	if ecs.IsAlive(g.world, g.selected) {
		return g.selected, true
	}
	return ecs.First(g.world, component.PlayerComponent.Kind())
}

// duplicateSelected clones the selection one tile to the right.
func (g *Game) duplicateSelected() {
	src, ok := g.selection()
	if !ok {
		g.setStatus("nothing to duplicate")
		return
	}
	e := schema.Duplicate(g.world, src)
	if pos, ok := ecs.Get(g.world, e, component.PosComponent.Kind()); ok {
		pos.X += component.PPU
	}
	g.selected = e
	g.sound.Play(sound.CueSpawn)
	g.setStatus(fmt.Sprintf("duplicated %s as %s (%s)", src, e, joinKinds(schema.Present(g.world, e))))
}

func (g *Game) deleteSelected() {
	e, ok := g.selection()
	if !ok {
		return
	}
	ecs.DestroyEntity(g.world, e)
	g.setStatus(fmt.Sprintf("deleted %s", e))
}

func joinKinds(kinds []schema.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name()
	}
	return strings.Join(names, ", ")
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ch, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(ch)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("[watch] %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) applyChange(ch prefabs.Change) {
	switch ch.Kind {
	case prefabs.ChangeScript:
		system.ReloadScripts()
	case prefabs.ChangeSprite:
		if err := g.loadSprites(); err != nil {
			log.Printf("[watch] %s: %v", ch.Path, err)
			return
		}
		system.InvalidateSpriteCaches(g.world)
	}
	g.setStatus("reloaded " + ch.Kind.String() + " " + ch.Path)
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusTicks = statusFrames
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, g.sprites, screen)
	if g.statusTicks > 0 {
		ebitenutil.DebugPrintAt(screen, g.status, 10, screen.Bounds().Dy()-20)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
