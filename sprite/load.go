package sprite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// IndexFile lists the sheet base names exported into a sprite directory.
const IndexFile = "index.json"

// LoadAll reads dir/index.json from fsys and loads every listed sheet in
// sorted name order, so handles are reproducible across runs.
func (m *Manager) LoadAll(fsys fs.FS, dir string) error {
	data, err := fs.ReadFile(fsys, path.Join(dir, IndexFile))
	if err != nil {
		return fmt.Errorf("sprite: read index: %w", err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("sprite: parse index: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := m.LoadSheet(fsys, dir, name); err != nil {
			return err
		}
	}
	return nil
}

// LoadSheet loads name.png and name.json from dir.
func (m *Manager) LoadSheet(fsys fs.FS, dir, name string) error {
	pngData, err := fs.ReadFile(fsys, path.Join(dir, name+".png"))
	if err != nil {
		return fmt.Errorf("sprite: read %s.png: %w", name, err)
	}
	decoded, _, err := image.Decode(bytes.NewReader(pngData))
	if err != nil {
		return fmt.Errorf("sprite: decode %s.png: %w", name, err)
	}
	jsonData, err := fs.ReadFile(fsys, path.Join(dir, name+".json"))
	if err != nil {
		return fmt.Errorf("sprite: read %s.json: %w", name, err)
	}
	ase, err := parseSheet(jsonData)
	if err != nil {
		return fmt.Errorf("sprite: parse %s.json: %w", name, err)
	}
	m.addSheet(name, ebiten.NewImageFromImage(decoded), ase)
	return nil
}

// addSheet registers the sprites and animations of one parsed sheet. A sheet
// without slices contributes a single sprite named after the file; otherwise
// each slice contributes "<file>_<slice>".
func (m *Manager) addSheet(name string, img *ebiten.Image, ase *aseData) {
	if m.byName == nil {
		m.byName = make(map[string]ID)
	}
	m.images = append(m.images, img)

	if len(ase.Meta.Slices) == 0 {
		m.add(name, Frame{Image: img, Source: ase.Frames[0].Frame.rect()})
	} else {
		for _, slice := range ase.Meta.Slices {
			if len(slice.Keys) == 0 {
				continue
			}
			key := slice.Keys[0]
			if key.Frame < 0 || key.Frame >= len(ase.Frames) {
				continue
			}
			base := ase.Frames[key.Frame].Frame
			src := image.Rect(
				int(base.X+key.Bounds.X),
				int(base.Y+key.Bounds.Y),
				int(base.X+key.Bounds.X+key.Bounds.W),
				int(base.Y+key.Bounds.Y+key.Bounds.H),
			)
			m.add(name+"_"+slice.Name, Frame{Image: img, Source: src})
		}
	}

	for _, tag := range ase.Meta.FrameTags {
		frames := make([]AnimFrame, 0, tag.To-tag.From+1)
		for i := tag.From; i <= tag.To; i++ {
			f := ase.Frames[i]
			frames = append(frames, AnimFrame{
				Source:   f.Frame.rect(),
				Duration: time.Duration(f.Duration) * time.Millisecond,
			})
		}
		m.animations = append(m.animations, Animation{Name: tag.Name, Image: img, Frames: frames})
	}
}
