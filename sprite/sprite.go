// Package sprite loads Aseprite sheet exports and hands out small integer
// handles for the sprites and animations they contain.
package sprite

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ID references a sprite inside a Manager. It is the index in load order, so
// it is only stable for a fixed set of sheets.
type ID int

// UnknownName is reported for handles the manager does not know.
const UnknownName = "Unknown"

// Frame is one drawable sprite: a sheet image and the source rectangle in it.
type Frame struct {
	Image  *ebiten.Image
	Source image.Rectangle
}

// SubImage returns the frame's region of the sheet, or nil without an image.
func (f *Frame) SubImage() *ebiten.Image {
	if f == nil || f.Image == nil {
		return nil
	}
	if f.Source.Empty() {
		return f.Image
	}
	sub, ok := f.Image.SubImage(f.Source).(*ebiten.Image)
	if !ok {
		return f.Image
	}
	return sub
}

type AnimFrame struct {
	Source   image.Rectangle
	Duration time.Duration
}

// Animation is a tagged frame range from a sheet.
type Animation struct {
	Name   string
	Image  *ebiten.Image
	Frames []AnimFrame
}

// Manager owns every loaded sheet. It is not safe for concurrent use; the host
// loads it before the frame loop and reloads it between frames.
type Manager struct {
	images     []*ebiten.Image
	frames     []Frame
	names      []string
	byName     map[string]ID
	animations []Animation
}

func NewManager() *Manager {
	return &Manager{byName: make(map[string]ID)}
}

func (m *Manager) add(name string, f Frame) ID {
	id := ID(len(m.frames))
	m.frames = append(m.frames, f)
	m.names = append(m.names, name)
	m.byName[name] = id
	return id
}

// Frame returns the sprite for id.
func (m *Manager) Frame(id ID) (*Frame, bool) {
	if m == nil || id < 0 || int(id) >= len(m.frames) {
		return nil, false
	}
	return &m.frames[id], true
}

// Name returns the display name of id, or UnknownName.
func (m *Manager) Name(id ID) string {
	if m == nil || id < 0 || int(id) >= len(m.names) {
		return UnknownName
	}
	return m.names[id]
}

// Lookup resolves a sprite name to its handle.
func (m *Manager) Lookup(name string) (ID, bool) {
	if m == nil {
		return 0, false
	}
	id, ok := m.byName[name]
	return id, ok
}

// Names lists sprite names in handle order.
func (m *Manager) Names() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.names...)
}

func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.frames)
}

// Animation returns the animation at index i in load order.
func (m *Manager) Animation(i int) (*Animation, bool) {
	if m == nil || i < 0 || i >= len(m.animations) {
		return nil, false
	}
	return &m.animations[i], true
}

// AnimationByName finds an animation by its frame tag name.
func (m *Manager) AnimationByName(name string) (*Animation, bool) {
	if m == nil {
		return nil, false
	}
	for i := range m.animations {
		if m.animations[i].Name == name {
			return &m.animations[i], true
		}
	}
	return nil, false
}

// Reset drops every loaded sheet.
func (m *Manager) Reset() {
	if m == nil {
		return
	}
	m.images = nil
	m.frames = nil
	m.names = nil
	m.byName = make(map[string]ID)
	m.animations = nil
}
