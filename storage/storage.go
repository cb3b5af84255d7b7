// Package storage persists encoded scenes.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quasilyte/gdata/v2"
)

// ErrNoScene is returned by Load when nothing was saved yet.
var ErrNoScene = errors.New("storage: no saved scene")

// SceneStore holds one scene blob.
type SceneStore interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Exists() bool
}

// FileStore keeps the scene in a single file.
type FileStore struct {
	Path string
}

func (s FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoScene
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", s.Path, err)
	}
	return data, nil
}

// Save writes to a temporary file first so a crash mid-write keeps the
// previous scene.
func (s FileStore) Save(data []byte) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

func (s FileStore) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

const (
	sceneObject   = "scene"
	sceneProperty = "current"
)

// GdataStore keeps the scene in the per-user application data directory that
// gdata manages for the current platform.
type GdataStore struct {
	m *gdata.Manager
}

func OpenGdata(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: open gdata %q: %w", appName, err)
	}
	return &GdataStore{m: m}, nil
}

func (s *GdataStore) Load() ([]byte, error) {
	if !s.Exists() {
		return nil, ErrNoScene
	}
	data, err := s.m.LoadObjectProp(sceneObject, sceneProperty)
	if err != nil {
		return nil, fmt.Errorf("storage: load scene: %w", err)
	}
	return data, nil
}

func (s *GdataStore) Save(data []byte) error {
	if err := s.m.SaveObjectProp(sceneObject, sceneProperty, data); err != nil {
		return fmt.Errorf("storage: save scene: %w", err)
	}
	return nil
}

func (s *GdataStore) Exists() bool {
	return s != nil && s.m != nil && s.m.ObjectPropExists(sceneObject, sceneProperty)
}
