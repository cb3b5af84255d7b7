// Package config loads the host configuration: an embedded en.yaml with the
// defaults, overridden by an optional file on disk.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed en.yaml
var defaultYAML []byte

// DefaultPath is read when no -config flag is given. A missing file is not an
// error.
const DefaultPath = "en.yaml"

const (
	StoreFile  = "file"
	StoreGdata = "gdata"
)

type Config struct {
	Window         Window   `yaml:"window"`
	Scene          Scene    `yaml:"scene"`
	Sprites        Sprites  `yaml:"sprites"`
	Audio          Audio    `yaml:"audio"`
	PrefabsDir     string   `yaml:"prefabs_dir"`
	SpawnPrefab    string   `yaml:"spawn_prefab"`
	StartupPrefabs []string `yaml:"startup_prefabs"`
	MaxFrameTime   float64  `yaml:"max_frame_time"`
	Debug          bool     `yaml:"debug"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Scene struct {
	Path    string `yaml:"path"`
	Store   string `yaml:"store"`
	AppName string `yaml:"app_name"`
}

type Sprites struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// Audio.Volume is a base-2 gain exponent; -1 halves the amplitude.
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Default returns the embedded configuration.
func Default() *Config {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded en.yaml: %v", err))
	}
	return &c
}

// Load layers the file at path over the defaults. When path is empty
// DefaultPath is tried and may be absent.
func Load(path string) (*Config, error) {
	c := Default()
	optional := path == ""
	if optional {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return c, c.Validate()
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Decode(data, c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Decode unmarshals data over c and validates the result.
func Decode(data []byte, c *Config) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.MaxFrameTime <= 0 {
		errs = append(errs, fmt.Errorf("max_frame_time %v must be positive", c.MaxFrameTime))
	}
	switch c.Scene.Store {
	case StoreFile:
		if c.Scene.Path == "" {
			errs = append(errs, errors.New("scene.path is required for the file store"))
		}
	case StoreGdata:
		if c.Scene.AppName == "" {
			errs = append(errs, errors.New("scene.app_name is required for the gdata store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown scene.store %q", c.Scene.Store))
	}
	return errors.Join(errs...)
}
