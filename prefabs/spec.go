package prefabs

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EntitySpec describes one entity by component kind name. Each component maps
// wire field names to values; unlisted fields keep their defaults.
//
//	name: player
//	components:
//	  Pos: {x: 0, y: 0}
//	  Render: {s_id: hero, layer: 1}
type EntitySpec struct {
	Name       string                    `yaml:"name"`
	Components map[string]map[string]any `yaml:"components"`
}

func DecodeSpec(data []byte) (EntitySpec, error) {
	var spec EntitySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return EntitySpec{}, err
	}
	return spec, nil
}

func LoadSpec(name string) (EntitySpec, error) {
	data, err := Load(name)
	if err != nil {
		return EntitySpec{}, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	spec, err := DecodeSpec(data)
	if err != nil {
		return EntitySpec{}, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(path.Base(cleanPrefabPath(name)), ".yaml")
	}
	return spec, nil
}

// List returns the prefab names available in Files, sorted.
func List() ([]string, error) {
	matches, err := fs.Glob(Files(), "*.yaml")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(matches))
	embedded, _ := fs.Glob(FS, "*.yaml")
	var names []string
	for _, m := range append(matches, embedded...) {
		n := strings.TrimSuffix(m, ".yaml")
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}
