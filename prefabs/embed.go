package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var FS embed.FS

// DiskDir is checked before the embedded copy, so prefabs and scripts can be
// edited without rebuilding.
var DiskDir = "prefabs"

// Files returns the prefab tree with files under DiskDir taking precedence
// over the embedded ones.
func Files() fs.FS {
	return overlayFS{disk: os.DirFS(DiskDir), embedded: FS}
}

type overlayFS struct {
	disk     fs.FS
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if o.disk != nil {
		if f, err := o.disk.Open(name); err == nil {
			return f, nil
		}
	}
	return o.embedded.Open(name)
}

// Load reads a prefab file, preferring the copy on disk.
func Load(name string) ([]byte, error) {
	return fs.ReadFile(Files(), cleanPrefabPath(name))
}

// cleanPrefabPath accepts "player", "player.yaml" or "prefabs/player.yaml".
func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := path.Clean(filepath.ToSlash(p))
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if path.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}
