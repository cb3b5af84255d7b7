// Package assets embeds the default sprite sheets so the game runs without a
// checkout of the asset directory.
package assets

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

// SpriteDir is the directory, inside FS, holding index.json and the sheets.
const SpriteDir = "sprites"

//go:embed sprites/*.json sprites/*.png
var FS embed.FS

// Sprites returns the sprite source and the directory to pass to
// sprite.Manager.LoadAll: dir on disk when it holds an index, the embedded
// copy otherwise.
func Sprites(dir string) (fs.FS, string) {
	if dir != "" {
		if _, err := os.Stat(filepath.Join(dir, "index.json")); err == nil {
			return os.DirFS(dir), "."
		}
	}
	return FS, SpriteDir
}
