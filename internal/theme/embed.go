package theme

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

// EmbeddedPalettes contains the bundled palette CSS files.
//
//go:embed themes/*.css
var EmbeddedPalettes embed.FS

// GetEmbeddedPalette retrieves a bundled palette by name.
// Imports are NOT processed here - use Loader.CSS instead.
func GetEmbeddedPalette(name string) (string, bool) {
	data, err := EmbeddedPalettes.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedPalettes returns names of all embedded palettes.
func ListEmbeddedPalettes() []string {
	var names []string

	entries, err := fs.ReadDir(EmbeddedPalettes, "themes")
	if err != nil {
		return []string{string(Light), string(Dark), string(Black)}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "_") {
			continue
		}
		if ext := filepath.Ext(name); ext == ".css" {
			names = append(names, strings.TrimSuffix(name, ext))
		}
	}

	return names
}
