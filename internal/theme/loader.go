package theme

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Loader resolves palette CSS for a display mode.
// Resolution order:
//  1. User palettes directory (~/.config/wxui/palettes/<mode>.css)
//  2. Embedded palettes
type Loader struct {
	logger *slog.Logger
	dir    string
}

// NewLoader creates a palette loader. An empty dir disables user overrides.
func NewLoader(logger *slog.Logger, dir string) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, dir: dir}
}

// PalettesDir returns the path to the user's palette overrides.
func PalettesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "wxui", "palettes"), nil
}

// CSS returns the processed palette stylesheet for a resolved mode.
func (l *Loader) CSS(mode Mode) (string, error) {
	name := string(mode)

	if l.dir != "" {
		path := filepath.Join(l.dir, name+".css")
		data, err := os.ReadFile(path)
		if err == nil {
			l.logger.Debug("loaded user palette", "mode", name, "path", path)
			return ProcessImports(string(data), l.dir, nil), nil
		}
		if !os.IsNotExist(err) {
			l.logger.Warn("failed to read user palette, using bundled", "path", path, "error", err)
		}
	}

	css, found := GetEmbeddedPalette(name)
	if !found {
		return "", fmt.Errorf("no palette for mode %q", name)
	}
	return ProcessImports(css, "", nil), nil
}

// Load returns the parsed palette for a resolved mode.
func (l *Loader) Load(mode Mode) (Palette, error) {
	css, err := l.CSS(mode)
	if err != nil {
		return Palette{}, err
	}
	return ParsePalette(mode, css), nil
}

// List returns bundled palette names followed by user-only ones.
func (l *Loader) List() []string {
	seen := make(map[string]bool)
	var names []string

	for _, name := range ListEmbeddedPalettes() {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	if l.dir == "" {
		return names
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		l.logger.Debug("failed to read palettes directory", "error", err)
		return names
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".css" {
			continue
		}
		name := entry.Name()[:len(entry.Name())-4]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
