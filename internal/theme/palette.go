package theme

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// defineColorRegex matches libadwaita @define-color name value;
var defineColorRegex = regexp.MustCompile(`@define-color\s+([A-Za-z0-9_]+)\s+([^;]+);`)

// Palette holds the colors the canvas renderer and chrome need for one
// resolved mode.
type Palette struct {
	Mode             Mode
	Background       string // window_bg_color
	OnBackground     string // window_fg_color
	Surface          string // view_bg_color
	OnSurface        string // view_fg_color
	SurfaceContainer string // card_bg_color
	OnSurfaceVariant string // dim_fg_color
	Outline          string // border_color
	Primary          string // accent_bg_color
	OnPrimary        string // accent_fg_color
	Popover          string // popover_bg_color
}

// ParsePalette extracts @define-color declarations from CSS. Later
// declarations override earlier ones, so imported sheets can be refined.
func ParsePalette(mode Mode, css string) Palette {
	colors := make(map[string]string)
	for _, m := range defineColorRegex.FindAllStringSubmatch(css, -1) {
		colors[m[1]] = strings.TrimSpace(m[2])
	}

	return Palette{
		Mode:             mode,
		Background:       colors["window_bg_color"],
		OnBackground:     colors["window_fg_color"],
		Surface:          colors["view_bg_color"],
		OnSurface:        colors["view_fg_color"],
		SurfaceContainer: colors["card_bg_color"],
		OnSurfaceVariant: colors["dim_fg_color"],
		Outline:          colors["border_color"],
		Primary:          colors["accent_bg_color"],
		OnPrimary:        colors["accent_fg_color"],
		Popover:          colors["popover_bg_color"],
	}
}

// ProcessImports resolves and inlines @import statements in CSS.
// Imports are resolved relative to baseDir, then against the embedded palettes.
// The seen map prevents circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}

		importPath := submatch[1]

		var fullPath string
		if filepath.IsAbs(importPath) {
			fullPath = importPath
		} else {
			fullPath = filepath.Join(baseDir, importPath)
		}

		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		importedCSS, err := os.ReadFile(fullPath)
		if err != nil {
			name := strings.TrimSuffix(filepath.Base(importPath), ".css")
			if embeddedCSS, found := GetEmbeddedPalette(name); found {
				return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(embeddedCSS, "", seen)
			}
			return "/* import failed: " + importPath + " - " + err.Error() + " */"
		}

		processed := ProcessImports(string(importedCSS), filepath.Dir(fullPath), seen)
		return "/* imported: " + importPath + " */\n" + processed
	})
}
