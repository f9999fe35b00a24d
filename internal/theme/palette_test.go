package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessImports_NoImports(t *testing.T) {
	css := `@define-color window_bg_color #fff;`
	assert.Equal(t, css, ProcessImports(css, "", nil))
}

func TestProcessImports_FileImport(t *testing.T) {
	tmpDir := t.TempDir()

	partialPath := filepath.Join(tmpDir, "_accent.css")
	require.NoError(t, os.WriteFile(partialPath, []byte(`@define-color accent_bg_color #ff0000;`), 0644))

	mainCSS := `@import "_accent.css";
@define-color window_bg_color #000000;`

	result := ProcessImports(mainCSS, tmpDir, nil)

	assert.Contains(t, result, "/* imported: _accent.css */")
	assert.Contains(t, result, "accent_bg_color #ff0000")
	assert.Contains(t, result, "window_bg_color #000000")
}

func TestProcessImports_CircularPrevention(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "_a.css"), []byte(`@import "_b.css";
.a { color: red; }`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "_b.css"), []byte(`@import "_a.css";
.b { color: blue; }`), 0644))

	result := ProcessImports(`@import "_a.css";`, tmpDir, nil)

	assert.Contains(t, result, "/* imported: _a.css */")
	assert.Contains(t, result, "/* imported: _b.css */")
	assert.Contains(t, result, "/* circular import prevented: _a.css */")
}

func TestProcessImports_MissingFile(t *testing.T) {
	result := ProcessImports(`@import "nonexistent.css";`, "/tmp", nil)
	assert.Contains(t, result, "/* import failed: nonexistent.css")
}

func TestProcessImports_FallbackToEmbeddedPalette(t *testing.T) {
	result := ProcessImports(`@import "dark.css";`, "/nonexistent/path", nil)

	assert.Contains(t, result, "/* imported (embedded): dark.css */")
	assert.Contains(t, result, "@define-color window_bg_color #1c1b1f;")
}

func TestImportRegex(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`@import "file.css";`, "file.css"},
		{`@import 'file.css';`, "file.css"},
		{`@import url("file.css");`, "file.css"},
		{`@import url( "file.css" );`, "file.css"},
		{`@import "_partial.css"`, "_partial.css"},
		{`@import   "spaced.css"  ;`, "spaced.css"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			matches := importRegex.FindStringSubmatch(tt.input)
			require.Len(t, matches, 2)
			assert.Equal(t, tt.expected, matches[1])
		})
	}
}

func TestParsePalette_LaterDeclarationsWin(t *testing.T) {
	css := `
@define-color window_bg_color #1c1b1f;
@define-color accent_bg_color  #d0bcff ;
@define-color window_bg_color #000000;
`
	p := ParsePalette(Black, css)

	assert.Equal(t, Black, p.Mode)
	assert.Equal(t, "#000000", p.Background)
	assert.Equal(t, "#d0bcff", p.Primary)
	assert.Empty(t, p.Popover)
}

func TestEmbeddedPalettes(t *testing.T) {
	names := ListEmbeddedPalettes()
	assert.ElementsMatch(t, []string{"light", "dark", "black"}, names)

	_, found := GetEmbeddedPalette("sepia")
	assert.False(t, found)
}

func TestLoader_BundledPalettes(t *testing.T) {
	l := NewLoader(nil, "")

	light, err := l.Load(Light)
	require.NoError(t, err)
	assert.Equal(t, "#fafafa", light.Background)

	dark, err := l.Load(Dark)
	require.NoError(t, err)
	assert.Equal(t, "#1c1b1f", dark.Background)

	black, err := l.Load(Black)
	require.NoError(t, err)
	assert.Equal(t, "#000000", black.Background)
	// Inherited from dark through the import
	assert.Equal(t, dark.OnBackground, black.OnBackground)
	assert.Equal(t, dark.Primary, black.Primary)

	for _, p := range []Palette{light, dark, black} {
		assert.NotEmpty(t, p.OnSurface, "palette %s", p.Mode)
		assert.NotEmpty(t, p.SurfaceContainer, "palette %s", p.Mode)
		assert.NotEmpty(t, p.Popover, "palette %s", p.Mode)
	}

	_, err = l.Load(Auto)
	assert.Error(t, err)
}

func TestLoader_UserOverride(t *testing.T) {
	dir := t.TempDir()
	override := `@import "dark.css";
@define-color window_bg_color #050505;
@define-color accent_bg_color #00ff00;`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "black.css"), []byte(override), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sepia.css"), []byte(""), 0644))

	l := NewLoader(nil, dir)
	p, err := l.Load(Black)
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", p.Primary)
	assert.Equal(t, "#050505", p.Background)
	assert.Equal(t, "#e6e1e5", p.OnBackground)

	assert.Equal(t, []string{"black", "dark", "light", "sepia"}, l.List())
}
