package theme

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/wxui/internal/appearance"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"auto", Auto},
		{"light", Light},
		{"dark", Dark},
		{"black", Black},
		{"", Auto},
		{"solarized", Auto},
		{"DARK", Auto},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseMode(tt.input))
		})
	}
}

func TestParseModeStrict(t *testing.T) {
	m, err := ParseModeStrict("black")
	require.NoError(t, err)
	assert.Equal(t, Black, m)

	_, err = ParseModeStrict("sepia")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		pref      Mode
		os        appearance.Appearance
		autoBlack bool
		expected  Mode
	}{
		{Auto, appearance.Light, false, Light},
		{Auto, appearance.Light, true, Light},
		{Auto, appearance.Dark, false, Dark},
		{Auto, appearance.Dark, true, Black},
		{Light, appearance.Dark, true, Light},
		{Light, appearance.Light, false, Light},
		{Dark, appearance.Light, false, Dark},
		{Dark, appearance.Dark, true, Dark},
		{Black, appearance.Light, false, Black},
		{Black, appearance.Dark, true, Black},
		{Mode("bogus"), appearance.Dark, true, Black},
	}

	for _, tt := range tests {
		name := string(tt.pref) + "/" + string(tt.os)
		if tt.autoBlack {
			name += "/auto_black"
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.pref, tt.os, tt.autoBlack))
		})
	}
}

func TestResolve_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("resolved mode is never auto", prop.ForAll(
		func(pref string, dark bool, autoBlack bool) bool {
			os := appearance.Light
			if dark {
				os = appearance.Dark
			}
			return Resolve(ParseMode(pref), os, autoBlack) != Auto
		},
		gen.OneConstOf("auto", "light", "dark", "black", "", "other"),
		gen.Bool(),
		gen.Bool(),
	))

	properties.Property("dark signal with auto_black only yields black for auto", prop.ForAll(
		func(idx int) bool {
			pref := Modes[idx]
			got := Resolve(pref, appearance.Dark, true)
			if pref == Auto {
				return got == Black
			}
			return got == pref
		},
		gen.IntRange(0, len(Modes)-1),
	))

	properties.TestingRun(t)
}

func TestIsDark(t *testing.T) {
	assert.False(t, IsDark(Light))
	assert.True(t, IsDark(Dark))
	assert.True(t, IsDark(Black))
	assert.False(t, IsDark(Auto))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Auto", DisplayName(Auto, nil))
	assert.Equal(t, "Black", DisplayName(Black, nil))
	assert.Equal(t, "Auto", DisplayName(Mode("weird"), nil))

	french := func(key string) string {
		return map[string]string{"theme.dark": "Sombre"}[key]
	}
	assert.Equal(t, "Sombre", DisplayName(Dark, french))
}

func TestEnglish_UnknownKeyPassesThrough(t *testing.T) {
	assert.Equal(t, "unknown.key", English("unknown.key"))
}
