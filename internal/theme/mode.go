package theme

import (
	"fmt"

	"github.com/jmylchreest/wxui/internal/appearance"
)

// Mode is a theme preference or, once resolved, a concrete display mode.
type Mode string

const (
	Auto  Mode = "auto"
	Light Mode = "light"
	Dark  Mode = "dark"
	Black Mode = "black"
)

// DefaultMode is used when the stored preference is empty or unsupported.
const DefaultMode = Auto

// Modes lists every preference in selection order.
var Modes = []Mode{Auto, Light, Dark, Black}

// Valid reports whether m is one of the four supported values.
func (m Mode) Valid() bool {
	switch m {
	case Auto, Light, Dark, Black:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// ParseMode converts a stored preference to a Mode, falling back to DefaultMode.
func ParseMode(s string) Mode {
	m := Mode(s)
	if !m.Valid() {
		return DefaultMode
	}
	return m
}

// ParseModeStrict converts user input to a Mode, rejecting unsupported values.
func ParseModeStrict(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unsupported theme %q: must be one of auto, light, dark, black", s)
	}
	return m, nil
}

// Resolve returns the concrete display mode for a preference.
// Auto follows the OS appearance; a dark OS appearance becomes black when
// autoBlack is set. Explicit preferences resolve to themselves.
func Resolve(pref Mode, os appearance.Appearance, autoBlack bool) Mode {
	if pref != Auto {
		if !pref.Valid() {
			return Resolve(DefaultMode, os, autoBlack)
		}
		return pref
	}
	if os == appearance.Dark {
		if autoBlack {
			return Black
		}
		return Dark
	}
	return Light
}

// IsDark reports whether a resolved mode uses light-on-dark colors.
func IsDark(resolved Mode) bool {
	return resolved == Dark || resolved == Black
}

// Translator looks up a localized string by key.
type Translator func(key string) string

var englishNames = map[string]string{
	"theme.auto":   "Auto",
	"theme.light":  "Light",
	"theme.dark":   "Dark",
	"theme.black":  "Black",
	"select_theme": "Select theme",
}

// English is the built-in Translator.
func English(key string) string {
	if s, ok := englishNames[key]; ok {
		return s
	}
	return key
}

// DisplayName returns the localized name of a mode.
func DisplayName(m Mode, tr Translator) string {
	if tr == nil {
		tr = English
	}
	return tr("theme." + string(ParseMode(string(m))))
}
