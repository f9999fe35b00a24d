// Package adwaita applies display modes to a libadwaita application.
// All methods must be called on the GTK main loop; use Dispatch to get there.
package adwaita

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/wxui/internal/theme"
)

// Dispatch schedules fn on the GTK main loop.
func Dispatch(fn func()) {
	glib.IdleAdd(fn)
}

// Popover is anything that can be dismissed when the theme changes.
type Popover interface {
	Popdown()
}

// Chrome drives adw.StyleManager and an application-priority CSS provider
// that carries the black palette.
type Chrome struct {
	mu       sync.Mutex
	logger   *slog.Logger
	palettes *theme.Loader
	provider *gtk.CSSProvider
	display  *gdk.Display
	resolved theme.Mode
	popovers map[int]Popover
	nextID   int
}

// New creates a Chrome. The CSS provider is attached to the default display
// on the first SetMode.
func New(palettes *theme.Loader, logger *slog.Logger) *Chrome {
	if logger == nil {
		logger = slog.Default()
	}
	if palettes == nil {
		palettes = theme.NewLoader(logger, "")
	}
	return &Chrome{
		logger:   logger,
		palettes: palettes,
		provider: gtk.NewCSSProvider(),
		popovers: make(map[int]Popover),
	}
}

// SetMode sets the libadwaita color scheme for pref and loads the palette
// stylesheet when resolved is black.
func (c *Chrome) SetMode(pref, resolved theme.Mode) error {
	sm := adw.StyleManagerGetDefault()
	if sm == nil {
		return fmt.Errorf("no style manager")
	}
	sm.SetColorScheme(colorScheme(pref))

	c.mu.Lock()
	c.resolved = resolved
	c.mu.Unlock()
	return c.loadCSS(resolved)
}

// ClosePopovers pops down every tracked popover.
func (c *Chrome) ClosePopovers() {
	c.mu.Lock()
	open := make([]Popover, 0, len(c.popovers))
	for _, p := range c.popovers {
		open = append(open, p)
	}
	c.mu.Unlock()

	for _, p := range open {
		p.Popdown()
	}
}

// ApplyDynamicColors reloads the palette stylesheet so edited user
// palettes take effect.
func (c *Chrome) ApplyDynamicColors() error {
	c.mu.Lock()
	resolved := c.resolved
	c.mu.Unlock()
	if resolved == "" {
		return nil
	}
	return c.loadCSS(resolved)
}

// Track registers a popover to be closed on theme changes.
// The returned function stops tracking it.
func (c *Chrome) Track(p Popover) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.popovers[id] = p
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.popovers, id)
	}
}

// Dark reports whether libadwaita currently renders dark.
func (c *Chrome) Dark() bool {
	sm := adw.StyleManagerGetDefault()
	return sm != nil && sm.Dark()
}

func (c *Chrome) loadCSS(resolved theme.Mode) error {
	css := ""
	if needsStylesheet(resolved) {
		var err error
		css, err = c.palettes.CSS(resolved)
		if err != nil {
			return fmt.Errorf("load %s palette: %w", resolved, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.provider.LoadFromString(css)
	if c.display != nil {
		return nil
	}
	display := gdk.DisplayGetDefault()
	if display == nil {
		c.logger.Warn("no display available, cannot apply palette")
		return nil
	}
	c.display = display
	gtk.StyleContextAddProviderForDisplay(display, c.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	c.logger.Debug("attached palette provider", "mode", resolved)
	return nil
}

// colorScheme maps a preference to the libadwaita scheme. Auto follows the
// OS; black is dark with an extra stylesheet.
func colorScheme(pref theme.Mode) adw.ColorScheme {
	switch pref {
	case theme.Light:
		return adw.ColorSchemeForceLight
	case theme.Dark, theme.Black:
		return adw.ColorSchemeForceDark
	default:
		return adw.ColorSchemeDefault
	}
}

// needsStylesheet reports whether libadwaita's own colors are not enough.
func needsStylesheet(resolved theme.Mode) bool {
	return resolved == theme.Black
}
