package theme

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/wxui/internal/appearance"
	"github.com/jmylchreest/wxui/internal/events"
	"github.com/jmylchreest/wxui/internal/settings"
)

// Chrome applies a display mode to the native UI toolkit.
type Chrome interface {
	// SetMode switches the toolkit to the preference. resolved is the
	// concrete mode, used where the toolkit cannot follow the OS itself.
	SetMode(pref Mode, resolved Mode) error
	// ClosePopovers dismisses open popovers, which do not restyle live.
	ClosePopovers()
	// ApplyDynamicColors re-reads wallpaper/accent derived colors.
	ApplyDynamicColors() error
}

// NopChrome is a Chrome that does nothing. Used where no toolkit is running.
type NopChrome struct{}

func (NopChrome) SetMode(Mode, Mode) error  { return nil }
func (NopChrome) ClosePopovers()            {}
func (NopChrome) ApplyDynamicColors() error { return nil }

// Option is one entry in the theme selection dialog.
type Option struct {
	Name    string
	Mode    Mode
	Checked bool
}

// Picker shows a single-choice dialog. ok is false when the user dismissed it.
type Picker interface {
	Pick(ctx context.Context, title string, options []Option) (choice Option, ok bool, err error)
}

// ErrorReporter shows an error to the user.
type ErrorReporter func(error)

// Options configures a Controller.
type Options struct {
	Settings   *settings.Store
	Bus        *events.Bus       // Defaults to events.Default()
	Appearance appearance.Source // Defaults to a light Static source
	Chrome     Chrome            // Defaults to NopChrome
	Palettes   *Loader           // Defaults to embedded palettes only
	Translator Translator        // Defaults to English
	Logger     *slog.Logger

	// Dispatch runs fn on the UI loop. Nil runs it inline.
	Dispatch func(fn func())

	// ForceLight pins the preference to light on platforms without dark support.
	ForceLight bool
}

// Controller keeps the theme preference, the resolved mode and the palette
// in sync with settings and the OS appearance.
type Controller struct {
	mu           sync.Mutex
	logger       *slog.Logger
	store        *settings.Store
	bus          *events.Bus
	source       appearance.Source
	chrome       Chrome
	palettes     *Loader
	translator   Translator
	dispatch     func(func())
	forceLight   bool
	autoBlack    bool
	osAppearance appearance.Appearance
	started      bool
	cancel       context.CancelFunc
	unsubscribe  []func()

	preference *events.Value[Mode]
	current    *events.Value[Mode]
	palette    *events.Value[Palette]
}

// NewController creates a Controller from the persisted preference.
// Nothing is applied until Start.
func NewController(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Settings == nil {
		opts.Settings = settings.NewMemory(opts.Logger)
	}
	if opts.Bus == nil {
		opts.Bus = events.Default()
	}
	if opts.Appearance == nil {
		opts.Appearance = appearance.NewStatic(appearance.Light)
	}
	if opts.Chrome == nil {
		opts.Chrome = NopChrome{}
	}
	if opts.Palettes == nil {
		opts.Palettes = NewLoader(opts.Logger, "")
	}
	if opts.Translator == nil {
		opts.Translator = English
	}
	if opts.Dispatch == nil {
		opts.Dispatch = func(fn func()) { fn() }
	}

	c := &Controller{
		logger:       opts.Logger,
		store:        opts.Settings,
		bus:          opts.Bus,
		source:       opts.Appearance,
		chrome:       opts.Chrome,
		palettes:     opts.Palettes,
		translator:   opts.Translator,
		dispatch:     opts.Dispatch,
		forceLight:   opts.ForceLight,
		osAppearance: appearance.Light,
	}

	pref := c.readPreference()
	c.autoBlack = c.store.GetBool(settings.KeyAutoBlack, false)
	c.preference = events.NewValue(pref)
	c.current = events.NewValue(Resolve(pref, c.osAppearance, c.autoBlack))
	c.palette = events.NewValue(Palette{})
	return c
}

// Start applies the preference to chrome and subscribes to settings and
// OS appearance changes. It does nothing on a second call unless force is set.
func (c *Controller) Start(ctx context.Context, force bool) {
	c.mu.Lock()
	if c.started && !force {
		c.mu.Unlock()
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	for _, unsub := range c.unsubscribe {
		unsub()
	}
	c.unsubscribe = nil
	c.started = true
	watchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	c.logger.Debug("starting theme controller", "force", force, "theme", c.Theme())

	if a, err := c.source.Current(ctx); err != nil {
		c.logger.Warn("failed to read OS appearance", "source", c.source.Name(), "error", err)
	} else {
		c.mu.Lock()
		c.osAppearance = a
		c.mu.Unlock()
	}

	unsubBlack := c.store.OnKey(settings.KeyAutoBlack, func(settings.Change) {
		c.dispatch(c.autoBlackChanged)
	})
	unsubTheme := c.store.OnKey(settings.KeyTheme, func(settings.Change) {
		c.dispatch(c.themeChanged)
	})
	c.mu.Lock()
	c.unsubscribe = append(c.unsubscribe, unsubBlack, unsubTheme)
	c.mu.Unlock()

	err := c.source.Watch(watchCtx, func(a appearance.Appearance) {
		c.dispatch(func() { c.SystemAppearanceChanged(a) })
	})
	if err != nil {
		c.logger.Warn("failed to watch OS appearance", "source", c.source.Name(), "error", err)
	}

	c.dispatch(c.ready)
}

// Stop removes all subscriptions. The last applied state stays in place.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	for _, unsub := range c.unsubscribe {
		unsub()
	}
	c.unsubscribe = nil
	c.started = false
}

// Theme returns the current preference.
func (c *Controller) Theme() Mode {
	return c.preference.Get()
}

// Effective returns the resolved display mode.
func (c *Controller) Effective() Mode {
	return c.current.Get()
}

// IsDark reports whether the resolved mode is dark or black.
func (c *Controller) IsDark() bool {
	return IsDark(c.Effective())
}

// Palette returns the palette of the resolved mode.
func (c *Controller) Palette() Palette {
	return c.palette.Get()
}

// Preference exposes the preference as a reactive value.
func (c *Controller) Preference() *events.Value[Mode] {
	return c.preference
}

// Current exposes the resolved mode as a reactive value.
func (c *Controller) Current() *events.Value[Mode] {
	return c.current
}

// PaletteValue exposes the palette as a reactive value.
func (c *Controller) PaletteValue() *events.Value[Palette] {
	return c.palette
}

// Resolve returns the concrete mode for pref under the current OS appearance.
func (c *Controller) Resolve(pref Mode) Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Resolve(pref, c.osAppearance, c.autoBlack)
}

// Set persists a new preference. The change is applied by the settings
// listener, so setting the current value again has no effect.
func (c *Controller) Set(m Mode) {
	if !m.Valid() {
		c.logger.Warn("ignoring unsupported theme", "theme", m)
		return
	}
	if err := c.store.SetString(settings.KeyTheme, string(m)); err != nil {
		c.logger.Error("failed to persist theme", "theme", m, "error", err)
	}
}

// Toggle switches dark to light (or auto when autoDark is set) and anything
// else to dark.
func (c *Controller) Toggle(autoDark bool) {
	next := Dark
	if c.Theme() == Dark {
		next = Light
		if autoDark {
			next = Auto
		}
	}
	c.Set(next)
}

// Options returns the selection dialog entries with the current one checked.
func (c *Controller) Options() []Option {
	current := c.Theme()
	opts := make([]Option, 0, len(Modes))
	for _, m := range Modes {
		opts = append(opts, Option{
			Name:    DisplayName(m, c.translator),
			Mode:    m,
			Checked: m == current,
		})
	}
	return opts
}

// Select shows the theme dialog and persists the choice.
// Errors are passed to report, never returned.
func (c *Controller) Select(ctx context.Context, picker Picker, report ErrorReporter) {
	if report == nil {
		report = func(err error) { c.logger.Error("theme selection failed", "error", err) }
	}

	choice, ok, err := picker.Pick(ctx, c.translator("select_theme"), c.Options())
	if err != nil {
		report(fmt.Errorf("theme selection: %w", err))
		return
	}
	if !ok || !choice.Mode.Valid() {
		return
	}
	c.Set(choice.Mode)
}

// SystemAppearanceChanged handles an OS light/dark change. Only an auto
// preference reacts to it.
func (c *Controller) SystemAppearanceChanged(a appearance.Appearance) {
	c.mu.Lock()
	c.osAppearance = a
	pref := c.preference.Get()
	autoBlack := c.autoBlack
	c.mu.Unlock()

	c.logger.Debug("system appearance changed", "theme", pref, "appearance", a, "auto_black", autoBlack)
	if pref != Auto {
		return
	}

	resolved := Resolve(pref, a, autoBlack)
	c.safely("apply dynamic colors", c.chrome.ApplyDynamicColors)
	c.safely("set chrome mode", func() error { return c.chrome.SetMode(Auto, resolved) })
	c.current.Set(resolved)
	c.updatePalette(resolved)
	// Popovers keep the old colors until reopened
	c.safely("close popovers", func() error { c.chrome.ClosePopovers(); return nil })
	c.bus.Notify(events.NameTheme, resolved)
}

// ActivityStarted refreshes dynamic colors and the palette when a window
// (re)appears.
func (c *Controller) ActivityStarted() {
	c.safely("apply dynamic colors", c.chrome.ApplyDynamicColors)
	c.updatePalette(c.Resolve(c.Theme()))
}

func (c *Controller) ready() {
	pref := c.Theme()
	c.logger.Debug("theme ready", "theme", pref)
	resolved := c.Resolve(pref)
	c.apply(pref, resolved)
	c.current.Set(resolved)
	c.updatePalette(resolved)
}

func (c *Controller) themeChanged() {
	next := c.readPreference()

	c.mu.Lock()
	if next == c.preference.Get() {
		c.mu.Unlock()
		return
	}
	autoBlack := c.autoBlack
	osAppearance := c.osAppearance
	c.mu.Unlock()

	c.logger.Debug("theme preference changed", "theme", next, "auto_black", autoBlack)

	resolved := Resolve(next, osAppearance, autoBlack)
	c.preference.Set(next)
	c.current.Set(resolved)
	c.apply(next, resolved)
	c.updatePalette(resolved)
	c.safely("apply dynamic colors", c.chrome.ApplyDynamicColors)
	c.bus.Notify(events.NameTheme, resolved)
}

func (c *Controller) autoBlackChanged() {
	c.mu.Lock()
	c.autoBlack = c.store.GetBool(settings.KeyAutoBlack, false)
	pref := c.preference.Get()
	resolved := Resolve(pref, c.osAppearance, c.autoBlack)
	c.mu.Unlock()

	c.logger.Debug("auto_black changed", "theme", pref, "resolved", resolved)
	if pref != Auto {
		return
	}
	c.current.Set(resolved)
	c.updatePalette(resolved)
	c.bus.Notify(events.NameTheme, resolved)
}

func (c *Controller) readPreference() Mode {
	if c.forceLight {
		return Light
	}
	return ParseMode(c.store.GetString(settings.KeyTheme, string(DefaultMode)))
}

func (c *Controller) apply(pref, resolved Mode) {
	c.logger.Debug("applying theme", "theme", pref, "resolved", resolved)
	c.safely("set chrome mode", func() error { return c.chrome.SetMode(pref, resolved) })
}

func (c *Controller) updatePalette(resolved Mode) {
	p, err := c.palettes.Load(resolved)
	if err != nil {
		c.logger.Error("failed to load palette", "mode", resolved, "error", err)
		return
	}
	c.palette.Set(p)
}

// safely runs a chrome call, logging errors and recovering toolkit panics.
func (c *Controller) safely(what string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("theme "+what+" panicked", "panic", r)
		}
	}()
	if err := fn(); err != nil {
		c.logger.Error("theme "+what+" failed", "error", err)
	}
}
