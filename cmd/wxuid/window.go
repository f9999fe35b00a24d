package main

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/wxui/internal/adapter/input"
	"github.com/jmylchreest/wxui/internal/chrome/adwaita"
	"github.com/jmylchreest/wxui/internal/events"
	"github.com/jmylchreest/wxui/internal/provider"
	"github.com/jmylchreest/wxui/internal/settings"
	"github.com/jmylchreest/wxui/internal/theme"
	"github.com/jmylchreest/wxui/internal/weather"
)

type windowDeps struct {
	store      *settings.Store
	controller *theme.Controller
	presenter  *weather.Presenter
	selector   *provider.Selector
	chrome     *adwaita.Chrome
	bus        *events.Bus
	logger     *slog.Logger
}

// mainWindow shows the theme menu, the selected providers and the metric
// strip of the loaded forecast.
type mainWindow struct {
	windowDeps

	win       *adw.ApplicationWindow
	themeLbl  *gtk.Label
	sourceLbl *gtk.Label
	strip     *gtk.Box
	items     []*gtk.Label
	sample    *weather.Sample

	unsubscribe []func()
}

func newMainWindow(app *gtk.Application, deps windowDeps) *mainWindow {
	w := &mainWindow{windowDeps: deps}

	w.win = adw.NewApplicationWindow(app)
	w.win.SetTitle(appName)
	w.win.SetDefaultSize(420, 260)
	w.win.SetHideOnClose(true)
	w.win.ConnectMap(w.controller.ActivityStarted)

	header := adw.NewHeaderBar()
	header.PackEnd(w.buildThemeMenu())

	w.themeLbl = gtk.NewLabel("")
	w.themeLbl.SetHAlign(gtk.AlignStart)
	w.sourceLbl = gtk.NewLabel("")
	w.sourceLbl.SetHAlign(gtk.AlignStart)
	w.strip = gtk.NewBox(gtk.OrientationVertical, 4)
	w.strip.AddCSSClass("weather-strip")

	body := gtk.NewBox(gtk.OrientationVertical, 8)
	body.SetMarginTop(12)
	body.SetMarginBottom(12)
	body.SetMarginStart(12)
	body.SetMarginEnd(12)
	body.Append(w.themeLbl)
	body.Append(w.sourceLbl)
	body.Append(gtk.NewSeparator(gtk.OrientationHorizontal))
	body.Append(w.strip)

	content := gtk.NewBox(gtk.OrientationVertical, 0)
	content.Append(header)
	content.Append(body)
	w.win.SetContent(content)

	w.unsubscribe = append(w.unsubscribe,
		w.controller.Current().Watch(func(theme.Mode) { w.updateTheme() }),
		w.bus.On(events.NameWeatherData, func(events.Event) { adwaita.Dispatch(w.Refresh) }),
		w.bus.On(events.NameProvider, func(events.Event) { adwaita.Dispatch(w.updateProviders) }),
		w.bus.On(events.NameAQIProvider, func(events.Event) { adwaita.Dispatch(w.updateProviders) }),
	)

	w.updateTheme()
	w.updateProviders()
	w.Refresh()
	return w
}

func (w *mainWindow) buildThemeMenu() gtk.Widgetter {
	list := gtk.NewBox(gtk.OrientationVertical, 2)
	popover := gtk.NewPopover()
	popover.SetChild(list)
	w.unsubscribe = append(w.unsubscribe, w.chrome.Track(popover))

	for _, opt := range w.controller.Options() {
		mode := opt.Mode
		btn := gtk.NewButtonWithLabel(opt.Name)
		btn.AddCSSClass("flat")
		btn.ConnectClicked(func() {
			popover.Popdown()
			w.controller.Set(mode)
		})
		list.Append(btn)
	}

	autoBlack := gtk.NewCheckButtonWithLabel("Black when dark")
	autoBlack.SetActive(w.store.GetBool(settings.KeyAutoBlack, false))
	autoBlack.ConnectToggled(func() {
		if err := w.store.SetBool(settings.KeyAutoBlack, autoBlack.Active()); err != nil {
			w.logger.Error("failed to save auto_black", "error", err)
		}
	})
	list.Append(gtk.NewSeparator(gtk.OrientationHorizontal))
	list.Append(autoBlack)

	menu := gtk.NewMenuButton()
	menu.SetIconName("weather-clear-night-symbolic")
	menu.SetTooltipText("Theme")
	menu.SetPopover(popover)
	return menu
}

// LoadForecast reads a forecast file and shows its current conditions.
func (w *mainWindow) LoadForecast(ctx context.Context, path string) {
	adapter, err := input.NewAdapter(path)
	if err != nil {
		w.logger.Warn("invalid forecast source", "path", path, "error", err)
		return
	}
	data, err := adapter.Import(ctx)
	if err != nil {
		w.logger.Warn("failed to load forecast", "path", path, "error", err)
		return
	}
	switch {
	case data.Currently != nil:
		w.sample = data.Currently
	case len(data.Hourly) > 0:
		w.sample = &data.Hourly[0]
	}
	w.Refresh()
}

// Refresh rebuilds the metric strip from the presenter.
func (w *mainWindow) Refresh() {
	for _, lbl := range w.items {
		w.strip.Remove(lbl)
	}
	w.items = w.items[:0]

	if w.sample == nil {
		lbl := gtk.NewLabel("No forecast loaded")
		lbl.AddCSSClass("dim-label")
		w.strip.Append(lbl)
		w.items = append(w.items, lbl)
		return
	}

	for _, d := range w.presenter.AllIconsData(w.sample, weather.Options{}) {
		lbl := gtk.NewLabel("")
		lbl.SetHAlign(gtk.AlignStart)
		lbl.SetMarkup(descriptorMarkup(d))
		w.strip.Append(lbl)
		w.items = append(w.items, lbl)
	}
}

func (w *mainWindow) updateTheme() {
	w.themeLbl.SetText(fmt.Sprintf("Theme: %s (%s)",
		theme.DisplayName(w.controller.Theme(), nil), w.controller.Effective()))
}

func (w *mainWindow) updateProviders() {
	w.sourceLbl.SetText(fmt.Sprintf("Providers: %s, air quality %s",
		w.selector.Weather().Name, w.selector.AirQuality().Name))
}

// Present shows the window.
func (w *mainWindow) Present() {
	w.win.Present()
}

// Close removes listeners and destroys the window.
func (w *mainWindow) Close() {
	for _, unsub := range w.unsubscribe {
		unsub()
	}
	w.unsubscribe = nil
	w.win.Destroy()
}

// descriptorMarkup renders a descriptor as Pango markup.
func descriptorMarkup(d weather.Descriptor) string {
	var sb strings.Builder
	sb.WriteString("<b>" + html.EscapeString(weather.Title(d.Key, nil)) + "</b>  ")

	value := html.EscapeString(d.Value)
	if d.Subvalue != "" {
		value += " <small>" + html.EscapeString(d.Subvalue) + "</small>"
	}
	color := d.TextColor
	if color == "" {
		color = d.Color
	}
	if color != "" {
		fmt.Fprintf(&sb, `<span foreground="%s">%s</span>`, html.EscapeString(color), value)
	} else {
		sb.WriteString(value)
	}
	return sb.String()
}
