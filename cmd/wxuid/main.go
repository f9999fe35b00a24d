// Package main is the entry point for the wxuid theme daemon.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/wxui/internal/appearance"
	"github.com/jmylchreest/wxui/internal/chrome/adwaita"
	"github.com/jmylchreest/wxui/internal/config"
	"github.com/jmylchreest/wxui/internal/events"
	"github.com/jmylchreest/wxui/internal/provider"
	"github.com/jmylchreest/wxui/internal/settings"
	"github.com/jmylchreest/wxui/internal/theme"
	"github.com/jmylchreest/wxui/internal/weather"
)

const (
	appID   = "io.github.jmylchreest.wxuid"
	appName = "wxuid"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	forecastPath := flag.String("forecast", "", "Forecast file shown in the window (JSON or YAML)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("wxuid version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	run(cfg, *forecastPath, logger)
}

// run owns the libadwaita application. All controller work happens on the
// GTK main loop.
func run(cfg *config.Config, forecastPath string, logger *slog.Logger) {
	logger.Info("starting wxuid", "version", version)

	app := adw.NewApplication(appID, 0)

	var (
		store      *settings.Store
		watcher    *settings.FileWatcher
		palettesW  *theme.Watcher
		portal     *appearance.Portal
		controller *theme.Controller
		presenter  *weather.Presenter
		selector   *provider.Selector
		window     *mainWindow
		bus        = events.Default()
		running    atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
		glib.IdleAdd(func() {
			app.Quit()
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			if window != nil {
				window.Present()
			}
			return
		}
		running.Store(true)

		var err error
		store, err = settings.Open(cfg.ResolvedSettingsPath(), logger)
		if err != nil {
			logger.Error("failed to open settings", "path", cfg.ResolvedSettingsPath(), "error", err)
			app.Quit()
			return
		}
		logger.Info("settings loaded", "path", store.Path())

		if cfg.Settings.Watch {
			watcher, err = settings.NewFileWatcher(store, adwaita.Dispatch)
			if err != nil {
				logger.Warn("failed to create settings watcher", "error", err)
			} else if err := watcher.Start(); err != nil {
				logger.Warn("failed to start settings watcher", "error", err)
			}
		}

		palettesDir, err := theme.PalettesDir()
		if err != nil {
			logger.Warn("failed to get palettes directory", "error", err)
		}
		palettes := theme.NewLoader(logger, palettesDir)

		var sources []appearance.Source
		if cfg.Appearance.Source != config.AppearanceNone {
			portal, err = appearance.NewPortal(logger)
			if err != nil {
				logger.Warn("appearance portal unavailable", "error", err)
			} else {
				sources = append(sources, portal)
			}
		}

		chrome := adwaita.New(palettes, logger)
		controller = theme.NewController(theme.Options{
			Settings:   store,
			Bus:        bus,
			Appearance: appearance.FirstAvailable(ctx, logger, sources...),
			Chrome:     chrome,
			Palettes:   palettes,
			Logger:     logger,
			Dispatch:   adwaita.Dispatch,
		})
		palettesW = theme.NewWatcher(palettesDir, logger)
		palettesW.SetChangeCallback(func() {
			adwaita.Dispatch(controller.ActivityStarted)
		})
		if err := palettesW.Start(ctx); err != nil {
			logger.Warn("failed to start palette watcher", "error", err)
		}

		presenter = weather.NewPresenter(weather.PresenterOptions{
			Settings: store,
			Bus:      bus,
			Logger:   logger,
		})
		selector = provider.NewSelector(provider.Options{
			Settings: store,
			Bus:      bus,
			Logger:   logger,
		})

		// Strip edits from the CLI
		reload := func(settings.Change) {
			presenter.Load()
			if window != nil {
				window.Refresh()
			}
		}
		store.OnKey(settings.KeyCommonData, reload)
		store.OnKey(settings.KeyCommonSmallData, reload)

		window = newMainWindow(&app.Application, windowDeps{
			store:      store,
			controller: controller,
			presenter:  presenter,
			selector:   selector,
			chrome:     chrome,
			bus:        bus,
			logger:     logger,
		})
		if forecastPath != "" {
			window.LoadForecast(ctx, forecastPath)
		}

		controller.Start(ctx, false)
		window.Present()

		logger.Info("wxuid ready", "theme", controller.Theme(), "provider", selector.Weather().ID)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if window != nil {
			window.Close()
		}
		if controller != nil {
			controller.Stop()
		}
		if presenter != nil {
			presenter.Close()
		}
		if selector != nil {
			selector.Close()
		}
		if watcher != nil {
			_ = watcher.Stop()
		}
		if palettesW != nil {
			palettesW.Stop()
		}
		if portal != nil {
			_ = portal.Close()
		}
		if store != nil {
			_ = store.Close()
		}
		running.Store(false)
	})

	status := app.Run(os.Args[:1])

	cancel()
	bus.Close()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("wxuid stopped", "app", appName)
}
