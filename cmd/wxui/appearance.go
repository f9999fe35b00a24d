package main

import (
	"context"
	"io"

	"github.com/jmylchreest/wxui/internal/appearance"
	"github.com/jmylchreest/wxui/internal/config"
	"github.com/jmylchreest/wxui/internal/theme"
)

// openAppearance picks the OS appearance source named in the config.
// The returned closer releases the D-Bus connection, if any.
func openAppearance(ctx context.Context) (appearance.Source, io.Closer) {
	var portal *appearance.Portal
	var sources []appearance.Source

	switch cfg.Appearance.Source {
	case config.AppearanceNone:
		return appearance.NewStatic(appearance.Light), nopCloser{}
	case config.AppearanceTerminal:
		sources = append(sources, appearance.NewTerminal())
	case config.AppearancePortal, config.AppearanceAuto:
		p, err := appearance.NewPortal(logger)
		if err != nil {
			logger.Debug("portal unavailable", "error", err)
		} else {
			portal = p
			sources = append(sources, p)
		}
		if cfg.Appearance.Source == config.AppearanceAuto {
			sources = append(sources, appearance.NewTerminal())
		}
	default:
		logger.Warn("unknown appearance source, assuming light", "source", cfg.Appearance.Source)
	}

	src := appearance.FirstAvailable(ctx, logger, sources...)
	if portal == nil {
		return src, nopCloser{}
	}
	return src, portal
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newController builds a theme controller on the shared settings store.
func newController(src appearance.Source) *theme.Controller {
	dir, err := theme.PalettesDir()
	if err != nil {
		logger.Debug("no palettes directory", "error", err)
	}
	return theme.NewController(theme.Options{
		Settings:   settingsStore,
		Bus:        bus,
		Appearance: src,
		Palettes:   theme.NewLoader(logger, dir),
		Logger:     logger,
	})
}
