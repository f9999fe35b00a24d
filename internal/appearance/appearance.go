// Package appearance reports the operating system's light/dark preference
// and notifies when it changes.
package appearance

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

// Appearance is the OS-reported light/dark signal.
type Appearance string

const (
	Light Appearance = "light"
	Dark  Appearance = "dark"
)

// Parse converts a string to an Appearance. Anything but "dark" is light.
func Parse(s string) Appearance {
	if s == string(Dark) {
		return Dark
	}
	return Light
}

// ErrUnavailable is returned when a source cannot report a value.
var ErrUnavailable = errors.New("appearance source unavailable")

// Source provides the current OS appearance and change notifications.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Current returns the current appearance.
	Current(ctx context.Context) (Appearance, error)
	// Watch calls fn for every change until ctx is done.
	// It returns once the subscription is established.
	Watch(ctx context.Context, fn func(Appearance)) error
}

// Static is a Source with a fixed value that can be changed by hand.
// It backs the "none" configuration and tests.
type Static struct {
	mu       sync.Mutex
	value    Appearance
	watchers []func(Appearance)
}

// NewStatic creates a Static source.
func NewStatic(value Appearance) *Static {
	return &Static{value: value}
}

// Name implements Source.
func (s *Static) Name() string { return "static" }

// Current implements Source.
func (s *Static) Current(context.Context) (Appearance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, nil
}

// Watch implements Source.
func (s *Static) Watch(ctx context.Context, fn func(Appearance)) error {
	s.mu.Lock()
	s.watchers = append(s.watchers, fn)
	idx := len(s.watchers) - 1
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		s.watchers[idx] = nil
		s.mu.Unlock()
	}()
	return nil
}

// Set changes the value and notifies watchers when it differs.
func (s *Static) Set(value Appearance) {
	s.mu.Lock()
	if s.value == value {
		s.mu.Unlock()
		return
	}
	s.value = value
	watchers := slices.Clone(s.watchers)
	s.mu.Unlock()

	for _, fn := range watchers {
		if fn != nil {
			fn(value)
		}
	}
}

// FirstAvailable returns the first source whose Current call succeeds.
// If none succeed it returns a light Static source.
func FirstAvailable(ctx context.Context, logger *slog.Logger, sources ...Source) Source {
	if logger == nil {
		logger = slog.Default()
	}
	for _, src := range sources {
		if src == nil {
			continue
		}
		if _, err := src.Current(ctx); err != nil {
			logger.Debug("appearance source unavailable", "source", src.Name(), "error", err)
			continue
		}
		logger.Debug("using appearance source", "source", src.Name())
		return src
	}
	logger.Warn("no appearance source available, assuming light")
	return NewStatic(Light)
}
