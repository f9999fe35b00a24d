// Package provider tracks which weather and air quality providers are
// selected in settings.
package provider

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/wxui/internal/events"
	"github.com/jmylchreest/wxui/internal/settings"
)

// ID identifies a data provider.
type ID string

const (
	MeteoFrance ID = "meteofrance"
	OpenWeather ID = "openweathermap"
	OpenMeteo   ID = "openmeteo"
	Atmo        ID = "atmo"
)

// Default is used when no provider, or an unknown one, is configured.
const Default = OpenMeteo

// ErrUnknown is returned when selecting a provider that does not exist for
// the requested role.
var ErrUnknown = errors.New("unknown provider")

// Info describes a provider.
type Info struct {
	ID          ID     `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Weather     bool   `json:"weather" yaml:"weather"`
	AirQuality  bool   `json:"airQuality" yaml:"airQuality"`
	RequiresKey bool   `json:"requiresKey" yaml:"requiresKey"`
}

var registry = []Info{
	{ID: MeteoFrance, Name: "Météo-France", Weather: true},
	{ID: OpenWeather, Name: "OpenWeatherMap", Weather: true, RequiresKey: true},
	{ID: OpenMeteo, Name: "Open-Meteo", Weather: true, AirQuality: true},
	{ID: Atmo, Name: "Atmo France", AirQuality: true},
}

// Weather lists the weather providers.
func Weather() []Info {
	return filter(func(i Info) bool { return i.Weather })
}

// AirQuality lists the air quality providers.
func AirQuality() []Info {
	return filter(func(i Info) bool { return i.AirQuality })
}

// ForWeather returns the weather provider with the given id, or the
// default one when id is not a weather provider.
func ForWeather(id ID) Info {
	if info, ok := lookup(id, Weather()); ok {
		return info
	}
	info, _ := lookup(Default, registry)
	return info
}

// ForAirQuality returns the air quality provider with the given id, or the
// default one when id is not an air quality provider.
func ForAirQuality(id ID) Info {
	if info, ok := lookup(id, AirQuality()); ok {
		return info
	}
	info, _ := lookup(Default, registry)
	return info
}

func filter(keep func(Info) bool) []Info {
	var out []Info
	for _, info := range registry {
		if keep(info) {
			out = append(out, info)
		}
	}
	return out
}

func lookup(id ID, infos []Info) (Info, bool) {
	for _, info := range infos {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}

// Options configures a Selector.
type Options struct {
	Settings *settings.Store
	Bus      *events.Bus // Defaults to events.Default()
	Logger   *slog.Logger
}

// Selector follows the provider settings and announces changes on the bus.
type Selector struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	store       *settings.Store
	bus         *events.Bus
	weather     Info
	airQuality  Info
	unsubscribe []func()
}

// NewSelector creates a Selector from the persisted settings.
func NewSelector(opts Options) *Selector {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Settings == nil {
		opts.Settings = settings.NewMemory(opts.Logger)
	}
	if opts.Bus == nil {
		opts.Bus = events.Default()
	}

	s := &Selector{
		logger: opts.Logger,
		store:  opts.Settings,
		bus:    opts.Bus,
	}
	s.weather = s.readWeather()
	s.airQuality = s.readAirQuality()

	s.unsubscribe = append(s.unsubscribe,
		s.store.OnKey(settings.KeyProvider, func(settings.Change) { s.weatherChanged() }),
		s.store.OnKey(settings.KeyAQIProvider, func(settings.Change) { s.airQualityChanged() }),
	)
	return s
}

// Close removes the settings listeners.
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, unsub := range s.unsubscribe {
		unsub()
	}
	s.unsubscribe = nil
}

// Weather returns the selected weather provider.
func (s *Selector) Weather() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weather
}

// AirQuality returns the selected air quality provider.
func (s *Selector) AirQuality() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.airQuality
}

// SetWeather persists the weather provider.
func (s *Selector) SetWeather(id ID) error {
	if _, ok := lookup(id, Weather()); !ok {
		return fmt.Errorf("%w for weather: %q", ErrUnknown, id)
	}
	return s.store.SetString(settings.KeyProvider, string(id))
}

// SetAirQuality persists the air quality provider.
func (s *Selector) SetAirQuality(id ID) error {
	if _, ok := lookup(id, AirQuality()); !ok {
		return fmt.Errorf("%w for air quality: %q", ErrUnknown, id)
	}
	return s.store.SetString(settings.KeyAQIProvider, string(id))
}

func (s *Selector) weatherChanged() {
	info := s.readWeather()
	s.mu.Lock()
	s.weather = info
	s.mu.Unlock()

	s.logger.Info("weather provider changed", "provider", info.ID)
	s.bus.Notify(events.NameProvider, info)
}

func (s *Selector) airQualityChanged() {
	info := s.readAirQuality()
	s.mu.Lock()
	s.airQuality = info
	s.mu.Unlock()

	s.logger.Info("air quality provider changed", "provider", info.ID)
	s.bus.Notify(events.NameAQIProvider, info)
}

func (s *Selector) readWeather() Info {
	id := ID(s.store.GetString(settings.KeyProvider, string(Default)))
	info := ForWeather(id)
	if id != "" && info.ID != id {
		s.logger.Warn("unknown weather provider, using default", "provider", id, "default", info.ID)
	}
	return info
}

func (s *Selector) readAirQuality() Info {
	id := ID(s.store.GetString(settings.KeyAQIProvider, string(Default)))
	info := ForAirQuality(id)
	if id != "" && info.ID != id {
		s.logger.Warn("unknown air quality provider, using default", "provider", id, "default", info.ID)
	}
	return info
}
