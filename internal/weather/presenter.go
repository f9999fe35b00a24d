package weather

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/jmylchreest/wxui/internal/events"
	"github.com/jmylchreest/wxui/internal/settings"
	"github.com/jmylchreest/wxui/internal/units"
)

// DefaultMinUVIndex is the UV index below which the UV metric is hidden.
const DefaultMinUVIndex = 0

// Translator looks up a localized string by key.
type Translator func(key string) string

var englishStrings = map[string]string{
	"apparent":          "apparent",
	"moon":              "Moon",
	"aqi":               "AQI",
	"weather_condition": "Weather condition",
	"cloud_cover":       "Cloud cover",
	"wind_gust":         "Wind gust",
	"uv_index":          "UV index",
	"wind_beaufort":     "Beaufort scale",
	"wind_speed":        "Wind speed",
	"rain_snow_limit":   "Rain/snow limit",
	"freezing_level":    "Freezing level",
	"precipitation":     "Precipitation",
	"feels_like":        "Feels like",
	"sealevel_pressure": "Sea level pressure",
	"dewpoint":          "Dew point",
	"relative_humidity": "Relative humidity",
}

// English is the built-in Translator.
func English(key string) string {
	if s, ok := englishStrings[key]; ok {
		return s
	}
	return key
}

// WeatherDataChange is the payload of the weatherData event.
type WeatherDataChange struct {
	Primary []Prop `json:"data" yaml:"data"`
	Small   []Prop `json:"smallData" yaml:"smallData"`
}

// Options filters and extends the metrics returned by the IconsData family.
type Options struct {
	Filter []Prop // Metrics to leave out
	Before []Prop // Metrics placed before the enabled ones
	After  []Prop // Metrics placed after the enabled ones
}

// PresenterOptions configures a Presenter.
type PresenterOptions struct {
	Settings   *settings.Store
	Bus        *events.Bus // Defaults to events.Default()
	Translator Translator  // Defaults to English
	Logger     *slog.Logger
	FontScale  float64 // Defaults to 1
}

// Presenter holds the enabled metric lists and builds display descriptors.
type Presenter struct {
	mu         sync.RWMutex
	logger     *slog.Logger
	store      *settings.Store
	bus        *events.Bus
	translator Translator
	fontScale  float64

	primary []Prop
	small   []Prop
	all     []Prop
	minUV   float64
	system  units.System

	unsubscribe []func()
}

// NewPresenter creates a Presenter and loads the persisted metric lists.
func NewPresenter(opts PresenterOptions) *Presenter {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Settings == nil {
		opts.Settings = settings.NewMemory(opts.Logger)
	}
	if opts.Bus == nil {
		opts.Bus = events.Default()
	}
	if opts.Translator == nil {
		opts.Translator = English
	}
	if opts.FontScale <= 0 {
		opts.FontScale = 1
	}

	p := &Presenter{
		logger:     opts.Logger,
		store:      opts.Settings,
		bus:        opts.Bus,
		translator: opts.Translator,
		fontScale:  opts.FontScale,
	}
	p.Load()
	p.readMinUV()
	p.readUnits()

	p.unsubscribe = append(p.unsubscribe,
		p.store.OnKey(settings.KeyMinUVIndex, func(settings.Change) { p.readMinUV() }),
		p.store.OnKey(settings.KeyUnits, func(settings.Change) { p.readUnits() }),
	)
	return p
}

// Close removes the settings listeners.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, unsub := range p.unsubscribe {
		unsub()
	}
	p.unsubscribe = nil
}

// Load reads both metric lists from settings without persisting or
// notifying. A malformed list falls back to its default.
func (p *Presenter) Load() {
	primary := p.readList(settings.KeyCommonData, DefaultPrimary)
	small := p.readList(settings.KeyCommonSmallData, nil)
	p.Update(primary, small, false)
}

// Update replaces both metric lists. With save set the lists are persisted
// and a weatherData event is emitted.
func (p *Presenter) Update(primary, small []Prop, save bool) {
	primary = slices.Clone(primary)
	small = slices.Clone(small)

	p.mu.Lock()
	p.primary = primary
	p.small = small
	p.all = append(slices.Clone(primary), small...)
	p.mu.Unlock()

	p.logger.Debug("weather data updated", "primary", primary, "small", small, "save", save)
	if !save {
		return
	}

	if err := p.writeList(settings.KeyCommonData, primary); err != nil {
		p.logger.Error("failed to save weather data", "key", settings.KeyCommonData, "error", err)
	}
	if err := p.writeList(settings.KeyCommonSmallData, small); err != nil {
		p.logger.Error("failed to save weather data", "key", settings.KeyCommonSmallData, "error", err)
	}
	p.bus.Notify(events.NameWeatherData, WeatherDataChange{
		Primary: slices.Clone(primary),
		Small:   slices.Clone(small),
	})
}

// IsEnabled reports whether key is in either list.
func (p *Presenter) IsEnabled(key Prop) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Contains(p.all, key)
}

// All returns the primary list followed by the small list.
func (p *Presenter) All() []Prop {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.all)
}

// Primary returns the primary list.
func (p *Presenter) Primary() []Prop {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.primary)
}

// Small returns the small list.
func (p *Presenter) Small() []Prop {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.small)
}

// MinUVIndex returns the UV index threshold.
func (p *Presenter) MinUVIndex() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.minUV
}

// Units returns the unit system used for values.
func (p *Presenter) Units() units.System {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.system
}

// Descriptor returns the display descriptor of key for s. ok is false when
// the metric is disabled, missing from the sample, or below its threshold.
func (p *Presenter) Descriptor(key Prop, s *Sample) (*Descriptor, bool) {
	p.mu.RLock()
	enabled := slices.Contains(p.all, key)
	minUV, system := p.minUV, p.system
	p.mu.RUnlock()

	if !enabled || !s.Has(key) {
		return nil, false
	}
	d := p.describe(key, s, minUV, system)
	return d, d != nil
}

// IconsData returns the descriptors of the primary list for s.
func (p *Presenter) IconsData(s *Sample, opts Options) []Descriptor {
	return p.collect(p.Primary(), s, opts)
}

// SmallIconsData returns the descriptors of the small list for s.
func (p *Presenter) SmallIconsData(s *Sample, opts Options) []Descriptor {
	return p.collect(p.Small(), s, opts)
}

// AllIconsData returns the descriptors of both lists for s.
func (p *Presenter) AllIconsData(s *Sample, opts Options) []Descriptor {
	return p.collect(p.All(), s, opts)
}

func (p *Presenter) collect(list []Prop, s *Sample, opts Options) []Descriptor {
	keys := make([]Prop, 0, len(opts.Before)+len(list)+len(opts.After))
	seen := make(map[Prop]bool)
	for _, group := range [][]Prop{opts.Before, list, opts.After} {
		for _, k := range group {
			if seen[k] || slices.Contains(opts.Filter, k) {
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}
	}

	out := make([]Descriptor, 0, len(keys))
	for _, k := range keys {
		if d, ok := p.Descriptor(k, s); ok {
			out = append(out, *d)
		}
	}
	return out
}

func (p *Presenter) readList(key string, def []Prop) []Prop {
	raw := p.store.GetString(key, "")
	if raw == "" {
		return slices.Clone(def)
	}
	var list []Prop
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		p.logger.Warn("invalid weather data list, using default", "key", key, "error", err)
		return slices.Clone(def)
	}
	return list
}

func (p *Presenter) writeList(key string, list []Prop) error {
	if list == nil {
		list = []Prop{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return p.store.SetString(key, string(raw))
}

func (p *Presenter) readMinUV() {
	v := p.store.GetNumber(settings.KeyMinUVIndex, DefaultMinUVIndex)
	p.mu.Lock()
	p.minUV = v
	p.mu.Unlock()
}

func (p *Presenter) readUnits() {
	v := units.ParseSystem(p.store.GetString(settings.KeyUnits, string(units.Metric)))
	p.mu.Lock()
	p.system = v
	p.mu.Unlock()
}
