package weather

import "reflect"

// Sample is one forecast time point. Numeric metrics are nil when the
// provider did not supply them. The string fields are precomputed by the
// providers for display.
type Sample struct {
	Time  int64 `json:"time" yaml:"time"` // Unix milliseconds
	IsDay *bool `json:"isDay,omitempty" yaml:"isDay,omitempty"`

	IconID              *int     `json:"iconId,omitempty" yaml:"iconId,omitempty"`
	Temperature         *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TemperatureMin      *float64 `json:"temperatureMin,omitempty" yaml:"temperatureMin,omitempty"`
	TemperatureMax      *float64 `json:"temperatureMax,omitempty" yaml:"temperatureMax,omitempty"`
	ApparentTemperature *float64 `json:"apparentTemperature,omitempty" yaml:"apparentTemperature,omitempty"`
	Dewpoint            *float64 `json:"dewpoint,omitempty" yaml:"dewpoint,omitempty"`
	RelativeHumidity    *float64 `json:"relativeHumidity,omitempty" yaml:"relativeHumidity,omitempty"`
	SealevelPressure    *float64 `json:"sealevelPressure,omitempty" yaml:"sealevelPressure,omitempty"`
	WindSpeed           *float64 `json:"windSpeed,omitempty" yaml:"windSpeed,omitempty"`
	WindGust            *float64 `json:"windGust,omitempty" yaml:"windGust,omitempty"`
	WindBearing         *float64 `json:"windBearing,omitempty" yaml:"windBearing,omitempty"`
	WindBeaufort        *float64 `json:"windBeaufort,omitempty" yaml:"windBeaufort,omitempty"`
	PrecipAccumulation  *float64 `json:"precipAccumulation,omitempty" yaml:"precipAccumulation,omitempty"`
	PrecipProbability   *float64 `json:"precipProbability,omitempty" yaml:"precipProbability,omitempty"`
	CloudCover          *float64 `json:"cloudCover,omitempty" yaml:"cloudCover,omitempty"`
	CloudCeiling        *float64 `json:"cloudCeiling,omitempty" yaml:"cloudCeiling,omitempty"`
	UVIndex             *float64 `json:"uvIndex,omitempty" yaml:"uvIndex,omitempty"`
	SnowDepth           *float64 `json:"snowDepth,omitempty" yaml:"snowDepth,omitempty"`
	Snowfall            *float64 `json:"snowfall,omitempty" yaml:"snowfall,omitempty"`
	Iso                 *float64 `json:"iso,omitempty" yaml:"iso,omitempty"`
	RainSnowLimit       *float64 `json:"rainSnowLimit,omitempty" yaml:"rainSnowLimit,omitempty"`
	AQI                 *float64 `json:"aqi,omitempty" yaml:"aqi,omitempty"`
	Moon                *float64 `json:"moon,omitempty" yaml:"moon,omitempty"`

	WindIcon         string `json:"windIcon,omitempty" yaml:"windIcon,omitempty"`
	WindBeaufortIcon string `json:"windBeaufortIcon,omitempty" yaml:"windBeaufortIcon,omitempty"`
	MoonIcon         string `json:"moonIcon,omitempty" yaml:"moonIcon,omitempty"`
	PrecipIcon       string `json:"precipIcon,omitempty" yaml:"precipIcon,omitempty"`
	PrecipUnit       string `json:"precipUnit,omitempty" yaml:"precipUnit,omitempty"`
	PrecipColor      string `json:"precipColor,omitempty" yaml:"precipColor,omitempty"`
	PrecipFontUseApp *bool  `json:"precipFontUseApp,omitempty" yaml:"precipFontUseApp,omitempty"`
	CloudColor       string `json:"cloudColor,omitempty" yaml:"cloudColor,omitempty"`
	UVIndexColor     string `json:"uvIndexColor,omitempty" yaml:"uvIndexColor,omitempty"`
	AQIColor         string `json:"aqiColor,omitempty" yaml:"aqiColor,omitempty"`
}

// Alert is a weather warning issued for the forecast location.
type Alert struct {
	Sender      string `json:"sender,omitempty" yaml:"sender,omitempty"`
	Event       string `json:"event" yaml:"event"`
	Start       int64  `json:"start" yaml:"start"`
	End         int64  `json:"end" yaml:"end"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Data is a full forecast. Series are ordered by Time.
type Data struct {
	Time      int64    `json:"time,omitempty" yaml:"time,omitempty"`
	Currently *Sample  `json:"currently,omitempty" yaml:"currently,omitempty"`
	Minutely  []Sample `json:"minutely,omitempty" yaml:"minutely,omitempty"`
	Hourly    []Sample `json:"hourly,omitempty" yaml:"hourly,omitempty"`
	Daily     []Sample `json:"daily,omitempty" yaml:"daily,omitempty"`
	Alerts    []Alert  `json:"alerts,omitempty" yaml:"alerts,omitempty"`
}

var numeric = map[Prop]func(*Sample) *float64{
	Temperature:         func(s *Sample) *float64 { return s.Temperature },
	TemperatureMin:      func(s *Sample) *float64 { return s.TemperatureMin },
	TemperatureMax:      func(s *Sample) *float64 { return s.TemperatureMax },
	ApparentTemperature: func(s *Sample) *float64 { return s.ApparentTemperature },
	Dewpoint:            func(s *Sample) *float64 { return s.Dewpoint },
	RelativeHumidity:    func(s *Sample) *float64 { return s.RelativeHumidity },
	SealevelPressure:    func(s *Sample) *float64 { return s.SealevelPressure },
	WindSpeed:           func(s *Sample) *float64 { return s.WindSpeed },
	WindGust:            func(s *Sample) *float64 { return s.WindGust },
	WindBearing:         func(s *Sample) *float64 { return s.WindBearing },
	WindBeaufort:        func(s *Sample) *float64 { return s.WindBeaufort },
	PrecipAccumulation:  func(s *Sample) *float64 { return s.PrecipAccumulation },
	PrecipProbability:   func(s *Sample) *float64 { return s.PrecipProbability },
	CloudCover:          func(s *Sample) *float64 { return s.CloudCover },
	CloudCeiling:        func(s *Sample) *float64 { return s.CloudCeiling },
	UVIndex:             func(s *Sample) *float64 { return s.UVIndex },
	SnowDepth:           func(s *Sample) *float64 { return s.SnowDepth },
	Snowfall:            func(s *Sample) *float64 { return s.Snowfall },
	Iso:                 func(s *Sample) *float64 { return s.Iso },
	RainSnowLimit:       func(s *Sample) *float64 { return s.RainSnowLimit },
	AQI:                 func(s *Sample) *float64 { return s.AQI },
	Moon:                func(s *Sample) *float64 { return s.Moon },
}

// Has reports whether the sample carries a value for p.
func (s *Sample) Has(p Prop) bool {
	if s == nil {
		return false
	}
	if p == IconID {
		return s.IconID != nil
	}
	get, ok := numeric[p]
	return ok && get(s) != nil
}

// Value returns the numeric value of p. Missing values read as zero.
func (s *Sample) Value(p Prop) float64 {
	if s == nil {
		return 0
	}
	if p == IconID {
		if s.IconID == nil {
			return 0
		}
		return float64(*s.IconID)
	}
	if get, ok := numeric[p]; ok {
		if v := get(s); v != nil {
			return *v
		}
	}
	return 0
}

// Overlay copies every field set in other onto s. Time is kept.
// Pointer fields are set when non-nil, so an explicit zero or false is
// copied. An empty display string means the provider did not supply one.
func (s *Sample) Overlay(other *Sample) {
	if s == nil || other == nil {
		return
	}
	dst := reflect.ValueOf(s).Elem()
	src := reflect.ValueOf(other).Elem()
	for i := 0; i < src.NumField(); i++ {
		if dst.Type().Field(i).Name == "Time" {
			continue
		}
		f := src.Field(i)
		switch {
		case f.IsZero():
		case f.Kind() == reflect.Pointer:
			v := reflect.New(f.Elem().Type())
			v.Elem().Set(f.Elem())
			dst.Field(i).Set(v)
		default:
			dst.Field(i).Set(f)
		}
	}
}

// Float returns a pointer to v, for building samples.
func Float(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
