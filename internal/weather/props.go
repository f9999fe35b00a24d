// Package weather turns weather samples into display descriptors for the
// metric strips drawn under each forecast row, and merges partial
// forecasts from several providers.
package weather

import (
	"slices"

	"github.com/jmylchreest/wxui/internal/units"
)

// Prop names a weather metric. The value is the field name used by the
// providers and in the persisted metric lists.
type Prop string

const (
	PrecipAccumulation  Prop = "precipAccumulation"
	PrecipProbability   Prop = "precipProbability"
	CloudCover          Prop = "cloudCover"
	CloudCeiling        Prop = "cloudCeiling"
	UVIndex             Prop = "uvIndex"
	WindGust            Prop = "windGust"
	Moon                Prop = "moon"
	WindBeaufort        Prop = "windBeaufort"
	Temperature         Prop = "temperature"
	TemperatureMin      Prop = "temperatureMin"
	TemperatureMax      Prop = "temperatureMax"
	SnowDepth           Prop = "snowDepth"
	Snowfall            Prop = "snowfall"
	Iso                 Prop = "iso"
	IconID              Prop = "iconId"
	WindSpeed           Prop = "windSpeed"
	WindBearing         Prop = "windBearing"
	RainSnowLimit       Prop = "rainSnowLimit"
	AQI                 Prop = "aqi"
	SealevelPressure    Prop = "sealevelPressure"
	ApparentTemperature Prop = "apparentTemperature"
	RelativeHumidity    Prop = "relativeHumidity"
	Dewpoint            Prop = "dewpoint"
)

// Props lists every known metric.
var Props = []Prop{
	PrecipAccumulation, PrecipProbability, CloudCover, CloudCeiling, UVIndex,
	WindGust, Moon, WindBeaufort, Temperature, TemperatureMin, TemperatureMax,
	SnowDepth, Snowfall, Iso, IconID, WindSpeed, WindBearing, RainSnowLimit,
	AQI, SealevelPressure, ApparentTemperature, RelativeHumidity, Dewpoint,
}

// Available lists the metrics a user can pick for the forecast strips.
var Available = []Prop{
	WindSpeed, PrecipAccumulation, CloudCover, UVIndex, WindGust, Moon,
	SnowDepth, WindBeaufort, AQI, ApparentTemperature, SealevelPressure,
	RelativeHumidity, Dewpoint, Iso, RainSnowLimit,
}

// AvailableCompare lists the metrics usable in provider comparison charts.
var AvailableCompare = []Prop{
	PrecipProbability, WindBearing, WindSpeed, PrecipAccumulation, CloudCover,
	UVIndex, WindGust, Temperature, ApparentTemperature, TemperatureMin,
	TemperatureMax, SnowDepth, Snowfall, IconID, Iso, RainSnowLimit,
}

// DefaultPrimary is the primary strip used until the user picks one.
var DefaultPrimary = []Prop{
	WindSpeed, PrecipAccumulation, CloudCover, UVIndex, WindGust, WindBeaufort, Moon,
}

// Base colors of the weather conditions.
const (
	CloudyColor          = "#929292"
	ScatteredCloudyColor = "#cccccc"
	RainColor            = "#4681C3"
	SnowColor            = "#43b4e0"
	SunnyColor           = "#FFC82F"
)

// PropUnit maps a metric to the unit kind of its values.
var PropUnit = map[Prop]units.Kind{
	WindSpeed:           units.Speed,
	WindGust:            units.Speed,
	Temperature:         units.Celsius,
	ApparentTemperature: units.Celsius,
	TemperatureMin:      units.Celsius,
	TemperatureMax:      units.Celsius,
	Dewpoint:            units.Celsius,
	SealevelPressure:    units.Pressure,
	Iso:                 units.Distance,
	RainSnowLimit:       units.Distance,
	CloudCover:          units.Percent,
	UVIndex:             units.UV,
	PrecipProbability:   units.Percent,
	RelativeHumidity:    units.Percent,
	PrecipAccumulation:  units.MM,
	SnowDepth:           units.CM,
	Snowfall:            units.CM,
	CloudCeiling:        units.Distance,
}

// icon is either a fixed glyph name or derived from the sample.
type icon struct {
	static     string
	fromSample func(*Sample) string
}

func (i icon) resolve(s *Sample) string {
	if i.fromSample != nil {
		if s == nil {
			return ""
		}
		return i.fromSample(s)
	}
	return i.static
}

var icons = map[Prop]icon{
	Moon:                {fromSample: func(s *Sample) string { return s.MoonIcon }},
	IconID:              {static: "mdi-theme-light-dark"},
	SealevelPressure:    {static: "wi-barometer"},
	RelativeHumidity:    {static: "wi-humidity"},
	Dewpoint:            {static: "mdi-thermometer-water"},
	ApparentTemperature: {static: "mdi-thermometer"},
	Temperature:         {static: "mdi-thermometer"},
	RainSnowLimit:       {static: "app-rain-snow"},
	Iso:                 {static: "mdi-snowflake-thermometer"},
	CloudCover:          {static: "wi-cloud"},
	WindGust:            {static: "wi-strong-wind"},
	UVIndex:             {static: "mdi-weather-sunny-alert"},
	WindBeaufort:        {fromSample: func(s *Sample) string { return s.WindBeaufortIcon }},
	WindSpeed:           {fromSample: func(s *Sample) string { return s.WindIcon }},
	PrecipAccumulation:  {fromSample: func(s *Sample) string { return s.PrecipIcon }},
}

var titles = map[Prop]string{
	IconID:              "weather_condition",
	Moon:                "moon",
	CloudCover:          "cloud_cover",
	WindGust:            "wind_gust",
	UVIndex:             "uv_index",
	WindBeaufort:        "wind_beaufort",
	WindSpeed:           "wind_speed",
	RainSnowLimit:       "rain_snow_limit",
	Iso:                 "freezing_level",
	PrecipAccumulation:  "precipitation",
	ApparentTemperature: "feels_like",
	AQI:                 "aqi",
	SealevelPressure:    "sealevel_pressure",
	Dewpoint:            "dewpoint",
	RelativeHumidity:    "relative_humidity",
}

var colors = map[Prop]string{
	Moon:               "#845987",
	Dewpoint:           "#0cafeb",
	RelativeHumidity:   "#1e88e2",
	CloudCover:         CloudyColor,
	WindGust:           ScatteredCloudyColor,
	WindBeaufort:       ScatteredCloudyColor,
	WindSpeed:          ScatteredCloudyColor,
	WindBearing:        ScatteredCloudyColor,
	RainSnowLimit:      RainColor,
	Iso:                SnowColor,
	IconID:             SunnyColor,
	PrecipAccumulation: RainColor,
	AQI:                ColorForAQI(0),
}

var iconSizeFactors = map[Prop]float64{
	SealevelPressure: 0.9,
	WindSpeed:        0.8,
	UVIndex:          1,
	CloudCover:       0.9,
	WindGust:         0.8,
	RelativeHumidity: 0.8,
	Iso:              0.9,
	RainSnowLimit:    0.8,
}

// Known reports whether p is a supported metric.
func Known(p Prop) bool {
	return slices.Contains(Props, p)
}

// Icon returns the glyph of a metric outside of any sample. Sample-derived
// icons resolve against an empty sample and may be empty.
func Icon(p Prop) string {
	return icons[p].resolve(&Sample{})
}

// Title returns the localized title of a metric, or its name when it has none.
func Title(p Prop, tr Translator) string {
	key, ok := titles[p]
	if !ok {
		return string(p)
	}
	if tr == nil {
		tr = English
	}
	return tr(key)
}

// Color returns the table color of a metric, or "" when it has none.
func Color(p Prop) string {
	return colors[p]
}

// IconSizeFactor returns the icon scale of a metric. Defaults to 1.
func IconSizeFactor(p Prop) float64 {
	if f, ok := iconSizeFactors[p]; ok {
		return f
	}
	return 1
}
