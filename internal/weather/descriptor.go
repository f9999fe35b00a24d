package weather

import (
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/wxui/internal/units"
)

// Font is the icon font a descriptor glyph belongs to.
type Font string

const (
	FontWeatherIcons Font = "wi"
	FontMaterial     Font = "mdi"
	FontApp          Font = "app"
)

// Descriptor is what the forecast row draws for one metric of one sample.
type Descriptor struct {
	Key             Prop       `json:"key" yaml:"key"`
	Icon            string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Font            Font       `json:"font" yaml:"font"`
	IconFontSize    float64    `json:"iconFontSize" yaml:"iconFontSize"`
	IconColor       string     `json:"iconColor,omitempty" yaml:"iconColor,omitempty"`
	Color           string     `json:"color,omitempty" yaml:"color,omitempty"`
	TextColor       string     `json:"textColor,omitempty" yaml:"textColor,omitempty"`
	BackgroundColor string     `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	Value           string     `json:"value,omitempty" yaml:"value,omitempty"`
	Subvalue        string     `json:"subvalue,omitempty" yaml:"subvalue,omitempty"`
	CustomDraw      CustomDraw `json:"-" yaml:"-"`
}

// Draw runs the custom renderer of d. It returns 0 when d has none.
func (d *Descriptor) Draw(c Canvas, fontScale float64, paint TextPaint, x, y float64, withIcon bool) float64 {
	if d == nil || d.CustomDraw == nil {
		return 0
	}
	return d.CustomDraw(c, fontScale, paint, d, x, y, withIcon)
}

// describe builds the descriptor of key for s, or nil when the metric has
// nothing worth showing.
func (p *Presenter) describe(key Prop, s *Sample, minUV float64, system units.System) *Descriptor {
	d := Descriptor{
		Key:          key,
		Icon:         icons[key].resolve(s),
		IconFontSize: 20 * p.fontScale * IconSizeFactor(key),
	}
	opts := units.Options{System: system}
	format := func(k Prop) string {
		return units.Format(s.Value(k), PropUnit[k], opts)
	}
	convert := func(k Prop) (string, string) {
		return units.Convert(s.Value(k), PropUnit[k], opts)
	}

	switch key {
	case ApparentTemperature:
		if s.Value(key) == 0 {
			return nil
		}
		d.Font = FontMaterial
		d.Value = format(key)
		d.Subvalue = p.translator("apparent")

	case WindSpeed:
		if s.Value(key) == 0 {
			return nil
		}
		d.Font = FontApp
		d.Value, d.Subvalue = convert(key)

	case Temperature:
		d.Font = FontMaterial
		d.IconColor = TempColor(s.Value(key), -20, 30)
		d.Value = format(key)

	case RainSnowLimit:
		d.Font = FontApp
		d.IconColor = Color(key)
		d.Value, d.Subvalue = convert(key)

	case Iso:
		d.Font = FontMaterial
		d.IconColor = Color(key)
		d.Value, d.Subvalue = convert(key)

	case AQI:
		aqi := s.Value(key)
		if aqi == 0 {
			return nil
		}
		d.Font = FontMaterial
		d.Icon = "mdi-leaf"
		d.Color = s.AQIColor
		if d.Color == "" {
			d.Color = ColorForAQI(aqi)
		}
		d.Value = humanize.Ftoa(aqi)
		d.Subvalue = "aqi"

	case PrecipAccumulation:
		prob := s.PrecipProbability
		if prob == nil || !(*prob == -1 || *prob > 10) || s.Value(key) < 0.1 {
			return nil
		}
		d.Font = FontWeatherIcons
		if s.PrecipFontUseApp != nil && *s.PrecipFontUseApp {
			d.Font = FontApp
		}
		d.Color = s.PrecipColor
		d.Icon = s.PrecipIcon
		kind := units.MM
		if k := units.Kind(s.PrecipUnit); k == units.MM || k == units.CM {
			kind = k
		}
		d.Value = units.Format(s.Value(key), kind, opts)
		if *prob > 0 {
			d.Subvalue = format(PrecipProbability)
		}

	case CloudCover:
		if s.Value(key) <= 20 {
			return nil
		}
		d.Font = FontWeatherIcons
		d.Color = s.CloudColor
		d.Value = format(key)
		if s.Value(CloudCeiling) != 0 {
			d.Subvalue = format(CloudCeiling)
		}

	case UVIndex:
		uv := s.Value(key)
		if uv < minUV {
			return nil
		}
		d.Font = FontMaterial
		d.Color = s.UVIndexColor
		if d.Color == "" {
			d.Color = ColorForUV(uv)
		}
		d.Value, _ = convert(key)

	case WindGust:
		gust, speed := s.Value(key), s.Value(WindSpeed)
		if gust == 0 || (speed != 0 && !(gust > 30 && gust > 2*speed)) {
			return nil
		}
		d.Font = FontWeatherIcons
		switch {
		case gust > 80:
			d.BackgroundColor = "#ff0353"
			d.Color = "#ffffff"
		case gust > 50:
			d.BackgroundColor = "#FFBC03"
			d.Color = "#222"
		default:
			d.Color = "#FFBC03"
		}
		d.TextColor = d.Color
		d.Value, d.Subvalue = convert(key)
		d.CustomDraw = drawBadge

	case Dewpoint:
		d.Font = FontMaterial
		d.Value = format(key)

	case RelativeHumidity:
		d.Font = FontWeatherIcons
		d.Value = format(key)

	case SealevelPressure:
		d.Font = FontWeatherIcons
		d.Value, d.Subvalue = convert(key)

	case Moon:
		d.Font = FontWeatherIcons
		d.Color = Color(key)
		d.Value = p.translator("moon")

	case WindBeaufort:
		if s.WindBeaufortIcon == "" {
			return nil
		}
		d.Font = FontWeatherIcons

	default:
		return nil
	}
	return &d
}
