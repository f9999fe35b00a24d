// Package units converts metric weather values to display strings.
package units

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Kind is the physical quantity of a value. Values are always supplied in
// the metric base unit of their kind.
type Kind string

const (
	Speed    Kind = "speed"    // km/h
	Celsius  Kind = "celsius"  // °C
	Pressure Kind = "pressure" // hPa
	Distance Kind = "distance" // m
	Percent  Kind = "percent"  // 0-100
	UV       Kind = "uv"       // index
	MM       Kind = "mm"       // millimetres of precipitation
	CM       Kind = "cm"       // centimetres of snow
)

// System is the unit system used for display.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// ParseSystem returns Imperial for "imperial" and Metric otherwise.
func ParseSystem(s string) System {
	if strings.EqualFold(s, string(Imperial)) {
		return Imperial
	}
	return Metric
}

// Options tunes conversion.
type Options struct {
	System      System
	Prefix      string  // Prepended to the value
	Join        string  // Between value and unit in Format; default " "
	NoJoin      bool    // Place the unit directly after the value
	UnitScale   float64 // Multiplier applied before formatting; 0 = 1
	RoundedTo05 bool    // Round to the nearest 0.5
	Round       bool    // Round to an integer regardless of kind
}

// Convert returns the display value and unit for a metric value.
func Convert(value float64, kind Kind, opts Options) (string, string) {
	if opts.UnitScale != 0 {
		value *= opts.UnitScale
	}

	v, unit, digits := convert(value, kind, opts.System)
	switch {
	case opts.Round:
		v = math.Round(v)
		digits = 0
	case opts.RoundedTo05:
		v = math.Round(v*2) / 2
		digits = 1
	}

	return opts.Prefix + humanize.FtoaWithDigits(v, digits), unit
}

// Format returns the value and unit joined for display.
func Format(value float64, kind Kind, opts Options) string {
	v, unit := Convert(value, kind, opts)
	switch kind {
	case Celsius:
		return v + "°"
	case Percent:
		return v + unit
	case UV:
		return v
	}
	if unit == "" {
		return v
	}
	join := opts.Join
	switch {
	case opts.NoJoin:
		join = ""
	case join == "":
		join = " "
	}
	return v + join + unit
}

// convert returns the converted value, its unit and the number of
// fractional digits worth showing.
func convert(value float64, kind Kind, system System) (float64, string, int) {
	imperial := system == Imperial

	switch kind {
	case Speed:
		if imperial {
			return math.Round(value * 0.621371), "mph", 0
		}
		return math.Round(value), "km/h", 0
	case Celsius:
		if imperial {
			return math.Round(value*9/5 + 32), "°F", 0
		}
		return math.Round(value), "°C", 0
	case Pressure:
		if imperial {
			return value * 0.02953, "inHg", 2
		}
		return math.Round(value), "hPa", 0
	case Distance:
		if imperial {
			return math.Round(value * 3.28084), "ft", 0
		}
		return math.Round(value), "m", 0
	case Percent:
		return math.Round(value), "%", 0
	case UV:
		return math.Round(value), "", 0
	case MM:
		if imperial {
			return value / 25.4, "in", 2
		}
		if value < 10 {
			return value, "mm", 1
		}
		return math.Round(value), "mm", 0
	case CM:
		if imperial {
			return value / 2.54, "in", 1
		}
		return value, "cm", 1
	default:
		return value, "", 1
	}
}
