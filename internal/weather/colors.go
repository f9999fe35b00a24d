package weather

import "github.com/lucasb-eyer/go-colorful"

var (
	uvIndexes = []float64{0, 3, 6, 8, 11}
	uvColors  = []string{"#9BC600", "#FFBC03", "#FE8F00", "#F55023", "#9E47CC"}

	// European air quality index bands.
	aqiIndexes = []float64{0, 20, 40, 60, 80, 100}
	aqiColors  = []string{"#50F0E6", "#50CCAA", "#F0E641", "#FF5050", "#960032", "#7D2181"}
)

// IndexedColor returns the color of the last band whose lower bound is at
// most value. Values below the first bound get the first color.
func IndexedColor(value float64, indexes []float64, colors []string) string {
	if len(colors) == 0 {
		return ""
	}
	color := colors[0]
	for i, bound := range indexes {
		if i >= len(colors) || value < bound {
			break
		}
		color = colors[i]
	}
	return color
}

// ColorForUV returns the color of a UV index.
func ColorForUV(value float64) string {
	return IndexedColor(value, uvIndexes, uvColors)
}

// ColorForAQI returns the color of an air quality index.
func ColorForAQI(value float64) string {
	return IndexedColor(value, aqiIndexes, aqiColors)
}

type tempStop struct {
	at    float64 // Position in [0, 1]
	color colorful.Color
}

var tempStops = []tempStop{
	{0, mustHex("#5B4FCF")},
	{0.4, mustHex("#4FC3F7")},
	{0.7, mustHex("#9BC600")},
	{0.85, mustHex("#FFBC03")},
	{1, mustHex("#F55023")},
}

// TempColor maps a temperature onto a cold to hot gradient spanning
// [min, max]. Values outside the range are clamped.
func TempColor(temp, min, max float64) string {
	if max <= min {
		return tempStops[0].color.Hex()
	}
	p := (temp - min) / (max - min)
	switch {
	case p <= 0:
		return tempStops[0].color.Hex()
	case p >= 1:
		return tempStops[len(tempStops)-1].color.Hex()
	}
	for i := 1; i < len(tempStops); i++ {
		lo, hi := tempStops[i-1], tempStops[i]
		if p <= hi.at {
			t := (p - lo.at) / (hi.at - lo.at)
			return lo.color.BlendLab(hi.color, t).Clamped().Hex()
		}
	}
	return tempStops[len(tempStops)-1].color.Hex()
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
