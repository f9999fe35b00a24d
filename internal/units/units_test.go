package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert_Metric(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		kind  Kind
		v     string
		unit  string
	}{
		{"speed", 23.4, Speed, "23", "km/h"},
		{"temperature", -3.6, Celsius, "-4", "°C"},
		{"pressure", 1013.25, Pressure, "1013", "hPa"},
		{"distance", 2350.4, Distance, "2350", "m"},
		{"percent", 45.5, Percent, "46", "%"},
		{"uv", 6.4, UV, "6", ""},
		{"small precip", 0.44, MM, "0.4", "mm"},
		{"whole precip", 2, MM, "2", "mm"},
		{"large precip", 12.6, MM, "13", "mm"},
		{"snow", 3.25, CM, "3.2", "cm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, unit := Convert(tt.value, tt.kind, Options{})
			assert.Equal(t, tt.v, v)
			assert.Equal(t, tt.unit, unit)
		})
	}
}

func TestConvert_Imperial(t *testing.T) {
	opts := Options{System: Imperial}

	v, unit := Convert(100, Speed, opts)
	assert.Equal(t, "62", v)
	assert.Equal(t, "mph", unit)

	v, unit = Convert(20, Celsius, opts)
	assert.Equal(t, "68", v)
	assert.Equal(t, "°F", unit)

	v, unit = Convert(1000, Distance, opts)
	assert.Equal(t, "3281", v)
	assert.Equal(t, "ft", unit)

	v, unit = Convert(25.4, MM, opts)
	assert.Equal(t, "1", v)
	assert.Equal(t, "in", unit)
}

func TestConvert_Options(t *testing.T) {
	v, _ := Convert(12, Speed, Options{Prefix: "~"})
	assert.Equal(t, "~12", v)

	v, _ = Convert(0.26, MM, Options{RoundedTo05: true})
	assert.Equal(t, "0.5", v)

	v, _ = Convert(0.44, MM, Options{Round: true})
	assert.Equal(t, "0", v)

	v, unit := Convert(1, Distance, Options{UnitScale: 1000})
	assert.Equal(t, "1000", v)
	assert.Equal(t, "m", unit)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "21°", Format(21.2, Celsius, Options{}))
	assert.Equal(t, "70°", Format(21.2, Celsius, Options{System: Imperial}))
	assert.Equal(t, "80%", Format(80, Percent, Options{}))
	assert.Equal(t, "7", Format(7.2, UV, Options{}))
	assert.Equal(t, "1.2 mm", Format(1.2, MM, Options{}))
	assert.Equal(t, "1013 hPa", Format(1013, Pressure, Options{Join: ""}))
	assert.Equal(t, "1013hPa", Format(1013, Pressure, Options{NoJoin: true}))
	assert.Equal(t, "1013hPa", Format(1013, Pressure, Options{Join: "/", NoJoin: true}))
	assert.Equal(t, "1013/hPa", Format(1013, Pressure, Options{Join: "/"}))
	assert.Equal(t, "1.5", Format(1.5, Kind("unknown"), Options{}))
}

func TestParseSystem(t *testing.T) {
	assert.Equal(t, Imperial, ParseSystem("imperial"))
	assert.Equal(t, Imperial, ParseSystem("Imperial"))
	assert.Equal(t, Metric, ParseSystem(""))
	assert.Equal(t, Metric, ParseSystem("si"))
}
