package input

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/wxui/internal/weather"
)

func TestNewAdapter(t *testing.T) {
	a, err := NewAdapter("-")
	require.NoError(t, err)
	assert.Equal(t, "stdin", a.Name())

	a, err = NewAdapter("stdin")
	require.NoError(t, err)
	assert.Equal(t, "stdin", a.Name())

	a, err = NewAdapter("forecast.json")
	require.NoError(t, err)
	assert.Equal(t, "file", a.Name())

	_, err = NewAdapter(" ")
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
}

func TestParse_FullForecast(t *testing.T) {
	data := `{
		"time": 1700000000000,
		"currently": {"time": 1700000000000, "temperature": 12.5, "windSpeed": null},
		"hourly": [
			{"time": 1700000000000, "precipAccumulation": 0.4, "precipProbability": 60, "precipIcon": "wi-raindrop"},
			{"time": 1700003600000, "cloudCover": 80, "cloudColor": "#929292"}
		],
		"alerts": [{"event": "wind", "start": 1, "end": 2}]
	}`

	got, err := Parse("test", []byte(data))
	require.NoError(t, err)

	require.NotNil(t, got.Currently)
	assert.Equal(t, 12.5, got.Currently.Value(weather.Temperature))
	assert.False(t, got.Currently.Has(weather.WindSpeed), "null is missing")
	require.Len(t, got.Hourly, 2)
	assert.Equal(t, int64(1700003600000), got.Hourly[1].Time)
	assert.Equal(t, "wi-raindrop", got.Hourly[0].PrecipIcon)
	assert.Equal(t, "#929292", got.Hourly[1].CloudColor)
	require.Len(t, got.Alerts, 1)
	assert.Equal(t, "wind", got.Alerts[0].Event)
}

func TestParse_SingleSample(t *testing.T) {
	got, err := Parse("test", []byte(`{"time": 5, "uvIndex": 6, "uvIndexColor": "#FE8F00"}`))
	require.NoError(t, err)

	require.NotNil(t, got.Currently)
	assert.Equal(t, int64(5), got.Currently.Time)
	assert.Equal(t, 6.0, got.Currently.Value(weather.UVIndex))
	assert.Empty(t, got.Hourly)
}

func TestParse_SampleList(t *testing.T) {
	got, err := Parse("test", []byte(`[{"time": 1, "moon": 0.5}, {"time": 2}]`))
	require.NoError(t, err)

	assert.Nil(t, got.Currently)
	require.Len(t, got.Hourly, 2)
	assert.True(t, got.Hourly[0].Has(weather.Moon))
}

func TestParse_YAML(t *testing.T) {
	data := `
currently:
  time: 10
  windGust: 85
  windSpeed: 20
daily:
  - time: 0
    temperatureMax: 21
`
	got, err := Parse("test.yaml", []byte(data))
	require.NoError(t, err)

	require.NotNil(t, got.Currently)
	assert.Equal(t, 85.0, got.Currently.Value(weather.WindGust))
	require.Len(t, got.Daily, 1)
	assert.Equal(t, 21.0, got.Daily[0].Value(weather.TemperatureMax))
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse("test", []byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, &weather.Data{}, got)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `{"time": `},
		{"scalar", `42`},
		{"wrong type", `{"time": "yesterday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.json", []byte(tt.data))
			var adapterErr *AdapterError
			require.ErrorAs(t, err, &adapterErr)
			assert.Equal(t, "bad.json", adapterErr.Source)
			assert.Contains(t, err.Error(), "bad.json: ")
		})
	}
}

func TestStdinAdapter_Import(t *testing.T) {
	a := NewStdinAdapterWithReader(strings.NewReader(`{"time": 1, "aqi": 33}`))
	got, err := a.Import(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got.Currently)
	assert.Equal(t, 33.0, got.Currently.Value(weather.AQI))
}

func TestStdinAdapter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStdinAdapterWithReader(strings.NewReader("{}")).Import(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileAdapter_Import(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"hourly": [{"time": 1, "dewpoint": 4}]}`), 0o644))

	got, err := NewFileAdapter(path).Import(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Hourly, 1)
	assert.Equal(t, 4.0, got.Hourly[0].Value(weather.Dewpoint))
}

func TestFileAdapter_Missing(t *testing.T) {
	_, err := NewFileAdapter(filepath.Join(t.TempDir(), "nope.json")).Import(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
