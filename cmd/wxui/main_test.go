package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/wxui/internal/events"
	"github.com/jmylchreest/wxui/internal/weather"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"error", slog.LevelError},
		{"warn", slog.LevelWarn},
		{"", slog.LevelWarn},
		{"chatty", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestParseProps(t *testing.T) {
	props, err := parseProps([]string{"windSpeed", "uvIndex"})
	require.NoError(t, err)
	assert.Equal(t, []weather.Prop{weather.WindSpeed, weather.UVIndex}, props)

	_, err = parseProps([]string{"windSpeed", "pollen"})
	assert.ErrorContains(t, err, "pollen")

	props, err = parseProps(nil)
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestSelectSeries(t *testing.T) {
	data := &weather.Data{
		Currently: &weather.Sample{Time: 1},
		Hourly:    []weather.Sample{{Time: 2}, {Time: 3}},
		Daily:     []weather.Sample{{Time: 4}},
	}

	got, err := selectSeries(data, "currently")
	require.NoError(t, err)
	assert.Equal(t, []weather.Sample{{Time: 1}}, got)

	got, err = selectSeries(data, "hourly")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = selectSeries(data, "minutely")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = selectSeries(data, "weekly")
	assert.Error(t, err)

	_, err = selectSeries(&weather.Data{}, "currently")
	assert.Error(t, err)
}

func TestSampleLabel(t *testing.T) {
	assert.Equal(t, "currently", sampleLabel(&weather.Sample{}, "currently"))

	ts := time.Date(2026, 3, 2, 14, 30, 0, 0, time.Local)
	s := &weather.Sample{Time: ts.UnixMilli()}
	assert.Equal(t, "Mon 14:30", sampleLabel(s, "hourly"))
	assert.Equal(t, "Mon 02 Mar", sampleLabel(s, "daily"))
}

func TestMergeEvents(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(t.Context())
	merged := mergeEvents(ctx, []<-chan events.Event{
		bus.Subscribe(events.NameTheme),
		bus.Subscribe(events.NameProvider),
	})

	bus.Notify(events.NameTheme, "dark")
	bus.Notify(events.NameProvider, "openmeteo")

	names := map[string]bool{}
	for range 2 {
		select {
		case ev := <-merged:
			names[ev.Name] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
	assert.Equal(t, map[string]bool{events.NameTheme: true, events.NameProvider: true}, names)

	cancel()
	select {
	case _, ok := <-merged:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("merged channel not closed after cancel")
	}
}
