package weather

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(start int64, n int, temp float64) []Sample {
	out := make([]Sample, n)
	for i := range out {
		out[i] = Sample{Time: start + int64(i), Temperature: Float(temp)}
	}
	return out
}

func temps(s []Sample) []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Value(Temperature)
	}
	return out
}

func TestMerge_AddedStartsLater(t *testing.T) {
	main := &Data{Hourly: series(0, 5, 1)}
	Merge(main, &Data{Hourly: series(2, 5, 2)})

	assert.Equal(t, []float64{1, 1, 2, 2, 2}, temps(main.Hourly))
	assert.Len(t, main.Hourly, 5)
}

func TestMerge_AddedStartsEarlier(t *testing.T) {
	main := &Data{Hourly: series(3, 4, 1)}
	Merge(main, &Data{Hourly: series(0, 5, 2)})

	// added covers times 0..4, main 3..6
	assert.Equal(t, []float64{2, 2, 1, 1}, temps(main.Hourly))
}

func TestMerge_NoCommonTime(t *testing.T) {
	main := &Data{Daily: series(0, 3, 1)}
	Merge(main, &Data{Daily: series(10, 3, 2)})
	assert.Equal(t, []float64{1, 1, 1}, temps(main.Daily))

	main = &Data{Daily: series(10, 3, 1)}
	Merge(main, &Data{Daily: series(0, 3, 2)})
	assert.Equal(t, []float64{1, 1, 1}, temps(main.Daily))
}

func TestMerge_EmptySeriesIgnored(t *testing.T) {
	main := &Data{Minutely: nil, Hourly: series(0, 2, 1)}
	Merge(main, &Data{Minutely: series(0, 2, 2), Hourly: nil})

	assert.Nil(t, main.Minutely)
	assert.Equal(t, []float64{1, 1}, temps(main.Hourly))
}

func TestMerge_OverlaysOnlyPresentFields(t *testing.T) {
	main := &Data{
		Currently: &Sample{Time: 5, Temperature: Float(12), WindSpeed: Float(8), WindIcon: "wind-n"},
		Hourly: []Sample{
			{Time: 0, Temperature: Float(10), CloudCover: Float(50)},
		},
	}
	added := &Data{
		Currently: &Sample{Time: 9, AQI: Float(42), AQIColor: "#50F0E6", WindSpeed: Float(0)},
		Hourly: []Sample{
			{Time: 0, AQI: Float(30)},
		},
	}
	Merge(main, added)

	require.NotNil(t, main.Currently)
	assert.Equal(t, int64(5), main.Currently.Time)
	assert.Equal(t, 12.0, main.Currently.Value(Temperature))
	assert.Equal(t, 42.0, main.Currently.Value(AQI))
	assert.Equal(t, "#50F0E6", main.Currently.AQIColor)
	assert.Equal(t, "wind-n", main.Currently.WindIcon)
	// An explicit zero is a value, not an absence.
	assert.True(t, main.Currently.Has(WindSpeed))
	assert.Equal(t, 0.0, main.Currently.Value(WindSpeed))

	assert.Equal(t, 10.0, main.Hourly[0].Value(Temperature))
	assert.Equal(t, 50.0, main.Hourly[0].Value(CloudCover))
	assert.Equal(t, 30.0, main.Hourly[0].Value(AQI))

	// Overlaid values are copies.
	*added.Hourly[0].AQI = 99
	assert.Equal(t, 30.0, main.Hourly[0].Value(AQI))
}

func TestSample_OverlayExplicitFalse(t *testing.T) {
	s := &Sample{PrecipFontUseApp: Bool(true), IsDay: Bool(true), PrecipColor: "#4681C3"}

	s.Overlay(&Sample{PrecipFontUseApp: Bool(false), IsDay: Bool(false)})
	require.NotNil(t, s.PrecipFontUseApp)
	assert.False(t, *s.PrecipFontUseApp)
	assert.False(t, *s.IsDay)
	assert.Equal(t, "#4681C3", s.PrecipColor)

	s.Overlay(&Sample{})
	assert.False(t, *s.PrecipFontUseApp)
}

func TestMerge_CurrentlyAndAlertsFromAdded(t *testing.T) {
	main := &Data{}
	Merge(main, nil, &Data{
		Currently: &Sample{Time: 1, UVIndex: Float(3)},
		Alerts:    []Alert{{Event: "wind", Start: 1, End: 2}},
	})

	require.NotNil(t, main.Currently)
	assert.Equal(t, 3.0, main.Currently.Value(UVIndex))
	require.Len(t, main.Alerts, 1)
	assert.Equal(t, "wind", main.Alerts[0].Event)

	Merge(main, &Data{Alerts: []Alert{{Event: "rain"}}})
	assert.Equal(t, "wind", main.Alerts[0].Event)
}

func TestMerge_SeveralBatchesInOrder(t *testing.T) {
	main := &Data{Hourly: series(0, 4, 1)}
	Merge(main, &Data{Hourly: series(1, 2, 2)}, &Data{Hourly: series(2, 2, 3)})
	assert.Equal(t, []float64{1, 2, 3, 3}, temps(main.Hourly))
}

func TestMerge_NilMain(t *testing.T) {
	assert.NotPanics(t, func() { Merge(nil, &Data{}) })
}

func TestMerge_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("only the overlapping range is overwritten", prop.ForAll(
		func(mainLen, addedLen, shift int) bool {
			main := &Data{Hourly: series(0, mainLen, 1)}
			addedStart := int64(shift)
			Merge(main, &Data{Hourly: series(addedStart, addedLen, 2)})

			if len(main.Hourly) != mainLen {
				return false
			}
			for i, s := range main.Hourly {
				inOverlap := s.Time >= addedStart && s.Time < addedStart+int64(addedLen)
				want := 1.0
				if inOverlap {
					want = 2
				}
				if s.Time != int64(i) || s.Value(Temperature) != want {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.IntRange(1, 8),
		gen.IntRange(-10, 10),
	))

	properties.TestingRun(t)
}
