package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/wxui/internal/weather"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testRows() []Row {
	return []Row{
		{
			Label: "currently",
			Items: []weather.Descriptor{
				{Key: weather.WindSpeed, Icon: "app-wind-n", Font: weather.FontApp, Value: "19", Subvalue: "km/h"},
				{Key: weather.CloudCover, Icon: "wi-cloud", Font: weather.FontWeatherIcons, Color: "#929292", Value: "75%"},
			},
		},
		{
			Time:  testNow.Add(3 * time.Hour).UnixMilli(),
			Label: "hourly",
			Items: []weather.Descriptor{
				{Key: weather.WindGust, Value: "90", Subvalue: "km/h", Color: "#ffffff", BackgroundColor: "#ff0353"},
			},
		},
	}
}

func testOptions() FormatterOptions {
	opts := DefaultFormatterOptions()
	opts.Color = false
	opts.Now = func() time.Time { return testNow }
	return opts
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	err := NewPlainFormatter(testOptions()).Format(&buf, testRows())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "currently\n")
	assert.Contains(t, out, "    Wind speed   19 km/h\n")
	assert.Contains(t, out, "    Cloud cover  75%\n")
	assert.Contains(t, out, "hourly (3 hours from now)\n")
	assert.Contains(t, out, "    Wind gust  90 km/h\n")
}

func TestPlainFormatter_NoTime(t *testing.T) {
	opts := testOptions()
	opts.ShowTime = false

	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testRows()))
	assert.NotContains(t, buf.String(), "from now")
}

func TestPlainFormatter_CustomTemplate(t *testing.T) {
	opts := testOptions()
	opts.Template = "{{.Row.Label}}:{{.Item.Key}}={{.Item.Value}};"

	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testRows()))
	assert.Equal(t, "currently:windSpeed=19;currently:cloudCover=75%;hourly:windGust=90;", buf.String())
}

func TestLineFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineFormatter(testOptions()).Format(&buf, testRows()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "currently | 19 km/h | 75%", lines[0])
	assert.Equal(t, "3 hours from now | 90 km/h", lines[1])
}

func TestLineFormatter_SeparatorAndTemplate(t *testing.T) {
	opts := testOptions()
	opts.Separator = " · "
	opts.ShowTime = false
	opts.Template = `{{truncate (title .Item.Key) 6}} {{.Item.Value}}`

	var buf bytes.Buffer
	require.NoError(t, NewLineFormatter(opts).Format(&buf, testRows()[:1]))
	assert.Equal(t, "Win... 19 · Clo... 75%\n", buf.String())
}

func TestRenderValue_IconOnly(t *testing.T) {
	d := weather.Descriptor{Key: weather.WindBeaufort, Icon: "wi-wind-beaufort-4"}
	assert.Equal(t, "wi-wind-beaufort-4", renderValue(d, false))
}

func TestRenderValue_Color(t *testing.T) {
	d := weather.Descriptor{Value: "90", Subvalue: "km/h", Color: "#ffffff", BackgroundColor: "#ff0353"}
	// Whatever the terminal profile, the text itself survives styling.
	assert.Contains(t, renderValue(d, true), "90 km/h")
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(testOptions()).Format(&buf, testRows()))

	var rows []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, weather.WindSpeed, rows[0].Items[0].Key)
	assert.Equal(t, "#ff0353", rows[1].Items[0].BackgroundColor)
	assert.NotContains(t, buf.String(), "CustomDraw")
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(testOptions()).Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(testOptions()).Format(&buf, testRows()))

	var rows []Row
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "75%", rows[0].Items[1].Value)
	assert.Contains(t, buf.String(), "subvalue: km/h")
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format   FormatType
		expected Formatter
	}{
		{FormatJSON, &JSONFormatter{}},
		{FormatYAML, &YAMLFormatter{}},
		{FormatLine, &LineFormatter{}},
		{FormatPlain, &PlainFormatter{}},
		{"unknown", &PlainFormatter{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.IsType(t, tt.expected, NewFormatter(tt.format, DefaultFormatterOptions()))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("dmenu")
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	v := map[string]int{"a": 1}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, v))
	assert.Equal(t, "a: 1\n", buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, FormatPlain, v))
	assert.JSONEq(t, `{"a":1}`, buf.String())
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		name     string
		ms       int64
		expected string
	}{
		{"zero", 0, "now"},
		{"future", testNow.Add(2 * time.Hour).UnixMilli(), "2 hours from now"},
		{"past", testNow.Add(-3 * 24 * time.Hour).UnixMilli(), "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, relativeTime(tt.ms, testNow))
		})
	}
}
