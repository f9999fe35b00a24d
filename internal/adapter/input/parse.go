package input

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/wxui/internal/weather"
)

var seriesKeys = []string{"currently", "minutely", "hourly", "daily", "alerts"}

// Parse decodes a forecast. It accepts a full forecast object, a single
// sample (used as the current conditions) or an array of samples (used as
// the hourly series), in JSON or YAML.
func Parse(source string, data []byte) (*weather.Data, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &weather.Data{}, nil
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &AdapterError{
			Source:  source,
			Message: "failed to parse forecast",
			Err:     err,
		}
	}

	// YAML is a superset of JSON. Normalise through JSON so the weather
	// types only need one set of decoding rules.
	normalised, err := json.Marshal(toJSONCompatible(raw))
	if err != nil {
		return nil, &AdapterError{Source: source, Message: "unsupported forecast shape", Err: err}
	}

	switch v := raw.(type) {
	case []any:
		var hourly []weather.Sample
		if err := json.Unmarshal(normalised, &hourly); err != nil {
			return nil, &AdapterError{Source: source, Message: "invalid sample list", Err: err}
		}
		return &weather.Data{Hourly: hourly}, nil

	case map[string]any:
		if isForecast(v) {
			var out weather.Data
			if err := json.Unmarshal(normalised, &out); err != nil {
				return nil, &AdapterError{Source: source, Message: "invalid forecast", Err: err}
			}
			return &out, nil
		}
		var sample weather.Sample
		if err := json.Unmarshal(normalised, &sample); err != nil {
			return nil, &AdapterError{Source: source, Message: "invalid sample", Err: err}
		}
		return &weather.Data{Currently: &sample}, nil

	default:
		return nil, &AdapterError{Source: source, Message: "forecast must be an object or a list"}
	}
}

func isForecast(m map[string]any) bool {
	for _, k := range seriesKeys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// toJSONCompatible converts yaml.v3 maps with non-string keys.
func toJSONCompatible(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = toJSONCompatible(item)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[toKey(k)] = toJSONCompatible(item)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = toJSONCompatible(item)
		}
		return v
	default:
		return v
	}
}

func toKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	b, _ := json.Marshal(k)
	return string(b)
}
