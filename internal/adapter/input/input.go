// Package input provides input adapters that load forecasts for the CLI.
package input

import (
	"context"
	"strings"

	"github.com/jmylchreest/wxui/internal/weather"
)

// InputAdapter loads a forecast from a source.
type InputAdapter interface {
	// Name returns the adapter identifier (e.g., "file", "stdin").
	Name() string

	// Import reads the forecast from the source.
	Import(ctx context.Context) (*weather.Data, error)
}

// NewAdapter creates an InputAdapter for the given source: "-" or "stdin"
// read standard input, anything else is a file path.
func NewAdapter(source string) (InputAdapter, error) {
	switch strings.TrimSpace(source) {
	case "":
		return nil, &AdapterError{
			Source:  source,
			Message: "no input given",
		}
	case "-", "stdin":
		return NewStdinAdapter(), nil
	default:
		return NewFileAdapter(source), nil
	}
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
