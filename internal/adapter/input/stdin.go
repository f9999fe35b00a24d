package input

import (
	"context"
	"io"
	"os"

	"github.com/jmylchreest/wxui/internal/weather"
)

const maxInputSize = 10 * 1024 * 1024 // 10MB max

// StdinAdapter reads a forecast from standard input.
type StdinAdapter struct {
	reader io.Reader
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter() *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader) *StdinAdapter {
	return &StdinAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Import reads a JSON or YAML forecast from standard input.
func (a *StdinAdapter) Import(ctx context.Context) (*weather.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(a.reader, maxInputSize))
	if err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to read stdin",
			Err:     err,
		}
	}
	return Parse("stdin", data)
}
