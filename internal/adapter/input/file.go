package input

import (
	"context"
	"io"
	"os"

	"github.com/jmylchreest/wxui/internal/weather"
)

// FileAdapter reads a forecast from a JSON or YAML file.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a new FileAdapter.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Name returns the adapter identifier.
func (a *FileAdapter) Name() string {
	return "file"
}

// Import reads the forecast file.
func (a *FileAdapter) Import(ctx context.Context) (*weather.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(a.path)
	if err != nil {
		return nil, &AdapterError{
			Source:  a.path,
			Message: "failed to open forecast",
			Err:     err,
		}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxInputSize))
	if err != nil {
		return nil, &AdapterError{
			Source:  a.path,
			Message: "failed to read forecast",
			Err:     err,
		}
	}
	return Parse(a.path, data)
}
