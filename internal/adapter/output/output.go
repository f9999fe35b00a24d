// Package output provides output formatters for weather descriptors.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/wxui/internal/weather"
)

// Row is the descriptors of one sample.
type Row struct {
	Time  int64                `json:"time" yaml:"time"` // Unix milliseconds, 0 when unknown
	Label string               `json:"label" yaml:"label"`
	Items []weather.Descriptor `json:"items" yaml:"items"`
}

// Formatter formats descriptor rows for output.
type Formatter interface {
	// Format writes formatted rows to the writer.
	Format(w io.Writer, rows []Row) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatLine  FormatType = "line"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatPlain FormatType = "plain"
)

// Formats lists the supported format types.
var Formats = []FormatType{FormatPlain, FormatLine, FormatJSON, FormatYAML}

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want plain, line, json or yaml)", s)
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatLine:
		return NewLineFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string             // Custom template for line/plain format
	ShowTime   bool               // Show the relative time of each row
	Color      bool               // Color values with their descriptor color
	Separator  string             // Field separator for line format
	Translator weather.Translator // Metric titles; defaults to English
	Now        func() time.Time   // Reference for relative times; defaults to time.Now
}

// DefaultFormatterOptions returns sensible defaults for terminal output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowTime:  true,
		Color:     true,
		Separator: " | ",
	}
}

// Encode writes v in the given structured format. Plain and line fall back
// to JSON.
func Encode(w io.Writer, format FormatType, v any) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// relativeTime returns a human-readable time relative to now.
func relativeTime(ms int64, now time.Time) string {
	if ms == 0 {
		return "now"
	}
	return humanize.RelTime(time.UnixMilli(ms), now, "ago", "from now")
}

func (o FormatterOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
