package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/wxui/internal/weather"
)

// LineFormatter formats each row on a single line, for status bars and
// launcher menus.
type LineFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewLineFormatter creates a new line formatter.
func NewLineFormatter(opts FormatterOptions) *LineFormatter {
	f := &LineFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("line").Funcs(templateFuncs(opts)).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes one line per row.
func (f *LineFormatter) Format(w io.Writer, rows []Row) error {
	for i := range rows {
		if _, err := fmt.Fprintln(w, f.formatLine(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// formatLine formats a single row.
func (f *LineFormatter) formatLine(row *Row) string {
	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	var parts []string

	if f.opts.ShowTime {
		if row.Time != 0 {
			parts = append(parts, relativeTime(row.Time, f.opts.now()))
		} else if row.Label != "" {
			parts = append(parts, row.Label)
		}
	}

	for _, d := range row.Items {
		if f.template != nil {
			var buf strings.Builder
			data := templateData{
				Row:          row,
				Item:         d,
				Title:        weather.Title(d.Key, f.opts.Translator),
				RelativeTime: relativeTime(row.Time, f.opts.now()),
			}
			if err := f.template.Execute(&buf, data); err == nil {
				parts = append(parts, buf.String())
				continue
			}
		}
		parts = append(parts, renderValue(d, f.opts.Color))
	}

	return strings.Join(parts, sep)
}
