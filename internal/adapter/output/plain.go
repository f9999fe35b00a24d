package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/wxui/internal/weather"
)

// PlainFormatter formats rows as indented text, one metric per line.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs(opts)).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes rows as plain text.
func (f *PlainFormatter) Format(w io.Writer, rows []Row) error {
	for i := range rows {
		if err := f.formatRow(w, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// formatRow formats a single row.
func (f *PlainFormatter) formatRow(w io.Writer, row *Row) error {
	// Use custom template if available
	if f.template != nil {
		for _, d := range row.Items {
			data := templateData{
				Row:          row,
				Item:         d,
				Title:        weather.Title(d.Key, f.opts.Translator),
				RelativeTime: relativeTime(row.Time, f.opts.now()),
			}
			if err := f.template.Execute(w, data); err != nil {
				return err
			}
		}
		return nil
	}

	var sb strings.Builder

	header := row.Label
	if f.opts.ShowTime && row.Time != 0 {
		header += fmt.Sprintf(" (%s)", relativeTime(row.Time, f.opts.now()))
	}
	sb.WriteString(strings.TrimSpace(header) + "\n")

	width := 0
	titles := make([]string, len(row.Items))
	for i, d := range row.Items {
		titles[i] = weather.Title(d.Key, f.opts.Translator)
		width = max(width, len(titles[i]))
	}
	for i, d := range row.Items {
		sb.WriteString(fmt.Sprintf("    %-*s  %s\n", width, titles[i], renderValue(d, f.opts.Color)))
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}

// renderValue renders the value and subvalue of a descriptor, falling back
// to its glyph name for icon-only metrics.
func renderValue(d weather.Descriptor, color bool) string {
	text := strings.TrimSpace(d.Value + " " + d.Subvalue)
	if text == "" {
		text = d.Icon
	}
	if !color {
		return text
	}

	style := lipgloss.NewStyle()
	if c := firstNonEmpty(d.TextColor, d.Color, d.IconColor); c != "" {
		style = style.Foreground(lipgloss.Color(c))
	}
	if d.BackgroundColor != "" {
		style = style.Background(lipgloss.Color(d.BackgroundColor)).Padding(0, 1)
	}
	return style.Render(text)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// templateData provides data for custom templates.
type templateData struct {
	Row          *Row
	Item         weather.Descriptor
	Title        string
	RelativeTime string
}

// templateFuncs returns template helper functions.
func templateFuncs(opts FormatterOptions) template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			if maxLen <= 0 || len(s) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return s[:maxLen]
			}
			return s[:maxLen-3] + "..."
		},
		"reltime": func(ms int64) string {
			return relativeTime(ms, opts.now())
		},
		"title": func(key weather.Prop) string {
			return weather.Title(key, opts.Translator)
		},
	}
}
