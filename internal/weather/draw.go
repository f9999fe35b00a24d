package weather

import "fmt"

// Align is the horizontal text alignment of a paint.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// TextPaint is the paint used to draw descriptor text.
type TextPaint interface {
	SetTextSize(size float64)
	SetColor(color string)
	Color() string
	TextAlign() Align
}

// Span is a run of text with its own font.
type Span struct {
	Text       string
	FontFamily string  // Empty uses the paint's font
	FontSize   float64 // Zero uses the paint's size
	Color      string  // Empty uses the paint's color
}

// TextLayout is a laid out block of text.
type TextLayout interface {
	LineWidth(line int) float64
	Height() float64
	Draw(c Canvas)
}

// Canvas is the drawing surface of the forecast rows.
type Canvas interface {
	Width() float64
	Save()
	Restore()
	Translate(dx, dy float64)
	DrawRoundRect(left, top, right, bottom, rx, ry float64, paint TextPaint)
	// Layout lays out spans with paint, wrapping at maxWidth.
	Layout(spans []Span, paint TextPaint, maxWidth float64) TextLayout
}

// CustomDraw draws a descriptor at (x, y) and returns the width it used.
// withIcon prepends the descriptor's glyph.
type CustomDraw func(c Canvas, fontScale float64, paint TextPaint, d *Descriptor, x, y float64, withIcon bool) float64

// drawBadge draws value and subvalue on an optional rounded background.
func drawBadge(c Canvas, fontScale float64, paint TextPaint, d *Descriptor, x, y float64, withIcon bool) float64 {
	paint.SetTextSize(11 * fontScale)
	paint.SetColor(d.Color)

	text := fmt.Sprintf("%s %s", d.Value, d.Subvalue)
	var spans []Span
	if withIcon {
		spans = []Span{
			{Text: d.Icon, FontFamily: string(d.Font), FontSize: d.IconFontSize * 0.9, Color: d.Color},
			{Text: " " + text},
		}
	} else {
		spans = []Span{{Text: text}}
	}
	layout := c.Layout(spans, paint, c.Width())

	c.Save()
	defer c.Restore()

	align := paint.TextAlign()
	switch align {
	case AlignCenter:
		c.Translate(x, y)
	case AlignLeft:
		c.Translate(x+4, y)
	case AlignRight:
		c.Translate(x-4, y)
	}

	width := layout.LineWidth(0)
	if d.BackgroundColor != "" {
		// Height must be measured before the paint color changes.
		height := layout.Height()
		old := paint.Color()
		paint.SetColor(d.BackgroundColor)
		switch align {
		case AlignCenter:
			c.DrawRoundRect(-width/2-4, -1, width/2+4, height, 4, 4, paint)
		case AlignLeft:
			c.DrawRoundRect(-4, -1, width+4, height, 4, 4, paint)
		case AlignRight:
			c.DrawRoundRect(-width-4, -1, -4, height, 4, 4, paint)
		}
		paint.SetColor(old)
	}

	layout.Draw(c)
	return width + 16
}
