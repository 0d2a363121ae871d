package chart

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"go-ocr-lens/internal/analyzer"
)

const (
	// PlaceholderText is drawn when there are no words to chart.
	PlaceholderText = "No text found"

	gridStroke = `stroke="#dddddd" stroke-width="1"`
)

// newCanvas starts an SVG document on a white background. The caller must
// call End before reading buf.
func newCanvas(buf *bytes.Buffer, width, height int) *svg.SVG {
	canvas := svg.New(buf)
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	canvas.Rect(0, 0, width, height, `fill="#ffffff"`)
	return canvas
}

func titleLabel(width int, title string) Label {
	return Label{X: width / 2, Y: 28, Text: title, Centered: true}
}

// placeholder is what every renderer draws when there is nothing to plot.
func placeholder(width, height int, title string) Drawing {
	var buf bytes.Buffer
	canvas := newCanvas(&buf, width, height)
	canvas.Rect(40, 40, width-80, height-80, `fill="#f7f7f7"`, gridStroke)
	canvas.End()

	return Drawing{
		SVG: buf.Bytes(),
		Labels: []Label{
			titleLabel(width, title),
			{X: width / 2, Y: height / 2, Text: PlaceholderText, Centered: true},
		},
	}
}

func writePlaceholder(w io.Writer, kind Kind, width, height int) error {
	return writePNG(w, placeholder(width, height, kind.Title()), width, height)
}

// RadarRenderer draws the counts on a polar grid with one spoke per word.
type RadarRenderer struct{}

func (RadarRenderer) Kind() Kind { return KindRadar }

func (r RadarRenderer) Render(w io.Writer, words []analyzer.WordCount, width, height int) error {
	if len(words) == 0 {
		return writePlaceholder(w, r.Kind(), width, height)
	}
	return writePNG(w, radarDrawing(words, width, height), width, height)
}

func radarDrawing(words []analyzer.WordCount, width, height int) Drawing {
	var buf bytes.Buffer
	canvas := newCanvas(&buf, width, height)

	cx, cy := float64(width)/2, float64(height)/2+15
	r := math.Min(float64(width), float64(height))/2 - 90
	icx, icy := int(math.Round(cx)), int(math.Round(cy))

	for _, frac := range []float64{0.25, 0.5, 0.75, 1} {
		canvas.Circle(icx, icy, int(math.Round(r*frac)), `fill="none"`, gridStroke)
	}

	labels := []Label{titleLabel(width, KindRadar.Title())}
	for i, angle := range radarAngles(len(words)) {
		end := polar(cx, cy, r, angle)
		canvas.Line(icx, icy, int(math.Round(end.X)), int(math.Round(end.Y)), gridStroke)

		at := polar(cx, cy, r+22, angle)
		labels = append(labels, Label{X: int(at.X), Y: int(at.Y) + 4, Text: fitText(words[i].Word, 110), Centered: true})
	}

	color := "#" + hexAt(0)
	xs, ys := screenXY(radarPoints(cx, cy, r, words))
	canvas.Polygon(xs, ys,
		fmt.Sprintf(`fill="%s" fill-opacity="0.25"`, color),
		fmt.Sprintf(`stroke="%s" stroke-width="2"`, color))
	for i := range xs {
		canvas.Circle(xs[i], ys[i], 4, fmt.Sprintf(`fill="%s"`, color))
	}
	canvas.End()

	return Drawing{SVG: buf.Bytes(), Labels: labels}
}
