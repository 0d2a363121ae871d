package chart

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"go-ocr-lens/internal/analyzer"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600

	// horizontal room taken by the y axis and canvas padding
	axisMargin = 120
)

func colorAt(i int) drawing.Color {
	return drawing.ColorFromHex(hexAt(i))
}

func solid(c drawing.Color) gochart.Style {
	return gochart.Style{FillColor: c, StrokeColor: c}
}

func titledBackground() gochart.Style {
	return gochart.Style{Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}}
}

// countRange starts at zero so the first word never sits on the x axis.
func countRange(words []analyzer.WordCount) *gochart.ContinuousRange {
	return &gochart.ContinuousRange{Min: 0, Max: float64(maxCount(words) + 1)}
}

// slotWidth is the horizontal space available to each word.
func slotWidth(width, n int) int {
	return max((width-axisMargin)/n, 1)
}

// BarRenderer draws one bar per word.
type BarRenderer struct{}

func (BarRenderer) Kind() Kind { return KindBar }

func (r BarRenderer) Render(w io.Writer, words []analyzer.WordCount, width, height int) error {
	if len(words) == 0 {
		return writePlaceholder(w, r.Kind(), width, height)
	}

	slot := slotWidth(width, len(words))
	bars := make([]gochart.Value, len(words))
	for i, wc := range words {
		bars[i] = gochart.Value{
			Value: float64(wc.Count),
			Label: fitText(wc.Word, slot-4),
			Style: solid(colorAt(0)),
		}
	}

	graph := gochart.BarChart{
		Title:      r.Kind().Title(),
		Width:      width,
		Height:     height,
		Background: titledBackground(),
		BarWidth:   max(slot*6/10, 1),
		BarSpacing: max(slot*4/10, 1),
		YAxis:      gochart.YAxis{Range: countRange(words)},
		Bars:       bars,
	}
	return graph.Render(gochart.PNG, w)
}

// ScatterRenderer draws one marker per word.
type ScatterRenderer struct{}

func (ScatterRenderer) Kind() Kind { return KindScatter }

func (r ScatterRenderer) Render(w io.Writer, words []analyzer.WordCount, width, height int) error {
	if len(words) == 0 {
		return writePlaceholder(w, r.Kind(), width, height)
	}

	slot := slotWidth(width, len(words)+1)
	xs := make([]float64, len(words))
	ys := make([]float64, len(words))
	// empty end ticks keep the x range non-degenerate for a single word
	ticks := []gochart.Tick{{Value: 0}}
	for i, wc := range words {
		xs[i] = float64(i + 1)
		ys[i] = float64(wc.Count)
		ticks = append(ticks, gochart.Tick{Value: xs[i], Label: fitText(wc.Word, slot-4)})
	}
	ticks = append(ticks, gochart.Tick{Value: float64(len(words) + 1)})

	graph := gochart.Chart{
		Title:      r.Kind().Title(),
		Width:      width,
		Height:     height,
		Background: titledBackground(),
		XAxis:      gochart.XAxis{Name: "Word", Ticks: ticks},
		YAxis:      gochart.YAxis{Name: "Frequency", Range: countRange(words)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotWidth:    6,
					DotColorProvider: func(_, _ gochart.Range, index int, _, _ float64) drawing.Color {
						return colorAt(index)
					},
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(gochart.PNG, w)
}

// PieRenderer draws the share of each word.
type PieRenderer struct{}

func (PieRenderer) Kind() Kind { return KindPie }

func (r PieRenderer) Render(w io.Writer, words []analyzer.WordCount, width, height int) error {
	total := 0
	for _, wc := range words {
		total += wc.Count
	}
	if total == 0 {
		return writePlaceholder(w, r.Kind(), width, height)
	}

	values := make([]gochart.Value, 0, len(words))
	for i, wc := range words {
		if wc.Count <= 0 {
			continue
		}
		share := float64(wc.Count) / float64(total) * 100
		values = append(values, gochart.Value{
			Value: float64(wc.Count),
			Label: fmt.Sprintf("%s %.1f%%", fitText(wc.Word, 110), share),
			Style: solid(colorAt(i)),
		})
	}

	graph := gochart.PieChart{
		Title:      r.Kind().Title(),
		Width:      width,
		Height:     height,
		Background: titledBackground(),
		Values:     values,
	}
	return graph.Render(gochart.PNG, w)
}

// DefaultRenderers returns one renderer per chart kind in render order.
func DefaultRenderers() []Renderer {
	return []Renderer{BarRenderer{}, ScatterRenderer{}, PieRenderer{}, RadarRenderer{}}
}
