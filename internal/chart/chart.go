package chart

import (
	"io"

	"go-ocr-lens/internal/analyzer"
)

// Kind names one of the chart images produced per request.
type Kind string

const (
	KindBar     Kind = "bar"
	KindScatter Kind = "scatter"
	KindPie     Kind = "pie"
	KindRadar   Kind = "radar"
)

// Kinds is the fixed render order.
var Kinds = []Kind{KindBar, KindScatter, KindPie, KindRadar}

// FileName is the on-disk name of a chart inside its request directory.
func (k Kind) FileName() string {
	return string(k) + ".png"
}

// Label is text drawn over the rasterized chart with a bitmap font.
// X/Y is the baseline origin; Centered shifts the text left by half its width.
type Label struct {
	X, Y     int
	Text     string
	Centered bool
}

// Drawing is an SVG document plus the text drawn over it after rasterization.
type Drawing struct {
	SVG    []byte
	Labels []Label
}

// Renderer writes the PNG chart of the ranked word list to w.
type Renderer interface {
	Kind() Kind
	Render(w io.Writer, words []analyzer.WordCount, width, height int) error
}

var titles = map[Kind]string{
	KindBar:     "Chart of Most Used Words",
	KindScatter: "Scatter Plot of Word Frequencies",
	KindPie:     "Distribution of Most Used Words",
	KindRadar:   "Frequency of Most Used Words",
}

// Title is the heading drawn on charts of this kind.
func (k Kind) Title() string {
	return titles[k]
}

// ChartSet holds the public URLs of the charts written for one request.
type ChartSet struct {
	RequestID string `json:"request_id"`
	Bar       string `json:"bar"`
	Scatter   string `json:"scatter"`
	Pie       string `json:"pie"`
	Radar     string `json:"radar"`
}

func (s *ChartSet) set(kind Kind, url string) {
	switch kind {
	case KindBar:
		s.Bar = url
	case KindScatter:
		s.Scatter = url
	case KindPie:
		s.Pie = url
	case KindRadar:
		s.Radar = url
	}
}

// URLs returns the chart URLs in render order.
func (s ChartSet) URLs() []string {
	return []string{s.Bar, s.Scatter, s.Pie, s.Radar}
}

// palette follows the common ten-color categorical scheme, as bare hex.
var palette = []string{
	"1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd",
	"8c564b", "e377c2", "7f7f7f", "bcbd22", "17becf",
}

func hexAt(i int) string {
	return palette[i%len(palette)]
}
