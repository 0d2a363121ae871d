package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var labelFace = basicfont.Face7x13

// rasterize renders an SVG document onto a white canvas of the given size.
func rasterize(svg []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid chart dimensions: %dx%d", width, height)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, dst, dst.Bounds())
	dasher := rasterx.NewDasher(width, height, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}

// drawLabels writes text with the fixed 7x13 bitmap face.
func drawLabels(dst draw.Image, labels []Label) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: labelFace,
	}
	for _, l := range labels {
		x := l.X
		if l.Centered {
			x -= d.MeasureString(l.Text).Round() / 2
		}
		d.Dot = fixed.P(x, l.Y)
		d.DrawString(l.Text)
	}
}

// textWidth is the pixel width of s in the label face.
func textWidth(s string) int {
	return font.MeasureString(labelFace, s).Round()
}

// fitText truncates s so it is at most maxWidth pixels wide.
func fitText(s string, maxWidth int) string {
	if textWidth(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "."
		if textWidth(candidate) <= maxWidth {
			return candidate
		}
	}
	return string(runes)
}

// writePNG rasterizes a drawing, overlays its labels and encodes it to w.
func writePNG(w io.Writer, d Drawing, width, height int) error {
	img, err := rasterize(d.SVG, width, height)
	if err != nil {
		return err
	}
	drawLabels(img, d.Labels)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode chart PNG: %w", err)
	}
	return nil
}
