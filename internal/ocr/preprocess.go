package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
)

// maxSide bounds the longest image edge handed to the engine.
const maxSide = 4000

// Preprocessor prepares an uploaded image for recognition.
type Preprocessor interface {
	Prepare(data []byte) ([]byte, error)
}

// PreprocessorFunc adapts a function to Preprocessor.
type PreprocessorFunc func(data []byte) ([]byte, error)

func (f PreprocessorFunc) Prepare(data []byte) ([]byte, error) { return f(data) }

// Passthrough hands the upload to the engine unchanged.
var Passthrough = PreprocessorFunc(func(data []byte) ([]byte, error) { return data, nil })

type grayscalePreprocessor struct{}

// NewGrayscalePreprocessor decodes any supported format (jpeg, png, gif, bmp),
// applies EXIF orientation, converts to grayscale, downsizes very large images
// and re-encodes as PNG.
func NewGrayscalePreprocessor() Preprocessor {
	return grayscalePreprocessor{}
}

func (grayscalePreprocessor) Prepare(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var prepared image.Image = imaging.Grayscale(img)
	b := prepared.Bounds()
	if b.Dx() > maxSide || b.Dy() > maxSide {
		if b.Dx() >= b.Dy() {
			prepared = imaging.Resize(prepared, maxSide, 0, imaging.Lanczos)
		} else {
			prepared = imaging.Resize(prepared, 0, maxSide, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, prepared, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
