// Package ocr defines the text recognition port used by the upload pipeline
// and the image preparation that runs before it.
package ocr

import (
	"context"
	"time"
)

// Engine recognizes text in an encoded image.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}

// Input is one image handed to an Engine.
type Input struct {
	ID        string
	Image     []byte
	Languages []string
	// Variables are engine specific settings, e.g. tesseract "tessedit_pageseg_mode".
	Variables map[string]string
}

// Result is the recognized text. Text is returned as produced by the engine,
// including line breaks.
type Result struct {
	InputID    string        `json:"input_id"`
	Text       string        `json:"text"`
	Confidence float64       `json:"confidence"`
	Duration   time.Duration `json:"duration"`
}

// EngineFunc adapts a plain function to Engine.
type EngineFunc func(ctx context.Context, in Input) (Result, error)

func (f EngineFunc) Name() string { return "func" }

func (f EngineFunc) Recognize(ctx context.Context, in Input) (Result, error) {
	return f(ctx, in)
}
