package chart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sync"

	"go-ocr-lens/internal/analyzer"
	apperrors "go-ocr-lens/internal/errors"
	"go-ocr-lens/internal/storage"
)

// Generator writes the charts of one request into <baseDir>/<requestID>/.
type Generator struct {
	baseDir   string
	urlPrefix string
	pool      *WorkerPool
	renderers []Renderer
	width     int
	height    int
}

// NewGenerator uses DefaultRenderers when none are given. The pool must be started.
func NewGenerator(baseDir, urlPrefix string, pool *WorkerPool, renderers ...Renderer) *Generator {
	if len(renderers) == 0 {
		renderers = DefaultRenderers()
	}
	return &Generator{
		baseDir:   baseDir,
		urlPrefix: urlPrefix,
		pool:      pool,
		renderers: renderers,
		width:     DefaultWidth,
		height:    DefaultHeight,
	}
}

// Generate renders every chart concurrently. Output paths are scoped by
// requestID so concurrent requests never overwrite each other.
func (g *Generator) Generate(ctx context.Context, requestID string, words []analyzer.WordCount) (ChartSet, error) {
	set := ChartSet{RequestID: requestID}
	if err := storage.ValidateKey(requestID); err != nil {
		return set, apperrors.NewInternalError("invalid chart request id", err)
	}

	store, err := storage.NewLocalStorage(filepath.Join(g.baseDir, requestID))
	if err != nil {
		return set, apperrors.NewInternalError("failed to create chart directory", err)
	}

	errs := make([]error, len(g.renderers))
	var wg sync.WaitGroup
	for i, r := range g.renderers {
		i, r := i, r
		wg.Add(1)
		submitErr := g.pool.Submit(ctx, func() {
			defer wg.Done()
			errs[i] = g.render(ctx, store, r, words)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("%s chart: %w", r.Kind(), submitErr)
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return set, apperrors.NewInternalError("failed to render charts", err)
	}

	for _, r := range g.renderers {
		set.set(r.Kind(), path.Join(g.urlPrefix, requestID, r.Kind().FileName()))
	}
	return set, nil
}

func (g *Generator) render(ctx context.Context, store storage.BlobStorage, r Renderer, words []analyzer.WordCount) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, words, g.width, g.height); err != nil {
		return fmt.Errorf("%s chart: %w", r.Kind(), err)
	}
	if err := store.Save(ctx, r.Kind().FileName(), &buf, "image/png"); err != nil {
		return fmt.Errorf("%s chart: %w", r.Kind(), err)
	}
	return nil
}
