package container

import (
	"context"
	"fmt"
	"net/http"

	"go-ocr-lens/internal/analyzer"
	"go-ocr-lens/internal/chart"
	"go-ocr-lens/internal/config"
	"go-ocr-lens/internal/factory"
	"go-ocr-lens/internal/logger"
	"go-ocr-lens/internal/observer"
	"go-ocr-lens/internal/ocr"
	"go-ocr-lens/internal/ocr/tesseract"
	"go-ocr-lens/internal/repository"
	"go-ocr-lens/internal/service"
	"go-ocr-lens/internal/transport"
	"go-ocr-lens/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config       *config.Config
	chartPool    *chart.WorkerPool
	chartSweeper *chart.Sweeper
	handler      http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	engine := tesseract.NewEngine()
	logger.WithField("tesseract_version", engine.Version()).Info("OCR engine ready")
	return NewContainerWithEngine(cfg, engine)
}

// NewContainerWithEngine builds the dependency graph around the given OCR engine.
func NewContainerWithEngine(cfg *config.Config, engine ocr.Engine) (*Container, error) {
	components := factory.NewComponentFactory(cfg)

	uploadStore, err := components.StorageFactory.CreateStorage(factory.StorageType(cfg.StorageBackend))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload storage: %w", err)
	}
	translator, err := components.TranslatorFactory.CreateTranslator(factory.TranslatorType(cfg.TranslatorProvider))
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}

	publisher := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	chartPool := chart.NewWorkerPool(cfg.ChartWorkers)
	chartPool.Start()
	generator := chart.NewGenerator(cfg.ChartDir(), transport.ChartURLPrefix, chartPool)

	ocrService := service.NewOCRService(
		validation.NewUploadValidator(),
		repository.NewUploadRepository(uploadStore),
		factory.NewPreprocessor(cfg.OCRPreprocess),
		engine,
		analyzer.NewTextAnalyzer(),
		generator,
		publisher,
		service.OCRSettings{Languages: cfg.OCRLanguages, Variables: cfg.OCRVariables(), Timeout: cfg.OCRTimeout},
	)
	translationService := service.NewTranslationService(translator, cfg.TranslateTimeout, publisher)

	handler := transport.NewHandler(ocrService, translationService, metrics, cfg, transport.HandlerInfo{
		Storage: uploadStore.Name(),
	})

	return &Container{
		config:       cfg,
		chartPool:    chartPool,
		chartSweeper: chart.NewSweeper(cfg.ChartDir(), cfg.ChartRetention),
		handler:      handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// StartBackground launches the chart sweeper; it stops when ctx is canceled.
func (c *Container) StartBackground(ctx context.Context) {
	go c.chartSweeper.Run(ctx)
}

// Close drains the chart worker pool.
func (c *Container) Close() {
	c.chartPool.Close()
}
