package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"go-ocr-lens/internal/analyzer"
	"go-ocr-lens/internal/chart"
	apperrors "go-ocr-lens/internal/errors"
	"go-ocr-lens/internal/logger"
	"go-ocr-lens/internal/observer"
	"go-ocr-lens/internal/ocr"
	"go-ocr-lens/internal/repository"
	"go-ocr-lens/internal/storage"
	"go-ocr-lens/pkg/models"
	"go-ocr-lens/pkg/validation"
)

// OCRRequest is one uploaded file as received by the transport layer.
type OCRRequest struct {
	Filename     string
	Data         []byte
	ExpectedText string
}

// OCRService runs the upload pipeline: validate, store, recognize, summarize, chart.
type OCRService interface {
	Process(ctx context.Context, req OCRRequest) (*models.OCRResponse, error)
	// Upload returns a stored upload and its sniffed content type.
	Upload(ctx context.Context, key string) ([]byte, string, error)
	DeleteUpload(ctx context.Context, key string) error
	EngineName() string
}

// OCRSettings tunes recognition.
type OCRSettings struct {
	Languages []string
	Variables map[string]string
	Timeout   time.Duration
}

type ocrService struct {
	validator    *validation.UploadValidator
	repo         repository.UploadRepository
	preprocessor ocr.Preprocessor
	engine       ocr.Engine
	analyzer     analyzer.TextAnalyzer
	charts       *chart.Generator
	publisher    observer.Subject
	settings     OCRSettings
}

// NewOCRService creates a new OCR service
func NewOCRService(
	validator *validation.UploadValidator,
	repo repository.UploadRepository,
	preprocessor ocr.Preprocessor,
	engine ocr.Engine,
	textAnalyzer analyzer.TextAnalyzer,
	charts *chart.Generator,
	publisher observer.Subject,
	settings OCRSettings,
) OCRService {
	if preprocessor == nil {
		preprocessor = ocr.Passthrough
	}
	return &ocrService{
		validator:    validator,
		repo:         repo,
		preprocessor: preprocessor,
		engine:       engine,
		analyzer:     textAnalyzer,
		charts:       charts,
		publisher:    publisher,
		settings:     settings,
	}
}

func (s *ocrService) EngineName() string {
	return s.engine.Name()
}

func (s *ocrService) Process(ctx context.Context, req OCRRequest) (*models.OCRResponse, error) {
	start := time.Now()

	ext, err := s.validator.ValidateExtension(req.Filename)
	if err != nil {
		s.reject(ctx, req, err)
		return nil, err
	}
	contentType, err := s.validator.ValidateContent(req.Data)
	if err != nil {
		s.reject(ctx, req, err)
		return nil, err
	}

	upload := &repository.UploadedImage{
		OriginalName: req.Filename,
		Extension:    ext,
		ContentType:  contentType,
		Data:         req.Data,
	}
	if err := s.repo.Save(ctx, upload); err != nil {
		return nil, apperrors.NewInternalError("failed to store upload", err)
	}

	received := observer.NewEvent(observer.UploadReceived, upload.ID)
	received.Metadata = map[string]interface{}{"key": upload.Key, "content_type": contentType, "size": upload.Size}
	s.publisher.NotifyObservers(ctx, received)

	result, err := s.recognize(ctx, upload)
	if err != nil {
		s.fail(ctx, upload.ID, start, err)
		return nil, err
	}

	summary := s.analyzer.Summarize(result.Text, analyzer.DefaultOptions().WithExpectedText(req.ExpectedText))

	charts, err := s.charts.Generate(ctx, upload.ID, summary.TopWords)
	if err != nil {
		s.fail(ctx, upload.ID, start, err)
		return nil, err
	}

	elapsed := time.Since(start)
	completed := observer.NewEvent(observer.OCRCompleted, upload.ID)
	completed.ProcessingTime = elapsed
	completed.Metadata = map[string]interface{}{
		"engine":      s.engine.Name(),
		"line_count":  summary.LineCount,
		"token_count": len(summary.Tokens),
		"confidence":  result.Confidence,
	}
	s.publisher.NotifyObservers(ctx, completed)

	return &models.OCRResponse{
		RequestID:         upload.ID,
		Timestamp:         start.UTC().Format(time.RFC3339),
		ProcessingTimeSec: elapsed.Seconds(),
		Upload: models.UploadInfo{
			ID:           upload.ID,
			Key:          upload.Key,
			OriginalName: upload.OriginalName,
			ContentType:  upload.ContentType,
			Size:         upload.Size,
		},
		Engine:     s.engine.Name(),
		Confidence: result.Confidence,
		Text:       summary.Text,
		LineCount:  summary.LineCount,
		Words:      summary.Tokens,
		TopWords:   summary.TopWords,
		Accuracy:   summary.Accuracy,
		Charts:     charts,
	}, nil
}

func (s *ocrService) Upload(ctx context.Context, key string) ([]byte, string, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, "", apperrors.NewValidationError("invalid upload key", err)
	}
	data, err := s.repo.Load(ctx, key)
	if err != nil {
		return nil, "", uploadAccessError(err)
	}
	contentType, err := s.validator.ValidateContent(data)
	if err != nil {
		return nil, "", apperrors.NewInternalError("stored upload is not a supported image", err)
	}
	return data, contentType, nil
}

func (s *ocrService) DeleteUpload(ctx context.Context, key string) error {
	if err := storage.ValidateKey(key); err != nil {
		return apperrors.NewValidationError("invalid upload key", err)
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return uploadAccessError(err)
	}
	logger.WithField("key", key).Info("Upload deleted")
	return nil
}

func uploadAccessError(err error) error {
	if errors.Is(err, repository.ErrUploadNotFound) {
		return apperrors.NewNotFoundError("upload not found", err)
	}
	return apperrors.NewInternalError("failed to access upload", err)
}

// recognize runs the engine on the in-memory copy of the stored upload.
func (s *ocrService) recognize(ctx context.Context, upload *repository.UploadedImage) (ocr.Result, error) {
	prepared, err := s.preprocessor.Prepare(upload.Data)
	if err != nil {
		return ocr.Result{}, apperrors.NewProcessingError("failed to prepare image for OCR", err)
	}

	ocrCtx, cancel := withTimeout(ctx, s.settings.Timeout)
	defer cancel()

	input := ocr.NewInput(upload.ID, prepared,
		ocr.WithLanguages(s.settings.Languages...),
		ocr.WithVariables(s.settings.Variables),
	)
	result, err := s.engine.Recognize(ocrCtx, input)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ocr.Result{}, apperrors.NewTimeoutError("text recognition timed out", err)
		}
		return ocr.Result{}, apperrors.NewProcessingError("text recognition failed", err)
	}

	logger.WithFields(logrus.Fields{
		"request_id":  upload.ID,
		"engine":      s.engine.Name(),
		"duration_ms": result.Duration.Milliseconds(),
		"chars":       len(result.Text),
	}).Debug("Text recognized")
	return result, nil
}

func (s *ocrService) reject(ctx context.Context, req OCRRequest, err error) {
	ev := observer.NewEvent(observer.UploadRejected, "")
	ev.Success = false
	ev.ErrorMessage = err.Error()
	ev.Metadata = map[string]interface{}{"filename": req.Filename, "size": len(req.Data)}
	s.publisher.NotifyObservers(ctx, ev)
}

func (s *ocrService) fail(ctx context.Context, requestID string, start time.Time, err error) {
	ev := observer.NewEvent(observer.OCRFailed, requestID)
	ev.Success = false
	ev.ProcessingTime = time.Since(start)
	ev.ErrorMessage = err.Error()
	s.publisher.NotifyObservers(ctx, ev)
}

// withTimeout leaves ctx unchanged when d is not positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
