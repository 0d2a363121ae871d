package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "go-ocr-lens/internal/errors"
	"go-ocr-lens/internal/logger"
	"go-ocr-lens/internal/observer"
	"go-ocr-lens/internal/translate"
	"go-ocr-lens/pkg/models"
)

const (
	// NoTextMessage is shown when there is nothing to translate.
	NoTextMessage = "No text recognized for translation."
	// TranslationErrorMessage is shown when any direction failed.
	TranslationErrorMessage = "An error occurred while performing the translation."
)

// TranslationService translates text in both fixed directions.
type TranslationService interface {
	// Translate returns a validation error carrying NoTextMessage for empty
	// input. Whitespace is passed through to the translator. Each direction is reported on its own; the response Message is
	// set as soon as one fails. When every direction fails the populated
	// response is returned together with the error of the first direction.
	Translate(ctx context.Context, text string) (*models.TranslationResponse, error)
}

type translationService struct {
	translator translate.Translator
	directions []translate.Direction
	timeout    time.Duration
	publisher  observer.Subject
}

// NewTranslationService uses an injected translator so tests and deployments
// can swap providers without touching the handlers.
func NewTranslationService(translator translate.Translator, timeout time.Duration, publisher observer.Subject) TranslationService {
	return &translationService{
		translator: translator,
		directions: translate.Directions,
		timeout:    timeout,
		publisher:  publisher,
	}
}

func (s *translationService) Translate(ctx context.Context, text string) (*models.TranslationResponse, error) {
	if text == "" {
		return nil, apperrors.NewValidationError(NoTextMessage, nil)
	}
	start := time.Now()

	resp := &models.TranslationResponse{
		Source:    text,
		Provider:  s.translator.Name(),
		Results:   make([]models.DirectionResult, len(s.directions)),
		Timestamp: start.UTC().Format(time.RFC3339),
	}
	errs := make([]error, len(s.directions))

	var wg sync.WaitGroup
	for i, dir := range s.directions {
		i, dir := i, dir
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp.Results[i], errs[i] = s.translateOne(ctx, text, dir)
		}()
	}
	wg.Wait()

	var firstErr error
	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	ev := observer.NewEvent(observer.TranslationCompleted, "")
	ev.ProcessingTime = time.Since(start)
	ev.Metadata = map[string]interface{}{"provider": s.translator.Name(), "failed_directions": failed}
	if failed > 0 {
		resp.Message = TranslationErrorMessage
	}
	if failed == len(s.directions) {
		ev.EventType = observer.TranslationFailed
		ev.Success = false
		ev.ErrorMessage = firstErr.Error()
		s.publisher.NotifyObservers(ctx, ev)
		return resp, firstErr
	}
	s.publisher.NotifyObservers(ctx, ev)
	return resp, nil
}

func (s *translationService) translateOne(ctx context.Context, text string, dir translate.Direction) (models.DirectionResult, error) {
	from, to := dir.Codes()
	result := models.DirectionResult{
		Direction: dir.String(),
		Label:     dir.Label(),
		From:      from,
		To:        to,
	}

	callCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	translated, err := s.translator.Translate(callCtx, text, from, to)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"direction": result.Direction,
			"provider":  s.translator.Name(),
		}).Error("Translation direction failed")

		result.Error = &models.DirectionError{
			Type:    string(apperrors.TypeOf(err)),
			Message: directionMessage(err),
		}
		return result, err
	}

	result.Text = translated
	return result, nil
}

func directionMessage(err error) string {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeTimeout:
		return "The translation service did not respond in time."
	case apperrors.ErrorTypeNetwork:
		return "The translation service is unavailable."
	default:
		return "The translation could not be completed."
	}
}
