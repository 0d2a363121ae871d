package translate

import (
	"context"
	"errors"
	"net"

	apperrors "go-ocr-lens/internal/errors"
)

// Translator translates text between two ISO 639-1 language codes.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// classify maps provider failures onto application error kinds.
func classify(provider string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(provider+" translation timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NewTimeoutError(provider+" translation timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.NewInternalError(provider+" translation canceled", err)
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) || errors.As(err, &netErr) {
		return apperrors.NewNetworkError(provider+" translation service unavailable", err)
	}
	return apperrors.NewNetworkError(provider+" translation request failed", err)
}
