package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "go-ocr-lens/internal/errors"
	"go-ocr-lens/internal/observer"
)

type stubTranslator struct {
	calls int32
	mu    sync.Mutex
	seen  []string
	fn    func(ctx context.Context, text, from, to string) (string, error)
}

func (s *stubTranslator) Name() string { return "stub" }

func (s *stubTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	s.mu.Lock()
	s.seen = append(s.seen, from+"-"+to)
	s.mu.Unlock()
	return s.fn(ctx, text, from, to)
}

func TestTranslationService_EmptyInputNeverCallsTranslator(t *testing.T) {
	stub := &stubTranslator{fn: func(context.Context, string, string, string) (string, error) { return "x", nil }}
	svc := NewTranslationService(stub, time.Second, observer.NewEventPublisher())

	resp, err := svc.Translate(context.Background(), "")
	assert.Nil(t, resp)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, NoTextMessage, appErr.Message)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Zero(t, atomic.LoadInt32(&stub.calls))
}

func TestTranslationService_WhitespaceIsTranslated(t *testing.T) {
	stub := &stubTranslator{fn: func(_ context.Context, text, _, _ string) (string, error) { return text, nil }}
	svc := NewTranslationService(stub, time.Second, observer.NewEventPublisher())

	resp, err := svc.Translate(context.Background(), "  \n\t")
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Empty(t, resp.Message)
	assert.Equal(t, int32(2), atomic.LoadInt32(&stub.calls))
}

func TestTranslationService_BothDirections(t *testing.T) {
	stub := &stubTranslator{fn: func(_ context.Context, text, from, to string) (string, error) {
		return "[" + from + ">" + to + "] " + text, nil
	}}
	svc := NewTranslationService(stub, time.Second, observer.NewEventPublisher())

	resp, err := svc.Translate(context.Background(), "hola")
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	esEn := resp.Results[0]
	assert.Equal(t, "es-en", esEn.Direction)
	assert.Equal(t, "[es>en] hola", esEn.Text)
	assert.True(t, esEn.OK())

	enEs := resp.Results[1]
	assert.Equal(t, "en-es", enEs.Direction)
	assert.Equal(t, "[en>es] hola", enEs.Text)
	assert.Equal(t, "English to Spanish", enEs.Label)
	assert.Empty(t, resp.Message)
	assert.ElementsMatch(t, []string{"es-en", "en-es"}, stub.seen)
}

func TestTranslationService_DirectionsFailIndependently(t *testing.T) {
	stub := &stubTranslator{fn: func(_ context.Context, text, from, to string) (string, error) {
		if from == "es" {
			return "", apperrors.NewNetworkError("upstream 503", errors.New("status 503"))
		}
		return "hola", nil
	}}
	svc := NewTranslationService(stub, time.Second, observer.NewEventPublisher())

	resp, err := svc.Translate(context.Background(), "hello")
	require.NoError(t, err)

	esEn := resp.Results[0]
	require.NotNil(t, esEn.Error)
	assert.Equal(t, string(apperrors.ErrorTypeNetwork), esEn.Error.Type)

	enEs := resp.Results[1]
	assert.True(t, enEs.OK())
	assert.Equal(t, "hola", enEs.Text)
	assert.Equal(t, TranslationErrorMessage, resp.Message)
}

func TestTranslationService_AllFailed(t *testing.T) {
	stub := &stubTranslator{fn: func(ctx context.Context, _, _, _ string) (string, error) {
		<-ctx.Done()
		return "", apperrors.NewTimeoutError("slow", ctx.Err())
	}}
	svc := NewTranslationService(stub, 20*time.Millisecond, observer.NewEventPublisher())

	resp, err := svc.Translate(context.Background(), "hello")
	require.Error(t, err)
	require.NotNil(t, resp)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTimeout))
	assert.Equal(t, TranslationErrorMessage, resp.Message)
	for _, r := range resp.Results {
		require.NotNil(t, r.Error)
		assert.Equal(t, "timeout", r.Error.Type)
	}
}

func TestTranslationService_PlainErrorIsInternal(t *testing.T) {
	stub := &stubTranslator{fn: func(context.Context, string, string, string) (string, error) {
		return "", errors.New("bug")
	}}
	svc := NewTranslationService(stub, time.Second, observer.NewEventPublisher())

	resp, err := svc.Translate(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, "internal", resp.Results[0].Error.Type)
}
