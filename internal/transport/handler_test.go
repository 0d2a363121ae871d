package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ocr-lens/internal/analyzer"
	"go-ocr-lens/internal/chart"
	"go-ocr-lens/internal/config"
	apperrors "go-ocr-lens/internal/errors"
	"go-ocr-lens/internal/service"
	"go-ocr-lens/pkg/models"
	"go-ocr-lens/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubOCR struct {
	got service.OCRRequest
	err error
}

func (s *stubOCR) EngineName() string { return "stub" }

func (s *stubOCR) Upload(_ context.Context, key string) ([]byte, string, error) {
	if key != "req-1.png" {
		return nil, "", apperrors.NewNotFoundError("upload not found", nil)
	}
	return []byte("png-bytes"), "image/png", nil
}

func (s *stubOCR) DeleteUpload(_ context.Context, key string) error {
	if key != "req-1.png" {
		return apperrors.NewNotFoundError("upload not found", nil)
	}
	return nil
}

func (s *stubOCR) Process(_ context.Context, req service.OCRRequest) (*models.OCRResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.OCRResponse{
		RequestID: "req-1",
		Text:      "hola hola mundo",
		LineCount: 1,
		Words:     []string{"hola", "hola", "mundo"},
		TopWords:  []analyzer.WordCount{{Word: "hola", Count: 2}, {Word: "mundo", Count: 1}},
		Charts: chart.ChartSet{
			RequestID: "req-1",
			Bar:       "/static/charts/req-1/bar.png",
			Scatter:   "/static/charts/req-1/scatter.png",
			Pie:       "/static/charts/req-1/pie.png",
			Radar:     "/static/charts/req-1/radar.png",
		},
	}, nil
}

type stubTranslation struct {
	resp *models.TranslationResponse
	err  error
}

func (s *stubTranslation) Translate(_ context.Context, text string) (*models.TranslationResponse, error) {
	if text == "" {
		return nil, apperrors.NewValidationError(service.NoTextMessage, nil)
	}
	return s.resp, s.err
}

type stubMetrics struct{}

func (stubMetrics) GetMetrics() map[string]interface{} {
	return map[string]interface{}{"uploads": int64(3)}
}

func newTestHandler(t *testing.T, ocrSvc service.OCRService, trSvc service.TranslationService) (http.Handler, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		MaxRequestBodySize: 1 << 20,
		RequestTimeout:     5 * time.Second,
		StaticDir:          t.TempDir(),
	}
	return NewHandler(ocrSvc, trSvc, stubMetrics{}, cfg, HandlerInfo{Storage: "local"}), cfg
}

func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := w.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestPages(t *testing.T) {
	h, _ := newTestHandler(t, &stubOCR{}, &stubTranslation{})

	for path, want := range map[string]string{"/": "OCR Lens", "/upload": `name="image"`} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), want, path)
	}
}

func TestUpload_RendersResult(t *testing.T) {
	ocrSvc := &stubOCR{}
	h, _ := newTestHandler(t, ocrSvc, &stubTranslation{})

	body, ct := multipartBody(t, "scan.png", []byte("png"), map[string]string{"expected_text": "hola"})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "Lines: 1")
	assert.Contains(t, page, "<td>hola</td><td>2</td>")
	assert.Contains(t, page, "/static/charts/req-1/radar.png")
	assert.Equal(t, "scan.png", ocrSvc.got.Filename)
	assert.Equal(t, "hola", ocrSvc.got.ExpectedText)
}

func TestUpload_UnsupportedFormat(t *testing.T) {
	ocrSvc := &stubOCR{err: apperrors.NewUnsupportedMediaError(validation.UnsupportedFormatMessage, nil)}
	h, _ := newTestHandler(t, ocrSvc, &stubTranslation{})

	body, ct := multipartBody(t, "doc.pdf", []byte("%PDF"), nil)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, "Unsupported image format", rec.Body.String())
}

func TestUpload_MissingFile(t *testing.T) {
	h, _ := newTestHandler(t, &stubOCR{}, &stubTranslation{})

	body, ct := multipartBody(t, "", nil, map[string]string{"other": "x"})
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no image file provided")
}

func TestTranslate_Page(t *testing.T) {
	trSvc := &stubTranslation{resp: &models.TranslationResponse{
		Source: "hola",
		Results: []models.DirectionResult{
			{Direction: "es-en", Label: "Spanish to English", Text: "hello"},
			{Direction: "en-es", Label: "English to Spanish", Error: &models.DirectionError{Type: "network", Message: "The translation service is unavailable."}},
		},
	}}
	h, _ := newTestHandler(t, &stubOCR{}, trSvc)

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader("text=hola"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "Spanish to English")
	assert.Contains(t, page, "hello")
	assert.Contains(t, page, "The translation service is unavailable.")
}

func TestTranslate_EmptyText(t *testing.T) {
	h, _ := newTestHandler(t, &stubOCR{}, &stubTranslation{})

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader("text="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), service.NoTextMessage)
}

func TestTranslate_AllFailedShowsGenericMessage(t *testing.T) {
	trSvc := &stubTranslation{
		resp: &models.TranslationResponse{Source: "hola", Message: service.TranslationErrorMessage},
		err:  apperrors.NewNetworkError("down", nil),
	}
	h, _ := newTestHandler(t, &stubOCR{}, trSvc)

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader("text=hola"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), service.TranslationErrorMessage)
}

func TestAPI_OCR(t *testing.T) {
	h, _ := newTestHandler(t, &stubOCR{}, &stubTranslation{})

	body, ct := multipartBody(t, "scan.png", []byte("png"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ocr", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.OCRResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Len(t, resp.TopWords, 2)
}

func TestAPI_OCRErrorIsJSON(t *testing.T) {
	ocrSvc := &stubOCR{err: apperrors.NewTimeoutError("text recognition timed out", context.DeadlineExceeded)}
	h, _ := newTestHandler(t, ocrSvc, &stubTranslation{})

	body, ct := multipartBody(t, "scan.png", []byte("png"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ocr", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "text recognition timed out", resp.Message)
}

func TestAPI_Translate(t *testing.T) {
	trSvc := &stubTranslation{resp: &models.TranslationResponse{Source: "hola", Provider: "stub"}}
	h, _ := newTestHandler(t, &stubOCR{}, trSvc)

	tests := []struct {
		body string
		code int
	}{
		{`{"text":"hola"}`, http.StatusOK},
		{`{"text":"  "}`, http.StatusOK},
		{`{"text":""}`, http.StatusBadRequest},
		{`not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tt.code, rec.Code, tt.body)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h, _ := newTestHandler(t, &stubOCR{}, &stubTranslation{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var health models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "available", health.Status)
	assert.Equal(t, "stub", health.OCREngine)
	assert.Equal(t, "local", health.Storage)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.JSONEq(t, `{"uploads":3}`, rec.Body.String())
}

func TestStaticCharts(t *testing.T) {
	h, cfg := newTestHandler(t, &stubOCR{}, &stubTranslation{})

	dir := filepath.Join(cfg.ChartDir(), "req-1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bar.png"), []byte("png-bytes"), 0o644))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/charts/req-1/bar.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestRequestSizeLimit(t *testing.T) {
	h, cfg := newTestHandler(t, &stubOCR{}, &stubTranslation{})

	body, ct := multipartBody(t, "big.png", bytes.Repeat([]byte("a"), int(cfg.MaxRequestBodySize)+1024), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ocr", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestAPI_Uploads(t *testing.T) {
	h, _ := newTestHandler(t, &stubOCR{}, &stubTranslation{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/uploads/req-1.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/uploads/other.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "upload not found", resp.Message)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/uploads/req-1.png", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/uploads/other.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
