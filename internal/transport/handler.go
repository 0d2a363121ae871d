package transport

import (
	"errors"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-ocr-lens/internal/config"
	apperrors "go-ocr-lens/internal/errors"
	"go-ocr-lens/internal/logger"
	"go-ocr-lens/internal/service"
	"go-ocr-lens/pkg/models"
	"go-ocr-lens/pkg/validation"
)

const (
	// ChartURLPrefix is the public path of the chart directory.
	ChartURLPrefix = "/static/charts"

	version = "1.0.0"
)

// MetricsProvider exposes the counters served on /metrics.
type MetricsProvider interface {
	GetMetrics() map[string]interface{}
}

// HandlerInfo carries descriptive values shown on /health.
type HandlerInfo struct {
	Storage string
}

type handler struct {
	ocr         service.OCRService
	translation service.TranslationService
	metrics     MetricsProvider
	cfg         *config.Config
	info        HandlerInfo
}

func NewHandler(
	ocrService service.OCRService,
	translationService service.TranslationService,
	metrics MetricsProvider,
	cfg *config.Config,
	info HandlerInfo,
) http.Handler {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")))

	r.Use(
		gin.Recovery(),
		requestLogger(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		requestTimeout(cfg.RequestTimeout),
		errorHandler(),
	)

	h := &handler{
		ocr:         ocrService,
		translation: translationService,
		metrics:     metrics,
		cfg:         cfg,
		info:        info,
	}

	r.Static(ChartURLPrefix, cfg.ChartDir())

	r.GET("/", h.index)
	r.GET("/upload", h.uploadForm)
	r.POST("/upload", h.upload)
	r.POST("/translate", h.translate)
	r.GET("/health", h.healthCheck)
	r.GET("/metrics", h.metricsSnapshot)

	api := r.Group("/api/v1")
	{
		api.POST("/ocr", h.apiOCR)
		api.POST("/translate", h.apiTranslate)
		api.GET("/uploads/:key", h.apiUpload)
		api.DELETE("/uploads/:key", h.apiDeleteUpload)
	}

	return r
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (h *handler) uploadForm(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", nil)
}

func (h *handler) upload(c *gin.Context) {
	req, err := readUpload(c)
	if err != nil {
		c.HTML(apperrors.GetStatusCode(err), "upload.html", gin.H{"Error": userMessage(err)})
		return
	}

	resp, err := h.ocr.Process(c.Request.Context(), req)
	if err != nil {
		logUploadFailure(c, req, err)
		if apperrors.IsType(err, apperrors.ErrorTypeUnsupported) {
			c.String(http.StatusUnsupportedMediaType, validation.UnsupportedFormatMessage)
			return
		}
		c.HTML(apperrors.GetStatusCode(err), "upload.html", gin.H{"Error": userMessage(err)})
		return
	}

	c.HTML(http.StatusOK, "result.html", resp)
}

func (h *handler) translate(c *gin.Context) {
	text := c.PostForm("text")

	resp, err := h.translation.Translate(c.Request.Context(), text)
	if err != nil && resp == nil {
		c.HTML(http.StatusOK, "translate.html", translatePage{Source: text, Message: userMessage(err)})
		return
	}
	c.HTML(http.StatusOK, "translate.html", translatePage{Source: text, Message: resp.Message, Results: resp.Results})
}

func (h *handler) apiOCR(c *gin.Context) {
	req, err := readUpload(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp, err := h.ocr.Process(c.Request.Context(), req)
	if err != nil {
		logUploadFailure(c, req, err)
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) apiTranslate(c *gin.Context) {
	var body models.TranslationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		_ = c.Error(apperrors.NewValidationError("invalid request format", err))
		return
	}

	resp, err := h.translation.Translate(c.Request.Context(), body.Text)
	if err != nil {
		if resp != nil {
			c.JSON(apperrors.GetStatusCode(err), resp)
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) apiUpload(c *gin.Context) {
	data, contentType, err := h.ocr.Upload(c.Request.Context(), c.Param("key"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

func (h *handler) apiDeleteUpload(c *gin.Context) {
	if err := h.ocr.DeleteUpload(c.Request.Context(), c.Param("key")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "available",
		Version:   version,
		Time:      time.Now().UTC().Format(time.RFC3339),
		OCREngine: h.ocr.EngineName(),
		Storage:   h.info.Storage,
	})
}

func (h *handler) metricsSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetMetrics())
}

// translatePage is the view model of translate.html.
type translatePage struct {
	Source  string
	Message string
	Results []models.DirectionResult
}

// readUpload pulls the "image" part and an optional "expected_text" field.
func readUpload(c *gin.Context) (service.OCRRequest, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return service.OCRRequest{}, tooLarge(err)
		}
		return service.OCRRequest{}, apperrors.NewValidationError("no image file provided", err)
	}

	data, err := readFormFile(fh)
	if err != nil {
		return service.OCRRequest{}, apperrors.NewInternalError("failed to read upload", err)
	}

	return service.OCRRequest{
		Filename:     fh.Filename,
		Data:         data,
		ExpectedText: c.PostForm("expected_text"),
	}, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func tooLarge(err error) error {
	appErr := apperrors.NewValidationError("uploaded file is too large", err)
	appErr.StatusCode = http.StatusRequestEntityTooLarge
	return appErr
}

// userMessage is the text shown on HTML pages; internals stay in the logs.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type != apperrors.ErrorTypeInternal {
		return appErr.Message
	}
	return "An unexpected error occurred."
}

func logUploadFailure(c *gin.Context, req service.OCRRequest, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"filename":   req.Filename,
		"size":       len(req.Data),
		"error_type": apperrors.TypeOf(err),
		"ip":         c.ClientIP(),
	}).Warn("Upload not processed")
}
