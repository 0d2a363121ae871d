package validation

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	apperrors "go-ocr-lens/internal/errors"
)

// UnsupportedFormatMessage is the user-facing text for rejected uploads.
const UnsupportedFormatMessage = "Unsupported image format"

// DefaultAllowedExtensions lists the image formats accepted for OCR.
var DefaultAllowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}

// allowedContentTypes maps sniffed MIME types onto the extensions above.
var allowedContentTypes = []string{"image/jpeg", "image/png", "image/gif", "image/bmp"}

// UploadValidator handles uploaded file validation logic
type UploadValidator struct {
	allowedExtensions []string
	sniffContent      bool
}

// NewUploadValidator creates an upload validator with default settings
func NewUploadValidator() *UploadValidator {
	return &UploadValidator{
		allowedExtensions: DefaultAllowedExtensions,
		sniffContent:      true,
	}
}

// NewUploadValidatorWithOptions creates an upload validator with custom options
func NewUploadValidatorWithOptions(extensions []string, sniffContent bool) *UploadValidator {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		normalized = append(normalized, normalizeExtension(ext))
	}
	return &UploadValidator{
		allowedExtensions: normalized,
		sniffContent:      sniffContent,
	}
}

// ValidateExtension checks the filename against the extension allow-list and
// returns the normalized extension (lower case, leading dot).
func (v *UploadValidator) ValidateExtension(filename string) (string, error) {
	ext := normalizeExtension(filepath.Ext(filename))
	if ext == "" || !v.isExtensionAllowed(ext) {
		return "", apperrors.NewUnsupportedMediaError(UnsupportedFormatMessage, nil)
	}
	return ext, nil
}

// ValidateContent checks that the bytes are non-empty and, when sniffing is
// enabled, really are one of the allowed image types. It returns the
// detected content type.
func (v *UploadValidator) ValidateContent(data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperrors.NewValidationError("uploaded file is empty", nil)
	}
	mt := mimetype.Detect(data)
	if !v.sniffContent {
		return mt.String(), nil
	}
	for _, allowed := range allowedContentTypes {
		if mt.Is(allowed) {
			return allowed, nil
		}
	}
	err := apperrors.NewUnsupportedMediaError(UnsupportedFormatMessage, nil)
	err.Details = "detected content type " + mt.String()
	return "", err
}

// isExtensionAllowed checks if the extension is in the allowed list
func (v *UploadValidator) isExtensionAllowed(ext string) bool {
	for _, allowed := range v.allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
