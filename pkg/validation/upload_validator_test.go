package validation

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	apperrors "go-ocr-lens/internal/errors"
)

func sample() image.Image {
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.White, color.Black})
	img.SetColorIndex(1, 1, 1)
	return img
}

func encoded(t *testing.T, format string) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch format {
	case "png":
		require.NoError(t, png.Encode(&buf, sample()))
	case "jpeg":
		require.NoError(t, jpeg.Encode(&buf, sample(), nil))
	case "gif":
		require.NoError(t, gif.Encode(&buf, sample(), nil))
	case "bmp":
		require.NoError(t, bmp.Encode(&buf, sample()))
	}
	return buf.Bytes()
}

func TestValidateExtension_Allowed(t *testing.T) {
	v := NewUploadValidator()

	tests := map[string]string{
		"scan.jpg":         ".jpg",
		"scan.JPEG":        ".jpeg",
		"photo.final.png":  ".png",
		"anim.Gif":         ".gif",
		"legacy.bmp":       ".bmp",
		"../../tricky.png": ".png",
	}
	for name, want := range tests {
		got, err := v.ValidateExtension(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestValidateExtension_Rejected(t *testing.T) {
	v := NewUploadValidator()

	for _, name := range []string{"doc.pdf", "noext", "image.png.exe", "archive.tar.gz", "", ".png.txt", "image.webp"} {
		_, err := v.ValidateExtension(name)
		require.Error(t, err, name)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, UnsupportedFormatMessage, appErr.Message)
		assert.Equal(t, apperrors.ErrorTypeUnsupported, appErr.Type)
	}
}

func TestValidateContent_Sniffing(t *testing.T) {
	v := NewUploadValidator()

	tests := []struct {
		format string
		want   string
	}{
		{"png", "image/png"},
		{"jpeg", "image/jpeg"},
		{"gif", "image/gif"},
		{"bmp", "image/bmp"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := v.ValidateContent(encoded(t, tt.format))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateContent_Rejected(t *testing.T) {
	v := NewUploadValidator()

	_, err := v.ValidateContent(nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = v.ValidateContent([]byte("plain text pretending to be a png"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnsupported))
}

func TestValidateContent_SniffingDisabled(t *testing.T) {
	v := NewUploadValidatorWithOptions([]string{"PNG", ".txt"}, false)

	ct, err := v.ValidateContent([]byte("hello"))
	require.NoError(t, err)
	assert.Contains(t, ct, "text/plain")

	ext, err := v.ValidateExtension("notes.TXT")
	require.NoError(t, err)
	assert.Equal(t, ".txt", ext)

	_, err = v.ValidateExtension("scan.jpg")
	assert.Error(t, err)
}
