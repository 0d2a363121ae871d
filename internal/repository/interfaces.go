package repository

import (
	"context"
	"time"
)

// UploadRepository persists accepted uploads under generated identifiers
type UploadRepository interface {
	// Save stores the image and fills in its ID, Key and StoredAt
	Save(ctx context.Context, img *UploadedImage) error

	// Load returns the stored bytes for an upload key
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes a stored upload
	Delete(ctx context.Context, key string) error
}

// UploadedImage is an accepted image. OriginalName is kept for display only
// and never used to build a storage path.
type UploadedImage struct {
	ID           string    `json:"id"`
	Key          string    `json:"key"`
	OriginalName string    `json:"original_name"`
	Extension    string    `json:"extension"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	StoredAt     time.Time `json:"stored_at"`
	Data         []byte    `json:"-"`
}
