package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-ocr-lens/internal/storage"
)

// BlobUploadRepository implements UploadRepository on top of a BlobStorage
type BlobUploadRepository struct {
	store storage.BlobStorage
	newID func() string
	now   func() time.Time
}

// NewUploadRepository creates a repository that names every upload with a fresh UUID
func NewUploadRepository(store storage.BlobStorage) UploadRepository {
	return &BlobUploadRepository{
		store: store,
		newID: func() string { return uuid.NewString() },
		now:   time.Now,
	}
}

func (r *BlobUploadRepository) Save(ctx context.Context, img *UploadedImage) error {
	if img == nil || len(img.Data) == 0 || img.Extension == "" {
		return ErrInvalidUpload
	}

	ext := strings.ToLower(img.Extension)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	id := r.newID()
	key := id + ext
	if err := r.store.Save(ctx, key, bytes.NewReader(img.Data), img.ContentType); err != nil {
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}

	img.ID = id
	img.Key = key
	img.Extension = ext
	img.Size = int64(len(img.Data))
	img.StoredAt = r.now()
	return nil
}

func (r *BlobUploadRepository) Load(ctx context.Context, key string) ([]byte, error) {
	rc, err := r.store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (r *BlobUploadRepository) Delete(ctx context.Context, key string) error {
	if err := r.store.Delete(ctx, key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUploadNotFound
		}
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	return nil
}
