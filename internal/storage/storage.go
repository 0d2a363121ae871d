package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("object not found")

// BlobStorage stores opaque uploaded objects by key.
type BlobStorage interface {
	Save(ctx context.Context, key string, data io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Name() string
}

// ValidateKey rejects keys that could escape the storage root. Keys are
// generated by the repository, so anything other than a single clean path
// element is a programming error.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." {
		return fmt.Errorf("invalid storage key %q", key)
	}
	if strings.ContainsAny(key, `/\`) || path.Clean(key) != key {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}
