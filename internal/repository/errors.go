package repository

import "errors"

var (
	// ErrInvalidUpload indicates an upload without content or extension
	ErrInvalidUpload = errors.New("invalid upload")

	// ErrUploadNotFound indicates the upload was not found
	ErrUploadNotFound = errors.New("upload not found")

	// ErrRepositoryUnavailable indicates the backing store failed
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
