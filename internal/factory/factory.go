package factory

import (
	"fmt"
	"time"

	"go-ocr-lens/internal/config"
	"go-ocr-lens/internal/ocr"
	"go-ocr-lens/internal/storage"
	"go-ocr-lens/internal/translate"
)

// StorageType represents different types of upload storage backends
type StorageType string

const (
	// LocalStorage for a local directory
	LocalStorage StorageType = config.StorageLocal
	// AzureStorage for an Azure blob container
	AzureStorage StorageType = config.StorageAzure
)

// TranslatorType represents the supported translation providers
type TranslatorType string

const (
	GoogleTranslator TranslatorType = config.TranslatorGoogle
	LibreTranslator  TranslatorType = config.TranslatorLibre
)

// StorageFactory creates storage implementations
type StorageFactory interface {
	CreateStorage(storageType StorageType) (storage.BlobStorage, error)
}

// TranslatorFactory creates translation clients
type TranslatorFactory interface {
	CreateTranslator(translatorType TranslatorType) (translate.Translator, error)
}

// storageFactory implements StorageFactory
type storageFactory struct {
	cfg *config.Config
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config) StorageFactory {
	return &storageFactory{cfg: cfg}
}

// CreateStorage creates a storage implementation based on the specified type
func (f *storageFactory) CreateStorage(storageType StorageType) (storage.BlobStorage, error) {
	switch storageType {
	case LocalStorage:
		return storage.NewLocalStorage(f.cfg.UploadDir)
	case AzureStorage:
		return storage.NewAzureStorage(f.cfg.AzureAccountName, f.cfg.AzureAccountKey, f.cfg.AzureContainer)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// translatorFactory implements TranslatorFactory
type translatorFactory struct {
	cfg *config.Config
}

// NewTranslatorFactory creates a new translator factory
func NewTranslatorFactory(cfg *config.Config) TranslatorFactory {
	return &translatorFactory{cfg: cfg}
}

// CreateTranslator creates the translation client once; it is shared by all requests.
func (f *translatorFactory) CreateTranslator(translatorType TranslatorType) (translate.Translator, error) {
	client := translate.NewHTTPClient(perAttemptTimeout(f.cfg.TranslateTimeout))

	switch translatorType {
	case GoogleTranslator:
		return translate.NewGoogleTranslator(f.cfg.TranslatorURL, client), nil
	case LibreTranslator:
		if f.cfg.TranslatorURL == "" {
			return nil, fmt.Errorf("libre translator requires a URL")
		}
		return translate.NewLibreTranslator(f.cfg.TranslatorURL, f.cfg.TranslatorAPIKey, client), nil
	default:
		return nil, fmt.Errorf("unsupported translator type: %s", translatorType)
	}
}

// perAttemptTimeout leaves room for retries inside the overall translate timeout.
func perAttemptTimeout(total time.Duration) time.Duration {
	if total <= 0 {
		return 10 * time.Second
	}
	return total / 2
}

// NewPreprocessor returns the image preparation step configured for OCR.
func NewPreprocessor(enabled bool) ocr.Preprocessor {
	if enabled {
		return ocr.NewGrayscalePreprocessor()
	}
	return ocr.Passthrough
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	StorageFactory    StorageFactory
	TranslatorFactory TranslatorFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(cfg *config.Config) *ComponentFactory {
	return &ComponentFactory{
		StorageFactory:    NewStorageFactory(cfg),
		TranslatorFactory: NewTranslatorFactory(cfg),
	}
}
