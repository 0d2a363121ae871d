package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageLocal = "local"
	StorageAzure = "azure"

	TranslatorGoogle = "google"
	TranslatorLibre  = "libre"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	OCRTimeout         time.Duration
	TranslateTimeout   time.Duration
	MaxRequestBodySize int64
	LogLevel           string

	UploadDir      string
	StaticDir      string
	ChartRetention time.Duration
	ChartWorkers   int

	StorageBackend   string
	AzureAccountName string
	AzureAccountKey  string
	AzureContainer   string

	OCRLanguages   []string
	OCRPreprocess  bool
	OCRPageSegMode string

	TranslatorProvider string
	TranslatorURL      string
	TranslatorAPIKey   string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// ChartDir is where request-scoped chart directories are created.
func (c *Config) ChartDir() string {
	return strings.TrimRight(c.StaticDir, "/") + "/charts"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "5000")
	v.SetDefault("REQUEST_TIMEOUT", 60*time.Second)
	v.SetDefault("OCR_TIMEOUT", 30*time.Second)
	v.SetDefault("TRANSLATE_TIMEOUT", 15*time.Second)
	v.SetDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024) // 10MB
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("STATIC_DIR", "static")
	v.SetDefault("CHART_RETENTION", time.Hour)
	v.SetDefault("CHART_WORKERS", 4)
	v.SetDefault("STORAGE_BACKEND", StorageLocal)
	v.SetDefault("AZURE_CONTAINER", "uploads")
	v.SetDefault("OCR_LANGUAGES", "eng")
	v.SetDefault("OCR_PREPROCESS", true)
	v.SetDefault("TRANSLATOR_PROVIDER", TranslatorGoogle)
	v.SetDefault("TRANSLATOR_URL", "")
}

// LoadFromEnv reads .env (if any), an optional config.yaml and the process
// environment, in increasing order of precedence.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	return Load(v)
}

// Load builds and validates a Config from an already populated viper instance.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Host:               v.GetString("HOST"),
		Port:               v.GetString("PORT"),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
		OCRTimeout:         v.GetDuration("OCR_TIMEOUT"),
		TranslateTimeout:   v.GetDuration("TRANSLATE_TIMEOUT"),
		MaxRequestBodySize: v.GetInt64("MAX_REQUEST_BODY_SIZE"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		UploadDir:          v.GetString("UPLOAD_DIR"),
		StaticDir:          v.GetString("STATIC_DIR"),
		ChartRetention:     v.GetDuration("CHART_RETENTION"),
		ChartWorkers:       v.GetInt("CHART_WORKERS"),
		StorageBackend:     strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
		AzureAccountName:   v.GetString("AZURE_ACCOUNT_NAME"),
		AzureAccountKey:    v.GetString("AZURE_ACCOUNT_KEY"),
		AzureContainer:     v.GetString("AZURE_CONTAINER"),
		OCRLanguages:       splitList(v.GetString("OCR_LANGUAGES")),
		OCRPreprocess:      v.GetBool("OCR_PREPROCESS"),
		OCRPageSegMode:     strings.TrimSpace(v.GetString("OCR_PAGE_SEG_MODE")),
		TranslatorProvider: strings.ToLower(strings.TrimSpace(v.GetString("TRANSLATOR_PROVIDER"))),
		TranslatorURL:      v.GetString("TRANSLATOR_URL"),
		TranslatorAPIKey:   v.GetString("TRANSLATOR_API_KEY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.RequestTimeout <= 0 || c.OCRTimeout <= 0 || c.TranslateTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, ocr=%s, translate=%s)",
			c.RequestTimeout, c.OCRTimeout, c.TranslateTimeout)
	}
	if c.ChartRetention <= 0 {
		return fmt.Errorf("CHART_RETENTION must be > 0 (got %s)", c.ChartRetention)
	}
	if c.ChartWorkers <= 0 {
		return fmt.Errorf("CHART_WORKERS must be > 0 (got %d)", c.ChartWorkers)
	}
	if strings.TrimSpace(c.StaticDir) == "" {
		return fmt.Errorf("STATIC_DIR must not be empty")
	}

	switch c.StorageBackend {
	case StorageLocal:
		if strings.TrimSpace(c.UploadDir) == "" {
			return fmt.Errorf("UPLOAD_DIR must not be empty for local storage")
		}
	case StorageAzure:
		if c.AzureAccountName == "" || c.AzureAccountKey == "" || c.AzureContainer == "" {
			return fmt.Errorf("azure storage requires AZURE_ACCOUNT_NAME, AZURE_ACCOUNT_KEY and AZURE_CONTAINER")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND: %q", c.StorageBackend)
	}

	switch c.TranslatorProvider {
	case TranslatorGoogle:
	case TranslatorLibre:
		if strings.TrimSpace(c.TranslatorURL) == "" {
			return fmt.Errorf("TRANSLATOR_URL is required for the libre provider")
		}
	default:
		return fmt.Errorf("unsupported TRANSLATOR_PROVIDER: %q", c.TranslatorProvider)
	}

	if len(c.OCRLanguages) == 0 {
		return fmt.Errorf("OCR_LANGUAGES must name at least one language")
	}
	if c.OCRPageSegMode != "" {
		psm, err := strconv.Atoi(c.OCRPageSegMode)
		if err != nil || psm < 0 || psm > 13 {
			return fmt.Errorf("OCR_PAGE_SEG_MODE must be 0-13 (got %q)", c.OCRPageSegMode)
		}
	}
	return nil
}

// OCRVariables are the tesseract variables applied to every recognition.
func (c *Config) OCRVariables() map[string]string {
	if c.OCRPageSegMode == "" {
		return nil
	}
	return map[string]string{"tessedit_pageseg_mode": c.OCRPageSegMode}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == '+' || r == ' ' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
