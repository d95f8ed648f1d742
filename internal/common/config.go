package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	OCR      OCRConfig
	Extract  ExtractConfig
	Enrich   EnrichConfig
	Paths    PathsConfig
}

// DatabaseConfig holds database-related configuration. Driver selects the
// backing store: "postgres" (DSN) or "sqlite" (Path), or "none" to skip
// persistence and only write snapshots.
type DatabaseConfig struct {
	Driver           string
	DSN              string
	Path             string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// OCRConfig holds rasterizer and recognition engine configuration
type OCRConfig struct {
	Pdftoppm    string
	Tesseract   string
	TessdataDir string
	Language    string
	DPI         int
	PSM         int
	OEM         int
}

// ExtractConfig holds page-selection and extraction policy knobs
type ExtractConfig struct {
	MinTextChars int
	FieldWindow  int
	SampleFirst  int
	SampleLast   int
	SampleStep   int
	Workers      int
}

// EnrichConfig holds production-figures lookup configuration
type EnrichConfig struct {
	BaseURL      string
	RequestDelay time.Duration
	Timeout      time.Duration
}

// PathsConfig holds input/output directories
type PathsConfig struct {
	PDFDir      string
	SnapshotDir string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:           getEnv("DB_DRIVER", "sqlite"),
			DSN:              getEnv("DB_URL", ""),
			Path:             getEnv("DB_PATH", "wells.sqlite"),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		OCR: OCRConfig{
			Pdftoppm:    getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			Language:    getEnv("TESSERACT_LANG", "eng"),
			DPI:         getEnvAsInt("OCR_DPI", 300),
			PSM:         getEnvAsInt("OCR_PSM", 6),
			OEM:         getEnvAsInt("OCR_OEM", 1),
		},
		Extract: ExtractConfig{
			MinTextChars: getEnvAsInt("EXTRACT_MIN_TEXT_CHARS", 60),
			FieldWindow:  getEnvAsInt("EXTRACT_FIELD_WINDOW", 3),
			SampleFirst:  getEnvAsInt("EXTRACT_SAMPLE_FIRST", 25),
			SampleLast:   getEnvAsInt("EXTRACT_SAMPLE_LAST", 25),
			SampleStep:   getEnvAsInt("EXTRACT_SAMPLE_STEP", 15),
			Workers:      getEnvAsInt("EXTRACT_WORKERS", 4),
		},
		Enrich: EnrichConfig{
			BaseURL:      getEnv("DRILLINGEDGE_BASE_URL", "https://www.drillingedge.com"),
			RequestDelay: getEnvAsDuration("ENRICH_REQUEST_DELAY", time.Second),
			Timeout:      getEnvAsDuration("ENRICH_TIMEOUT", 60*time.Second),
		},
		Paths: PathsConfig{
			PDFDir:      getEnv("PDF_DIR", "data"),
			SnapshotDir: getEnv("SNAPSHOT_DIR", "extracted_data"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.DSN == "" {
			return NewAppError("CONFIG_ERROR", "DB_URL is required when DB_DRIVER=postgres", ErrInvalidInput)
		}
	case "sqlite":
		if c.Database.Path == "" {
			return NewAppError("CONFIG_ERROR", "DB_PATH is required when DB_DRIVER=sqlite", ErrInvalidInput)
		}
	case "none":
	default:
		return NewAppError("CONFIG_ERROR", "DB_DRIVER must be postgres, sqlite, or none", ErrInvalidInput)
	}
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	if c.Extract.SampleStep <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_SAMPLE_STEP must be positive", ErrInvalidInput)
	}
	return nil
}
