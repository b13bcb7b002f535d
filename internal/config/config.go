// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8090"`

	// Auth
	APIKey string `envconfig:"DOCVANI_API_KEY"`

	// Intent lexicon override. Empty uses the embedded defaults.
	LexiconPath string `envconfig:"LEXICON_PATH"`

	// Analysis defaults, overridable per request.
	SummaryRatio float64 `envconfig:"SUMMARY_RATIO" default:"0.3"`
	MaxBullets   int     `envconfig:"MAX_BULLETS" default:"20"`

	// Worker pool
	WorkerCount  int `envconfig:"WORKER_COUNT" default:"4"`
	MaxQueueSize int `envconfig:"MAX_QUEUE_SIZE" default:"100"`

	// Upload limits
	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"52428800"` // 50MB

	// Job state
	JobTTL time.Duration `envconfig:"JOB_TTL" default:"1h"`

	// PDF
	PDFFallbackPdftotext bool `envconfig:"PDF_FALLBACK_PDFTOTEXT" default:"true"`
}

// Load reads configuration from a .env file (when present) and the
// process environment.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env file is fine

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCVANI_API_KEY is required")
	}
	if c.SummaryRatio <= 0 || c.SummaryRatio > 1 {
		return fmt.Errorf("SUMMARY_RATIO must be in (0,1], got %v", c.SummaryRatio)
	}
	if c.MaxBullets < 0 {
		return fmt.Errorf("MAX_BULLETS must not be negative, got %d", c.MaxBullets)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount)
	}
	if c.MaxQueueSize <= 0 {
		return fmt.Errorf("MAX_QUEUE_SIZE must be positive, got %d", c.MaxQueueSize)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.JobTTL <= 0 {
		return fmt.Errorf("JOB_TTL must be positive, got %v", c.JobTTL)
	}
	return nil
}
