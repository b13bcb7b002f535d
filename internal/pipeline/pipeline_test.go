package pipeline

import (
	"time"

	"github.com/vaanilabs/docvani/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:           "0",
		APIKey:         "test-key",
		SummaryRatio:   0.3,
		MaxBullets:     20,
		WorkerCount:    2,
		MaxQueueSize:   10,
		MaxUploadBytes: 1 << 20,
		JobTTL:         time.Hour,
	}
}
