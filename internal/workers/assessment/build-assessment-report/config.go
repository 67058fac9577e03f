// internal/workers/assessment/build-assessment-report/config.go
package buildassessmentreport

import (
	"time"

	"infraiq-workers/internal/scoring"
)

type Config struct {
	// Weights are used only when the job carries no scoreResult.
	Weights scoring.Weights
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Weights: scoring.DefaultWeights,
		Timeout: 10 * time.Second,
	}
}
