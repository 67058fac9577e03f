// internal/workers/assessment/calculate-maturity-score/config.go
package calculatematurityscore

import (
	"time"

	"infraiq-workers/internal/scoring"
)

type Config struct {
	Weights scoring.Weights
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Weights: scoring.DefaultWeights,
		Timeout: 10 * time.Second,
	}
}
