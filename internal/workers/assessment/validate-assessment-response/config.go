// internal/workers/assessment/validate-assessment-response/config.go
package validateassessmentresponse

import (
	"time"

	"infraiq-workers/pkg/registry"
)

type Config struct {
	Timeout time.Duration
	// Contract, when set, is checked against the raw job variables before
	// the assessment schema runs.
	Contract *registry.Activity
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
