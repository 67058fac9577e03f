// internal/workers/communication/send-assessment-report/config.go
package sendassessmentreport

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled          bool
	FromEmail        string
	ReplyTo          string
	ConfigurationSet string
	Timeout          time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Enabled: false,
		Timeout: 30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Enabled && c.FromEmail == "" {
		return fmt.Errorf("from_email is required when email is enabled")
	}
	return nil
}
