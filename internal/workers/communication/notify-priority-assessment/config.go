// internal/workers/communication/notify-priority-assessment/config.go
package notifypriorityassessment

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled  bool
	TopicARN string
	// Threshold is the lowest priority that is published.
	Threshold string
	Timeout   time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Threshold: PriorityHigh,
		Timeout:   15 * time.Second,
	}
}

func (c *Config) Validate() error {
	if _, ok := priorityRank[c.Threshold]; !ok {
		return fmt.Errorf("threshold must be one of high, medium, low, got %q", c.Threshold)
	}
	if c.Enabled && c.TopicARN == "" {
		return fmt.Errorf("topic_arn is required when priority notifications are enabled")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
