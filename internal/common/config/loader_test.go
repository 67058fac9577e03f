// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"infraiq-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_REDIS_ADDR", "redis.internal:6379")

	path := writeConfig(t, `
camunda:
  broker_address: zeebe:26500
database:
  redis:
    address: ${TEST_REDIS_ADDR}
rate_limit:
  enabled: true
  requests: 5
scoring:
  weights:
    cognitive: 0.25
    operational: 0.25
    strategic: 0.25
    living_systems: 0.25
workers:
  calculate-maturity-score:
    enabled: false
    timeout: 2000
logging:
  level: debug
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "redis.internal:6379", cfg.Database.Redis.Address)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 60000, cfg.RateLimit.Window)
	assert.Equal(t, scoring.Weights{Cognitive: 0.25, Operational: 0.25, Strategic: 0.25, LivingSystems: 0.25}, cfg.Scoring.Weights)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 8080, cfg.Server.Port)

	wc := GetWorkerConfig(cfg, "calculate-maturity-score")
	assert.False(t, wc.Enabled)
	assert.Equal(t, 2000, wc.Timeout)
	assert.Equal(t, 5, wc.MaxJobsActive)
	assert.False(t, IsWorkerEnabled(cfg, "calculate-maturity-score"))
	assert.True(t, IsWorkerEnabled(cfg, "send-assessment-report"))
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "camunda:\n  broker_address: localhost:26500\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, scoring.DefaultWeights, cfg.Scoring.Weights)
	assert.Equal(t, "infraiq-workers", cfg.App.Name)
	assert.Equal(t, "infraiq-workers", cfg.Observability.ServiceName)
	assert.Equal(t, "ratelimit:assessments", cfg.RateLimit.KeyPrefix)
	assert.Equal(t, "high", cfg.Notifications.Priority.Threshold)
	assert.Equal(t, 1<<20, cfg.Server.MaxBodyBytes)
}

func TestLoadFromFile_UnsetPlaceholderFallsBackToEnvOverride(t *testing.T) {
	t.Setenv("ZEEBE_ADDRESS", "gateway:26500")

	path := writeConfig(t, "camunda:\n  broker_address: ${TEST_UNSET_BROKER_ADDRESS}\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gateway:26500", cfg.Camunda.BrokerAddress)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing broker", "server:\n  port: 8080\n"},
		{"rate limit without redis", "camunda:\n  broker_address: z:1\nrate_limit:\n  enabled: true\n"},
		{"weights do not sum to one", "camunda:\n  broker_address: z:1\nscoring:\n  weights:\n    cognitive: 0.5\n    operational: 0.5\n    strategic: 0.5\n"},
		{"sns without topic", "camunda:\n  broker_address: z:1\nintegrations:\n  aws:\n    sns:\n      enabled: true\n"},
		{"port out of range", "camunda:\n  broker_address: z:1\nserver:\n  port: 70000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ZEEBE_ADDRESS", "")
			t.Setenv("REDIS_ADDRESS", "")
			t.Setenv("PRIORITY_TOPIC_ARN", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, scoring.DefaultWeights, cfg.Scoring.Weights)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}

func TestSenderAddress(t *testing.T) {
	cfg := &Config{}
	cfg.Notifications.Email.FromEmail = "fallback@example.com"
	assert.Equal(t, "fallback@example.com", cfg.SenderAddress())

	cfg.Integrations.AWS.SES.FromEmail = "ses@example.com"
	assert.Equal(t, "ses@example.com", cfg.SenderAddress())
}
