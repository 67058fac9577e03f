// cmd/worker-manager/main_test.go
package main

import (
	"path/filepath"
	"testing"

	"infraiq-workers/internal/common/camunda"
	"infraiq-workers/internal/common/config"
	"infraiq-workers/internal/common/logger"
	"infraiq-workers/internal/scoring"
	bar "infraiq-workers/internal/workers/assessment/build-assessment-report"
	cms "infraiq-workers/internal/workers/assessment/calculate-maturity-score"
	vas "infraiq-workers/internal/workers/assessment/validate-assessment-response"
	npa "infraiq-workers/internal/workers/communication/notify-priority-assessment"
	sar "infraiq-workers/internal/workers/communication/send-assessment-report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allDisabled() map[string]config.WorkerConfig {
	out := map[string]config.WorkerConfig{}
	for _, t := range []string{vas.TaskType, cms.TaskType, bar.TaskType, sar.TaskType, npa.TaskType} {
		out[t] = config.WorkerConfig{Enabled: false, Timeout: 1000}
	}
	return out
}

func TestRegisterWorkers_AllDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = allDisabled()
	workers := camunda.NewRegistry(nil, logger.NewTestLogger(t))

	require.NoError(t, registerWorkers(cfg, workers, nil, nil, nil, nil, logger.NewTestLogger(t)))
	assert.Empty(t, workers.TaskTypes())
}

func TestRegisterWorkers_BadWeights(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = allDisabled()
	cfg.Workers[cms.TaskType] = config.WorkerConfig{Enabled: true, Timeout: 1000}
	cfg.Scoring.Weights = scoring.Weights{Cognitive: 2}

	err := registerWorkers(cfg, camunda.NewRegistry(nil, logger.NewTestLogger(t)), nil, nil, nil, nil, logger.NewTestLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), cms.TaskType)
}

func TestRegisterWorkers_PriorityThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = allDisabled()
	cfg.Workers[npa.TaskType] = config.WorkerConfig{Enabled: true, Timeout: 1000}
	cfg.Notifications.Priority.Threshold = "urgent"

	err := registerWorkers(cfg, camunda.NewRegistry(nil, logger.NewTestLogger(t)), nil, nil, nil, nil, logger.NewTestLogger(t))
	assert.ErrorContains(t, err, npa.TaskType)
}

func TestLoadActivityRegistry(t *testing.T) {
	catalog := loadActivityRegistry(filepath.Join("..", "..", activityRegistryPath), logger.NewTestLogger(t))
	require.NotNil(t, catalog)
	_, ok := catalog.Find(vas.TaskType)
	assert.True(t, ok)

	assert.Nil(t, loadActivityRegistry(filepath.Join(t.TempDir(), "none.json"), logger.NewTestLogger(t)))
}

func TestCheckActivityRegistry(t *testing.T) {
	catalog := loadActivityRegistry(filepath.Join("..", "..", activityRegistryPath), logger.NewTestLogger(t))

	assert.NotPanics(t, func() {
		checkActivityRegistry(catalog, []string{cms.TaskType, "unknown-task"}, logger.NewTestLogger(t))
		checkActivityRegistry(nil, []string{cms.TaskType}, logger.NewTestLogger(t))
	})
}
