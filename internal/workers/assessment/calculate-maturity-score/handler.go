// internal/workers/assessment/calculate-maturity-score/handler.go
package calculatematurityscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "infraiq-workers/internal/common/errors"
	"infraiq-workers/internal/common/logger"
	"infraiq-workers/internal/common/metrics"
	"infraiq-workers/internal/common/observability"
	"infraiq-workers/internal/models"
	"infraiq-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "calculate-maturity-score"
)

type Handler struct {
	config       *Config
	obs          *observability.Observability
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	if err := config.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("scoring weights: %w", err)
	}
	if obs == nil {
		obs = observability.NewNoop()
	}

	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		obs:          obs,
		errorHandler: apperrors.NewErrorHandler(l),
		logger:       l,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	timer := metrics.StartJob(TaskType)

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := DecodeInput([]byte(job.Variables))
	if err != nil {
		bpmnErr := h.errorHandler.HandleJobError(context.Background(), client, job, err)
		timer.Done(bpmnErr.Code)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		bpmnErr := h.errorHandler.HandleJobError(context.Background(), client, job, err)
		timer.Done(bpmnErr.Code)
		return
	}

	h.completeJob(client, job, output)
	timer.Done("")
}

// DecodeInput reads job variables. A response with missing or malformed
// dimensions fails here as INVALID_INPUT with its field errors attached.
func DecodeInput(variables []byte) (*Input, error) {
	var input Input
	if err := json.Unmarshal(variables, &input); err != nil {
		var invalid *models.InvalidInputError
		if errors.As(err, &invalid) {
			return nil, apperrors.NewInvalidInputError(invalid.Error(), invalid.Errors, err)
		}
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err), nil, err)
	}
	return &input, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Response == nil {
		return nil, apperrors.NewInvalidInputError("response is required", []models.FieldError{{
			Field:   "response",
			Code:    models.CodeMissingRequired,
			Message: "response is required",
		}}, models.ErrInvalidInput)
	}
	if err := input.Response.Validate(); err != nil {
		var fieldErrors interface{}
		var inv *models.InvalidInputError
		if errors.As(err, &inv) {
			fieldErrors = inv.Errors
		}
		return nil, apperrors.NewInvalidInputError(err.Error(), fieldErrors, err)
	}

	ctx, span := h.obs.StartSpan(ctx, "assessment.score", attribute.String("assessmentId", input.AssessmentID))
	defer span.End()

	result, warnings := scoring.EvaluateWithWeights(input.Response, h.config.Weights)
	financials := scoring.Financials(result, input.Response.OrganizationContext.MonthlySpend)

	span.SetAttributes(
		attribute.Int("totalScore", result.TotalScore),
		attribute.String("maturityLevel", string(result.MaturityLevel)),
	)

	unknownSpend := false
	for _, w := range warnings {
		h.logger.Warn("scoring warning", map[string]interface{}{
			"assessmentId": input.AssessmentID,
			"field":        w.Field,
			"code":         w.Code,
			"message":      w.Message,
		})
		if w.Code == models.WarnUnknownSpendBracket {
			unknownSpend = true
		}
	}
	metrics.RecordAssessment("worker", string(result.MaturityLevel), result.TotalScore, unknownSpend)
	h.obs.RecordAssessmentScored(ctx, string(result.MaturityLevel))

	h.logger.Info("maturity score calculated", map[string]interface{}{
		"assessmentId":  input.AssessmentID,
		"totalScore":    result.TotalScore,
		"maturityLevel": result.MaturityLevel,
		"breakdown": map[string]int{
			"cognitive":     result.CognitiveScore,
			"operational":   result.OperationalScore,
			"strategic":     result.StrategicScore,
			"livingSystems": result.LivingSystemsScore,
		},
	})

	if warnings == nil {
		warnings = []models.Warning{}
	}

	return &Output{
		AssessmentID:  input.AssessmentID,
		TotalScore:    result.TotalScore,
		MaturityLevel: result.MaturityLevel,
		ScoreResult:   result,
		Financials:    financials,
		Warnings:      warnings,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}
