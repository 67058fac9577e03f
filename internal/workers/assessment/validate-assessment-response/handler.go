// internal/workers/assessment/validate-assessment-response/handler.go
package validateassessmentresponse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "infraiq-workers/internal/common/errors"
	"infraiq-workers/internal/common/logger"
	"infraiq-workers/internal/common/metrics"
	"infraiq-workers/internal/common/observability"
	"infraiq-workers/internal/common/validation"
	"infraiq-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "validate-assessment-response"
)

type Handler struct {
	config       *Config
	validator    *validation.SchemaValidator
	obs          *observability.Observability
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	validator, err := validation.NewAssessmentValidator()
	if err != nil {
		return nil, fmt.Errorf("compile assessment schema: %w", err)
	}
	if obs == nil {
		obs = observability.NewNoop()
	}

	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		validator:    validator,
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

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		bpmnErr := h.errorHandler.HandleJobError(context.Background(), client, job,
			apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err), nil, err))
		timer.Done(bpmnErr.Code)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.AssessmentsRejected.WithLabelValues("worker").Inc()
		bpmnErr := h.errorHandler.HandleJobError(context.Background(), client, job, err)
		timer.Done(bpmnErr.Code)
		return
	}

	h.completeJob(client, job, output)
	timer.Done("")
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// execute runs the schema check and then the typed parse. Either failing
// yields an INVALID_INPUT error carrying every field error found.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	_, span := h.obs.StartSpan(ctx, "assessment.validate")
	defer span.End()

	assessmentID := input.AssessmentID
	if assessmentID == "" {
		assessmentID = uuid.New().String()
	}
	span.SetAttributes(attribute.String("assessmentId", assessmentID))

	if input.Response == nil {
		fieldErrors := []models.FieldError{{
			Field:   "response",
			Code:    models.CodeMissingRequired,
			Message: "response is required",
		}}
		return nil, apperrors.NewInvalidInputError("response is required", fieldErrors, models.ErrInvalidInput)
	}

	if fieldErrors := h.checkContract(input); len(fieldErrors) > 0 {
		return nil, apperrors.NewInvalidInputError(
			fmt.Sprintf("%d job variable violations", len(fieldErrors)), fieldErrors, models.ErrInvalidInput)
	}

	if result := h.validator.Validate(input.Response); !result.Valid {
		fieldErrors := toFieldErrors(result.Errors)
		h.logger.Info("schema validation failed", map[string]interface{}{
			"assessmentId": assessmentID,
			"errorCount":   len(fieldErrors),
		})
		return nil, apperrors.NewInvalidInputError(
			fmt.Sprintf("%d schema violations", len(fieldErrors)), fieldErrors, models.ErrInvalidInput)
	}

	response, err := models.ParseAssessmentMap(input.Response)
	if err != nil {
		var invalid *models.InvalidInputError
		if errors.As(err, &invalid) {
			return nil, apperrors.NewInvalidInputError(invalid.Error(), invalid.Errors, err)
		}
		return nil, apperrors.NewInvalidInputError(err.Error(), nil, err)
	}

	h.logger.Info("assessment response valid", map[string]interface{}{
		"assessmentId": assessmentID,
		"industry":     string(response.OrganizationContext.Industry),
		"monthlySpend": string(response.OrganizationContext.MonthlySpend),
	})

	return &Output{
		AssessmentID:     assessmentID,
		IsValid:          true,
		ValidationErrors: []models.FieldError{},
		Response:         response,
	}, nil
}

func (h *Handler) checkContract(input *Input) []models.FieldError {
	if h.config.Contract == nil {
		return nil
	}
	problems, err := h.config.Contract.ValidateInput(input)
	if err != nil {
		h.logger.Warn("activity input schema not applied", map[string]interface{}{"error": err.Error()})
		return nil
	}
	fieldErrors := make([]models.FieldError, 0, len(problems))
	for _, p := range problems {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "(variables)", Code: models.CodeInvalidType, Message: p})
	}
	return fieldErrors
}

func toFieldErrors(errs []validation.ValidationError) []models.FieldError {
	out := make([]models.FieldError, len(errs))
	for i, e := range errs {
		out[i] = models.FieldError{Field: e.Field, Code: e.Code, Message: e.Message}
	}
	return out
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
