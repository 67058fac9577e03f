// internal/workers/communication/notify-priority-assessment/handler.go
package notifypriorityassessment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"infraiq-workers/internal/common/aws"
	apperrors "infraiq-workers/internal/common/errors"
	"infraiq-workers/internal/common/logger"
	"infraiq-workers/internal/common/metrics"
	"infraiq-workers/internal/models"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "notify-priority-assessment"
)

type Handler struct {
	config       *Config
	sns          aws.SNSAPI
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, snsClient aws.SNSAPI, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Enabled && snsClient == nil {
		return nil, fmt.Errorf("sns client is required when priority notifications are enabled")
	}

	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		sns:          snsClient,
		errorHandler: apperrors.NewErrorHandler(l),
		logger:       l,
	}, nil
}

// DeterminePriority ranks an assessment for sales follow-up.
func DeterminePriority(level models.MaturityLevel, urgency models.UrgencyBracket) string {
	switch {
	case urgency == models.UrgencyImmediate || level == models.MaturityFragmented:
		return PriorityHigh
	case urgency == models.UrgencyShortTerm || level == models.MaturityEmerging:
		return PriorityMedium
	default:
		return PriorityLow
	}
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
		if output != nil && job.Retries <= 1 {
			h.completeJob(client, job, output)
			timer.Done(string(apperrors.AsStandardError(err).Code))
			return
		}
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ScoreResult == nil {
		return nil, apperrors.NewInvalidInputError("scoreResult is required", nil, nil)
	}

	var urgency models.UrgencyBracket
	company := ""
	if input.Response != nil {
		urgency = input.Response.DiagnosticContext.ImplementationUrgency
		company = input.Response.OrganizationContext.CompanyName
	}

	priority := DeterminePriority(input.ScoreResult.MaturityLevel, urgency)
	output := &Output{AssessmentID: input.AssessmentID, Priority: priority}

	h.logger.Info("assessment priority determined", map[string]interface{}{
		"assessmentId":  input.AssessmentID,
		"priority":      priority,
		"maturityLevel": input.ScoreResult.MaturityLevel,
		"urgency":       string(urgency),
	})

	switch {
	case !h.config.Enabled:
		output.Status = StatusDisabled
		return output, nil
	case priorityRank[priority] < priorityRank[h.config.Threshold]:
		output.Status = StatusSkipped
		return output, nil
	}

	message := fmt.Sprintf("%s assessment %s scored %d/100 (%s). Urgency: %s.",
		companyOrDefault(company), input.AssessmentID, input.ScoreResult.TotalScore,
		input.ScoreResult.MaturityLabel, urgencyOrDefault(urgency))

	result, err := h.sns.Publish(ctx, aws.TopicMessage(
		h.config.TopicARN,
		fmt.Sprintf("InfraIQ %s priority assessment", priority),
		message,
		map[string]string{
			"priority":      priority,
			"maturityLevel": string(input.ScoreResult.MaturityLevel),
			"totalScore":    strconv.Itoa(input.ScoreResult.TotalScore),
		},
	))
	if err != nil {
		h.logger.Error("priority publish failed", map[string]interface{}{
			"assessmentId": input.AssessmentID,
			"error":        err,
		})
		output.Status = StatusFailed
		return output, apperrors.NewNotificationSendFailedError("sns", err)
	}

	output.Status = StatusPublished
	if result != nil {
		output.MessageID = sdkaws.ToString(result.MessageId)
	}
	return output, nil
}

func companyOrDefault(name string) string {
	if name == "" {
		return "Unnamed organization"
	}
	return name
}

func urgencyOrDefault(u models.UrgencyBracket) string {
	if u == "" {
		return string(models.UrgencyUnknown)
	}
	return string(u)
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
