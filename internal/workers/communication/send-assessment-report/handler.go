// internal/workers/communication/send-assessment-report/handler.go
package sendassessmentreport

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"infraiq-workers/internal/common/aws"
	apperrors "infraiq-workers/internal/common/errors"
	"infraiq-workers/internal/common/logger"
	"infraiq-workers/internal/common/metrics"
	"infraiq-workers/internal/common/validation"
	"infraiq-workers/internal/report"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-assessment-report"
)

type Handler struct {
	config       *Config
	ses          aws.SESAPI
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

// NewHandler accepts a nil SES client when email is disabled.
func NewHandler(config *Config, sesClient aws.SESAPI, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Enabled && sesClient == nil {
		return nil, fmt.Errorf("ses client is required when email is enabled")
	}

	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		ses:          sesClient,
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
		// Out of retries: record the failure on the process instead of
		// raising an incident.
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

// Execute sends the report email. A delivery failure returns both a
// "failed" output and a retryable error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{
		AssessmentID:   input.AssessmentID,
		NotificationID: uuid.New().String(),
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	if input.Report == nil {
		return nil, apperrors.NewInvalidInputError("report is required", nil, nil)
	}

	if !h.config.Enabled {
		output.Status = StatusDisabled
		output.Reason = "email notifications disabled"
		return output, nil
	}

	recipient := input.RecipientEmail
	if recipient == "" && input.Response != nil {
		recipient = input.Response.OrganizationContext.Email
	}
	if !validation.ValidateEmail(recipient) {
		h.logger.Warn("no deliverable recipient", map[string]interface{}{
			"assessmentId": input.AssessmentID,
		})
		output.Status = StatusDisabled
		output.Reason = "no valid recipient email"
		return output, nil
	}

	email := aws.PlainTextEmail(
		h.config.FromEmail,
		recipient,
		h.config.ReplyTo,
		h.config.ConfigurationSet,
		report.Subject(*input.Report),
		report.PlainText(*input.Report),
	)

	result, err := h.ses.SendEmail(ctx, email)
	if err != nil {
		h.logger.Error("email send failed", map[string]interface{}{
			"assessmentId": input.AssessmentID,
			"error":        err,
		})
		output.Status = StatusFailed
		output.Reason = err.Error()
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return output, apperrors.NewNotificationTimeoutError(channelEmail)
		}
		return output, apperrors.NewNotificationSendFailedError(channelEmail, err)
	}

	output.Status = StatusSent
	if result != nil {
		output.MessageID = sdkaws.ToString(result.MessageId)
	}

	h.logger.Info("assessment report sent", map[string]interface{}{
		"assessmentId": input.AssessmentID,
		"messageId":    output.MessageID,
	})
	return output, nil
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
