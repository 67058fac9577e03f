// internal/workers/communication/send-assessment-report/handler_test.go
package sendassessmentreport

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "infraiq-workers/internal/common/errors"
	"infraiq-workers/internal/common/logger"
	"infraiq-workers/internal/models"
	"infraiq-workers/internal/report"
	"infraiq-workers/internal/scoring"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         int
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	return m.SendEmailFunc(ctx, params, optFns...)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Enabled:   true,
		FromEmail: "reports@infraiq.test",
		ReplyTo:   "team@infraiq.test",
		Timeout:   5 * time.Second,
	}
}

func createTestInput(email string) *Input {
	response := &models.AssessmentResponse{
		OrganizationContext: models.OrganizationContext{
			CompanyName:  "Acme",
			Email:        email,
			MonthlySpend: models.Spend1KTo5K,
		},
		Cognitive:     models.Cognitive{DecisionMaking: 40, IntelligenceAccess: 40, DecisionLatency: 40, InsightQuality: 40, CognitiveLoad: 40},
		Operational:   models.Operational{ProcessAutomation: 40, ToolIntegration: 40, OperationalEfficiency: 40, DailyUsage: 40, WasteReduction: 40, WorkflowCoherence: 40},
		Strategic:     models.Strategic{StrategyAlignment: 40, CompetitiveIntelligence: 40, InnovationVelocity: 40, ROIAchievement: 40, StrategicDifferentiation: 40},
		LivingSystems: models.LivingSystems{InfrastructureLearning: 40, SystemResilience: 40, HumanAICollaboration: 40, UnexpectedValue: 40, AdaptationCapability: 40},
	}
	rep := report.Build(response, scoring.Score(response))
	return &Input{AssessmentID: "a-1", Response: response, Report: &rep}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Sent(t *testing.T) {
	var captured *ses.SendEmailInput
	mock := &MockSESService{
		SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			captured = params
			return &ses.SendEmailOutput{MessageId: aws.String("ses-123")}, nil
		},
	}
	h, err := NewHandler(createTestConfig(), mock, &testLogger{t: t})
	require.NoError(t, err)

	output, err := h.Execute(context.Background(), createTestInput("cto@acme.test"))

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, "ses-123", output.MessageID)
	assert.Equal(t, "a-1", output.AssessmentID)
	assert.NotEmpty(t, output.NotificationID)

	require.NotNil(t, captured)
	assert.Equal(t, []string{"cto@acme.test"}, captured.Destination.ToAddresses)
	assert.Equal(t, "reports@infraiq.test", aws.ToString(captured.Source))
	assert.Equal(t, []string{"team@infraiq.test"}, captured.ReplyToAddresses)
	assert.True(t, strings.HasPrefix(aws.ToString(captured.Message.Subject.Data), "InfraIQ assessment for Acme"))
	assert.Contains(t, aws.ToString(captured.Message.Body.Text.Data), "90-day roadmap")
}

func TestHandler_Execute_RecipientOverride(t *testing.T) {
	var to []string
	mock := &MockSESService{
		SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			to = params.Destination.ToAddresses
			return &ses.SendEmailOutput{MessageId: aws.String("ses-456")}, nil
		},
	}
	h, err := NewHandler(createTestConfig(), mock, &testLogger{t: t})
	require.NoError(t, err)

	input := createTestInput("cto@acme.test")
	input.RecipientEmail = "ceo@acme.test"
	_, err = h.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, []string{"ceo@acme.test"}, to)
}

func TestHandler_Execute_Disabled(t *testing.T) {
	cfg := createTestConfig()
	cfg.Enabled = false
	h, err := NewHandler(cfg, nil, &testLogger{t: t})
	require.NoError(t, err)

	output, err := h.Execute(context.Background(), createTestInput("cto@acme.test"))

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
}

func TestHandler_Execute_NoRecipient(t *testing.T) {
	mock := &MockSESService{}
	h, err := NewHandler(createTestConfig(), mock, &testLogger{t: t})
	require.NoError(t, err)

	output, err := h.Execute(context.Background(), createTestInput("not-an-email"))

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.Equal(t, 0, mock.calls)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_SESFailure(t *testing.T) {
	mock := &MockSESService{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	h, err := NewHandler(createTestConfig(), mock, &testLogger{t: t})
	require.NoError(t, err)

	output, err := h.Execute(context.Background(), createTestInput("cto@acme.test"))

	require.Error(t, err)
	require.NotNil(t, output)
	assert.Equal(t, StatusFailed, output.Status)

	stdErr := apperrors.AsStandardError(err)
	assert.Equal(t, apperrors.ErrCodeNotificationSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Equal(t, 3, apperrors.ConvertToBPMNError(stdErr).Retries)
}

func TestHandler_Execute_Timeout(t *testing.T) {
	mock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, _ *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	h, err := NewHandler(createTestConfig(), mock, &testLogger{t: t})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	output, err := h.Execute(ctx, createTestInput("cto@acme.test"))

	require.Error(t, err)
	assert.Equal(t, StatusFailed, output.Status)
	assert.Equal(t, apperrors.ErrCodeNotificationTimeout, apperrors.AsStandardError(err).Code)
}

func TestHandler_Execute_MissingReport(t *testing.T) {
	h, err := NewHandler(createTestConfig(), &MockSESService{}, &testLogger{t: t})
	require.NoError(t, err)

	_, err = h.Execute(context.Background(), &Input{AssessmentID: "a-2"})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.AsStandardError(err).Code)
}

func TestNewHandler_Validation(t *testing.T) {
	cfg := createTestConfig()
	_, err := NewHandler(cfg, nil, &testLogger{t: t})
	assert.Error(t, err, "enabled without SES client")

	cfg.FromEmail = ""
	_, err = NewHandler(cfg, &MockSESService{}, &testLogger{t: t})
	assert.Error(t, err, "enabled without sender")

	cfg = createTestConfig()
	cfg.Timeout = 0
	_, err = NewHandler(cfg, &MockSESService{}, &testLogger{t: t})
	assert.Error(t, err)
}
