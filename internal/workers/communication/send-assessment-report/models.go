// internal/workers/communication/send-assessment-report/models.go
package sendassessmentreport

import (
	"infraiq-workers/internal/models"
	"infraiq-workers/internal/report"
)

type Input struct {
	AssessmentID   string                     `json:"assessmentId"`
	RecipientEmail string                     `json:"recipientEmail,omitempty"`
	Response       *models.AssessmentResponse `json:"response,omitempty"`
	Report         *report.Report             `json:"report"`
}

type Output struct {
	AssessmentID   string `json:"assessmentId"`
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	MessageID      string `json:"messageId,omitempty"`
	Reason         string `json:"reason,omitempty"`
	SentAt         string `json:"sentAt"` // ISO 8601
}

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

const channelEmail = "email"
