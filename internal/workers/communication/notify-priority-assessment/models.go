// internal/workers/communication/notify-priority-assessment/models.go
package notifypriorityassessment

import "infraiq-workers/internal/models"

type Input struct {
	AssessmentID string                     `json:"assessmentId"`
	ScoreResult  *models.ScoreResult        `json:"scoreResult"`
	Response     *models.AssessmentResponse `json:"response,omitempty"`
}

type Output struct {
	AssessmentID string `json:"assessmentId"`
	Priority     string `json:"priority"`
	Status       string `json:"status"` // "published", "skipped", "disabled", "failed"
	MessageID    string `json:"messageId,omitempty"`
}

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var priorityRank = map[string]int{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
}

const (
	StatusPublished = "published"
	StatusSkipped   = "skipped"
	StatusDisabled  = "disabled"
	StatusFailed    = "failed"
)
