// internal/workers/assessment/build-assessment-report/models.go
package buildassessmentreport

import (
	"infraiq-workers/internal/models"
	"infraiq-workers/internal/report"
)

type Input struct {
	AssessmentID string                     `json:"assessmentId"`
	Response     *models.AssessmentResponse `json:"response"`
	ScoreResult  *models.ScoreResult        `json:"scoreResult,omitempty"`
}

type Output struct {
	AssessmentID        string        `json:"assessmentId"`
	Report              report.Report `json:"report"`
	RecommendationCount int           `json:"recommendationCount"`
	HighPriorityCount   int           `json:"highPriorityCount"`
}
