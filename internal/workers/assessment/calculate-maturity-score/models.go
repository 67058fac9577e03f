// internal/workers/assessment/calculate-maturity-score/models.go
package calculatematurityscore

import "infraiq-workers/internal/models"

type Input struct {
	AssessmentID string                     `json:"assessmentId"`
	Response     *models.AssessmentResponse `json:"response"`
}

// Output duplicates totalScore and maturityLevel at the top level so
// gateways can branch on them without a FEEL path.
type Output struct {
	AssessmentID  string               `json:"assessmentId"`
	TotalScore    int                  `json:"totalScore"`
	MaturityLevel models.MaturityLevel `json:"maturityLevel"`
	ScoreResult   models.ScoreResult   `json:"scoreResult"`
	Financials    models.Financials    `json:"financials"`
	Warnings      []models.Warning     `json:"warnings"`
}
