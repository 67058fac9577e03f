// internal/workers/assessment/validate-assessment-response/models.go
package validateassessmentresponse

import "infraiq-workers/internal/models"

type Input struct {
	AssessmentID string                 `json:"assessmentId,omitempty"`
	Response     map[string]interface{} `json:"response"`
}

type Output struct {
	AssessmentID     string                     `json:"assessmentId"`
	IsValid          bool                       `json:"isValid"`
	ValidationErrors []models.FieldError        `json:"validationErrors"`
	Response         *models.AssessmentResponse `json:"response,omitempty"`
}
