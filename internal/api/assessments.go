// internal/api/assessments.go
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "infraiq-workers/internal/common/errors"
	"infraiq-workers/internal/common/metrics"
	"infraiq-workers/internal/models"
	"infraiq-workers/internal/report"
	"infraiq-workers/internal/scoring"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type ScoreResponse struct {
	AssessmentID string             `json:"assessmentId"`
	ScoreResult  models.ScoreResult `json:"scoreResult"`
	Financials   models.Financials  `json:"financials"`
	Warnings     []models.Warning   `json:"warnings"`
}

type ReportResponse struct {
	ScoreResponse
	Report report.Report `json:"report"`
}

// Score handles POST /api/v1/assessments/score.
func (s *Server) Score(w http.ResponseWriter, r *http.Request) {
	resp, _, ok := s.score(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Report handles POST /api/v1/assessments/report.
func (s *Server) Report(w http.ResponseWriter, r *http.Request) {
	resp, response, ok := s.score(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ReportResponse{
		ScoreResponse: resp,
		Report:        report.Build(response, resp.ScoreResult),
	})
}

func (s *Server) score(w http.ResponseWriter, r *http.Request) (ScoreResponse, *models.AssessmentResponse, bool) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return ScoreResponse{}, nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				apperrors.NewInvalidInputError(fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit), nil, err))
			return ScoreResponse{}, nil, false
		}
		writeError(w, http.StatusBadRequest, apperrors.NewInvalidInputError("unreadable body", nil, err))
		return ScoreResponse{}, nil, false
	}

	response, err := models.ParseAssessmentResponse(body)
	if err != nil {
		metrics.AssessmentsRejected.WithLabelValues("api").Inc()
		var inv *models.InvalidInputError
		if errors.As(err, &inv) {
			writeError(w, http.StatusBadRequest, apperrors.NewInvalidInputError(inv.Error(), inv.Errors, err))
		} else {
			writeError(w, http.StatusBadRequest, apperrors.NewInvalidInputError(err.Error(), nil, err))
		}
		return ScoreResponse{}, nil, false
	}

	ctx, span := s.opts.Obs.StartSpan(r.Context(), "assessment.score")
	defer span.End()

	result, warnings := scoring.EvaluateWithWeights(response, s.opts.Weights)
	financials := scoring.Financials(result, response.OrganizationContext.MonthlySpend)

	span.SetAttributes(
		attribute.Int("totalScore", result.TotalScore),
		attribute.String("maturityLevel", string(result.MaturityLevel)),
	)

	unknownSpend := false
	for _, wn := range warnings {
		if wn.Code == models.WarnUnknownSpendBracket {
			unknownSpend = true
		}
	}
	metrics.RecordAssessment("api", string(result.MaturityLevel), result.TotalScore, unknownSpend)
	s.opts.Obs.RecordAssessmentScored(ctx, string(result.MaturityLevel))

	if warnings == nil {
		warnings = []models.Warning{}
	}

	return ScoreResponse{
		AssessmentID: uuid.New().String(),
		ScoreResult:  result,
		Financials:   financials,
		Warnings:     warnings,
	}, response, true
}
