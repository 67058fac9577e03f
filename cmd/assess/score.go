// cmd/assess/score.go
package main

import (
	"errors"
	"fmt"

	"infraiq-workers/internal/models"
	"infraiq-workers/internal/report"
	buildreport "infraiq-workers/internal/workers/assessment/build-assessment-report"
	calculatescore "infraiq-workers/internal/workers/assessment/calculate-maturity-score"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// errInvalid marks a document that failed validation; the output has
// already been written.
var errInvalid = errors.New("assessment response is invalid")

type reportOutput struct {
	AssessmentID string             `json:"assessmentId"`
	ScoreResult  models.ScoreResult `json:"scoreResult"`
	Financials   models.Financials  `json:"financials"`
	Warnings     []models.Warning   `json:"warnings"`
	Report       report.Report      `json:"report"`
}

type invalidOutput struct {
	Valid       bool                `json:"valid"`
	FieldErrors []models.FieldError `json:"fieldErrors"`
}

func newScoreCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Compute pillar scores, maturity level and financial impact",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := runScore(cmd, opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out, opts.pretty)
		},
	}
}

func newReportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Score the response and build the full report",
		RunE: func(cmd *cobra.Command, args []string) error {
			scored, err := runScore(cmd, opts)
			if err != nil {
				return err
			}

			builder := buildreport.NewHandler(&buildreport.Config{Timeout: buildreport.LoadConfig().Timeout}, nil, opts.logger())
			built, err := builder.Execute(cmd.Context(), &buildreport.Input{
				AssessmentID: scored.AssessmentID,
				Response:     scored.response,
				ScoreResult:  &scored.ScoreResult,
			})
			if err != nil {
				return fmt.Errorf("build report: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), reportOutput{
				AssessmentID: scored.AssessmentID,
				ScoreResult:  scored.ScoreResult,
				Financials:   scored.Financials,
				Warnings:     scored.Warnings,
				Report:       built.Report,
			}, opts.pretty)
		},
	}
}

type scoreOutput struct {
	calculatescore.Output
	response *models.AssessmentResponse
}

func runScore(cmd *cobra.Command, opts *options) (*scoreOutput, error) {
	weights, err := opts.resolveWeights()
	if err != nil {
		return nil, err
	}
	doc, err := readDocument(opts.file, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	response, err := models.ParseAssessmentMap(doc)
	if err != nil {
		var inv *models.InvalidInputError
		if errors.As(err, &inv) {
			_ = writeOutput(cmd.OutOrStdout(), invalidOutput{FieldErrors: inv.Errors}, opts.pretty)
			return nil, errInvalid
		}
		return nil, err
	}

	calc, err := calculatescore.NewHandler(&calculatescore.Config{
		Weights: weights,
		Timeout: calculatescore.LoadConfig().Timeout,
	}, nil, opts.logger())
	if err != nil {
		return nil, err
	}

	out, err := calc.Execute(cmd.Context(), &calculatescore.Input{
		AssessmentID: uuid.New().String(),
		Response:     response,
	})
	if err != nil {
		return nil, err
	}
	return &scoreOutput{Output: *out, response: response}, nil
}
