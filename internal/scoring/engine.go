// internal/scoring/engine.go
package scoring

import (
	"fmt"

	"infraiq-workers/internal/models"
)

// Breakdown holds the rounded mean of each pillar.
type Breakdown struct {
	Cognitive     int `json:"cognitive"`
	Operational   int `json:"operational"`
	Strategic     int `json:"strategic"`
	LivingSystems int `json:"livingSystems"`
}

// PillarMean is the arithmetic mean of values rounded half away from zero.
// An empty slice scores 0.
func PillarMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return roundHalfUp(float64(sum) / float64(len(values)))
}

func PillarScores(r *models.AssessmentResponse) Breakdown {
	return Breakdown{
		Cognitive:     PillarMean(r.Cognitive.Values()),
		Operational:   PillarMean(r.Operational.Values()),
		Strategic:     PillarMean(r.Strategic.Values()),
		LivingSystems: PillarMean(r.LivingSystems.Values()),
	}
}

// Score runs the full pipeline with DefaultWeights. r must have passed
// models.ParseAssessmentResponse (or Validate).
func Score(r *models.AssessmentResponse) models.ScoreResult {
	result, _ := Evaluate(r)
	return result
}

// Evaluate is Score plus the recoverable diagnostics raised on the way.
func Evaluate(r *models.AssessmentResponse) (models.ScoreResult, []models.Warning) {
	return EvaluateWithWeights(r, DefaultWeights)
}

func EvaluateWithWeights(r *models.AssessmentResponse, w Weights) (models.ScoreResult, []models.Warning) {
	breakdown := PillarScores(r)
	total := WeightedTotal(breakdown, w)
	maturity := Classify(total)

	bracket := r.OrganizationContext.MonthlySpend
	financials := ProjectFinancials(total, bracket)

	var warnings []models.Warning
	if !bracket.Known() {
		warnings = append(warnings, models.Warning{
			Field:   "organizationContext.monthlySpend",
			Code:    models.WarnUnknownSpendBracket,
			Message: fmt.Sprintf("unrecognised monthly spend bracket, assuming %d", financials.MonthlySpend),
		})
	}

	return models.ScoreResult{
		TotalScore:                total,
		MaturityLevel:             maturity.Level,
		MaturityLabel:             maturity.Label,
		MaturityEmoji:             maturity.Emoji,
		CognitiveScore:            breakdown.Cognitive,
		OperationalScore:          breakdown.Operational,
		StrategicScore:            breakdown.Strategic,
		LivingSystemsScore:        breakdown.LivingSystems,
		WasteEstimate:             financials.WasteEstimate,
		CostOptimizationPotential: financials.CostOptimizationPotential,
		ROIProjection:             financials.ROIProjection,
	}, warnings
}

// Financials recomputes the intermediate values behind a result.
func Financials(result models.ScoreResult, bracket models.SpendBracket) models.Financials {
	return ProjectFinancials(result.TotalScore, bracket)
}
