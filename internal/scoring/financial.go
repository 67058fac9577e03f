// internal/scoring/financial.go
package scoring

import "infraiq-workers/internal/models"

const (
	WasteCeiling      = 60.0
	WasteFloor        = 10.0
	wastePerPoint     = 0.5
	monthsPerYear     = 12
	OptimizationRatio = 0.4
	ROIMultiple       = 4
)

// WastePercentage is the share of annual AI spend considered wasted at a
// given total score, clamped to [WasteFloor, WasteCeiling].
func WastePercentage(total int) float64 {
	return clampFloat(WasteCeiling-float64(total)*wastePerPoint, WasteFloor, WasteCeiling)
}

// ProjectFinancials derives the currency figures from the total score and
// the monthly spend bracket. Unknown brackets use models.DefaultMonthlySpend.
func ProjectFinancials(total int, bracket models.SpendBracket) models.Financials {
	spend, _ := bracket.Midpoint()
	pct := WastePercentage(total)

	waste := roundHalfUp(float64(spend*monthsPerYear) * pct / 100)
	optimization := roundHalfUp(float64(waste) * OptimizationRatio)

	return models.Financials{
		MonthlySpend:              spend,
		WastePercentage:           pct,
		WasteEstimate:             waste,
		CostOptimizationPotential: optimization,
		ROIProjection:             optimization * ROIMultiple,
	}
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
