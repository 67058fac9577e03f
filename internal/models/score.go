// internal/models/score.go
package models

type MaturityLevel string

const (
	MaturityFragmented MaturityLevel = "fragmented"
	MaturityEmerging   MaturityLevel = "emerging"
	MaturityDeveloping MaturityLevel = "developing"
	MaturityMaturing   MaturityLevel = "maturing"
	MaturityLiving     MaturityLevel = "living"
)

// MaturityLevels is ordered from least to most mature.
var MaturityLevels = []MaturityLevel{
	MaturityFragmented, MaturityEmerging, MaturityDeveloping, MaturityMaturing, MaturityLiving,
}

type ScoreResult struct {
	TotalScore                int           `json:"totalScore"`
	MaturityLevel             MaturityLevel `json:"maturityLevel"`
	MaturityLabel             string        `json:"maturityLabel"`
	MaturityEmoji             string        `json:"maturityEmoji"`
	CognitiveScore            int           `json:"cognitiveScore"`
	OperationalScore          int           `json:"operationalScore"`
	StrategicScore            int           `json:"strategicScore"`
	LivingSystemsScore        int           `json:"livingSystemsScore"`
	WasteEstimate             int           `json:"wasteEstimate"`
	CostOptimizationPotential int           `json:"costOptimizationPotential"`
	ROIProjection             int           `json:"roiProjection"`
}

// PillarScore returns the rounded mean stored for a pillar.
func (s ScoreResult) PillarScore(p Pillar) int {
	switch p {
	case PillarCognitive:
		return s.CognitiveScore
	case PillarOperational:
		return s.OperationalScore
	case PillarStrategic:
		return s.StrategicScore
	case PillarLivingSystems:
		return s.LivingSystemsScore
	default:
		return 0
	}
}

// Financials exposes the intermediate values behind the three currency
// figures of a ScoreResult.
type Financials struct {
	MonthlySpend              int     `json:"monthlySpend"`
	WastePercentage           float64 `json:"wastePercentage"`
	WasteEstimate             int     `json:"wasteEstimate"`
	CostOptimizationPotential int     `json:"costOptimizationPotential"`
	ROIProjection             int     `json:"roiProjection"`
}

// Warning is a recoverable diagnostic raised while scoring.
type Warning struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const WarnUnknownSpendBracket = "UNKNOWN_SPEND_BRACKET"
