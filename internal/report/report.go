// internal/report/report.go
package report

import (
	"infraiq-workers/internal/models"
	"infraiq-workers/internal/scoring"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

const (
	GapThreshold           = 60
	ReinforcementThreshold = 70
)

type Recommendation struct {
	Pillar      models.Pillar `json:"pillar"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    Priority      `json:"priority"`
	Impact      string        `json:"impact"`
	Timeline    string        `json:"timeline"`
}

type Phase struct {
	Phase string   `json:"phase"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type Benchmark struct {
	Pillar    models.Pillar `json:"pillar"`
	Name      string        `json:"name"`
	Score     int           `json:"score"`
	Benchmark int           `json:"benchmark"`
	Gap       int           `json:"gap"`
}

type Report struct {
	CompanyName            string                `json:"companyName"`
	Industry               models.Industry       `json:"industry"`
	Score                  models.ScoreResult    `json:"score"`
	Financials             models.Financials     `json:"financials"`
	Description            string                `json:"description"`
	Recommendations        []Recommendation      `json:"recommendations"`
	Roadmap                []Phase               `json:"roadmap"`
	Benchmarks             []Benchmark           `json:"benchmarks"`
	PrimaryChallenges      []string              `json:"primaryChallenges"`
	OptimizationPriorities []string              `json:"optimizationPriorities"`
	Urgency                models.UrgencyBracket `json:"implementationUrgency"`
}

var descriptions = map[models.MaturityLevel]string{
	models.MaturityFragmented: "Disconnected tools with no coherence. High waste and operational inefficiency. Critical intervention required.",
	models.MaturityEmerging:   "Some connections forming between systems. Early integration and basic automation. Foundation building phase.",
	models.MaturityDeveloping: "Integration patterns emerging with clear progress. Workflow optimization showing measurable results. Systematic improvement phase.",
	models.MaturityMaturing:   "Strong symbiosis across three pillars. Living characteristics beginning to appear. Advanced optimization and innovation phase.",
	models.MaturityLiving:     "Full symbiosis active across organization. Self-evolving and adaptive systems. Competitive advantage through infrastructure excellence.",
}

// Description returns the narrative for a maturity level, or "" if unknown.
func Description(level models.MaturityLevel) string {
	return descriptions[level]
}

var gaps = []Recommendation{
	{
		Pillar:      models.PillarCognitive,
		Title:       "Enhance Decision Intelligence",
		Description: "Implement AI-powered dashboards for real-time insights and reduce decision latency.",
		Priority:    PriorityHigh,
		Impact:      "$50K+ annual savings",
		Timeline:    "Week 1-4",
	},
	{
		Pillar:      models.PillarOperational,
		Title:       "Optimize Workflow Integration",
		Description: "Consolidate tools and create seamless data flows between AI systems.",
		Priority:    PriorityHigh,
		Impact:      "20+ hrs/week saved",
		Timeline:    "Week 2-6",
	},
	{
		Pillar:      models.PillarStrategic,
		Title:       "Align AI Strategy",
		Description: "Develop clear AI strategy roadmap aligned with business objectives and ROI targets.",
		Priority:    PriorityMedium,
		Impact:      "15% ROI improvement",
		Timeline:    "Week 5-8",
	},
	{
		Pillar:      models.PillarLivingSystems,
		Title:       "Build Adaptive Capabilities",
		Description: "Implement learning systems and feedback loops for continuous infrastructure improvement.",
		Priority:    PriorityMedium,
		Impact:      "Future-proof infrastructure",
		Timeline:    "Week 7-12",
	},
}

var reinforcements = []Recommendation{
	{
		Pillar:      models.PillarCognitive,
		Title:       "Expand Decision Intelligence",
		Description: "Leverage your strong cognitive foundation to implement predictive analytics.",
		Priority:    PriorityLow,
		Impact:      "Competitive advantage",
		Timeline:    "Month 4-6",
	},
	{
		Pillar:      models.PillarOperational,
		Title:       "Advanced Automation",
		Description: "Build on operational excellence with intelligent process automation and orchestration.",
		Priority:    PriorityLow,
		Impact:      "Scale efficiency",
		Timeline:    "Month 4-6",
	},
}

// Recommendations lists gap items for pillars below GapThreshold followed by
// reinforcement items for pillars at or above ReinforcementThreshold.
func Recommendations(result models.ScoreResult) []Recommendation {
	out := []Recommendation{}
	for _, r := range gaps {
		if result.PillarScore(r.Pillar) < GapThreshold {
			out = append(out, r)
		}
	}
	for _, r := range reinforcements {
		if result.PillarScore(r.Pillar) >= ReinforcementThreshold {
			out = append(out, r)
		}
	}
	return out
}

// Roadmap is the fixed 90-day plan. Each call returns a fresh copy.
func Roadmap() []Phase {
	return []Phase{
		{
			Phase: "Days 1-30",
			Title: "Foundation & Quick Wins",
			Items: []string{
				"Audit current AI tool inventory and usage",
				"Identify immediate consolidation opportunities",
				"Implement quick-win integrations",
				"Establish baseline metrics and KPIs",
			},
		},
		{
			Phase: "Days 31-60",
			Title: "Integration & Optimization",
			Items: []string{
				"Deploy core integration architecture",
				"Optimize workflows across key systems",
				"Train teams on best practices",
				"Measure early ROI indicators",
			},
		},
		{
			Phase: "Days 61-90",
			Title: "Scaling & Innovation",
			Items: []string{
				"Activate advanced AI capabilities",
				"Scale successful patterns organization-wide",
				"Establish continuous improvement cycles",
				"Prepare for next phase transformation",
			},
		},
	}
}

var industryBenchmarks = []struct {
	pillar models.Pillar
	name   string
	value  int
}{
	{models.PillarCognitive, "Cognitive", 65},
	{models.PillarOperational, "Operational", 62},
	{models.PillarStrategic, "Strategic", 58},
	{models.PillarLivingSystems, "Living Systems", 55},
}

func Benchmarks(result models.ScoreResult) []Benchmark {
	out := make([]Benchmark, 0, len(industryBenchmarks))
	for _, b := range industryBenchmarks {
		score := result.PillarScore(b.pillar)
		out = append(out, Benchmark{
			Pillar:    b.pillar,
			Name:      b.name,
			Score:     score,
			Benchmark: b.value,
			Gap:       score - b.value,
		})
	}
	return out
}

// Build assembles the full report for a scored response.
func Build(response *models.AssessmentResponse, result models.ScoreResult) Report {
	return Report{
		CompanyName:            response.OrganizationContext.CompanyName,
		Industry:               response.OrganizationContext.Industry,
		Score:                  result,
		Financials:             scoring.Financials(result, response.OrganizationContext.MonthlySpend),
		Description:            Description(result.MaturityLevel),
		Recommendations:        Recommendations(result),
		Roadmap:                Roadmap(),
		Benchmarks:             Benchmarks(result),
		PrimaryChallenges:      nonNil(response.DiagnosticContext.PrimaryChallenges),
		OptimizationPriorities: nonNil(response.DiagnosticContext.OptimizationPriorities),
		Urgency:                response.DiagnosticContext.ImplementationUrgency,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
