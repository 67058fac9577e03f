// internal/models/assessment.go
package models

// AssessmentResponse is a completed questionnaire. It is built once by
// ParseAssessmentResponse and treated as read-only afterwards.
type AssessmentResponse struct {
	OrganizationContext OrganizationContext `json:"organizationContext"`
	Cognitive           Cognitive           `json:"cognitive"`
	Operational         Operational         `json:"operational"`
	Strategic           Strategic           `json:"strategic"`
	LivingSystems       LivingSystems       `json:"livingSystems"`
	DiagnosticContext   DiagnosticContext   `json:"diagnosticContext"`
}

type OrganizationContext struct {
	CompanyName  string         `json:"companyName"`
	Email        string         `json:"email"`
	Revenue      RevenueBracket `json:"revenue"`
	CompanySize  CompanySize    `json:"companySize"`
	Industry     Industry       `json:"industry"`
	AITools      []string       `json:"aiTools"`
	MonthlySpend SpendBracket   `json:"monthlySpend"`
}

type Cognitive struct {
	DecisionMaking     int `json:"decisionMaking"`
	IntelligenceAccess int `json:"intelligenceAccess"`
	DecisionLatency    int `json:"decisionLatency"`
	InsightQuality     int `json:"insightQuality"`
	CognitiveLoad      int `json:"cognitiveLoad"`
}

type Operational struct {
	ProcessAutomation     int `json:"processAutomation"`
	ToolIntegration       int `json:"toolIntegration"`
	OperationalEfficiency int `json:"operationalEfficiency"`
	DailyUsage            int `json:"dailyUsage"`
	WasteReduction        int `json:"wasteReduction"`
	WorkflowCoherence     int `json:"workflowCoherence"`
}

type Strategic struct {
	StrategyAlignment        int `json:"strategyAlignment"`
	CompetitiveIntelligence  int `json:"competitiveIntelligence"`
	InnovationVelocity       int `json:"innovationVelocity"`
	ROIAchievement           int `json:"roiAchievement"`
	StrategicDifferentiation int `json:"strategicDifferentiation"`
}

type LivingSystems struct {
	InfrastructureLearning int `json:"infrastructureLearning"`
	SystemResilience       int `json:"systemResilience"`
	HumanAICollaboration   int `json:"humanAiCollaboration"`
	UnexpectedValue        int `json:"unexpectedValue"`
	AdaptationCapability   int `json:"adaptationCapability"`
}

type DiagnosticContext struct {
	PrimaryChallenges      []string       `json:"primaryChallenges"`
	OptimizationPriorities []string       `json:"optimizationPriorities"`
	ImplementationUrgency  UrgencyBracket `json:"implementationUrgency"`
}

// Pillar identifies one of the four dimension groups.
type Pillar string

const (
	PillarCognitive     Pillar = "cognitive"
	PillarOperational   Pillar = "operational"
	PillarStrategic     Pillar = "strategic"
	PillarLivingSystems Pillar = "livingSystems"
)

// Pillars lists the dimension groups in scoring order.
var Pillars = []Pillar{PillarCognitive, PillarOperational, PillarStrategic, PillarLivingSystems}

// PillarDimensions holds the JSON field names of each pillar, in the same
// order as the Values methods below.
var PillarDimensions = map[Pillar][]string{
	PillarCognitive: {
		"decisionMaking", "intelligenceAccess", "decisionLatency", "insightQuality", "cognitiveLoad",
	},
	PillarOperational: {
		"processAutomation", "toolIntegration", "operationalEfficiency",
		"dailyUsage", "wasteReduction", "workflowCoherence",
	},
	PillarStrategic: {
		"strategyAlignment", "competitiveIntelligence", "innovationVelocity",
		"roiAchievement", "strategicDifferentiation",
	},
	PillarLivingSystems: {
		"infrastructureLearning", "systemResilience", "humanAiCollaboration",
		"unexpectedValue", "adaptationCapability",
	},
}

func (c Cognitive) Values() []int {
	return []int{c.DecisionMaking, c.IntelligenceAccess, c.DecisionLatency, c.InsightQuality, c.CognitiveLoad}
}

func (o Operational) Values() []int {
	return []int{
		o.ProcessAutomation, o.ToolIntegration, o.OperationalEfficiency,
		o.DailyUsage, o.WasteReduction, o.WorkflowCoherence,
	}
}

func (s Strategic) Values() []int {
	return []int{
		s.StrategyAlignment, s.CompetitiveIntelligence, s.InnovationVelocity,
		s.ROIAchievement, s.StrategicDifferentiation,
	}
}

func (l LivingSystems) Values() []int {
	return []int{
		l.InfrastructureLearning, l.SystemResilience, l.HumanAICollaboration,
		l.UnexpectedValue, l.AdaptationCapability,
	}
}

// PillarValues returns the dimension values of one pillar.
func (r *AssessmentResponse) PillarValues(p Pillar) []int {
	switch p {
	case PillarCognitive:
		return r.Cognitive.Values()
	case PillarOperational:
		return r.Operational.Values()
	case PillarStrategic:
		return r.Strategic.Values()
	case PillarLivingSystems:
		return r.LivingSystems.Values()
	default:
		return nil
	}
}
