// internal/models/parse.go
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	DimensionMin = 0
	DimensionMax = 100
)

var ErrInvalidInput = errors.New("INVALID_INPUT")

// Field error codes reported by ParseAssessmentMap.
const (
	CodeMissingRequired = "MISSING_REQUIRED"
	CodeInvalidType     = "INVALID_TYPE"
	CodeNotFinite       = "NOT_FINITE"
	CodeNotInteger      = "NOT_INTEGER"
	CodeOutOfRange      = "OUT_OF_RANGE"
)

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InvalidInputError lists every numeric dimension that failed validation.
// It matches ErrInvalidInput under errors.Is.
type InvalidInputError struct {
	Errors []FieldError `json:"errors"`
}

func (e *InvalidInputError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("%s: %d invalid field(s): %s", ErrInvalidInput, len(e.Errors), strings.Join(parts, "; "))
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// ParseAssessmentResponse decodes a JSON document and validates it.
func ParseAssessmentResponse(data []byte) (*AssessmentResponse, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &InvalidInputError{Errors: []FieldError{{
			Field:   "$",
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("not a JSON object: %v", err),
		}}}
	}
	return ParseAssessmentMap(raw)
}

// UnmarshalJSON decodes through ParseAssessmentResponse so a response read
// from workflow variables gets the same checks as one posted to the API.
func (r *AssessmentResponse) UnmarshalJSON(data []byte) error {
	parsed, err := ParseAssessmentResponse(data)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// ParseAssessmentMap builds an AssessmentResponse from a decoded document
// (JSON, YAML or workflow variables). Numeric dimensions are strict; bracket
// strings are lenient and fall back to their Unknown variant.
func ParseAssessmentMap(raw map[string]interface{}) (*AssessmentResponse, error) {
	if raw == nil {
		raw = map[string]interface{}{}
	}

	var fieldErrs []FieldError
	pillarValues := make(map[Pillar][]int, len(Pillars))

	for _, p := range Pillars {
		section, ok := raw[string(p)]
		var sectionMap map[string]interface{}
		if ok && section != nil {
			sectionMap, ok = section.(map[string]interface{})
			if !ok {
				fieldErrs = append(fieldErrs, FieldError{
					Field:   string(p),
					Code:    CodeInvalidType,
					Message: fmt.Sprintf("expected object, got %T", section),
				})
				continue
			}
		}

		names := PillarDimensions[p]
		values := make([]int, len(names))
		for i, name := range names {
			path := string(p) + "." + name
			v, fe := parseDimension(path, sectionMap[name], sectionMap != nil && hasKey(sectionMap, name))
			if fe != nil {
				fieldErrs = append(fieldErrs, *fe)
				continue
			}
			values[i] = v
		}
		pillarValues[p] = values
	}

	if len(fieldErrs) > 0 {
		return nil, &InvalidInputError{Errors: fieldErrs}
	}

	org := objectField(raw, "organizationContext")
	diag := objectField(raw, "diagnosticContext")

	c := pillarValues[PillarCognitive]
	o := pillarValues[PillarOperational]
	s := pillarValues[PillarStrategic]
	l := pillarValues[PillarLivingSystems]

	return &AssessmentResponse{
		OrganizationContext: OrganizationContext{
			CompanyName:  stringField(org, "companyName"),
			Email:        stringField(org, "email"),
			Revenue:      ParseRevenueBracket(bracketField(org, "revenue")),
			CompanySize:  ParseCompanySize(bracketField(org, "companySize")),
			Industry:     ParseIndustry(bracketField(org, "industry")),
			AITools:      stringSlice(org, "aiTools"),
			MonthlySpend: ParseSpendBracket(bracketField(org, "monthlySpend")),
		},
		Cognitive: Cognitive{
			DecisionMaking:     c[0],
			IntelligenceAccess: c[1],
			DecisionLatency:    c[2],
			InsightQuality:     c[3],
			CognitiveLoad:      c[4],
		},
		Operational: Operational{
			ProcessAutomation:     o[0],
			ToolIntegration:       o[1],
			OperationalEfficiency: o[2],
			DailyUsage:            o[3],
			WasteReduction:        o[4],
			WorkflowCoherence:     o[5],
		},
		Strategic: Strategic{
			StrategyAlignment:        s[0],
			CompetitiveIntelligence:  s[1],
			InnovationVelocity:       s[2],
			ROIAchievement:           s[3],
			StrategicDifferentiation: s[4],
		},
		LivingSystems: LivingSystems{
			InfrastructureLearning: l[0],
			SystemResilience:       l[1],
			HumanAICollaboration:   l[2],
			UnexpectedValue:        l[3],
			AdaptationCapability:   l[4],
		},
		DiagnosticContext: DiagnosticContext{
			PrimaryChallenges:      stringSlice(diag, "primaryChallenges"),
			OptimizationPriorities: stringSlice(diag, "optimizationPriorities"),
			ImplementationUrgency:  ParseUrgencyBracket(bracketField(diag, "implementationUrgency")),
		},
	}, nil
}

// Validate re-checks the numeric invariants of an already constructed
// response, for callers that decode straight into the struct.
func (r *AssessmentResponse) Validate() error {
	var fieldErrs []FieldError
	for _, p := range Pillars {
		names := PillarDimensions[p]
		for i, v := range r.PillarValues(p) {
			if v < DimensionMin || v > DimensionMax {
				fieldErrs = append(fieldErrs, outOfRange(string(p)+"."+names[i], float64(v)))
			}
		}
	}
	if len(fieldErrs) > 0 {
		return &InvalidInputError{Errors: fieldErrs}
	}
	return nil
}

func parseDimension(path string, raw interface{}, present bool) (int, *FieldError) {
	if !present || raw == nil {
		return 0, &FieldError{Field: path, Code: CodeMissingRequired, Message: "required dimension missing"}
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, &FieldError{Field: path, Code: CodeInvalidType, Message: fmt.Sprintf("not a number: %q", v.String())}
		}
		f = parsed
	default:
		return 0, &FieldError{Field: path, Code: CodeInvalidType, Message: fmt.Sprintf("expected number, got %T", raw)}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &FieldError{Field: path, Code: CodeNotFinite, Message: "value must be finite"}
	}
	if f != math.Trunc(f) {
		return 0, &FieldError{Field: path, Code: CodeNotInteger, Message: fmt.Sprintf("value must be an integer, got %v", f)}
	}
	if f < DimensionMin || f > DimensionMax {
		fe := outOfRange(path, f)
		return 0, &fe
	}
	return int(f), nil
}

func outOfRange(path string, v float64) FieldError {
	return FieldError{
		Field:   path,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("value %v outside [%d,%d]", v, DimensionMin, DimensionMax),
	}
}

func hasKey(m map[string]interface{}, key string) bool {
	_, ok := m[key]
	return ok
}

func objectField(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func stringField(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// bracketField returns the raw string; bracket values must match exactly.
func bracketField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringSlice(m map[string]interface{}, key string) []string {
	out := []string{}
	switch v := m[key].(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, v...)
	}
	return out
}
