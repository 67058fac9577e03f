// internal/common/validation/schema.go
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"infraiq-workers/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// SchemaValidator checks decoded documents against a compiled JSON schema.
type SchemaValidator struct {
	schema *gojsonschema.Schema
}

func NewSchemaValidator(schemaJSON string) (*SchemaValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

// NewAssessmentValidator compiles AssessmentSchema.
func NewAssessmentValidator() (*SchemaValidator, error) {
	return NewSchemaValidator(AssessmentSchema())
}

// Validate checks doc, which may be any JSON-serialisable Go value.
func (v *SchemaValidator) Validate(doc interface{}) *ValidationResult {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: fmt.Sprintf("document could not be read: %v", err),
				Code:    "UNREADABLE_DOCUMENT",
			}},
		}
	}
	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		field := re.Field()
		if re.Type() == "required" {
			if prop, ok := re.Details()["property"].(string); ok {
				if field == "(root)" {
					field = prop
				} else {
					field = field + "." + prop
				}
			}
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: re.Description(),
			Code:    errorCode(re.Type()),
		})
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })

	return &ValidationResult{Valid: false, Errors: errs}
}

func errorCode(schemaType string) string {
	switch schemaType {
	case "required":
		return models.CodeMissingRequired
	case "invalid_type":
		return models.CodeInvalidType
	case "number_gte", "number_lte", "number_gt", "number_lt":
		return models.CodeOutOfRange
	default:
		return strings.ToUpper(schemaType)
	}
}

type schemaNode map[string]interface{}

// AssessmentSchema is the JSON schema of an assessment response. Numeric
// dimensions are required integers in [0,100]; bracket strings are free text
// and resolved leniently by the models package.
func AssessmentSchema() string {
	dimension := schemaNode{"type": "integer", "minimum": models.DimensionMin, "maximum": models.DimensionMax}
	stringList := schemaNode{"type": "array", "items": schemaNode{"type": "string"}}

	properties := schemaNode{
		"organizationContext": schemaNode{
			"type": "object",
			"properties": schemaNode{
				"companyName":  schemaNode{"type": "string"},
				"email":        schemaNode{"type": "string"},
				"revenue":      schemaNode{"type": "string"},
				"companySize":  schemaNode{"type": "string"},
				"industry":     schemaNode{"type": "string"},
				"aiTools":      stringList,
				"monthlySpend": schemaNode{"type": "string"},
			},
		},
		"diagnosticContext": schemaNode{
			"type": "object",
			"properties": schemaNode{
				"primaryChallenges":      stringList,
				"optimizationPriorities": stringList,
				"implementationUrgency":  schemaNode{"type": "string"},
			},
		},
	}

	required := make([]string, 0, len(models.Pillars))
	for _, p := range models.Pillars {
		dims := schemaNode{}
		for _, name := range models.PillarDimensions[p] {
			dims[name] = dimension
		}
		properties[string(p)] = schemaNode{
			"type":       "object",
			"properties": dims,
			"required":   models.PillarDimensions[p],
		}
		required = append(required, string(p))
	}

	schema := schemaNode{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"title":      "AssessmentResponse",
		"type":       "object",
		"properties": properties,
		"required":   required,
	}

	out, _ := json.Marshal(schema)
	return string(out)
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") || strings.HasPrefix(err.Field, field+"[") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}
