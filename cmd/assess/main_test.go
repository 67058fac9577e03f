// cmd/assess/main_test.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"infraiq-workers/internal/common/validation"
	"infraiq-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Helpers
// ==========================

func documentWith(values map[models.Pillar]int, spend string) map[string]interface{} {
	doc := map[string]interface{}{
		"organizationContext": map[string]interface{}{
			"companyName":  "Acme",
			"monthlySpend": spend,
		},
	}
	for _, p := range models.Pillars {
		section := map[string]interface{}{}
		for _, name := range models.PillarDimensions[p] {
			section[name] = values[p]
		}
		doc[string(p)] = section
	}
	return doc
}

func uniform(v int) map[models.Pillar]int {
	out := map[models.Pillar]int{}
	for _, p := range models.Pillars {
		out[p] = v
	}
	return out
}

func writeJSONFile(t *testing.T, doc interface{}) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "assessment.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeYAMLFile(t *testing.T, values map[models.Pillar]int, spend string) string {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "organizationContext:\n  companyName: Acme\n  monthlySpend: %q\n  aiTools:\n    - ChatGPT\n", spend)
	for _, p := range models.Pillars {
		fmt.Fprintf(&b, "%s:\n", p)
		for _, name := range models.PillarDimensions[p] {
			fmt.Fprintf(&b, "  %s: %d\n", name, values[p])
		}
	}
	path := filepath.Join(t.TempDir(), "assessment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

type scoreJSON struct {
	AssessmentID  string               `json:"assessmentId"`
	TotalScore    int                  `json:"totalScore"`
	MaturityLevel models.MaturityLevel `json:"maturityLevel"`
	ScoreResult   models.ScoreResult   `json:"scoreResult"`
	Financials    models.Financials    `json:"financials"`
	Warnings      []models.Warning     `json:"warnings"`
}

// ==========================
// score
// ==========================

func TestScore_JSONFile(t *testing.T) {
	path := writeJSONFile(t, documentWith(uniform(50), "$1,000-$5,000"))

	out, err := run(t, "", "score", "--file", path)
	require.NoError(t, err)

	var got scoreJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.AssessmentID)
	assert.Equal(t, 50, got.TotalScore)
	assert.Equal(t, models.MaturityDeveloping, got.MaturityLevel)
	assert.Equal(t, 12600, got.ScoreResult.WasteEstimate)
	assert.Equal(t, 3000, got.Financials.MonthlySpend)
	assert.Empty(t, got.Warnings)
}

func TestScore_YAMLFile(t *testing.T) {
	values := map[models.Pillar]int{
		models.PillarCognitive:     25,
		models.PillarOperational:   25,
		models.PillarStrategic:     25,
		models.PillarLivingSystems: 30,
	}
	path := writeYAMLFile(t, values, "$1,000-$5,000")

	out, err := run(t, "", "score", "-f", path)
	require.NoError(t, err)

	var got scoreJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 26, got.TotalScore)
	assert.Equal(t, models.MaturityEmerging, got.MaturityLevel)
}

func TestScore_Stdin(t *testing.T) {
	data, err := json.Marshal(documentWith(uniform(100), "$25,000+"))
	require.NoError(t, err)

	out, err := run(t, string(data), "score", "--file", "-", "--pretty=false")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(out), "\n")+1)

	var got scoreJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 100, got.TotalScore)
	assert.Equal(t, models.MaturityLiving, got.MaturityLevel)
}

func TestScore_CustomWeights(t *testing.T) {
	values := map[models.Pillar]int{models.PillarCognitive: 80}
	path := writeJSONFile(t, documentWith(values, "$1,000-$5,000"))

	out, err := run(t, "", "score", "--file", path, "--weights", "1,0,0,0")
	require.NoError(t, err)

	var got scoreJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 80, got.TotalScore)
}

func TestScore_BadWeights(t *testing.T) {
	path := writeJSONFile(t, documentWith(uniform(50), "$1,000-$5,000"))

	_, err := run(t, "", "score", "--file", path, "--weights", "0.5,0.5,0.5,0.5")
	assert.ErrorContains(t, err, "sum to 1")

	_, err = run(t, "", "score", "--file", path, "--weights", "1,0")
	assert.ErrorContains(t, err, "4 comma-separated")

	_, err = run(t, "", "score", "--file", path, "--weights", "a,b,c,d")
	assert.Error(t, err)
}

func TestScore_InvalidDocument(t *testing.T) {
	doc := documentWith(uniform(50), "$1,000-$5,000")
	doc["cognitive"].(map[string]interface{})["decisionMaking"] = 150
	path := writeJSONFile(t, doc)

	out, err := run(t, "", "score", "--file", path)
	require.ErrorIs(t, err, errInvalid)

	var got invalidOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Valid)
	require.Len(t, got.FieldErrors, 1)
	assert.Equal(t, "cognitive.decisionMaking", got.FieldErrors[0].Field)
	assert.Equal(t, models.CodeOutOfRange, got.FieldErrors[0].Code)
}

func TestScore_MissingFile(t *testing.T) {
	_, err := run(t, "", "score", "--file", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)

	_, err = run(t, "", "score")
	assert.ErrorContains(t, err, "file")
}

// ==========================
// report
// ==========================

func TestReport(t *testing.T) {
	path := writeJSONFile(t, documentWith(uniform(50), "whatever"))

	out, err := run(t, "", "report", "--file", path)
	require.NoError(t, err)

	var got reportOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 50, got.ScoreResult.TotalScore)
	assert.Equal(t, "Acme", got.Report.CompanyName)
	assert.Len(t, got.Report.Recommendations, 4)
	assert.Len(t, got.Report.Roadmap, 3)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, models.WarnUnknownSpendBracket, got.Warnings[0].Code)
}

// ==========================
// validate
// ==========================

func TestValidate_Valid(t *testing.T) {
	path := writeYAMLFile(t, uniform(70), "$5,000-$10,000")

	out, err := run(t, "", "validate", "--file", path)
	require.NoError(t, err)

	var got validation.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Valid)
}

func TestValidate_Invalid(t *testing.T) {
	doc := documentWith(uniform(70), "$5,000-$10,000")
	delete(doc, "strategic")
	path := writeJSONFile(t, doc)

	out, err := run(t, "", "validate", "--file", path)
	require.ErrorIs(t, err, errInvalid)

	var got validation.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Valid)
	assert.True(t, got.HasErrors("strategic"))
}

func TestParseWeights(t *testing.T) {
	w, err := parseWeights(" 0.4, 0.3 ,0.2,0.1")
	require.NoError(t, err)
	assert.InDelta(t, 0.4, w.Cognitive, 1e-12)
	assert.InDelta(t, 0.1, w.LivingSystems, 1e-12)
}
