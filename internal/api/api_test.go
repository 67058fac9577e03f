// internal/api/api_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"infraiq-workers/internal/common/config"
	"infraiq-workers/internal/common/database"
	"infraiq-workers/internal/common/logger"
	"infraiq-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assessmentBody(t *testing.T, value interface{}, spend string) []byte {
	t.Helper()
	doc := map[string]interface{}{
		"organizationContext": map[string]interface{}{
			"companyName":  "Acme",
			"monthlySpend": spend,
		},
		"diagnosticContext": map[string]interface{}{
			"primaryChallenges": []string{"Tool sprawl"},
		},
	}
	for _, p := range models.Pillars {
		section := map[string]interface{}{}
		for _, name := range models.PillarDimensions[p] {
			section[name] = value
		}
		doc[string(p)] = section
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)
	return body
}

func newTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = logger.NewTestLogger(t)
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.NewRegistry()
	}
	return NewServer(opts).Routes()
}

func post(h http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.RemoteAddr = "10.0.0.1:5555"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestScore_OK(t *testing.T) {
	h := newTestServer(t, Options{})

	w := post(h, "/api/v1/assessments/score", assessmentBody(t, 50, "$1,000-$5,000"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(headerRequestID))

	var resp ScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AssessmentID)
	assert.Equal(t, 50, resp.ScoreResult.TotalScore)
	assert.Equal(t, models.MaturityDeveloping, resp.ScoreResult.MaturityLevel)
	assert.Equal(t, 12600, resp.ScoreResult.WasteEstimate)
	assert.Equal(t, 3000, resp.Financials.MonthlySpend)
	assert.Empty(t, resp.Warnings)
}

func TestScore_UnknownSpendWarns(t *testing.T) {
	h := newTestServer(t, Options{})

	w := post(h, "/api/v1/assessments/score", assessmentBody(t, 50, "whatever"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp ScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, models.WarnUnknownSpendBracket, resp.Warnings[0].Code)
	assert.Equal(t, 12600, resp.ScoreResult.WasteEstimate)
}

func TestScore_InvalidInput(t *testing.T) {
	h := newTestServer(t, Options{})

	w := post(h, "/api/v1/assessments/score", assessmentBody(t, 101, "$1,000-$5,000"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error       string              `json:"error"`
		FieldErrors []models.FieldError `json:"fieldErrors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_INPUT", body.Error)
	assert.Len(t, body.FieldErrors, 21)
	assert.Equal(t, models.CodeOutOfRange, body.FieldErrors[0].Code)
}

func TestScore_MalformedJSON(t *testing.T) {
	h := newTestServer(t, Options{})

	w := post(h, "/api/v1/assessments/score", []byte(`{"cognitive":`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestScore_BodyTooLarge(t *testing.T) {
	h := newTestServer(t, Options{MaxBodyBytes: 16})

	w := post(h, "/api/v1/assessments/score", assessmentBody(t, 50, "$1,000-$5,000"))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestScore_MethodNotAllowed(t *testing.T) {
	h := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/score", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func TestReport_OK(t *testing.T) {
	h := newTestServer(t, Options{})

	w := post(h, "/api/v1/assessments/report", assessmentBody(t, 40, "$25,000+"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 40, resp.ScoreResult.TotalScore)
	assert.Equal(t, "Acme", resp.Report.CompanyName)
	assert.Len(t, resp.Report.Recommendations, 4)
	assert.Len(t, resp.Report.Roadmap, 3)
	assert.Equal(t, []string{"Tool sprawl"}, resp.Report.PrimaryChallenges)
	assert.Equal(t, resp.ScoreResult, resp.Report.Score)
}

func TestHealthAndReady(t *testing.T) {
	h := newTestServer(t, Options{
		ReadyChecks: map[string]ReadyCheck{
			"redis": func(context.Context) error { return nil },
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	req = httptest.NewRequest(http.MethodGet, "/ready", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"ok"`)
}

func TestReady_Unavailable(t *testing.T) {
	h := newTestServer(t, Options{
		ReadyChecks: map[string]ReadyCheck{
			"zeebe": func(context.Context) error { return errors.New("unreachable") },
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not_ready")
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "api_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	h := newTestServer(t, Options{Gatherer: reg})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "api_test_total 1")
}

// ==========================
// Rate limiting
// ==========================

func newRedisLimiter(t *testing.T, limit int) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewRateLimiter(client, limit, time.Hour, "ratelimit:test", logger.NewTestLogger(t)), mr
}

func TestRateLimit_Exceeded(t *testing.T) {
	limiter, _ := newRedisLimiter(t, 2)
	h := newTestServer(t, Options{Limiter: limiter})
	body := assessmentBody(t, 50, "$1,000-$5,000")

	first := post(h, "/api/v1/assessments/score", body)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, post(h, "/api/v1/assessments/score", body).Code)

	third := post(h, "/api/v1/assessments/score", body)
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "3600", third.Header().Get("Retry-After"))
	assert.Contains(t, third.Body.String(), "RATE_LIMITED")
}

func TestRateLimit_PerClient(t *testing.T) {
	limiter, _ := newRedisLimiter(t, 1)
	h := newTestServer(t, Options{Limiter: limiter})
	body := assessmentBody(t, 50, "$1,000-$5,000")

	assert.Equal(t, http.StatusOK, post(h, "/api/v1/assessments/score", body).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/score", bytes.NewReader(body))
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter, mr := newRedisLimiter(t, 1)
	h := newTestServer(t, Options{Limiter: limiter})
	mr.Close()

	w := post(h, "/api/v1/assessments/score", assessmentBody(t, 50, "$1,000-$5,000"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", " 198.51.100.2 ,10.0.0.1")
	assert.Equal(t, "198.51.100.2", clientIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", strings.TrimSpace(clientIP(req)))
}
