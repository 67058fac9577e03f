// internal/api/server.go
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"infraiq-workers/internal/common/logger"
	"infraiq-workers/internal/common/metrics"
	"infraiq-workers/internal/common/observability"
	"infraiq-workers/internal/scoring"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const headerRequestID = "X-Request-ID"

// ReadyCheck reports whether a dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

type Options struct {
	Weights      scoring.Weights
	MaxBodyBytes int64
	Limiter      *RateLimiter // nil disables rate limiting
	ReadyChecks  map[string]ReadyCheck
	Gatherer     prometheus.Gatherer
	Obs          *observability.Observability
	Logger       logger.Logger
}

type Server struct {
	opts   Options
	logger logger.Logger
}

func NewServer(opts Options) *Server {
	if opts.Weights == (scoring.Weights{}) {
		opts.Weights = scoring.DefaultWeights
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Obs == nil {
		opts.Obs = observability.NewNoop()
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	return &Server{opts: opts, logger: opts.Logger.WithFields(map[string]interface{}{"component": "api"})}
}

// Routes builds the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/api/v1/assessments/score", s.wrap("score", http.HandlerFunc(s.Score)))
	mux.Handle("/api/v1/assessments/report", s.wrap("report", http.HandlerFunc(s.Report)))
	mux.Handle("/health", s.instrument("health", http.HandlerFunc(s.Health)))
	mux.Handle("/ready", s.instrument("ready", http.HandlerFunc(s.Ready)))
	mux.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))

	return withRequestID(mux)
}

func (s *Server) wrap(route string, h http.Handler) http.Handler {
	if s.opts.Limiter != nil {
		h = s.opts.Limiter.Middleware(h)
	}
	return s.instrument(route, h)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(s.opts.ReadyChecks))
	for name, check := range s.opts.ReadyChecks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.logger.Debug("request served", map[string]interface{}{
			"route":      route,
			"method":     r.Method,
			"status":     rec.status,
			"durationMs": time.Since(start).Milliseconds(),
			"requestId":  w.Header().Get(headerRequestID),
		})
	})
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r)
	})
}
