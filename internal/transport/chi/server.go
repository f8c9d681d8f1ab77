package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/productindex/internal/domain"
	"github.com/kailas-cloud/productindex/internal/domain/search/filter"
	logpkg "github.com/kailas-cloud/productindex/internal/logger"
	"github.com/kailas-cloud/productindex/internal/metrics"
	healthuc "github.com/kailas-cloud/productindex/internal/usecase/health"
	queryuc "github.com/kailas-cloud/productindex/internal/usecase/query"
)

const maxBodyBytes = 64 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves queries against a corpus session resolved at startup.
type Server struct {
	query         *queryuc.Service
	health        *healthuc.Service
	session       domain.Session
	validate      *validator.Validate
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	query *queryuc.Service,
	health *healthuc.Service,
	session domain.Session,
	logger *zap.Logger,
) *Server {
	s := &Server{
		query:    query,
		health:   health,
		session:  session,
		validate: newValidator(),
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNoSession, http.StatusServiceUnavailable, ErrorCodeCorpusUnavailable),
		sentinelHandler(domain.ErrAmbiguousCorpus, http.StatusServiceUnavailable, ErrorCodeCorpusUnavailable),
		sentinelHandler(domain.ErrRemoteService, http.StatusBadGateway, ErrorCodeRemoteError),
		sentinelHandler(domain.ErrQuery, http.StatusBadGateway, ErrorCodeQueryFailed),
	}
	return s
}

// Routes builds the chi router with the middleware chain.
func (s *Server) Routes(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/v1/query", s.Query)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
	return r
}

// Query handles POST /v1/query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if fields := s.validationErrors(req); fields != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Code:    ErrorCodeValidationFailed,
			Message: "validation failed",
			Fields:  fields,
		})
		return
	}

	constraints := filter.Constraints{
		domain.AttrManufacturer: req.Manufacturer,
		domain.AttrProduct:      req.Product,
	}
	r = r.WithContext(logpkg.WithCorpus(r.Context(), s.session.CorpusKey))
	ans, err := s.query.Query(r.Context(), s.session, req.Query, constraints)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, QueryResponse(ans))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: report.Status,
		Checks: report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) validationErrors(v any) map[string]string {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
	}
	return fields
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns the sentinel text so remote details stay in the logs.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNoSession,
		domain.ErrAmbiguousCorpus,
		domain.ErrRemoteService,
		domain.ErrQuery,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
