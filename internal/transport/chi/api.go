package chi

import (
	healthuc "github.com/kailas-cloud/productindex/internal/usecase/health"
	queryuc "github.com/kailas-cloud/productindex/internal/usecase/query"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned by the HTTP API.
const (
	ErrorCodeBadRequest        ErrorCode = "bad_request"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeValidationFailed  ErrorCode = "validation_failed"
	ErrorCodeCorpusUnavailable ErrorCode = "corpus_unavailable"
	ErrorCodeRemoteError       ErrorCode = "remote_service_error"
	ErrorCodeQueryFailed       ErrorCode = "query_failed"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// QueryRequest is the body of POST /v1/query.
type QueryRequest struct {
	Query        string `json:"query" validate:"required,max=4096"`
	Manufacturer string `json:"manufacturer,omitempty" validate:"max=256"`
	Product      string `json:"product,omitempty" validate:"max=256"`
}

// QueryResponse is the body returned by POST /v1/query.
type QueryResponse = queryuc.Answer

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}
