// Package vectara is a client for the Vectara REST API v2: corpus management,
// file upload and query.
package vectara

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/productindex/internal/domain"
	"github.com/kailas-cloud/productindex/internal/metrics"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.vectara.io"
	DefaultTimeout = 60 * time.Second

	apiKeyHeader    = "x-api-key"
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// OAuthConfig holds OAuth2 client-credentials settings.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// Config holds the client settings.
type Config struct {
	BaseURL string
	APIKey  string
	// OAuth takes precedence over APIKey when set.
	OAuth *OAuthConfig

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	// RequestsPerSecond limits outgoing requests; 0 disables limiting.
	RequestsPerSecond float64
	Burst             int

	Logger *zap.Logger
	// HTTPClient overrides the transport (tests). Timeouts and OAuth are not applied to it.
	HTTPClient *http.Client
}

// Client talks to the Vectara API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates a Vectara client.
func New(cfg Config) (*Client, error) {
	if cfg.OAuth == nil && cfg.APIKey == "" {
		return nil, fmt.Errorf("vectara: api key or oauth client credentials required: %w", domain.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = newHTTPClient(cfg)
	}

	c := &Client{
		http:    hc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  cfg.Logger,
	}

	if cfg.OAuth != nil {
		cc := clientcredentials.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			TokenURL:     cfg.OAuth.TokenURL,
		}
		// Token requests go through the same timeouts.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		oc := cc.Client(ctx)
		oc.Timeout = hc.Timeout
		c.http = oc
	} else {
		c.apiKey = cfg.APIKey
	}

	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return c, nil
}

func newHTTPClient(cfg Config) *http.Client {
	connect := orDefault(cfg.ConnectTimeout)
	read := orDefault(cfg.ReadTimeout)
	write := orDefault(cfg.WriteTimeout)

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connect, KeepAlive: 30 * time.Second}).DialContext
	transport.TLSHandshakeTimeout = connect
	transport.ResponseHeaderTimeout = read

	// net/http has no separate write timeout; the overall budget covers all three phases.
	return &http.Client{Transport: transport, Timeout: connect + read + write}
}

func orDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

// APIError is a non-2xx response from the API.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vectara %s: status %d: %s", e.Operation, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return domain.ErrRemoteService }

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// call describes one API request.
type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

// do sends the request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, cl call, out any) (err error) {
	start := time.Now()
	reqID := uuid.NewString()
	log := c.logger.With(zap.String("op", cl.op), zap.String("request_id", reqID))

	defer func() {
		dur := time.Since(start)
		status := "success"
		if err != nil {
			status = "error"
			log.Warn("vectara request failed", zap.Duration("duration", dur), zap.Error(err))
		} else {
			log.Debug("vectara request completed", zap.Duration("duration", dur))
		}
		metrics.RemoteRequestsTotal.WithLabelValues(cl.op, status).Inc()
		metrics.RemoteRequestDuration.WithLabelValues(cl.op).Observe(dur.Seconds())
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("vectara %s: rate limit wait: %w", cl.op, err)
		}
	}

	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, cl.body)
	if err != nil {
		return fmt.Errorf("vectara %s: build request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RemoteErrorsTotal.WithLabelValues(cl.op, "transport").Inc()
		return fmt.Errorf("vectara %s: %w", cl.op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RemoteErrorsTotal.WithLabelValues(cl.op, "api_error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return parseAPIError(cl.op, resp.StatusCode, body)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RemoteErrorsTotal.WithLabelValues(cl.op, "decode").Inc()
		return fmt.Errorf("vectara %s: decode response: %w", cl.op, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("vectara %s: encode request: %w", op, err)
	}
	return c.do(ctx, call{
		op:          op,
		method:      method,
		path:        path,
		body:        bytes.NewReader(data),
		contentType: "application/json",
	}, out)
}

// parseAPIError extracts a human-readable message from an error body.
func parseAPIError(op string, status int, body []byte) error {
	var parsed struct {
		Messages    []string          `json:"messages"`
		Message     string            `json:"message"`
		FieldErrors map[string]string `json:"field_errors"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &parsed) == nil {
		parts := append([]string{}, parsed.Messages...)
		if parsed.Message != "" {
			parts = append(parts, parsed.Message)
		}
		for field, e := range parsed.FieldErrors {
			parts = append(parts, field+": "+e)
		}
		if len(parts) > 0 {
			msg = strings.Join(parts, "; ")
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Operation: op, StatusCode: status, Message: msg}
}

// addQueryParam styles a form query parameter the way generated OpenAPI clients do.
func addQueryParam(values url.Values, name string, value any) error {
	frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return fmt.Errorf("style query param %s: %w", name, err)
	}
	parsed, err := url.ParseQuery(frag)
	if err != nil {
		return fmt.Errorf("parse query param %s: %w", name, err)
	}
	for k, vs := range parsed {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	return nil
}
