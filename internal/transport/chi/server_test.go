package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/productindex/internal/domain"
	"github.com/kailas-cloud/productindex/internal/domain/search/request"
	"github.com/kailas-cloud/productindex/internal/domain/search/result"
	"github.com/kailas-cloud/productindex/internal/metrics"
	healthuc "github.com/kailas-cloud/productindex/internal/usecase/health"
	queryuc "github.com/kailas-cloud/productindex/internal/usecase/query"
)

func TestMain(m *testing.M) {
	metrics.Register()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockQuerier struct {
	got  request.Request
	resp result.Response
	err  error
}

func (m *mockQuerier) Query(_ context.Context, req request.Request) (result.Response, error) {
	m.got = req
	return m.resp, m.err
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

var testSession = domain.Session{CorpusKey: "product_info_1", Mode: domain.ModeLookup}

func newTestHandler(q *mockQuerier, pinger *mockPinger, session domain.Session, keys ...string) http.Handler {
	logger := zap.NewNop()
	s := NewServer(queryuc.New(q, logger), healthuc.New(pinger, nil), session, logger)
	return s.Routes(keys)
}

func postQuery(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/query", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// --- Tests ---

func TestQuery_Success(t *testing.T) {
	q := &mockQuerier{resp: result.Response{
		Results: []result.Result{
			result.New("d1", "MRI conditional", 0.8, map[string]any{"Manufacturer": "Medtronic", "lang": "eng"}),
		},
		Summary: "Yes.",
	}}
	h := newTestHandler(q, &mockPinger{}, testSession)

	rr := postQuery(t, h, `{"query":"Is it MRI safe?","manufacturer":"Medtronic"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}

	var resp QueryResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Filter != "doc.Manufacturer = 'Medtronic'" {
		t.Errorf("unexpected filter %q", resp.Filter)
	}
	if resp.Summary != "Yes." {
		t.Errorf("unexpected summary %q", resp.Summary)
	}
	if len(resp.Results) != 1 || len(resp.Results[0].Metadata) != 1 {
		t.Errorf("unexpected results %+v", resp.Results)
	}
	if q.got.CorpusKey() != "product_info_1" {
		t.Errorf("unexpected corpus %q", q.got.CorpusKey())
	}
}

func TestQuery_Validation(t *testing.T) {
	h := newTestHandler(&mockQuerier{}, &mockPinger{}, testSession)

	rr := postQuery(t, h, `{"query":"   "}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != ErrorCodeValidationFailed {
		t.Errorf("expected %s, got %s", ErrorCodeValidationFailed, resp.Code)
	}
	if _, ok := resp.Fields["query"]; !ok {
		t.Errorf("expected query field error, got %v", resp.Fields)
	}
}

func TestQuery_BadBody(t *testing.T) {
	h := newTestHandler(&mockQuerier{}, &mockPinger{}, testSession)

	for _, body := range []string{`{`, `{"query":"q","unknown":1}`} {
		rr := postQuery(t, h, body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, rr.Code)
		}
	}
}

func TestQuery_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		session domain.Session
		err     error
		status  int
		code    ErrorCode
	}{
		{"no session", domain.Session{}, nil, http.StatusServiceUnavailable, ErrorCodeCorpusUnavailable},
		{"remote", testSession, domain.ErrRemoteService, http.StatusBadGateway, ErrorCodeRemoteError},
		{"transport", testSession, errors.New("dial tcp: refused"), http.StatusBadGateway, ErrorCodeQueryFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&mockQuerier{err: tt.err}, &mockPinger{}, tt.session)

			rr := postQuery(t, h, `{"query":"q"}`)
			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rr.Code)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, resp.Code)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   healthuc.Status
	}{
		{"healthy", nil, http.StatusOK, healthuc.Healthy},
		{"unreachable", errors.New("timeout"), http.StatusServiceUnavailable, healthuc.Unhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&mockQuerier{}, &mockPinger{err: tt.err}, testSession, "secret")

			req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rr.Code)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.want {
				t.Errorf("expected %s, got %s", tt.want, resp.Status)
			}
		})
	}
}

func TestRoutes_AuthAndMetrics(t *testing.T) {
	h := newTestHandler(&mockQuerier{}, &mockPinger{}, testSession, "secret")

	rr := postQuery(t, h, `{"query":"q"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected metrics 200, got %d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("productindex_http_requests_total")) {
		t.Error("expected productindex metrics in output")
	}
}

func TestRoutes_NotFound(t *testing.T) {
	h := newTestHandler(&mockQuerier{}, &mockPinger{}, testSession)

	req := httptest.NewRequest(http.MethodGet, "/v1/unknown", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestJSONRecoverer(t *testing.T) {
	h := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}
