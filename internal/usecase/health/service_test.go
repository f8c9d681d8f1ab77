package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockRemote struct {
	err error
}

func (m *mockRemote) Ping(_ context.Context) error { return m.err }

type mockCorpus struct {
	err    error
	called bool
}

func (m *mockCorpus) HealthCheck(_ context.Context) error {
	m.called = true
	return m.err
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockRemote{}, &mockCorpus{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks[CheckRemote] != CheckOK {
		t.Errorf("expected vectara %q, got %q", CheckOK, r.Checks[CheckRemote])
	}
	if r.Checks[CheckCorpus] != CheckOK {
		t.Errorf("expected corpus %q, got %q", CheckOK, r.Checks[CheckCorpus])
	}
}

func TestCheck_RemoteError(t *testing.T) {
	corpus := &mockCorpus{}
	svc := New(&mockRemote{err: errors.New("401 unauthorized")}, corpus)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[CheckRemote] != CheckError {
		t.Errorf("expected vectara %q, got %q", CheckError, r.Checks[CheckRemote])
	}
	if corpus.called {
		t.Error("corpus check should be skipped when the service is unreachable")
	}
	if _, ok := r.Checks[CheckCorpus]; ok {
		t.Error("corpus check should be absent")
	}
}

func TestCheck_CorpusError(t *testing.T) {
	svc := New(&mockRemote{}, &mockCorpus{err: errors.New("no corpus named")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[CheckRemote] != CheckOK {
		t.Errorf("expected vectara %q, got %q", CheckOK, r.Checks[CheckRemote])
	}
	if r.Checks[CheckCorpus] != CheckError {
		t.Errorf("expected corpus %q, got %q", CheckError, r.Checks[CheckCorpus])
	}
}

func TestCheck_NoCorpusChecker(t *testing.T) {
	svc := New(&mockRemote{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[CheckCorpus]; ok {
		t.Error("corpus check should be absent when corpus is nil")
	}
}
