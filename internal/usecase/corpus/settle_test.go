package corpus

import (
	"context"
	"errors"
	"testing"
	"time"

	domcorpus "github.com/kailas-cloud/productindex/internal/domain/corpus"
)

type sequenceLister struct {
	pages []domcorpus.Page
	err   error
	calls int
}

func (l *sequenceLister) ListCorpora(_ context.Context, _ domcorpus.ListQuery) (domcorpus.Page, error) {
	l.calls++
	if l.err != nil {
		return domcorpus.Page{}, l.err
	}
	i := l.calls - 1
	if i >= len(l.pages) {
		i = len(l.pages) - 1
	}
	return l.pages[i], nil
}

func TestFixedDelay_Zero(t *testing.T) {
	if err := NewFixedDelay(0, nil).Settle(context.Background(), testName, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFixedDelay_Waits(t *testing.T) {
	start := time.Now()
	if err := NewFixedDelay(10*time.Millisecond, nil).Settle(context.Background(), testName, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("expected settle to wait for the delay")
	}
}

func TestFixedDelay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFixedDelay(time.Hour, nil).Settle(ctx, testName, "k")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPollUntilAbsent_Disappears(t *testing.T) {
	lister := &sequenceLister{pages: []domcorpus.Page{
		{Corpora: []domcorpus.Corpus{{Key: "k", Name: testName}}},
		{Corpora: []domcorpus.Corpus{{Key: "k", Name: testName}}},
		{Corpora: []domcorpus.Corpus{{Key: "other", Name: testName}}},
	}}
	p := NewPollUntilAbsent(lister, time.Millisecond, time.Second, nil)

	if err := p.Settle(context.Background(), testName, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lister.calls != 3 {
		t.Errorf("expected 3 polls, got %d", lister.calls)
	}
}

func TestPollUntilAbsent_Timeout(t *testing.T) {
	lister := &sequenceLister{pages: []domcorpus.Page{
		{Corpora: []domcorpus.Corpus{{Key: "k", Name: testName}}},
	}}
	p := NewPollUntilAbsent(lister, time.Millisecond, 20*time.Millisecond, nil)

	err := p.Settle(context.Background(), testName, "k")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestPollUntilAbsent_ListError(t *testing.T) {
	listErr := errors.New("unauthorized")
	p := NewPollUntilAbsent(&sequenceLister{err: listErr}, time.Millisecond, time.Second, nil)

	if err := p.Settle(context.Background(), testName, "k"); !errors.Is(err, listErr) {
		t.Errorf("expected list error, got %v", err)
	}
}

func TestNewPollUntilAbsent_Defaults(t *testing.T) {
	p := NewPollUntilAbsent(&sequenceLister{}, 0, 0, nil)
	if p.interval != DefaultPollInterval || p.maxWait != DefaultPollMaxWait {
		t.Errorf("expected defaults, got interval=%s maxWait=%s", p.interval, p.maxWait)
	}
}
