package productindex

import (
	"context"

	"github.com/kailas-cloud/productindex/internal/domain"
	"github.com/kailas-cloud/productindex/internal/domain/search/filter"
	healthuc "github.com/kailas-cloud/productindex/internal/usecase/health"
	queryuc "github.com/kailas-cloud/productindex/internal/usecase/query"
	syncuc "github.com/kailas-cloud/productindex/internal/usecase/sync"
)

// --- corpusUseCase mock ---

type mockCorpusUC struct {
	initFn   func(ctx context.Context, mode domain.Mode) (domain.Session, error)
	deleteFn func(ctx context.Context, name string) error
}

func (m *mockCorpusUC) Initialize(ctx context.Context, mode domain.Mode) (domain.Session, error) {
	return m.initFn(ctx, mode)
}

func (m *mockCorpusUC) DeleteByName(ctx context.Context, name string) error {
	return m.deleteFn(ctx, name)
}

// --- syncUseCase mock ---

type mockSyncUC struct {
	syncFn func(ctx context.Context, session domain.Session, root string) (syncuc.Report, error)
}

func (m *mockSyncUC) Sync(ctx context.Context, session domain.Session, root string) (syncuc.Report, error) {
	return m.syncFn(ctx, session, root)
}

// --- queryUseCase mock ---

type mockQueryUC struct {
	queryFn func(ctx context.Context, session domain.Session, text string, c filter.Constraints) (queryuc.Answer, error)
}

func (m *mockQueryUC) Query(
	ctx context.Context, session domain.Session, text string, c filter.Constraints,
) (queryuc.Answer, error) {
	return m.queryFn(ctx, session, text, c)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

func openedClient(t interface{ Fatalf(string, ...any) }, c *Client) {
	c.corpusSvc = &mockCorpusUC{
		initFn: func(_ context.Context, mode domain.Mode) (domain.Session, error) {
			return domain.Session{CorpusKey: "product_info_1", Mode: mode}, nil
		},
	}
	if _, err := c.Open(context.Background(), ModeLookup); err != nil {
		t.Fatalf("open: %v", err)
	}
}
