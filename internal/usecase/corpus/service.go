package corpus

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/productindex/internal/domain"
	domcorpus "github.com/kailas-cloud/productindex/internal/domain/corpus"
)

// Config holds the corpus identity used by Initialize.
type Config struct {
	Name        string
	Description string
	KeyPrefix   string
}

// Service manages the corpus lifecycle: recreate, lookup and delete by display name.
type Service struct {
	remote  Remote
	settler Settler
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a corpus service. A nil settler falls back to a FixedDelay of DefaultSettleDelay.
func New(remote Remote, settler Settler, cfg Config, logger *zap.Logger) *Service {
	if settler == nil {
		settler = NewFixedDelay(DefaultSettleDelay, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{remote: remote, settler: settler, cfg: cfg, logger: logger, now: time.Now}
}

// Initialize resolves the session corpus once, according to mode.
func (s *Service) Initialize(ctx context.Context, mode domain.Mode) (domain.Session, error) {
	var (
		key string
		err error
	)
	switch mode {
	case domain.ModeRecreate:
		key, err = s.ResolveByRecreate(ctx, s.cfg.Name, s.cfg.Description, domcorpus.ProductAttributes())
	case domain.ModeLookup:
		key, err = s.ResolveByLookup(ctx, s.cfg.Name)
	default:
		return domain.Session{}, fmt.Errorf("initialize corpus: %w: %q", domain.ErrInvalidMode, mode)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("initialize corpus: %w", err)
	}

	s.logger.Info("corpus session ready",
		zap.String("mode", string(mode)),
		zap.String("corpus_key", key),
		zap.String("corpus_name", s.cfg.Name),
	)
	return domain.Session{CorpusKey: key, Mode: mode}, nil
}

// ResolveByRecreate deletes every corpus named name and creates a fresh one
// keyed <prefix><unix millis>. Create is attempted exactly once.
func (s *Service) ResolveByRecreate(ctx context.Context, name, description string, attrs []domcorpus.FilterAttribute) (string, error) {
	if err := s.DeleteByName(ctx, name); err != nil {
		return "", err
	}

	key := s.cfg.KeyPrefix + strconv.FormatInt(s.now().UnixMilli(), 10)
	def, err := domcorpus.NewDefinition(key, name, description, attrs)
	if err != nil {
		return "", &domain.LifecycleError{Op: "create", Corpus: name, Err: fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)}
	}

	created, err := s.remote.CreateCorpus(ctx, def)
	if err != nil {
		return "", &domain.LifecycleError{Op: "create", Corpus: name, Err: err}
	}
	if created.Key != "" {
		key = created.Key
	}

	s.logger.Info("corpus created", zap.String("corpus_key", key), zap.String("corpus_name", name))
	return key, nil
}

// ResolveByLookup returns the key of the single corpus named name.
func (s *Service) ResolveByLookup(ctx context.Context, name string) (string, error) {
	matches, err := s.listByName(ctx, name)
	if err != nil {
		return "", err
	}
	if len(matches) != 1 {
		return "", &domain.AmbiguousCorpusError{Name: name, Matches: len(matches)}
	}
	return matches[0].Key, nil
}

// DeleteByName deletes every corpus named name, settling after each delete.
// No matches is a no-op.
func (s *Service) DeleteByName(ctx context.Context, name string) error {
	matches, err := s.listByName(ctx, name)
	if err != nil {
		return err
	}

	for _, c := range matches {
		if err := s.remote.DeleteCorpus(ctx, c.Key); err != nil {
			return &domain.LifecycleError{Op: "delete", Corpus: c.Key, Err: err}
		}
		s.logger.Info("corpus deleted", zap.String("corpus_key", c.Key), zap.String("corpus_name", name))

		if err := s.settler.Settle(ctx, name, c.Key); err != nil {
			return &domain.LifecycleError{Op: "settle", Corpus: c.Key, Err: err}
		}
	}
	return nil
}

// listByName walks every page of the name-filtered listing and keeps exact name matches.
func (s *Service) listByName(ctx context.Context, name string) ([]domcorpus.Corpus, error) {
	all, err := listAll(ctx, s.remote, name)
	if err != nil {
		return nil, &domain.LifecycleError{Op: "list", Corpus: name, Err: err}
	}
	return domcorpus.ExactMatches(all, name), nil
}

func listAll(ctx context.Context, l Lister, name string) ([]domcorpus.Corpus, error) {
	var (
		all     []domcorpus.Corpus
		pageKey string
	)
	for {
		page, err := l.ListCorpora(ctx, domcorpus.ListQuery{
			Limit:      domcorpus.MaxListLimit,
			NameFilter: name,
			PageKey:    pageKey,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page.Corpora...)

		if page.NextPageKey == "" || page.NextPageKey == pageKey {
			return all, nil
		}
		pageKey = page.NextPageKey
	}
}

// HealthCheck reports whether the configured corpus name resolves to exactly one corpus.
func (s *Service) HealthCheck(ctx context.Context) error {
	_, err := s.ResolveByLookup(ctx, s.cfg.Name)
	return err
}
