package productindex

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/productindex/internal/domain"
	"github.com/kailas-cloud/productindex/internal/domain/search/filter"
	"github.com/kailas-cloud/productindex/internal/repository/datadir"
	"github.com/kailas-cloud/productindex/internal/transport/vectara"
	corpusuc "github.com/kailas-cloud/productindex/internal/usecase/corpus"
	healthuc "github.com/kailas-cloud/productindex/internal/usecase/health"
	queryuc "github.com/kailas-cloud/productindex/internal/usecase/query"
	syncuc "github.com/kailas-cloud/productindex/internal/usecase/sync"
)

// Defaults applied when the matching option is not given.
const (
	DefaultCorpusName        = "WL - Product Information"
	DefaultKeyPrefix         = "product_info_"
	DefaultCorpusDescription = "An example Vectara Corpus Storing documents about products and their category."
)

// Internal interfaces, swapped for mocks in tests.
type corpusUseCase interface {
	Initialize(ctx context.Context, mode domain.Mode) (domain.Session, error)
	DeleteByName(ctx context.Context, name string) error
}

type syncUseCase interface {
	Sync(ctx context.Context, session domain.Session, root string) (syncuc.Report, error)
}

type queryUseCase interface {
	Query(ctx context.Context, session domain.Session, text string, constraints filter.Constraints) (queryuc.Answer, error)
}

// Client is the productindex SDK entry point.
// It is safe for concurrent use once Open has returned.
type Client struct {
	corpusName string
	corpusSvc  corpusUseCase
	syncSvc    syncUseCase
	querySvc   queryUseCase
	healthSvc  healthUseCase
	obs        *observer

	mu      sync.RWMutex
	session domain.Session
}

// New creates a Client. No request is sent until Open, Health or Delete is called.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		corpusName:        DefaultCorpusName,
		corpusDescription: DefaultCorpusDescription,
		keyPrefix:         DefaultKeyPrefix,
		extensions:        datadir.DefaultExtensions,
		settleDelay:       corpusuc.DefaultSettleDelay,
		timeout:           vectara.DefaultTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.apiKey == "" && cfg.oauthClientID == "" {
		return nil, fmt.Errorf("productindex: api key or oauth credentials required (use WithAPIKey or WithOAuth): %w", ErrInvalidConfig)
	}
	if cfg.oauthClientID != "" && (cfg.oauthClientSecret == "" || cfg.oauthTokenURL == "") {
		return nil, fmt.Errorf("productindex: oauth client secret and token url required: %w", ErrInvalidConfig)
	}
	if cfg.corpusName == "" || cfg.keyPrefix == "" {
		return nil, fmt.Errorf("productindex: corpus name and key prefix required: %w", ErrInvalidConfig)
	}

	vc := vectara.Config{
		BaseURL:           cfg.baseURL,
		APIKey:            cfg.apiKey,
		ConnectTimeout:    cfg.timeout,
		ReadTimeout:       cfg.timeout,
		WriteTimeout:      cfg.timeout,
		RequestsPerSecond: cfg.rps,
		Burst:             cfg.burst,
	}
	if cfg.oauthClientID != "" {
		vc.OAuth = &vectara.OAuthConfig{
			ClientID:     cfg.oauthClientID,
			ClientSecret: cfg.oauthClientSecret,
			TokenURL:     cfg.oauthTokenURL,
		}
	}
	remote, err := vectara.New(vc)
	if err != nil {
		return nil, fmt.Errorf("productindex: create vectara client: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(remote, cfg, obs), nil
}

func wireClient(remote *vectara.Client, cfg *clientConfig, obs *observer) *Client {
	logger := zap.NewNop()

	var settler corpusuc.Settler
	if cfg.poll {
		settler = corpusuc.NewPollUntilAbsent(remote, cfg.pollInterval, cfg.pollMaxWait, logger)
	} else {
		settler = corpusuc.NewFixedDelay(cfg.settleDelay, logger)
	}

	corpusSvc := corpusuc.New(remote, settler, corpusuc.Config{
		Name:        cfg.corpusName,
		Description: cfg.corpusDescription,
		KeyPrefix:   cfg.keyPrefix,
	}, logger)

	return &Client{
		corpusName: cfg.corpusName,
		corpusSvc:  corpusSvc,
		syncSvc:    syncuc.New(datadir.New(), remote, cfg.extensions, logger),
		querySvc:   queryuc.New(remote, logger),
		healthSvc:  healthuc.New(remote, corpusSvc),
		obs:        obs,
	}
}

// Open resolves the corpus according to mode and binds it to the client.
// ModeRecreate destroys all documents in corpora with the configured name.
func (c *Client) Open(ctx context.Context, mode Mode) (Session, error) {
	start := time.Now()
	s, err := c.corpusSvc.Initialize(ctx, mode)
	c.obs.observe(opOpen, s.CorpusKey, start, err)
	if err != nil {
		return Session{}, err
	}

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	return fromSession(s), nil
}

// Session returns the corpus bound by Open, or ErrNoSession.
func (c *Client) Session() (Session, error) {
	s, err := c.current()
	if err != nil {
		return Session{}, err
	}
	return fromSession(s), nil
}

// Sync uploads every matching file under root/<manufacturer>/<product>/ into the opened corpus.
// The first failed upload aborts the sync.
func (c *Client) Sync(ctx context.Context, root string) (SyncReport, error) {
	start := time.Now()
	s, err := c.current()
	if err != nil {
		c.obs.observe(opSync, "", start, err)
		return SyncReport{}, err
	}

	report, err := c.syncSvc.Sync(ctx, s, root)
	c.obs.observe(opSync, s.CorpusKey, start, err)
	if err != nil {
		return SyncReport{}, err
	}
	return fromSyncReport(report), nil
}

// Query asks a question against the opened corpus.
func (c *Client) Query(ctx context.Context, text string, opts ...QueryOption) (Answer, error) {
	start := time.Now()
	s, err := c.current()
	if err != nil {
		c.obs.observe(opQuery, "", start, err)
		return Answer{}, err
	}

	constraints := filter.Constraints{}
	for _, o := range opts {
		o(constraints)
	}

	ans, err := c.querySvc.Query(ctx, s, text, constraints)
	c.obs.observe(opQuery, s.CorpusKey, start, err)
	if err != nil {
		return Answer{}, err
	}
	return fromAnswer(ans), nil
}

// Delete removes every corpus with the configured name and unbinds the session.
func (c *Client) Delete(ctx context.Context) error {
	start := time.Now()
	err := c.corpusSvc.DeleteByName(ctx, c.corpusName)
	c.obs.observe(opDelete, c.boundKey(), start, err)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.session = domain.Session{}
	c.mu.Unlock()
	return nil
}

// boundKey returns the corpus key of the open session, or "".
func (c *Client) boundKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.CorpusKey
}

func (c *Client) current() (domain.Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.session.Valid() {
		return domain.Session{}, fmt.Errorf("productindex: call Open first: %w", ErrNoSession)
	}
	return c.session, nil
}
