package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/productindex/internal/config"
	"github.com/kailas-cloud/productindex/internal/domain"
	logpkg "github.com/kailas-cloud/productindex/internal/logger"
	"github.com/kailas-cloud/productindex/internal/metrics"
	"github.com/kailas-cloud/productindex/internal/repository/datadir"
	chiTransport "github.com/kailas-cloud/productindex/internal/transport/chi"
	"github.com/kailas-cloud/productindex/internal/transport/cli"
	"github.com/kailas-cloud/productindex/internal/transport/vectara"
	corpusuc "github.com/kailas-cloud/productindex/internal/usecase/corpus"
	healthuc "github.com/kailas-cloud/productindex/internal/usecase/health"
	queryuc "github.com/kailas-cloud/productindex/internal/usecase/query"
	syncuc "github.com/kailas-cloud/productindex/internal/usecase/sync"
	"github.com/kailas-cloud/productindex/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var logger *zap.Logger
	root := cli.NewRootCommand(func(env string) (*cli.Deps, error) {
		deps, err := build(env)
		if err != nil {
			return nil, err
		}
		logger = deps.Logger
		return deps, nil
	})

	err := root.ExecuteContext(ctx)
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

// build is the composition root: config, logger, metrics, client, use cases.
func build(env string) (*cli.Deps, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Starting productindex",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("vectara_url", cfg.Vectara.BaseURL),
		zap.String("corpus_name", cfg.Corpus.Name),
		zap.Bool("oauth", cfg.Vectara.OAuth.Enabled()),
	)

	// Register metrics explicitly (no init())
	metrics.Register()

	client, err := vectara.New(vectaraConfig(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create vectara client: %w", err)
	}

	corpusSvc := corpusuc.New(client, buildSettler(cfg.Corpus.Settle, client, logger), corpusuc.Config{
		Name:        cfg.Corpus.Name,
		Description: cfg.Corpus.Description,
		KeyPrefix:   cfg.Corpus.KeyPrefix,
	}, logger)
	syncSvc := syncuc.New(datadir.New(), client, cfg.Data.Extensions, logger)
	querySvc := queryuc.New(client, logger)
	healthSvc := healthuc.New(client, corpusSvc)

	return &cli.Deps{
		Config: cfg,
		Logger: logger,
		Corpus: corpusSvc,
		Sync:   syncSvc,
		Query:  querySvc,
		Serve: func(ctx context.Context, session domain.Session) error {
			server := chiTransport.NewServer(querySvc, healthSvc, session, logger)
			return serveHTTP(ctx, cfg.HTTP, server.Routes(cfg.HTTP.APIKeys), logger)
		},
	}, nil
}

func vectaraConfig(cfg config.Config, logger *zap.Logger) vectara.Config {
	vc := vectara.Config{
		BaseURL:           cfg.Vectara.BaseURL,
		APIKey:            cfg.Vectara.APIKey,
		ConnectTimeout:    time.Duration(cfg.Vectara.ConnectTimeoutSec) * time.Second,
		ReadTimeout:       time.Duration(cfg.Vectara.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.Vectara.WriteTimeoutSec) * time.Second,
		RequestsPerSecond: cfg.Vectara.RateLimit.RequestsPerSec,
		Burst:             cfg.Vectara.RateLimit.Burst,
		Logger:            logger,
	}
	if cfg.Vectara.OAuth.Enabled() {
		vc.OAuth = &vectara.OAuthConfig{
			ClientID:     cfg.Vectara.OAuth.ClientID,
			ClientSecret: cfg.Vectara.OAuth.ClientSecret,
			TokenURL:     cfg.Vectara.OAuth.TokenURL,
		}
	}
	return vc
}

func buildSettler(cfg config.SettleConfig, lister corpusuc.Lister, logger *zap.Logger) corpusuc.Settler {
	if cfg.Strategy == config.SettlePoll {
		return corpusuc.NewPollUntilAbsent(lister,
			time.Duration(cfg.PollIntervalSec)*time.Second,
			time.Duration(cfg.MaxWaitSec)*time.Second,
			logger,
		)
	}
	return corpusuc.NewFixedDelay(time.Duration(cfg.DelaySec)*time.Second, logger)
}

// serveHTTP runs the server until ctx is cancelled, then shuts down gracefully.
func serveHTTP(ctx context.Context, cfg config.HTTPConfig, handler http.Handler, logger *zap.Logger) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: time.Duration(cfg.ReadTimeoutSec) * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("Server stopped gracefully")
	return nil
}
