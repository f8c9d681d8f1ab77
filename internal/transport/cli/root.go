// Package cli is the productindex command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/productindex/internal/config"
	"github.com/kailas-cloud/productindex/internal/domain"
	"github.com/kailas-cloud/productindex/internal/domain/search/filter"
	queryuc "github.com/kailas-cloud/productindex/internal/usecase/query"
	syncuc "github.com/kailas-cloud/productindex/internal/usecase/sync"
)

// CorpusService resolves and deletes the configured corpus.
type CorpusService interface {
	Initialize(ctx context.Context, mode domain.Mode) (domain.Session, error)
	DeleteByName(ctx context.Context, name string) error
}

// SyncService uploads the data tree.
type SyncService interface {
	Sync(ctx context.Context, session domain.Session, root string) (syncuc.Report, error)
}

// QueryService answers questions.
type QueryService interface {
	Query(ctx context.Context, session domain.Session, text string, constraints filter.Constraints) (queryuc.Answer, error)
}

// Deps are the services commands run against.
type Deps struct {
	Config config.Config
	Logger *zap.Logger
	Corpus CorpusService
	Sync   SyncService
	Query  QueryService
	// Serve blocks serving HTTP for session until ctx is done.
	Serve func(ctx context.Context, session domain.Session) error
}

// Builder loads configuration for env and wires the services.
type Builder func(env string) (*Deps, error)

// app carries flag values and the lazily built dependencies.
type app struct {
	build Builder
	env   string
	mode  string
	deps  *Deps
}

// NewRootCommand creates the productindex command tree.
func NewRootCommand(build Builder) *cobra.Command {
	a := &app{build: build}

	root := &cobra.Command{
		Use:   "productindex",
		Short: "Index product documents into Vectara and query them",
		Long: `productindex keeps a Vectara corpus of product documents laid out as
<data>/<manufacturer>/<product>/<file> and answers questions against it,
optionally filtered by manufacturer and product.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.env, "env", config.GetEnv(), "configuration environment (config/<env>.yaml)")
	root.PersistentFlags().StringVar(&a.mode, "mode", "",
		"corpus mode: lookup reuses the existing corpus; recreate deletes it and starts empty, even for query and serve (default from config)")

	root.AddCommand(
		newInitCmd(a),
		newSyncCmd(a),
		newQueryCmd(a),
		newDeleteCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// load builds dependencies on first use; version and help never need them.
func (a *app) load() (*Deps, error) {
	if a.deps != nil {
		return a.deps, nil
	}
	if a.build == nil {
		return nil, errors.New("services not configured")
	}
	deps, err := a.build(a.env)
	if err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	a.deps = deps
	return deps, nil
}

// resolveMode prefers the --mode flag over corpus.mode.
func (a *app) resolveMode(cfg config.Config) (domain.Mode, error) {
	raw := a.mode
	if raw == "" {
		raw = cfg.Corpus.Mode
	}
	return domain.ParseMode(raw)
}

// session loads dependencies and initializes the corpus session.
func (a *app) session(ctx context.Context) (*Deps, domain.Session, error) {
	deps, err := a.load()
	if err != nil {
		return nil, domain.Session{}, err
	}
	mode, err := a.resolveMode(deps.Config)
	if err != nil {
		return nil, domain.Session{}, err
	}
	sess, err := deps.Corpus.Initialize(ctx, mode)
	if err != nil {
		return nil, domain.Session{}, fmt.Errorf("initialize corpus %q: %w", deps.Config.Corpus.Name, err)
	}
	return deps, sess, nil
}

// warnEmptyCorpus flags commands that read from a corpus recreate mode just emptied.
func (a *app) warnEmptyCorpus(cmd *cobra.Command, deps *Deps, sess domain.Session) {
	if sess.Mode != domain.ModeRecreate {
		return
	}
	deps.Logger.Warn("corpus recreated before a read-only command; it holds no documents",
		zap.String("command", cmd.Name()),
		zap.String("corpus_key", sess.CorpusKey),
	)
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(),
		"warning: recreate mode replaced corpus %q with an empty one; run sync or use --mode lookup\n",
		sess.CorpusKey)
}
