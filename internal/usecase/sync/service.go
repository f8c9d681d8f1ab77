// Package sync uploads a manufacturer/product directory tree into a corpus.
package sync

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/productindex/internal/domain"
	"github.com/kailas-cloud/productindex/internal/metrics"
)

// Unit is a file discovered under root/<manufacturer>/<product>/.
type Unit struct {
	Manufacturer string
	Product      string
	Path         string
}

// Tags returns the document metadata attached on upload.
func (u Unit) Tags() map[string]any {
	return map[string]any{
		domain.AttrManufacturer: u.Manufacturer,
		domain.AttrProduct:      u.Product,
	}
}

// Report summarizes a completed sync.
type Report struct {
	Manufacturers int
	Products      int
	Files         int
}

// Service walks the data root and uploads every matching file.
type Service struct {
	walker     Walker
	uploader   Uploader
	extensions []string
	logger     *zap.Logger
}

// New creates a sync service uploading files with the given extensions (without dots).
func New(walker Walker, uploader Uploader, extensions []string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{walker: walker, uploader: uploader, extensions: extensions, logger: logger}
}

// Sync uploads root/<manufacturer>/<product>/<file> into the session corpus.
// A blank root is a no-op. The first failed upload aborts the whole pass.
func (s *Service) Sync(ctx context.Context, session domain.Session, root string) (Report, error) {
	if strings.TrimSpace(root) == "" {
		s.logger.Warn("no data directory given, skipping sync")
		return Report{}, nil
	}
	if !session.Valid() {
		return Report{}, fmt.Errorf("sync: %w", domain.ErrNoSession)
	}

	manufacturers, err := s.walker.ListSubdirectories(root)
	if err != nil {
		return Report{}, err
	}
	slices.Sort(manufacturers)

	var report Report
	for _, m := range manufacturers {
		mPath := filepath.Join(root, m)
		products, err := s.walker.ListSubdirectories(mPath)
		if err != nil {
			return Report{}, err
		}
		slices.Sort(products)
		report.Manufacturers++

		for _, p := range products {
			n, err := s.syncProduct(ctx, session.CorpusKey, m, p, filepath.Join(mPath, p))
			if err != nil {
				return Report{}, err
			}
			report.Products++
			report.Files += n
		}
	}

	s.logger.Info("sync completed",
		zap.String("corpus_key", session.CorpusKey),
		zap.Int("manufacturers", report.Manufacturers),
		zap.Int("products", report.Products),
		zap.Int("files", report.Files),
	)
	return report, nil
}

func (s *Service) syncProduct(ctx context.Context, corpusKey, manufacturer, product, dir string) (int, error) {
	files, err := s.walker.ListFilesByExtension(dir, s.extensions)
	if err != nil {
		return 0, err
	}
	slices.Sort(files)

	for _, f := range files {
		u := Unit{Manufacturer: manufacturer, Product: product, Path: filepath.Join(dir, f)}
		if err := s.upload(ctx, corpusKey, u); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}

func (s *Service) upload(ctx context.Context, corpusKey string, u Unit) error {
	if err := ctx.Err(); err != nil {
		return &domain.UploadError{Path: u.Path, Err: err}
	}

	s.logger.Info("uploading file",
		zap.String("manufacturer", u.Manufacturer),
		zap.String("product", u.Product),
		zap.String("file", filepath.Base(u.Path)),
	)
	if err := s.uploader.UploadFile(ctx, corpusKey, u.Path, u.Tags()); err != nil {
		metrics.SyncFilesTotal.WithLabelValues("failed").Inc()
		return &domain.UploadError{Path: u.Path, Err: err}
	}
	metrics.SyncFilesTotal.WithLabelValues("uploaded").Inc()
	return nil
}
