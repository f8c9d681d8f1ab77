package productindex

import "github.com/kailas-cloud/productindex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDirectoryAccess = domain.ErrDirectoryAccess
	ErrAmbiguousCorpus = domain.ErrAmbiguousCorpus
	ErrLifecycle       = domain.ErrLifecycle
	ErrUpload          = domain.ErrUpload
	ErrQuery           = domain.ErrQuery
	ErrRemoteService   = domain.ErrRemoteService
	ErrInvalidMode     = domain.ErrInvalidMode
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrNoSession       = domain.ErrNoSession
)
