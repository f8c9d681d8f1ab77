package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryAccess signals a missing, non-directory or unreadable data path.
	ErrDirectoryAccess = errors.New("directory access")
	// ErrAmbiguousCorpus signals that a corpus name did not resolve to exactly one corpus.
	ErrAmbiguousCorpus = errors.New("ambiguous corpus")
	// ErrLifecycle signals a rejected corpus create/delete/list.
	ErrLifecycle = errors.New("corpus lifecycle")
	// ErrUpload signals a failed file upload.
	ErrUpload = errors.New("upload failed")
	// ErrQuery signals a failed query submission or response.
	ErrQuery = errors.New("query failed")
	// ErrRemoteService signals a non-success answer from the remote search service.
	ErrRemoteService = errors.New("remote service error")
	// ErrInvalidMode signals an unknown initialization mode.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidConfig signals an unusable configuration value.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrNoSession signals a sync or query without a resolved corpus.
	ErrNoSession = errors.New("corpus session not initialized")
)

// DirectoryAccessError wraps ErrDirectoryAccess with the offending path.
type DirectoryAccessError struct {
	Path string
	Err  error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDirectoryAccess.Error(), e.Path, e.Err)
}

func (e *DirectoryAccessError) Unwrap() []error { return []error{ErrDirectoryAccess, e.Err} }

// AmbiguousCorpusError reports how many corpora carried the requested name.
type AmbiguousCorpusError struct {
	Name    string
	Matches int
}

func (e *AmbiguousCorpusError) Error() string {
	if e.Matches == 0 {
		return fmt.Sprintf("%s: no corpus named %q", ErrAmbiguousCorpus.Error(), e.Name)
	}
	return fmt.Sprintf("%s: expected a single corpus named %q, found %d", ErrAmbiguousCorpus.Error(), e.Name, e.Matches)
}

func (e *AmbiguousCorpusError) Unwrap() error { return ErrAmbiguousCorpus }

// LifecycleError wraps a failed corpus operation.
type LifecycleError struct {
	Op     string // list, create, delete, settle
	Corpus string
	Err    error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", ErrLifecycle.Error(), e.Op, e.Corpus, e.Err)
}

func (e *LifecycleError) Unwrap() []error { return []error{ErrLifecycle, e.Err} }

// UploadError wraps the first failed upload of a sync pass.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUpload.Error(), e.Path, e.Err)
}

func (e *UploadError) Unwrap() []error { return []error{ErrUpload, e.Err} }

// QueryError wraps a failed query.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %q: %v", ErrQuery.Error(), e.Query, e.Err)
}

func (e *QueryError) Unwrap() []error { return []error{ErrQuery, e.Err} }
