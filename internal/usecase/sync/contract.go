package sync

import "context"

// Walker lists the immediate children of a data directory.
type Walker interface {
	ListSubdirectories(path string) ([]string, error)
	ListFilesByExtension(path string, exts []string) ([]string, error)
}

// Uploader sends one file with its document metadata to a corpus.
type Uploader interface {
	UploadFile(ctx context.Context, corpusKey, filePath string, metadata map[string]any) error
}
