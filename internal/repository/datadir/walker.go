// Package datadir lists the manufacturer/product/file layout of the data root.
package datadir

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/productindex/internal/domain"
)

// DefaultExtensions are the document types uploaded during a sync.
var DefaultExtensions = []string{"pdf", "doc", "docx"}

// Walker lists immediate children of a directory. It never recurses.
type Walker struct{}

// New creates a Walker.
func New() *Walker { return &Walker{} }

// ListSubdirectories returns the names of the immediate child directories of path.
// The order is unspecified.
func (w *Walker) ListSubdirectories(path string) ([]string, error) {
	entries, err := readDir(path)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		if isDir(path, e) {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// ListFilesByExtension returns the names of the immediate child files of path
// whose name ends with "." + one of exts. Matching is case-sensitive.
func (w *Walker) ListFilesByExtension(path string, exts []string) ([]string, error) {
	entries, err := readDir(path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if isDir(path, e) || !hasExtension(e.Name(), exts) {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}

func readDir(path string) ([]fs.DirEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &domain.DirectoryAccessError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return nil, &domain.DirectoryAccessError{Path: path, Err: fmt.Errorf("not a directory")}
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, &domain.DirectoryAccessError{Path: path, Err: err}
	}
	return entries, nil
}

// isDir follows symlinks so linked product directories are walked like real ones.
func isDir(parent string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}

func hasExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, "."+ext) {
			return true
		}
	}
	return false
}
