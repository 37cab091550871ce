// Package storage provides the blob store capability backing product images:
// store bytes under a directory, get back a path, delete by path.
package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Store persists and removes blobs addressed by a relative path.
type Store interface {
	Save(dir string, ext string, content []byte) (string, error)
	Delete(path string) error
}

// DiskStore keeps blobs under a root directory on the local filesystem.
type DiskStore struct {
	root string
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore creates a disk-backed store rooted at root.
func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

// Save writes content under dir with a fresh uuid name and returns the
// relative blob path.
func (s *DiskStore) Save(dir string, ext string, content []byte) (string, error) {
	rel := path.Join(dir, uuid.New().String()+ext)
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create blob dir: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("write blob %s: %w", rel, err)
	}
	return rel, nil
}

// Delete removes a blob. A missing blob is not an error; the cleanup is
// best effort.
func (s *DiskStore) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %s: %w", rel, err)
	}
	return nil
}
