// Package fs implements a filesystem medium: every key is one file under a root
// directory, replaced atomically through a temp file and rename.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"districtportal/internal/medium"
)

var _ medium.Medium = (*Store)(nil)

// Store implements medium.Medium using the local filesystem.
// It is not safe for concurrent writers across processes; the last rename wins.
type Store struct {
	root string
}

// New returns a filesystem-backed medium rooted at root, creating it if needed.
func New(root string) (*Store, error) {
	if root == "" {
		root = "./portaldata"
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create root: %w", err)
	}
	return &Store{root: root}, nil
}

// Driver returns the medium driver identifier.
func (s *Store) Driver() medium.Driver { return medium.DriverFilesystem }

// Root returns the directory holding the key files.
func (s *Store) Root() string { return s.root }

// sanitizeKey forbids path traversal, absolute keys and nested directories.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: empty key", medium.ErrInvalidKey)
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: key contains '..'", medium.ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: key contains a path separator", medium.ErrInvalidKey)
	}
	return key, nil
}

func (s *Store) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, k+".json"), nil
}

// GetItem reads the file backing key.
func (s *Store) GetItem(_ context.Context, key string) (string, bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

// SetItem writes value to a temp file and renames it over the key's file.
func (s *Store) SetItem(_ context.Context, key, value string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// atomically move into place
	return os.Rename(tmp.Name(), path)
}
