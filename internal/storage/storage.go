// Package storage persists uploaded media and returns the public URL.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Store interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// LocalStore writes files under Dir; the router serves Dir at /uploads.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Put(_ context.Context, name string, data []byte, _ string) (string, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.BaseURL + "/uploads/" + name, nil
}
