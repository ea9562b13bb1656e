// Package localdir stores capture images as files under a root directory.
// It is the default storage backend: a single-machine agent should not need
// cloud credentials to keep its own history.
package localdir

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"snaptex/internal/domain"
	"snaptex/internal/port"
)

type localStore struct {
	root string
}

// NewLocalStore creates a directory-backed ObjectStorage rooted at root. The
// bucket maps to a subdirectory, the key to a file path below it.
func NewLocalStore(root string) (port.ObjectStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return &localStore{root: root}, nil
}

func (s *localStore) path(bucket, key string) (string, error) {
	p := filepath.Join(s.root, bucket, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("key %q escapes storage root", key)
	}
	return p, nil
}

func (s *localStore) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	p, err := s.path(input.Bucket, input.Key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("creating object directory: %w", err)
	}

	f, err := os.Create(p)
	if err != nil {
		return nil, fmt.Errorf("creating object file: %w", err)
	}
	if _, err := io.Copy(f, input.Body); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("writing object file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing object file: %w", err)
	}

	return &port.UploadOutput{Location: p}, nil
}

func (s *localStore) Download(_ context.Context, bucket, key string) ([]byte, error) {
	p, err := s.path(bucket, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading object file: %w", err)
	}
	return data, nil
}

func (s *localStore) Delete(_ context.Context, bucket, key string) error {
	p, err := s.path(bucket, key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing object file: %w", err)
	}
	return nil
}

// GetPresignedURL returns a file URL. Local files need no signing; the
// expiry is accepted for interface compatibility and ignored.
func (s *localStore) GetPresignedURL(_ context.Context, bucket, key string, _ int64) (string, error) {
	p, err := s.path(bucket, key)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving object path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
