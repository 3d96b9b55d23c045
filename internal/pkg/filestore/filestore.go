// Package filestore keeps uploaded workbooks on local disk under opaque
// uuid-prefixed keys, so two uploads with the same filename never collide.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agrisolar/portal/internal/pkg/constants"
	"github.com/google/uuid"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return &Store{dir: dir}, nil
}

func (s *Store) Save(filename string, r io.Reader) (string, error) {
	key := uuid.NewString() + "_" + filepath.Base(filename)

	f, err := os.Create(s.path(key))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}

	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(s.path(key))
		return "", fmt.Errorf("write blob: %w", err)
	}

	if err = f.Close(); err != nil {
		return "", fmt.Errorf("close blob: %w", err)
	}

	return key, nil
}

func (s *Store) Open(key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("blob %s: %w", key, constants.ErrFileMissing)
		}
		return nil, err
	}

	return f, nil
}

func (s *Store) Exists(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}
