package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "entity-tracker-backend/internal/errors"
)

// LocalStore keeps blobs as files in a single directory
type LocalStore struct {
	dir      string
	maxBytes int64
}

// NewLocalStore creates dir if needed and returns a store writing into it
func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if dir == "" {
		return nil, apperrors.NewConfigurationError("upload directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewStorageError("init", err)
	}
	return &LocalStore{dir: dir, maxBytes: limitOrDefault(maxBytes)}, nil
}

// Dir returns the directory blobs are written to
func (s *LocalStore) Dir() string {
	return s.dir
}

// Store writes content to a temporary file and renames it into place once the
// size check passes.
func (s *LocalStore) Store(ctx context.Context, content io.Reader, originalFilename string) (string, int64, error) {
	locator, err := newLocator(originalFilename)
	if err != nil {
		return "", 0, err
	}
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", 0, apperrors.NewStorageError("store", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	written, err := io.Copy(tmp, io.LimitReader(content, s.maxBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", 0, apperrors.NewStorageError("store", err)
	}
	if written > s.maxBytes {
		return "", 0, &apperrors.TooLargeError{Limit: s.maxBytes}
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, locator)); err != nil {
		return "", 0, apperrors.NewStorageError("store", err)
	}
	committed = true
	return locator, written, nil
}

// Open returns a reader over the blob
func (s *LocalStore) Open(_ context.Context, locator string) (io.ReadCloser, error) {
	if err := checkLocator(locator); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, locator))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ErrBlobNotFound
		}
		return nil, apperrors.NewStorageError("open", err)
	}
	return f, nil
}

// Delete unlinks the blob
func (s *LocalStore) Delete(_ context.Context, locator string) error {
	if err := checkLocator(locator); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, locator)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.NewStorageError("delete", fmt.Errorf("%s: %w", locator, err))
	}
	return nil
}
