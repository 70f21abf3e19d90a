// Package storage keeps uploaded document content outside the relational store.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "entity-tracker-backend/internal/errors"

	"github.com/google/uuid"
)

//go:generate mockgen -source=blob.go -destination=../mocks/storage_mocks.go -package=mocks

// DefaultMaxUploadBytes is the upload ceiling when none is configured
const DefaultMaxUploadBytes int64 = 16 << 20

// BlobStore persists document content under collision-free locators
type BlobStore interface {
	// Store validates the filename extension, writes content and returns the
	// locator and the number of bytes written. Nothing is left behind on error.
	Store(ctx context.Context, content io.Reader, originalFilename string) (string, int64, error)
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
	// Delete removes a blob; a missing blob is not an error.
	Delete(ctx context.Context, locator string) error
}

var allowedExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true,
	".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
	".txt": true, ".csv": true, ".rtf": true, ".odt": true, ".ods": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tiff": true, ".webp": true,
}

var locatorPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.[a-z0-9]+$`)

// AllowedExtension reports whether uploads with this filename are accepted
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// newLocator derives a fresh locator from the client filename; only the
// lowercased extension survives.
func newLocator(originalFilename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		return "", &apperrors.UnsupportedTypeError{Extension: ext}
	}
	return uuid.NewString() + ext, nil
}

func checkLocator(locator string) error {
	if !locatorPattern.MatchString(locator) {
		return apperrors.ErrBlobNotFound
	}
	return nil
}

func limitOrDefault(limit int64) int64 {
	if limit <= 0 {
		return DefaultMaxUploadBytes
	}
	return limit
}
