package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "task"}
		assert.Equal(t, "task not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "task"}
		err2 := &NotFoundError{Entity: "task"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "task"}
		err2 := &NotFoundError{Entity: "account"}
		assert.False(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is with predefined errors", func(t *testing.T) {
		assert.True(t, errors.Is(ErrEntityNotFound, ErrEntityNotFound))
		assert.False(t, errors.Is(ErrEntityNotFound, ErrDocumentNotFound))
	})

	t.Run("errors.Is through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("load parent: %w", ErrEntityNotFound)
		assert.True(t, errors.Is(wrapped, ErrEntityNotFound))
		assert.True(t, IsNotFound(wrapped))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrTaskNotFound))
		assert.False(t, IsNotFound(ErrNoFile))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "name", Message: "is required"}
		assert.Equal(t, "validation error: name - is required", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		err := &ValidationError{Message: "payload is empty"}
		assert.Equal(t, "validation error: payload is empty", err.Error())
	})

	t.Run("Invalid format helper", func(t *testing.T) {
		err := NewInvalidFormatError("due_date", "YYYY-MM-DD")
		assert.True(t, IsValidation(err))
		assert.Contains(t, err.Error(), "due_date")
		assert.Contains(t, err.Error(), "YYYY-MM-DD")
	})
}

func TestUploadErrors(t *testing.T) {
	t.Run("Unsupported type", func(t *testing.T) {
		err := &UnsupportedTypeError{Extension: ".exe"}
		assert.Equal(t, "file type not allowed: .exe", err.Error())
		assert.True(t, IsUnsupportedType(err))
		assert.False(t, IsTooLarge(err))
	})

	t.Run("Unsupported type without extension", func(t *testing.T) {
		err := &UnsupportedTypeError{}
		assert.Contains(t, err.Error(), "missing extension")
	})

	t.Run("Too large", func(t *testing.T) {
		err := &TooLargeError{Limit: 1024}
		assert.Equal(t, "file exceeds maximum size of 1024 bytes", err.Error())
		assert.True(t, IsTooLarge(fmt.Errorf("upload: %w", err)))
	})
}

func TestWrappingErrors(t *testing.T) {
	cause := errors.New("disk full")

	t.Run("StorageError unwraps", func(t *testing.T) {
		err := NewStorageError("write", cause)
		assert.True(t, IsStorage(err))
		assert.True(t, errors.Is(err, cause))
		assert.Equal(t, "storage write failed: disk full", err.Error())
	})

	t.Run("MigrationError unwraps", func(t *testing.T) {
		err := NewMigrationError("task", cause)
		assert.True(t, IsMigration(err))
		assert.True(t, errors.Is(err, cause))
		assert.Contains(t, err.Error(), "task")
	})

	t.Run("CorruptDataError unwraps", func(t *testing.T) {
		err := NewCorruptDataError("dependencies", cause)
		assert.True(t, IsCorruptData(err))
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("ConfigurationError", func(t *testing.T) {
		assert.True(t, IsConfiguration(ErrCredentialsKeyMissing))
		assert.False(t, IsConfiguration(cause))
	})
}
