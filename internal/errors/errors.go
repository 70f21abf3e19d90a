package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// UnsupportedTypeError is returned when an upload's file extension is not allowed
type UnsupportedTypeError struct {
	Extension string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Extension == "" {
		return "file type not allowed: missing extension"
	}
	return fmt.Sprintf("file type not allowed: %s", e.Extension)
}

// TooLargeError is returned when an upload exceeds the configured ceiling
type TooLargeError struct {
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file exceeds maximum size of %d bytes", e.Limit)
}

// StorageError wraps a blob store failure
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// MigrationError reports that a table could not be brought to the current schema
type MigrationError struct {
	Table string
	Err   error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration of table %s failed: %v", e.Table, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// CorruptDataError reports persisted content that does not decode to its declared shape
type CorruptDataError struct {
	Field string
	Err   error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data in %s: %v", e.Field, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Record Not Found Errors
var (
	ErrEntityNotFound   = &NotFoundError{Entity: "entity"}
	ErrAccountNotFound  = &NotFoundError{Entity: "account"}
	ErrTaskNotFound     = &NotFoundError{Entity: "task"}
	ErrDocumentNotFound = &NotFoundError{Entity: "document"}
	ErrBlobNotFound     = &NotFoundError{Entity: "document file"}
)

// Upload Errors
var (
	ErrNoFile = &ValidationError{Field: "file", Message: "no file provided"}
)

// Credential Errors
var (
	ErrCredentialsKeyMissing = &ConfigurationError{Message: "CREDENTIALS_SECRET must be set"}
	ErrSealedValueInvalid    = errors.New("sealed credential is invalid")
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsUnsupportedType checks if an error is an UnsupportedTypeError
func IsUnsupportedType(err error) bool {
	var typeErr *UnsupportedTypeError
	return errors.As(err, &typeErr)
}

// IsTooLarge checks if an error is a TooLargeError
func IsTooLarge(err error) bool {
	var sizeErr *TooLargeError
	return errors.As(err, &sizeErr)
}

// IsStorage checks if an error is a StorageError
func IsStorage(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

// IsMigration checks if an error is a MigrationError
func IsMigration(err error) bool {
	var migrationErr *MigrationError
	return errors.As(err, &migrationErr)
}

// IsCorruptData checks if an error is a CorruptDataError
func IsCorruptData(err error) bool {
	var corruptErr *CorruptDataError
	return errors.As(err, &corruptErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// NewNotFoundError creates a new NotFoundError for a custom record kind
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewInvalidFormatError creates a ValidationError for a value that does not match its expected layout
func NewInvalidFormatError(field, layout string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("invalid format, expected %s", layout)}
}

// NewStorageError wraps err as a StorageError for the given operation
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// NewMigrationError wraps err as a MigrationError for the given table
func NewMigrationError(table string, err error) error {
	return &MigrationError{Table: table, Err: err}
}

// NewCorruptDataError wraps err as a CorruptDataError for the given field
func NewCorruptDataError(field string, err error) error {
	return &CorruptDataError{Field: field, Err: err}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}
