package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	apperrors "entity-tracker-backend/internal/errors"
)

// Dependencies is the ordered list of task ids a task depends on, persisted as
// JSON array text. A nil list is stored as NULL.
type Dependencies []uint

// ParseDependencies decodes a JSON array of task ids
func ParseDependencies(data []byte) (Dependencies, error) {
	deps, err := decodeDependencies(data)
	if err != nil {
		return nil, apperrors.NewValidationError("dependencies", err.Error())
	}
	return deps, nil
}

// GormDataType maps Dependencies to a TEXT column
func (Dependencies) GormDataType() string {
	return "text"
}

// Value implements driver.Valuer
func (d Dependencies) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal([]uint(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. Stored text that is not a JSON array of ids is
// reported as corrupt instead of being read back as an empty list.
func (d *Dependencies) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*d = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return apperrors.NewCorruptDataError("dependencies", fmt.Errorf("unsupported type %T", value))
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		*d = nil
		return nil
	}

	deps, err := decodeDependencies(raw)
	if err != nil {
		return apperrors.NewCorruptDataError("dependencies", err)
	}
	*d = deps
	return nil
}

func decodeDependencies(data []byte) (Dependencies, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("expected a JSON array of task ids")
	}
	var ids []uint
	if err := json.Unmarshal(trimmed, &ids); err != nil {
		return nil, fmt.Errorf("expected a JSON array of task ids: %w", err)
	}
	if ids == nil {
		ids = []uint{}
	}
	return Dependencies(ids), nil
}
