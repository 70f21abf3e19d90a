package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"entity-tracker-backend/internal/database/types"
	apperrors "entity-tracker-backend/internal/errors"
)

// patch turns Optional fields into a column update set. The first invalid
// field stops the build; later calls are ignored.
type patch struct {
	updates map[string]interface{}
	err     error
}

func newPatch() *patch {
	return &patch{updates: make(map[string]interface{})}
}

func (p *patch) fail(column, message string) {
	if p.err == nil {
		p.err = apperrors.NewValidationError(column, message)
	}
}

func (p *patch) checkLength(column, value string, max int) bool {
	if max > 0 && utf8.RuneCountInString(value) > max {
		p.fail(column, fmt.Sprintf("must be at most %d characters", max))
		return false
	}
	return true
}

// required is a non-empty string column that cannot be cleared
func (p *patch) required(column string, o Optional[string], max int) {
	if !o.Set || p.err != nil {
		return
	}
	if o.Null {
		p.fail(column, "cannot be null")
		return
	}
	if strings.TrimSpace(o.Value) == "" {
		p.fail(column, "is required")
		return
	}
	if p.checkLength(column, o.Value, max) {
		p.updates[column] = o.Value
	}
}

// defaulted is a string column with a database default; it may be changed but not cleared
func (p *patch) defaulted(column string, o Optional[string], max int) {
	if !o.Set || p.err != nil {
		return
	}
	if o.Null {
		p.fail(column, "cannot be null")
		return
	}
	if p.checkLength(column, o.Value, max) {
		p.updates[column] = o.Value
	}
}

// nullable is an optional string column; null clears it, "" is stored as given
func (p *patch) nullable(column string, o Optional[string], max int) {
	if !o.Set || p.err != nil {
		return
	}
	if o.Null {
		p.updates[column] = nil
		return
	}
	if p.checkLength(column, o.Value, max) {
		p.updates[column] = o.Value
	}
}

// date is an optional YYYY-MM-DD column; null or "" clears it
func (p *patch) date(column string, o Optional[string]) {
	if !o.Set || p.err != nil {
		return
	}
	if o.Null || strings.TrimSpace(o.Value) == "" {
		p.updates[column] = nil
		return
	}
	d, err := types.ParseDate(column, o.Value)
	if err != nil {
		p.err = err
		return
	}
	p.updates[column] = d
}

// number is a float column; null clears it unless notNull
func (p *patch) number(column string, o Optional[float64], nonNegative, notNull bool) {
	if !o.Set || p.err != nil {
		return
	}
	if o.Null {
		if notNull {
			p.fail(column, "cannot be null")
			return
		}
		p.updates[column] = nil
		return
	}
	if nonNegative && o.Value < 0 {
		p.fail(column, "must not be negative")
		return
	}
	p.updates[column] = o.Value
}

// dependencies is the task id list; null clears it
func (p *patch) dependencies(column string, o Optional[json.RawMessage]) {
	if !o.Set || p.err != nil {
		return
	}
	if o.Null {
		p.updates[column] = nil
		return
	}
	deps, err := types.ParseDependencies(o.Value)
	if err != nil {
		p.err = err
		return
	}
	p.updates[column] = deps
}

// set stores a precomputed value for column
func (p *patch) set(column string, value interface{}) {
	if p.err == nil {
		p.updates[column] = value
	}
}

func (p *patch) result() (map[string]interface{}, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.updates, nil
}

// optionalDate parses a create-time date; nil and "" mean no date
func optionalDate(field string, value *string) (*types.Date, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	d, err := types.ParseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// optionalDependencies parses a create-time dependency list; an absent
// payload means none.
func optionalDependencies(raw json.RawMessage) (types.Dependencies, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	return types.ParseDependencies(raw)
}

func stringOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}
