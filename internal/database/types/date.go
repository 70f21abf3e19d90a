package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "entity-tracker-backend/internal/errors"
)

// DateLayout is the wire and display layout of calendar dates
const DateLayout = "2006-01-02"

// Date is a calendar date without time-of-day or zone.
type Date struct {
	t time.Time
}

// NewDate creates a Date for the given calendar day
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's location
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string; field names the input in the returned error
func ParseDate(field, value string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, apperrors.NewInvalidFormatError(field, "YYYY-MM-DD")
	}
	return DateOf(t), nil
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Time returns midnight UTC of the date
func (d Date) Time() time.Time {
	return d.t
}

// IsZero reports whether d is the zero date
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Equal reports whether d and other denote the same day
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// MarshalJSON encodes the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return apperrors.NewInvalidFormatError("date", "YYYY-MM-DD")
	}
	parsed, err := ParseDate("date", s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType maps Date to a DATE column
func (Date) GormDataType() string {
	return "date"
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan implements sql.Scanner. Drivers hand dates back as time.Time or as text
// (SQLite keeps whatever was written), so both are accepted.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return apperrors.NewCorruptDataError("date", fmt.Errorf("unsupported type %T", value))
	}
}

func (d *Date) scanText(s string) error {
	s = strings.TrimSpace(s)
	if len(s) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			*d = DateOf(t)
			return nil
		}
	}
	return apperrors.NewCorruptDataError("date", fmt.Errorf("cannot parse %q", s))
}
