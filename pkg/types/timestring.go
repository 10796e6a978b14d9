package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeString is a wall-clock time of day in "HH:MM" form. It is the exchange
// format for working-hours boundaries and appointment start/end times between
// the API, the domain and the database (postgres TIME columns).
type TimeString string

const layout = "15:04"

// NewTimeString truncates t to its HH:MM component.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout))
}

// NewTimeStringFromString parses s, expecting "HH:MM".
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(layout, s); err != nil {
		return "", fmt.Errorf("invalid time string %q: %w", s, err)
	}
	return TimeString(s), nil
}

func (ts TimeString) String() string { return string(ts) }

// IsZero reports whether the value is unset.
func (ts TimeString) IsZero() bool { return ts == "" }

// Validate checks the "HH:MM" format.
func (ts TimeString) Validate() error {
	_, err := time.Parse(layout, string(ts))
	if err != nil {
		return fmt.Errorf("invalid time string %q: %w", ts, err)
	}
	return nil
}

func (ts TimeString) parse() (time.Time, error) {
	return time.Parse(layout, string(ts))
}

// AddMinutes returns the time of day m minutes later. Results wrap around
// midnight, matching postgres TIME arithmetic.
func (ts TimeString) AddMinutes(m int) (TimeString, error) {
	t, err := ts.parse()
	if err != nil {
		return "", err
	}
	return TimeString(t.Add(time.Duration(m) * time.Minute).Format(layout)), nil
}

// IsBefore reports whether ts is strictly earlier in the day than other.
// Both values must be valid; invalid values compare as not-before.
func (ts TimeString) IsBefore(other TimeString) bool {
	a, err1 := ts.parse()
	b, err2 := other.parse()
	if err1 != nil || err2 != nil {
		return false
	}
	return a.Before(b)
}

// IsAfter reports whether ts is strictly later in the day than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	a, err1 := ts.parse()
	b, err2 := other.parse()
	if err1 != nil || err2 != nil {
		return false
	}
	return a.After(b)
}

// At anchors the time of day onto the given date in that date's location.
func (ts TimeString) At(date time.Time) (time.Time, error) {
	t, err := ts.parse()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as time.Time,
// string or []byte depending on the driver path.
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case string:
		return ts.scanString(v)
	case []byte:
		return ts.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

func (ts *TimeString) scanString(s string) error {
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Value implements driver.Valuer.
func (ts TimeString) Value() (driver.Value, error) {
	if ts == "" {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts) + ":00", nil
}
