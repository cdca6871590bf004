package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	isoLayout     = "2006-01-02"
	displayLayout = "01/02/2006"

	// NotAvailable is shown in place of a missing payment date.
	NotAvailable = "not available"
)

// Date is a calendar date without time of day. The zero value means "no date".
type Date struct {
	t time.Time
}

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date in the timestamp's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts YYYY-MM-DD and MM/DD/YYYY. An empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range []string{isoLayout, displayLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or MM/DD/YYYY", s)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return d.t
}

// Equal compares calendar dates.
func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

// DaysUntil returns the whole number of days from d to o (negative when o is earlier).
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

// String formats as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(isoLayout)
}

// Display formats as MM/DD/YYYY, or NotAvailable for the zero Date.
func (d Date) Display() string {
	return DisplayDate(d.String())
}

// DisplayDate reformats an ISO date string to MM/DD/YYYY. Empty input renders
// as NotAvailable; anything else that does not parse is returned unchanged.
func DisplayDate(iso string) string {
	if iso == "" {
		return NotAvailable
	}
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format(displayLayout)
}

// MarshalJSON writes the ISO form, or null for the zero Date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts null or any layout ParseDate understands.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the zero Date as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

// Scan reads DATE columns as returned by lib/pq, plus string forms.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
	case []byte:
		return d.Scan(string(v))
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

// QuarterlyDueDates returns the four estimated-tax deadlines that belong to
// the given year. The last one falls in January of the following year.
func QuarterlyDueDates(year int) []Date {
	return []Date{
		NewDate(year, time.April, 15),
		NewDate(year, time.June, 15),
		NewDate(year, time.September, 15),
		NewDate(year+1, time.January, 15),
	}
}
