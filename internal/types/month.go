// Package types implements calendar types used across Pennywise.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var fullDate = regexp.MustCompile("^[0-9]{4}-[0-9]{2}-[0-9]{2}$")

// Month is a month in a specific year. It is always the first day of the month at 00:00 UTC.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs.
//
// The calendar fields of t are used as they are, the location is discarded.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// CurrentMonth returns the month of the current UTC date.
func CurrentMonth() Month {
	return MonthOf(time.Now().In(time.UTC))
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// Label returns the human readable form of the month, e.g. "March 2025".
func (m Month) Label() string {
	return time.Time(m).Format("January 2006")
}

// Time returns the first instant of the month.
func (m Month) Time() time.Time {
	return time.Time(m)
}

// MarshalJSON implements the json.Marshaler interface.
// The month is rendered as the full date of its first day, "2006-01-02".
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(m).Format(time.DateOnly) + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// Accepted formats are "2006-01", "2006-01-02" and RFC3339. Everything except
// the year and month is ignored.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	month, err := ParseMonthLenient(value)
	if err != nil {
		return err
	}

	*m = month
	return nil
}

// ParseMonthLenient parses a month from "2006-01", "2006-01-02" or an RFC3339 timestamp.
func ParseMonthLenient(s string) (Month, error) {
	pattern := time.RFC3339
	if fullDate.MatchString(s) {
		pattern = time.DateOnly
	} else if len(s) == len("2006-01") {
		pattern = "2006-01"
	}

	t, err := time.Parse(pattern, s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// ParseDateToMonth parses a string in RFC3339 full-date format and returns the Month value it represents.
func ParseDateToMonth(s string) (Month, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// Scan writes the value from the database.
func (m *Month) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*m = MonthOf(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	year, month, _ := time.Time(m).Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm the type.
func (Month) GormDataType() string {
	return "date"
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}
