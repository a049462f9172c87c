package models

import (
	"bytes"
	"strings"
	"sync/atomic"
	"time"
)

// DateLayout is the wire and display layout for calendar dates.
const DateLayout = "2006-01-02"

var dateZone atomic.Pointer[time.Location]

// SetDateLocation sets the hotel's time zone. Timestamps are moved into it
// before their calendar day is taken. The default is UTC.
func SetDateLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	dateZone.Store(loc)
}

func dateLocation() *time.Location {
	if loc := dateZone.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

// Date is a calendar day at midnight UTC. The hotel API sends either plain
// dates or full ISO timestamps.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf builds a Date from its parts.
func DateOf(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate reads YYYY-MM-DD or an ISO timestamp. A timestamp with a zone
// is read in the hotel's zone, so "2026-01-10T21:00:00Z" is the 11th at UTC+3.
func ParseDate(value string) (Date, error) {
	str := strings.TrimSpace(value)
	if len(str) > 10 {
		loc := dateLocation()
		if t, err := time.Parse(time.RFC3339Nano, str); err == nil {
			return NewDate(t.In(loc)), nil
		}
		for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
			if t, err := time.ParseInLocation(layout, str, loc); err == nil {
				return NewDate(t), nil
			}
		}
		str = str[:10]
	}
	t, err := time.Parse(DateLayout, str)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// SameDay reports whether both dates fall on the same calendar day.
func (d Date) SameDay(o Date) bool {
	return !d.IsZero() && d.Time.Equal(o.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON emits "YYYY-MM-DD" or null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON accepts dates, timestamps, empty strings and null. Unparsable
// values decode to the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(strings.Trim(string(raw), `"`))
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}
