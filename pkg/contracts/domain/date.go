package domain

import (
	"strings"
	"time"
)

// ReportDateFormat is the DD-MM-YYYY layout used by every rendered output.
const ReportDateFormat = "02-01-2006"

// Date is a calendar day. The zero value means "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates t to its calendar day. A zero time yields the zero Date.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return Date{y, m, d}
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// After reports whether d is strictly later than x. An absent date is never
// after anything, and any present date is after an absent one.
func (d Date) After(x Date) bool {
	if d.IsZero() {
		return false
	}
	if x.IsZero() {
		return true
	}
	return d.time().After(x.time())
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return d.time()
}

// Format renders the date with layout, or "" when absent.
func (d Date) Format(layout string) string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(layout)
}

// String renders the date as DD-MM-YYYY, or "" when absent.
func (d Date) String() string { return d.Format(ReportDateFormat) }

// Latest returns the later of a and b, ignoring absent dates.
func Latest(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

// ParseDate tries each layout in order and returns the first match.
func ParseDate(s string, layouts []string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}
	return Date{}, false
}
