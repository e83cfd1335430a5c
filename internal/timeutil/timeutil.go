// Package timeutil provides wall-clock and calendar-date arithmetic for
// presence records.
//
// All values are timezone-free: a TimeOfDay is a plain wall-clock reading and
// a Date is a plain calendar date, matching the record source which carries
// no zone information.
package timeutil

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time within a single day.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses a HH:MM:SS string into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// String formats the time as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// SecondsSinceMidnight returns the number of seconds elapsed since 00:00:00.
// The result is in [0, 86399] for any valid TimeOfDay.
func SecondsSinceMidnight(t TimeOfDay) int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// TimeFromSeconds is the inverse of SecondsSinceMidnight. No wraparound is
// applied: an input outside [0, 86399] yields an hour outside [0, 23], so the
// caller must keep the argument in range.
func TimeFromSeconds(seconds int) TimeOfDay {
	hour := seconds / 3600
	seconds %= 3600
	minute := seconds / 60
	seconds %= 60
	return TimeOfDay{Hour: hour, Minute: minute, Second: seconds}
}

// Interval returns the signed number of seconds between start and end. The
// result is negative when end precedes start; no day-rollover correction is
// applied.
func Interval(start, end TimeOfDay) int {
	return SecondsSinceMidnight(end) - SecondsSinceMidnight(start)
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// Date is a calendar date without a timezone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the weekday index with Monday as 0 and Sunday as 6.
func (d Date) Weekday() int {
	// time.Weekday counts Sunday as 0.
	return (int(d.Time().Weekday()) + 6) % 7
}

// MonthIndex returns the zero-based month index, January as 0.
func (d Date) MonthIndex() int {
	return int(d.Month) - 1
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
