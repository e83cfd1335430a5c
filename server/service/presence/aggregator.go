// Package presence computes grouped statistics over per-user presence
// calendars: per-weekday interval totals and means, per-weekday mean
// start/end times, and per-month interval groupings.
//
// The grouping functions are pure: they never fail for well-formed input and
// a day whose end precedes its start simply contributes a negative interval.
package presence

import (
	"github.com/hrygo/presence-analyzer/internal/timeutil"
	"github.com/hrygo/presence-analyzer/store"
)

// WeekdayLabels are the weekday bucket labels, Monday first.
var WeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthLabels are the month bucket labels, January first.
var MonthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// GroupByWeekday collects each day's presence interval into the bucket of
// that day's weekday. Buckets are always 7, possibly empty; the order of
// intervals within a bucket follows the calendar map's iteration order and is
// unspecified.
func GroupByWeekday(cal store.UserCalendar) [7][]int {
	var buckets [7][]int
	for date, entry := range cal {
		wd := date.Weekday()
		buckets[wd] = append(buckets[wd], timeutil.Interval(entry.Start, entry.End))
	}
	return buckets
}

// MeanStartEnd holds the mean start and end wall-clock times for one weekday.
type MeanStartEnd struct {
	Start timeutil.TimeOfDay
	End   timeutil.TimeOfDay
}

// GroupMeanStartEndByWeekday computes the mean start and end time per
// weekday. All 7 weekday labels are always present in the result; a weekday
// without entries yields midnight for both, since the mean of no samples is 0.
func GroupMeanStartEndByWeekday(cal store.UserCalendar) map[string]MeanStartEnd {
	var starts, ends [7][]int
	for date, entry := range cal {
		wd := date.Weekday()
		starts[wd] = append(starts[wd], timeutil.SecondsSinceMidnight(entry.Start))
		ends[wd] = append(ends[wd], timeutil.SecondsSinceMidnight(entry.End))
	}

	result := make(map[string]MeanStartEnd, len(WeekdayLabels))
	for i, label := range WeekdayLabels {
		result[label] = MeanStartEnd{
			Start: timeutil.TimeFromSeconds(int(timeutil.Mean(starts[i]))),
			End:   timeutil.TimeFromSeconds(int(timeutil.Mean(ends[i]))),
		}
	}
	return result
}

// GroupIntervalsByMonth collects each day's presence interval into the bucket
// of that day's calendar month, January first. Buckets are always 12,
// possibly empty.
func GroupIntervalsByMonth(cal store.UserCalendar) [12][]int {
	var buckets [12][]int
	for date, entry := range cal {
		m := date.MonthIndex()
		buckets[m] = append(buckets[m], timeutil.Interval(entry.Start, entry.End))
	}
	return buckets
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
