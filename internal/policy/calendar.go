// Package policy implements time-based support-window evaluation for
// package release histories, following the SPEC0 community standard:
// a minor version line stays supported for a fixed number of months after
// its first final release, and the newest line is supported forever.
package policy

import (
	"time"
)

// Quarter identifies one calendar quarter.
type Quarter struct {
	Year    int
	Quarter int // 1-4
}

// QuarterOf returns the calendar quarter containing t.
func QuarterOf(t time.Time) Quarter {
	return Quarter{Year: t.Year(), Quarter: (int(t.Month())-1)/3 + 1}
}

// Next returns the following quarter, wrapping Q4 into the next year.
func (q Quarter) Next() Quarter {
	if q.Quarter == 4 {
		return Quarter{Year: q.Year + 1, Quarter: 1}
	}
	return Quarter{Year: q.Year, Quarter: q.Quarter + 1}
}

// Start returns midnight UTC on the first day of the quarter.
func (q Quarter) Start() time.Time {
	return time.Date(q.Year, time.Month((q.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
}

// ShiftMonths moves t forward n months using calendar-field arithmetic,
// keeping the day and clock fields. When the day does not exist in the
// target month the date rolls over to day 1 of the month after it:
// Jan 31 + 1 month = Mar 1.
func ShiftMonths(t time.Time, n int) time.Time {
	yearDelta, monthIdx := floorDiv(int(t.Month())+n-1, 12)
	year := t.Year() + yearDelta
	month := time.Month(monthIdx + 1)

	if t.Day() > daysIn(year, month) {
		year, month = nextMonth(year, month)
		return time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}
	return time.Date(year, month, t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// floorDiv divides with flooring, so negative shifts land in the right
// year: -1/12 is -1 remainder 11, not 0 remainder -1.
func floorDiv(a, n int) (q, r int) {
	q = a / n
	r = a % n
	if r < 0 {
		q--
		r += n
	}
	return q, r
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
