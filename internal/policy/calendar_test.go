package policy

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuarterOf(t *testing.T) {
	tests := []struct {
		in      time.Time
		year    int
		quarter int
	}{
		{date(2024, time.January, 1), 2024, 1},
		{date(2024, time.March, 31), 2024, 1},
		{date(2024, time.April, 1), 2024, 2},
		{date(2024, time.June, 15), 2024, 2},
		{date(2024, time.September, 30), 2024, 3},
		{date(2024, time.October, 1), 2024, 4},
		{date(2024, time.December, 31), 2024, 4},
	}

	for _, tt := range tests {
		q := QuarterOf(tt.in)
		if q.Year != tt.year || q.Quarter != tt.quarter {
			t.Errorf("QuarterOf(%s) = %d Q%d, want %d Q%d",
				tt.in.Format("2006-01-02"), q.Year, q.Quarter, tt.year, tt.quarter)
		}
	}
}

func TestQuarterNext(t *testing.T) {
	tests := []struct {
		in   Quarter
		want Quarter
	}{
		{Quarter{2024, 1}, Quarter{2024, 2}},
		{Quarter{2024, 2}, Quarter{2024, 3}},
		{Quarter{2024, 3}, Quarter{2024, 4}},
		{Quarter{2024, 4}, Quarter{2025, 1}},
	}

	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%d Q%d Next() = %d Q%d, want %d Q%d",
				tt.in.Year, tt.in.Quarter, got.Year, got.Quarter, tt.want.Year, tt.want.Quarter)
		}
	}

	// Four steps from any quarter lands on the same quarter next year.
	q := Quarter{2023, 3}
	got := q.Next().Next().Next().Next()
	if got != (Quarter{2024, 3}) {
		t.Errorf("expected 2024 Q3 after four steps, got %d Q%d", got.Year, got.Quarter)
	}
}

func TestQuarterStart(t *testing.T) {
	tests := []struct {
		in   Quarter
		want time.Time
	}{
		{Quarter{2024, 1}, date(2024, time.January, 1)},
		{Quarter{2024, 2}, date(2024, time.April, 1)},
		{Quarter{2024, 3}, date(2024, time.July, 1)},
		{Quarter{2024, 4}, date(2024, time.October, 1)},
	}

	for _, tt := range tests {
		if got := tt.in.Start(); !got.Equal(tt.want) {
			t.Errorf("%d Q%d Start() = %s, want %s",
				tt.in.Year, tt.in.Quarter, got, tt.want)
		}
	}
}

func TestShiftMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"same_day", date(2023, time.January, 15), 24, date(2025, time.January, 15)},
		{"within_year", date(2020, time.June, 1), 6, date(2020, time.December, 1)},
		{"across_year", date(2020, time.June, 1), 24, date(2022, time.June, 1)},
		{"day_overflow_rolls_forward", date(2022, time.January, 31), 1, date(2022, time.March, 1)},
		{"leap_day_to_non_leap", date(2020, time.February, 29), 12, date(2021, time.March, 1)},
		{"december_wraps", date(2023, time.December, 10), 2, date(2024, time.February, 10)},
		{"thirty_one_to_thirty", date(2023, time.August, 31), 1, date(2023, time.October, 1)},
		{"zero_months", date(2023, time.May, 5), 0, date(2023, time.May, 5)},
		{"negative_months", date(2023, time.March, 15), -3, date(2022, time.December, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShiftMonths(tt.in, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("ShiftMonths(%s, %d) = %s, want %s",
					tt.in.Format("2006-01-02"), tt.n, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestShiftMonthsKeepsClock(t *testing.T) {
	in := time.Date(2023, time.January, 15, 14, 30, 45, 0, time.UTC)
	got := ShiftMonths(in, 24)
	want := time.Date(2025, time.January, 15, 14, 30, 45, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}
