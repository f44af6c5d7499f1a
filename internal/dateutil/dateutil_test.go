package dateutil

import (
	"testing"
	"time"
)

func freezeNow(t *testing.T, frozen time.Time) {
	t.Helper()
	Now = func() time.Time { return frozen }
	t.Cleanup(func() { Now = time.Now })
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2026, 3, 10, 13, 45, 0, 0, time.Local)
	to := time.Date(2026, 3, 15, 2, 0, 0, 0, time.Local)

	if got := DaysBetween(from, to); got != 5 {
		t.Fatalf("expected 5 days, got %d", got)
	}
	if got := DaysBetween(to, from); got != -5 {
		t.Fatalf("expected -5 days, got %d", got)
	}
	if got := DaysBetween(from, from); got != 0 {
		t.Fatalf("expected 0 days, got %d", got)
	}
}

func TestIsOverdueDeadline(t *testing.T) {
	freezeNow(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))

	yesterday := time.Date(2026, 3, 9, 23, 0, 0, 0, time.Local)
	if !IsOverdueDeadline(yesterday) {
		t.Fatalf("expected yesterday to be overdue")
	}

	// Due today is not overdue, regardless of time of day.
	todayMorning := time.Date(2026, 3, 10, 1, 0, 0, 0, time.Local)
	if IsOverdueDeadline(todayMorning) {
		t.Fatalf("expected today to not be overdue")
	}
}

func TestIsUrgentDeadline_Window(t *testing.T) {
	freezeNow(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))

	cases := []struct {
		days int
		want bool
	}{
		{-1, false}, // overdue is not urgent
		{0, true},
		{3, true},
		{4, false},
	}
	for _, tc := range cases {
		deadline := Today().AddDate(0, 0, tc.days)
		if got := IsUrgentDeadline(deadline); got != tc.want {
			t.Fatalf("days=%d: expected %v, got %v", tc.days, tc.want, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	if got := ParseDate("2026-03-10"); got == nil || got.Day() != 10 {
		t.Fatalf("expected parsed date, got %v", got)
	}
	if got := ParseDate(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := ParseDate("10/03/2026"); got != nil {
		t.Fatalf("expected nil for unsupported layout, got %v", got)
	}
}

func TestParseDateFlexible(t *testing.T) {
	inputs := []string{
		"2026-03-10",
		"10 Mar 2026",
		"2026-03-10T08:00:00Z",
	}
	for _, input := range inputs {
		got, ok := ParseDateFlexible(input)
		if !ok {
			t.Fatalf("expected %q to parse", input)
		}
		if got.Year() != 2026 || got.Month() != time.March || got.Day() != 10 {
			t.Fatalf("wrong date for %q: %v", input, got)
		}
	}
	if _, ok := ParseDateFlexible("not a date"); ok {
		t.Fatalf("expected parse failure")
	}
}

func TestDeadlineDescription(t *testing.T) {
	freezeNow(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))

	cases := []struct {
		days *int
		want string
	}{
		{nil, "No deadline"},
		{intp(-3), "Overdue 3 days"},
		{intp(-1), "Overdue 1 day"},
		{intp(0), "Due today"},
		{intp(1), "Due tomorrow"},
		{intp(14), "Due in 14 days"},
		{intp(45), "Due in 6 weeks"},
	}
	for _, tc := range cases {
		var deadline *time.Time
		if tc.days != nil {
			d := Today().AddDate(0, 0, *tc.days)
			deadline = &d
		}
		if got := DeadlineDescription(deadline); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func intp(n int) *int { return &n }
