package dateutil

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the wire format for timestamps.
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Now is a small indirection to allow test stubbing.
var Now = time.Now

// Today returns the current date at midnight local time.
func Today() time.Time {
	return StartOfDay(Now())
}

// StartOfDay truncates a timestamp to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 on the given date.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// DaysBetween returns the number of whole days from one date to another.
// Negative when `to` is before `from`.
func DaysBetween(from, to time.Time) int {
	f := StartOfDay(from)
	t := StartOfDay(to)
	return int(t.Sub(f).Hours() / 24)
}

// AddDays returns the date shifted by the given number of days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// DaysAgo returns the date N days before today.
func DaysAgo(days int) time.Time {
	return AddDays(Today(), -days)
}

// DaysFromNow returns the date N days after today.
func DaysFromNow(days int) time.Time {
	return AddDays(Today(), days)
}

// IsOverdueDeadline reports whether a deadline lies strictly before today.
func IsOverdueDeadline(deadline time.Time) bool {
	return StartOfDay(deadline).Before(Today())
}

// IsUrgentDeadline reports whether a deadline falls within the 3-day urgency
// window (today through today+3). Overdue deadlines are not in the window;
// they are handled by IsOverdueDeadline.
func IsUrgentDeadline(deadline time.Time) bool {
	days := DaysBetween(Today(), deadline)
	return days >= 0 && days <= 3
}

// ParseDate parses a calendar date in the wire format. Empty or malformed
// input yields nil rather than an error; callers that require a date must
// check for nil.
func ParseDate(dateStr string) *time.Time {
	if dateStr == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil
	}
	return &t
}

// ParseDateFlexible tries several common date layouts and reports whether
// any matched.
func ParseDateFlexible(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	layouts := []string{
		DateLayout,    // ISO date
		"2 Jan 2006",  // e.g., 30 Oct 2025
		time.RFC3339,  // full RFC3339
		"02 Jan 2006", // zero-padded day
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateTime renders a timestamp in the wire format.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// DeadlineDescription phrases a deadline relative to today.
func DeadlineDescription(deadline *time.Time) string {
	if deadline == nil {
		return "No deadline"
	}

	days := DaysBetween(Today(), *deadline)
	switch {
	case days < 0:
		overdue := -days
		return fmt.Sprintf("Overdue %d %s", overdue, pluralDay(overdue))
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due tomorrow"
	case days <= 30:
		return fmt.Sprintf("Due in %d days", days)
	default:
		weeks := days / 7
		return fmt.Sprintf("Due in %d %s", weeks, pluralWeek(weeks))
	}
}

func pluralDay(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func pluralWeek(n int) string {
	if n == 1 {
		return "week"
	}
	return "weeks"
}
