package invoice

import (
	"fmt"
	"time"
)

// Dates travel as plain YYYY-MM-DD strings.
const dateLayout = time.DateOnly

func formatDay(t time.Time) string { return t.Format(dateLayout) }

// Today returns now as a YYYY-MM-DD date.
func Today(now time.Time) string { return formatDay(now) }

// EndOfMonth returns the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

// DefaultServiceDate is the last day of the previous month, unless fewer
// than five days are left in the current month, in which case it is the
// current month's last day.
func DefaultServiceDate(now time.Time) string {
	monthEnd := EndOfMonth(now)
	if monthEnd.Day()-now.Day() < 5 {
		return formatDay(monthEnd)
	}
	return formatDay(time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location()))
}

// AddDays shifts a YYYY-MM-DD date by days.
func AddDays(date string, days int) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("Parsing date failed: %w", err)
	}
	return formatDay(t.AddDate(0, 0, days)), nil
}

// FormatDate renders a YYYY-MM-DD date in the given format. Invalid dates
// render as "". Month names are English.
func FormatDate(date string, format DateFormat) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}

	switch format {
	case DateFormatDaySlash:
		return t.Format("02/01/2006")
	case DateFormatMonthSlash:
		return t.Format("01/02/2006")
	case DateFormatLongDay:
		return t.Format("2 January 2006")
	case DateFormatLongMonth:
		return t.Format("January 2, 2006")
	case DateFormatDayDot:
		return t.Format("02.01.2006")
	case DateFormatDayDash:
		return t.Format("02-01-2006")
	case DateFormatYearDot:
		return t.Format("2006.01.02")
	default:
		return t.Format(dateLayout)
	}
}
