package utils

import (
	"meetocure-service/internal/pkg/constvars"
	"strings"
	"time"
)

// IsDateBeforeToday reports whether date (YYYY-MM-DD) falls on a calendar
// day strictly before now's day in loc. Today itself is not before today.
func IsDateBeforeToday(date string, now time.Time, loc *time.Location) (bool, error) {
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation(constvars.CalendarDateLayout, date, loc)
	if err != nil {
		return false, err
	}
	current := now.In(loc)
	today := time.Date(current.Year(), current.Month(), current.Day(), 0, 0, 0, 0, loc)
	return day.Before(today), nil
}

// CalendarDaysFrom returns count consecutive YYYY-MM-DD labels starting at
// now's day in loc.
func CalendarDaysFrom(now time.Time, loc *time.Location, count int) []string {
	if loc == nil {
		loc = time.UTC
	}
	current := now.In(loc)
	start := time.Date(current.Year(), current.Month(), current.Day(), 0, 0, 0, 0, loc)
	days := make([]string, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, start.AddDate(0, 0, i).Format(constvars.CalendarDateLayout))
	}
	return days
}

// NormalizeSlotTime turns loose client input like "10:30am" or " 9:05 pm"
// into the stored "10:30 AM" form. Input that does not parse is returned
// trimmed so validation reports it.
func NormalizeSlotTime(value string) string {
	trimmed := strings.ToUpper(strings.Join(strings.Fields(value), ""))
	if len(trimmed) < 3 {
		return strings.TrimSpace(value)
	}
	withSpace := trimmed[:len(trimmed)-2] + " " + trimmed[len(trimmed)-2:]
	parsed, err := time.Parse(constvars.SlotTimeLayout, withSpace)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return parsed.Format(constvars.SlotTimeLayout)
}
