package timeutil

import "time"

// NormalizeToWeekStart maps any instant to the Monday 00:00:00 UTC of the
// calendar week it falls in. Every schedule query and command that accepts a
// week reference goes through this, so callers may pass any day of the week
// and still address the same schedule row. Idempotent: a canonical week start
// normalizes to itself.
func NormalizeToWeekStart(t time.Time) time.Time {
	utc := t.UTC()
	// time.Weekday numbers Sunday as 0; shift so Monday is day 0.
	daysSinceMonday := (int(utc.Weekday()) + 6) % 7
	monday := utc.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekEnd returns the exclusive end of the week that begins at weekStart,
// i.e. the following Monday 00:00:00 UTC.
func WeekEnd(weekStart time.Time) time.Time {
	return NormalizeToWeekStart(weekStart).AddDate(0, 0, 7)
}
