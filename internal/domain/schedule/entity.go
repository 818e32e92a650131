package schedule

import "time"

// Schedule is the aggregate root for one business unit's week of work.
// WeekStart is always the canonical Monday 00:00:00 UTC produced by
// timeutil.NormalizeToWeekStart; at most one schedule exists per
// (business unit, week start) pair.
type Schedule struct {
	ID             string
	BusinessUnitID string
	WeekStart      time.Time
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	// StatusArchived is terminal: no owned shift may be mutated afterwards.
	// Only the administrative Archive operation produces it.
	StatusArchived Status = "ARCHIVED"
)
