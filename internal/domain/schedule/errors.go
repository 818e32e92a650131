package schedule

import "errors"

var (
	ErrScheduleNotFound     = errors.New("schedule not found")
	ErrScheduleExists       = errors.New("a schedule already exists for this business unit and week")
	ErrScheduleNotDraft     = errors.New("schedule is not in draft state")
	ErrScheduleNotPublished = errors.New("schedule is not published")
	ErrScheduleArchived     = errors.New("schedule is archived")
)
