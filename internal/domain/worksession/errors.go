package worksession

import "errors"

var (
	ErrWorkSessionNotFound  = errors.New("work session not found")
	ErrWorkSessionCancelled = errors.New("work session is cancelled")
	ErrNotClockedIn         = errors.New("cannot clock out before clocking in")
	ErrClockOutBeforeIn     = errors.New("clock out time must be after clock in time")
	ErrSessionNoteNotFound  = errors.New("session note not found")
)
