package worksession

import "time"

// SystemActor marks mutations raised by reconciliation rather than a person.
const SystemActor = "system"

// WorkSession tracks actual attendance against a single shift. Exactly one
// session exists per shift; shift edits and clock events reconcile it in
// place instead of recreating it.
//
// OriginalClockIn and OriginalClockOut snapshot the recorded times the first
// time a manager modifies the session. Later modifications never overwrite
// the snapshot, so the audit trail always points at what the employee
// actually clocked.
type WorkSession struct {
	ID               string
	ShiftID          string
	UserID           string
	Status           Status
	ClockInTime      *time.Time
	ClockOutTime     *time.Time
	TotalMinutes     *int
	Confirmed        bool
	ConfirmedBy      *string
	ConfirmedAt      *time.Time
	ModifiedBy       *string
	OriginalClockIn  *time.Time
	OriginalClockOut *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// SessionNote is free-form manager commentary attached to one work session.
type SessionNote struct {
	ID            string
	WorkSessionID string
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
