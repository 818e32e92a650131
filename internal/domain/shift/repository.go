package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	Update(ctx context.Context, s Shift) (Shift, error)
	Delete(ctx context.Context, id string) error
	ListBySchedule(ctx context.Context, scheduleID string) ([]Shift, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Shift, error)
	// FindOverlapping returns the employee's shifts whose half-open interval
	// intersects [start, end), skipping excludeShiftID when non-empty.
	FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeShiftID string) ([]Shift, error)
	UpdateEmployee(ctx context.Context, shiftID, employeeID string) (Shift, error)
	// SetEmployeeName writes the denormalized name cache without touching
	// anything else on the row.
	SetEmployeeName(ctx context.Context, shiftID string, firstName, lastName *string) error
}
