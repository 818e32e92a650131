package shift

import (
	"context"
	"time"
)

type ShiftService interface {
	Create(ctx context.Context, scheduleID string, req CreateShiftRequest) (ShiftResponse, error)
	GetByID(ctx context.Context, id string) (ShiftResponse, error)
	Update(ctx context.Context, id string, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
	Reassign(ctx context.Context, id string, req ReassignShiftRequest) (ShiftResponse, error)
	// ReassignTo is Reassign with an expected-owner guard: it fails with
	// ErrShiftOwnerMismatch when the shift no longer belongs to expectedOwnerID.
	ReassignTo(ctx context.Context, id, expectedOwnerID, newEmployeeID string) (ShiftResponse, error)
	Swap(ctx context.Context, req SwapShiftsRequest) ([]ShiftResponse, error)
	// SwapOwners atomically exchanges the employees of two shifts, checking
	// both expected owners inside the same transaction.
	SwapOwners(ctx context.Context, firstID, firstExpectedOwner, secondID, secondExpectedOwner string) ([]ShiftResponse, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]ShiftResponse, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]ShiftResponse, error)
	FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeShiftID string) ([]ShiftResponse, error)
	// ApplyEmployeeName is the sink for asynchronous user info resolution.
	ApplyEmployeeName(ctx context.Context, shiftID string, firstName, lastName *string) error
}
