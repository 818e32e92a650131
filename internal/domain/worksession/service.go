package worksession

import (
	"context"
	"time"
)

type WorkSessionService interface {
	// ClockIn and ClockOut record the server time of the event; the caller
	// supplies nothing but the shift.
	ClockIn(ctx context.Context, shiftID string) (WorkSessionResponse, error)
	ClockOut(ctx context.Context, shiftID string) (WorkSessionResponse, error)
	Modify(ctx context.Context, id string, req ModifyWorkSessionRequest, modifiedBy string) (WorkSessionResponse, error)
	ModifyAndConfirm(ctx context.Context, id string, req ModifyWorkSessionRequest, actor string) (WorkSessionResponse, error)
	Confirm(ctx context.Context, id, confirmedBy string) (WorkSessionResponse, error)
	Cancel(ctx context.Context, id string) (WorkSessionResponse, error)
	GetByID(ctx context.Context, id string) (WorkSessionResponse, error)
	GetByShiftID(ctx context.Context, shiftID string) (WorkSessionResponse, error)
	ListUnconfirmed(ctx context.Context, businessUnitID string) ([]UnconfirmedWorkSessionResponse, error)
	GetWorkHours(ctx context.Context, userID string, from, to time.Time) (WorkHoursResponse, error)
	UpsertNote(ctx context.Context, workSessionID string, req SessionNoteRequest) (SessionNoteResponse, error)
	GetNote(ctx context.Context, workSessionID string) (SessionNoteResponse, error)
}
