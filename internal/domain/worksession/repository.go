package worksession

import (
	"context"
	"time"
)

type WorkSessionRepository interface {
	Create(ctx context.Context, ws WorkSession) (WorkSession, error)
	GetByID(ctx context.Context, id string) (WorkSession, error)
	GetByShiftID(ctx context.Context, shiftID string) (WorkSession, error)
	Update(ctx context.Context, ws WorkSession) (WorkSession, error)
	DeleteByShiftID(ctx context.Context, shiftID string) error
	// UpdateUserByShiftID keeps the session's owner in step with a shift
	// reassignment done in the same transaction.
	UpdateUserByShiftID(ctx context.Context, shiftID, userID string) error
	// ListUnconfirmedByBusinessUnit joins through shifts and schedules to
	// collect every unconfirmed, non-cancelled session in the unit.
	ListUnconfirmedByBusinessUnit(ctx context.Context, businessUnitID string) ([]WorkSession, error)
	// ListByUserBetween returns the user's sessions whose clock in falls
	// inside [from, to), confirmed or not.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]WorkSession, error)
}

type SessionNoteRepository interface {
	Upsert(ctx context.Context, n SessionNote) (SessionNote, error)
	GetByWorkSessionID(ctx context.Context, workSessionID string) (SessionNote, error)
	DeleteByWorkSessionID(ctx context.Context, workSessionID string) error
}
