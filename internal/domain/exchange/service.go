package exchange

import "context"

// ConflictChecker answers whether proposed assignments collide with a
// user's existing shifts. On internal failure both checks fall back to
// reporting a conflict instead of an error so that an approval decision
// never proceeds on a silently missed collision.
type ConflictChecker interface {
	CheckScheduleConflict(ctx context.Context, req ScheduleConflictRequest) (ScheduleConflictResponse, error)
	CheckSwapConflict(ctx context.Context, req SwapConflictRequest) (SwapConflictResponse, error)
}

// Handler applies externally approved exchange requests and reports the
// outcome back over the bus. Errors returned here reach the transport so
// it can redeliver or dead-letter the event.
type Handler interface {
	HandleExchangeApproved(ctx context.Context, evt ApprovedEvent) error
}
