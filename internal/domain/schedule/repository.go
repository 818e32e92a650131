package schedule

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	Create(ctx context.Context, s Schedule) (Schedule, error)
	GetByID(ctx context.Context, id string) (Schedule, error)
	GetByBusinessUnitAndWeekStart(ctx context.Context, businessUnitID string, weekStart time.Time) (Schedule, error)
	Update(ctx context.Context, s Schedule) (Schedule, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Schedule, error)
	ListByBusinessUnit(ctx context.Context, businessUnitID string) ([]Schedule, error)
	// GetCurrentByBusinessUnit returns the schedule whose week contains now.
	GetCurrentByBusinessUnit(ctx context.Context, businessUnitID string, now time.Time) (Schedule, error)
}
