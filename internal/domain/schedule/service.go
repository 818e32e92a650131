package schedule

import (
	"context"
	"time"
)

type ScheduleService interface {
	Create(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (ScheduleResponse, error)
	Update(ctx context.Context, id string, req UpdateScheduleRequest) (ScheduleResponse, error)
	Publish(ctx context.Context, id string) (ScheduleResponse, error)
	RevertToDraft(ctx context.Context, id string) (ScheduleResponse, error)
	Archive(ctx context.Context, id string) (ScheduleResponse, error)
	GetPublishedByWeek(ctx context.Context, businessUnitID string, week time.Time) (ScheduleWithShiftsResponse, error)
	GetAnyByWeek(ctx context.Context, businessUnitID string, week time.Time) (ScheduleWithShiftsResponse, error)
	ListByBusinessUnit(ctx context.Context, businessUnitID string) ([]ScheduleResponse, error)
	GetCurrent(ctx context.Context, businessUnitID string) (ScheduleResponse, error)
}
