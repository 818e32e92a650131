package availability

import (
	"context"
	"time"
)

type AvailabilityService interface {
	Create(ctx context.Context, req CreateAvailabilityRequest) (AvailabilityResponse, error)
	GetByID(ctx context.Context, id string) (AvailabilityResponse, error)
	Update(ctx context.Context, id string, req UpdateAvailabilityRequest) (AvailabilityResponse, error)
	Delete(ctx context.Context, id string) error
	ListByEmployee(ctx context.Context, employeeID string) ([]AvailabilityResponse, error)
	ListByBusinessUnitBetween(ctx context.Context, businessUnitID string, from, to time.Time) ([]AvailabilityResponse, error)
}
