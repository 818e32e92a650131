package availability

import (
	"context"
	"time"
)

type AvailabilityRepository interface {
	Create(ctx context.Context, a Availability) (Availability, error)
	GetByID(ctx context.Context, id string) (Availability, error)
	Update(ctx context.Context, a Availability) (Availability, error)
	Delete(ctx context.Context, id string) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Availability, error)
	ListByBusinessUnitBetween(ctx context.Context, businessUnitID string, from, to time.Time) ([]Availability, error)
}
