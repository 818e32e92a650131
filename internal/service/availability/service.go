package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/availability"
	"github.com/jackc/pgx/v5"
)

type AvailabilityServiceImpl struct {
	availability.AvailabilityRepository
}

func NewAvailabilityService(repo availability.AvailabilityRepository) availability.AvailabilityService {
	return &AvailabilityServiceImpl{AvailabilityRepository: repo}
}

// Create implements availability.AvailabilityService.
func (s *AvailabilityServiceImpl) Create(ctx context.Context, req availability.CreateAvailabilityRequest) (availability.AvailabilityResponse, error) {
	if err := req.Validate(); err != nil {
		return availability.AvailabilityResponse{}, err
	}

	start, end := req.ParsedTimes()

	created, err := s.AvailabilityRepository.Create(ctx, availability.Availability{
		EmployeeID:     req.EmployeeID,
		BusinessUnitID: req.BusinessUnitID,
		StartTime:      start,
		EndTime:        end,
	})
	if err != nil {
		return availability.AvailabilityResponse{}, fmt.Errorf("failed to create availability: %w", err)
	}

	return availability.NewAvailabilityResponse(created), nil
}

// GetByID implements availability.AvailabilityService.
func (s *AvailabilityServiceImpl) GetByID(ctx context.Context, id string) (availability.AvailabilityResponse, error) {
	found, err := s.AvailabilityRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return availability.AvailabilityResponse{}, availability.ErrAvailabilityNotFound
		}
		return availability.AvailabilityResponse{}, fmt.Errorf("failed to get availability: %w", err)
	}

	return availability.NewAvailabilityResponse(found), nil
}

// Update implements availability.AvailabilityService.
func (s *AvailabilityServiceImpl) Update(ctx context.Context, id string, req availability.UpdateAvailabilityRequest) (availability.AvailabilityResponse, error) {
	if err := req.Validate(); err != nil {
		return availability.AvailabilityResponse{}, err
	}

	current, err := s.AvailabilityRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return availability.AvailabilityResponse{}, availability.ErrAvailabilityNotFound
		}
		return availability.AvailabilityResponse{}, fmt.Errorf("failed to get availability: %w", err)
	}

	current.StartTime, current.EndTime = req.ParsedTimes()

	updated, err := s.AvailabilityRepository.Update(ctx, current)
	if err != nil {
		return availability.AvailabilityResponse{}, fmt.Errorf("failed to update availability: %w", err)
	}

	return availability.NewAvailabilityResponse(updated), nil
}

// Delete implements availability.AvailabilityService.
func (s *AvailabilityServiceImpl) Delete(ctx context.Context, id string) error {
	return s.AvailabilityRepository.Delete(ctx, id)
}

// ListByEmployee implements availability.AvailabilityService.
func (s *AvailabilityServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]availability.AvailabilityResponse, error) {
	items, err := s.AvailabilityRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availabilities: %w", err)
	}

	return availability.NewAvailabilityResponses(items), nil
}

// ListByBusinessUnitBetween implements availability.AvailabilityService.
func (s *AvailabilityServiceImpl) ListByBusinessUnitBetween(ctx context.Context, businessUnitID string, from, to time.Time) ([]availability.AvailabilityResponse, error) {
	items, err := s.AvailabilityRepository.ListByBusinessUnitBetween(ctx, businessUnitID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list availabilities by business unit: %w", err)
	}

	return availability.NewAvailabilityResponses(items), nil
}
