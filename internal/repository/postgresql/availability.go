package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/availability"
	"github.com/clockwise-org/planning-service-go/internal/pkg/database"
)

type availabilityRepository struct {
	db *database.DB
}

func NewAvailabilityRepository(db *database.DB) availability.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

// Create implements availability.AvailabilityRepository.
func (r *availabilityRepository) Create(ctx context.Context, a availability.Availability) (availability.Availability, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO availabilities (employee_id, business_unit_id, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID,
		a.BusinessUnitID,
		a.StartTime,
		a.EndTime,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return availability.Availability{}, fmt.Errorf("failed to create availability: %w", err)
	}

	return a, nil
}

// GetByID implements availability.AvailabilityRepository.
func (r *availabilityRepository) GetByID(ctx context.Context, id string) (availability.Availability, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, business_unit_id, start_time, end_time, created_at, updated_at
		FROM availabilities
		WHERE id = $1
	`

	var a availability.Availability
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.BusinessUnitID, &a.StartTime, &a.EndTime, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return availability.Availability{}, err
	}

	return a, nil
}

// Update implements availability.AvailabilityRepository.
func (r *availabilityRepository) Update(ctx context.Context, a availability.Availability) (availability.Availability, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE availabilities
		SET start_time = $2, end_time = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, a.ID, a.StartTime, a.EndTime).Scan(&a.UpdatedAt)
	if err != nil {
		return availability.Availability{}, err
	}

	return a, nil
}

// Delete implements availability.AvailabilityRepository.
func (r *availabilityRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM availabilities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return availability.ErrAvailabilityNotFound
	}

	return nil
}

// ListByEmployee implements availability.AvailabilityRepository.
func (r *availabilityRepository) ListByEmployee(ctx context.Context, employeeID string) ([]availability.Availability, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, business_unit_id, start_time, end_time, created_at, updated_at
		FROM availabilities
		WHERE employee_id = $1
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availabilities: %w", err)
	}
	defer rows.Close()

	var items []availability.Availability
	for rows.Next() {
		var a availability.Availability
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.BusinessUnitID, &a.StartTime, &a.EndTime, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		items = append(items, a)
	}

	return items, rows.Err()
}

// ListByBusinessUnitBetween implements availability.AvailabilityRepository.
func (r *availabilityRepository) ListByBusinessUnitBetween(ctx context.Context, businessUnitID string, from, to time.Time) ([]availability.Availability, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, business_unit_id, start_time, end_time, created_at, updated_at
		FROM availabilities
		WHERE business_unit_id = $1
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, businessUnitID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list availabilities by business unit: %w", err)
	}
	defer rows.Close()

	var items []availability.Availability
	for rows.Next() {
		var a availability.Availability
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.BusinessUnitID, &a.StartTime, &a.EndTime, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		items = append(items, a)
	}

	return items, rows.Err()
}
