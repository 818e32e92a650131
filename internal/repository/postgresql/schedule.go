package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/schedule"
	"github.com/clockwise-org/planning-service-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Create implements schedule.ScheduleRepository.
func (r *scheduleRepository) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedules (business_unit_id, week_start, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.BusinessUnitID,
		s.WeekStart,
		s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}

	return s, nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_unit_id, week_start, status, created_at, updated_at
		FROM schedules
		WHERE id = $1
	`

	var s schedule.Schedule
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.BusinessUnitID, &s.WeekStart, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return schedule.Schedule{}, err
	}

	return s, nil
}

// GetByBusinessUnitAndWeekStart implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByBusinessUnitAndWeekStart(ctx context.Context, businessUnitID string, weekStart time.Time) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_unit_id, week_start, status, created_at, updated_at
		FROM schedules
		WHERE business_unit_id = $1
		  AND week_start = $2
	`

	var s schedule.Schedule
	err := q.QueryRow(ctx, query, businessUnitID, weekStart).Scan(
		&s.ID, &s.BusinessUnitID, &s.WeekStart, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return schedule.Schedule{}, err
	}

	return s, nil
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepository) Update(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules
		SET business_unit_id = $2, week_start = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, s.ID, s.BusinessUnitID, s.WeekStart, s.Status).Scan(&s.UpdatedAt)
	if err != nil {
		return schedule.Schedule{}, err
	}

	return s, nil
}

// UpdateStatus implements schedule.ScheduleRepository.
func (r *scheduleRepository) UpdateStatus(ctx context.Context, id string, status schedule.Status) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, business_unit_id, week_start, status, created_at, updated_at
	`

	var s schedule.Schedule
	err := q.QueryRow(ctx, query, id, status).Scan(
		&s.ID, &s.BusinessUnitID, &s.WeekStart, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return schedule.Schedule{}, err
	}

	return s, nil
}

// ListByBusinessUnit implements schedule.ScheduleRepository.
func (r *scheduleRepository) ListByBusinessUnit(ctx context.Context, businessUnitID string) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_unit_id, week_start, status, created_at, updated_at
		FROM schedules
		WHERE business_unit_id = $1
		ORDER BY week_start DESC
	`

	rows, err := q.Query(ctx, query, businessUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		var s schedule.Schedule
		if err := rows.Scan(&s.ID, &s.BusinessUnitID, &s.WeekStart, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	return schedules, rows.Err()
}

// GetCurrentByBusinessUnit implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetCurrentByBusinessUnit(ctx context.Context, businessUnitID string, now time.Time) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_unit_id, week_start, status, created_at, updated_at
		FROM schedules
		WHERE business_unit_id = $1
		  AND week_start <= $2
		  AND week_start + INTERVAL '7 days' > $2
	`

	var s schedule.Schedule
	err := q.QueryRow(ctx, query, businessUnitID, now).Scan(
		&s.ID, &s.BusinessUnitID, &s.WeekStart, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return schedule.Schedule{}, err
	}

	return s, nil
}
