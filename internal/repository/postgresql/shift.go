package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
	"github.com/clockwise-org/planning-service-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `id, schedule_id, employee_id, start_time, end_time, position,
	   employee_first_name, employee_last_name, created_at, updated_at`

func scanShift(row database.Row, s *shift.Shift) error {
	return row.Scan(
		&s.ID, &s.ScheduleID, &s.EmployeeID, &s.StartTime, &s.EndTime, &s.Position,
		&s.EmployeeFirstName, &s.EmployeeLastName, &s.CreatedAt, &s.UpdatedAt,
	)
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (schedule_id, employee_id, start_time, end_time, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ScheduleID,
		s.EmployeeID,
		s.StartTime,
		s.EndTime,
		s.Position,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	var s shift.Shift
	if err := scanShift(q.QueryRow(ctx, query, id), &s); err != nil {
		return shift.Shift{}, err
	}

	return s, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET schedule_id = $2, employee_id = $3, start_time = $4, end_time = $5,
		    position = $6, employee_first_name = $7, employee_last_name = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.ScheduleID, s.EmployeeID, s.StartTime, s.EndTime,
		s.Position, s.EmployeeFirstName, s.EmployeeLastName,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, err
	}

	return s, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// ListBySchedule implements shift.ShiftRepository.
func (r *shiftRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE schedule_id = $1 ORDER BY start_time ASC`

	rows, err := q.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := scanShift(rows, &s); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// ListByEmployee implements shift.ShiftRepository.
func (r *shiftRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE employee_id = $1
		  AND start_time >= $2
		  AND start_time < $3
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts by employee: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := scanShift(rows, &s); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// FindOverlapping implements shift.ShiftRepository. Half-open intervals:
// a shift ending exactly at start (or starting exactly at end) is no overlap.
func (r *shiftRepository) FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeShiftID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE employee_id = $1
		  AND start_time < $3
		  AND end_time > $2
		  AND ($4 = '' OR id::text <> $4)
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end, excludeShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := scanShift(rows, &s); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// UpdateEmployee implements shift.ShiftRepository. Reassignment always
// clears the cached display name so it gets re-resolved for the new owner.
func (r *shiftRepository) UpdateEmployee(ctx context.Context, shiftID, employeeID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET employee_id = $2, employee_first_name = NULL, employee_last_name = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + shiftColumns

	var s shift.Shift
	if err := scanShift(q.QueryRow(ctx, query, shiftID, employeeID), &s); err != nil {
		return shift.Shift{}, err
	}

	return s, nil
}

// SetEmployeeName implements shift.ShiftRepository.
func (r *shiftRepository) SetEmployeeName(ctx context.Context, shiftID string, firstName, lastName *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET employee_first_name = $2, employee_last_name = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, shiftID, firstName, lastName)
	if err != nil {
		return fmt.Errorf("failed to set employee name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}
