package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/worksession"
	"github.com/clockwise-org/planning-service-go/internal/pkg/database"
)

type workSessionRepository struct {
	db *database.DB
}

func NewWorkSessionRepository(db *database.DB) worksession.WorkSessionRepository {
	return &workSessionRepository{db: db}
}

const workSessionColumns = `id, shift_id, user_id, status, clock_in_time, clock_out_time,
	   total_minutes, confirmed, confirmed_by, confirmed_at, modified_by,
	   original_clock_in, original_clock_out, created_at, updated_at`

func scanWorkSession(row database.Row, ws *worksession.WorkSession) error {
	return row.Scan(
		&ws.ID, &ws.ShiftID, &ws.UserID, &ws.Status, &ws.ClockInTime, &ws.ClockOutTime,
		&ws.TotalMinutes, &ws.Confirmed, &ws.ConfirmedBy, &ws.ConfirmedAt, &ws.ModifiedBy,
		&ws.OriginalClockIn, &ws.OriginalClockOut, &ws.CreatedAt, &ws.UpdatedAt,
	)
}

// Create implements worksession.WorkSessionRepository.
func (r *workSessionRepository) Create(ctx context.Context, ws worksession.WorkSession) (worksession.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_sessions (shift_id, user_id, status, clock_in_time, clock_out_time, total_minutes, confirmed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ws.ShiftID,
		ws.UserID,
		ws.Status,
		ws.ClockInTime,
		ws.ClockOutTime,
		ws.TotalMinutes,
		ws.Confirmed,
	).Scan(&ws.ID, &ws.CreatedAt, &ws.UpdatedAt)

	if err != nil {
		return worksession.WorkSession{}, fmt.Errorf("failed to create work session: %w", err)
	}

	return ws, nil
}

// GetByID implements worksession.WorkSessionRepository.
func (r *workSessionRepository) GetByID(ctx context.Context, id string) (worksession.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workSessionColumns + ` FROM work_sessions WHERE id = $1`

	var ws worksession.WorkSession
	if err := scanWorkSession(q.QueryRow(ctx, query, id), &ws); err != nil {
		return worksession.WorkSession{}, err
	}

	return ws, nil
}

// GetByShiftID implements worksession.WorkSessionRepository.
func (r *workSessionRepository) GetByShiftID(ctx context.Context, shiftID string) (worksession.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workSessionColumns + ` FROM work_sessions WHERE shift_id = $1`

	var ws worksession.WorkSession
	if err := scanWorkSession(q.QueryRow(ctx, query, shiftID), &ws); err != nil {
		return worksession.WorkSession{}, err
	}

	return ws, nil
}

// Update implements worksession.WorkSessionRepository.
func (r *workSessionRepository) Update(ctx context.Context, ws worksession.WorkSession) (worksession.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_sessions
		SET user_id = $2, status = $3, clock_in_time = $4, clock_out_time = $5,
		    total_minutes = $6, confirmed = $7, confirmed_by = $8, confirmed_at = $9,
		    modified_by = $10, original_clock_in = $11, original_clock_out = $12,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		ws.ID, ws.UserID, ws.Status, ws.ClockInTime, ws.ClockOutTime,
		ws.TotalMinutes, ws.Confirmed, ws.ConfirmedBy, ws.ConfirmedAt,
		ws.ModifiedBy, ws.OriginalClockIn, ws.OriginalClockOut,
	).Scan(&ws.UpdatedAt)
	if err != nil {
		return worksession.WorkSession{}, err
	}

	return ws, nil
}

// DeleteByShiftID implements worksession.WorkSessionRepository.
func (r *workSessionRepository) DeleteByShiftID(ctx context.Context, shiftID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM work_sessions WHERE shift_id = $1`, shiftID); err != nil {
		return fmt.Errorf("failed to delete work session: %w", err)
	}

	return nil
}

// UpdateUserByShiftID implements worksession.WorkSessionRepository.
func (r *workSessionRepository) UpdateUserByShiftID(ctx context.Context, shiftID, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE work_sessions SET user_id = $2, updated_at = NOW() WHERE shift_id = $1`

	if _, err := q.Exec(ctx, query, shiftID, userID); err != nil {
		return fmt.Errorf("failed to update work session user: %w", err)
	}

	return nil
}

// ListUnconfirmedByBusinessUnit implements worksession.WorkSessionRepository.
func (r *workSessionRepository) ListUnconfirmedByBusinessUnit(ctx context.Context, businessUnitID string) ([]worksession.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ws.id, ws.shift_id, ws.user_id, ws.status, ws.clock_in_time, ws.clock_out_time,
		       ws.total_minutes, ws.confirmed, ws.confirmed_by, ws.confirmed_at, ws.modified_by,
		       ws.original_clock_in, ws.original_clock_out, ws.created_at, ws.updated_at
		FROM work_sessions ws
		JOIN shifts s ON s.id = ws.shift_id
		JOIN schedules sc ON sc.id = s.schedule_id
		WHERE sc.business_unit_id = $1
		  AND ws.confirmed = false
		  AND ws.status <> 'CANCELLED'
		ORDER BY ws.created_at DESC
	`

	rows, err := q.Query(ctx, query, businessUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unconfirmed work sessions: %w", err)
	}
	defer rows.Close()

	var sessions []worksession.WorkSession
	for rows.Next() {
		var ws worksession.WorkSession
		if err := scanWorkSession(rows, &ws); err != nil {
			return nil, fmt.Errorf("failed to scan work session: %w", err)
		}
		sessions = append(sessions, ws)
	}

	return sessions, rows.Err()
}

// ListByUserBetween implements worksession.WorkSessionRepository.
func (r *workSessionRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]worksession.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, shift_id, user_id, status, clock_in_time, clock_out_time,
		       total_minutes, confirmed, confirmed_by, confirmed_at, modified_by,
		       original_clock_in, original_clock_out, created_at, updated_at
		FROM work_sessions
		WHERE user_id = $1
		  AND clock_in_time >= $2
		  AND clock_in_time < $3
		ORDER BY clock_in_time
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list work sessions by user: %w", err)
	}
	defer rows.Close()

	var sessions []worksession.WorkSession
	for rows.Next() {
		var ws worksession.WorkSession
		if err := scanWorkSession(rows, &ws); err != nil {
			return nil, fmt.Errorf("failed to scan work session: %w", err)
		}
		sessions = append(sessions, ws)
	}

	return sessions, rows.Err()
}
