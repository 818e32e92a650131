package worksession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
	"github.com/clockwise-org/planning-service-go/internal/domain/worksession"
	"github.com/jackc/pgx/v5"
)

type WorkSessionServiceImpl struct {
	worksession.WorkSessionRepository
	worksession.SessionNoteRepository
	shift.ShiftRepository

	// now supplies the recorded clock event time; tests pin it.
	now func() time.Time
}

func NewWorkSessionService(
	sessionRepo worksession.WorkSessionRepository,
	noteRepo worksession.SessionNoteRepository,
	shiftRepo shift.ShiftRepository,
) worksession.WorkSessionService {
	return &WorkSessionServiceImpl{
		WorkSessionRepository: sessionRepo,
		SessionNoteRepository: noteRepo,
		ShiftRepository:       shiftRepo,
		now:                   func() time.Time { return time.Now().UTC() },
	}
}

// ClockIn implements worksession.WorkSessionService. The clock time is the
// server's, never the caller's. Idempotent in effect: a repeated clock in
// just moves the time and re-opens confirmation.
func (s *WorkSessionServiceImpl) ClockIn(ctx context.Context, shiftID string) (worksession.WorkSessionResponse, error) {
	sh, err := s.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.WorkSessionResponse{}, shift.ErrShiftNotFound
		}
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	at := s.now()

	ws, err := s.WorkSessionRepository.GetByShiftID(ctx, shiftID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return worksession.WorkSessionResponse{}, fmt.Errorf("failed to get work session: %w", err)
		}

		created, err := s.WorkSessionRepository.Create(ctx, worksession.WorkSession{
			ShiftID:     shiftID,
			UserID:      sh.EmployeeID,
			Status:      worksession.StatusActive,
			ClockInTime: &at,
		})
		if err != nil {
			return worksession.WorkSessionResponse{}, fmt.Errorf("failed to create work session: %w", err)
		}
		return worksession.NewWorkSessionResponse(created), nil
	}

	if ws.Status == worksession.StatusCancelled {
		return worksession.WorkSessionResponse{}, worksession.ErrWorkSessionCancelled
	}

	ws.ClockInTime = &at
	ws.Status = worksession.StatusActive
	resetConfirmation(&ws)

	updated, err := s.WorkSessionRepository.Update(ctx, ws)
	if err != nil {
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to update work session: %w", err)
	}

	return worksession.NewWorkSessionResponse(updated), nil
}

// ClockOut implements worksession.WorkSessionService. The clock time is the
// server's, never the caller's.
func (s *WorkSessionServiceImpl) ClockOut(ctx context.Context, shiftID string) (worksession.WorkSessionResponse, error) {
	if _, err := s.ShiftRepository.GetByID(ctx, shiftID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.WorkSessionResponse{}, shift.ErrShiftNotFound
		}
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	ws, err := s.WorkSessionRepository.GetByShiftID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.WorkSessionResponse{}, worksession.ErrWorkSessionNotFound
		}
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to get work session: %w", err)
	}

	if ws.Status == worksession.StatusCancelled {
		return worksession.WorkSessionResponse{}, worksession.ErrWorkSessionCancelled
	}
	if ws.ClockInTime == nil {
		return worksession.WorkSessionResponse{}, worksession.ErrNotClockedIn
	}

	at := s.now()
	minutes := wholeMinutes(*ws.ClockInTime, at)

	ws.ClockOutTime = &at
	ws.TotalMinutes = &minutes
	ws.Status = worksession.StatusCompleted
	resetConfirmation(&ws)

	updated, err := s.WorkSessionRepository.Update(ctx, ws)
	if err != nil {
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to update work session: %w", err)
	}

	return worksession.NewWorkSessionResponse(updated), nil
}

// Modify implements worksession.WorkSessionService. A manager correction:
// the first modification snapshots the recorded times into the original
// fields; later ones leave the snapshot alone. Any time change invalidates
// an earlier confirmation.
func (s *WorkSessionServiceImpl) Modify(ctx context.Context, id string, req worksession.ModifyWorkSessionRequest, modifiedBy string) (worksession.WorkSessionResponse, error) {
	ws, err := s.modify(ctx, id, req, modifiedBy)
	if err != nil {
		return worksession.WorkSessionResponse{}, err
	}

	updated, err := s.WorkSessionRepository.Update(ctx, ws)
	if err != nil {
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to update work session: %w", err)
	}

	return worksession.NewWorkSessionResponse(updated), nil
}

// ModifyAndConfirm implements worksession.WorkSessionService. Same mutation
// as Modify plus the confirmation, written in one update.
func (s *WorkSessionServiceImpl) ModifyAndConfirm(ctx context.Context, id string, req worksession.ModifyWorkSessionRequest, actor string) (worksession.WorkSessionResponse, error) {
	ws, err := s.modify(ctx, id, req, actor)
	if err != nil {
		return worksession.WorkSessionResponse{}, err
	}

	now := time.Now().UTC()
	ws.Confirmed = true
	ws.ConfirmedBy = &actor
	ws.ConfirmedAt = &now

	updated, err := s.WorkSessionRepository.Update(ctx, ws)
	if err != nil {
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to update work session: %w", err)
	}

	return worksession.NewWorkSessionResponse(updated), nil
}

func (s *WorkSessionServiceImpl) modify(ctx context.Context, id string, req worksession.ModifyWorkSessionRequest, modifiedBy string) (worksession.WorkSession, error) {
	if err := req.Validate(); err != nil {
		return worksession.WorkSession{}, err
	}

	ws, err := s.WorkSessionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.WorkSession{}, worksession.ErrWorkSessionNotFound
		}
		return worksession.WorkSession{}, fmt.Errorf("failed to get work session: %w", err)
	}

	if ws.Status == worksession.StatusCancelled {
		return worksession.WorkSession{}, worksession.ErrWorkSessionCancelled
	}

	if ws.OriginalClockIn == nil {
		ws.OriginalClockIn = ws.ClockInTime
	}
	if ws.OriginalClockOut == nil {
		ws.OriginalClockOut = ws.ClockOutTime
	}

	in, out := req.ParsedTimes()
	ws.ClockInTime = &in
	ws.ClockOutTime = out
	if out != nil {
		minutes := wholeMinutes(in, *out)
		ws.TotalMinutes = &minutes
		ws.Status = worksession.StatusCompleted
	} else {
		ws.TotalMinutes = nil
		ws.Status = worksession.StatusActive
	}
	ws.ModifiedBy = &modifiedBy
	resetConfirmation(&ws)

	return ws, nil
}

// Confirm implements worksession.WorkSessionService. Sign-off only; the
// recorded times stay as they are.
func (s *WorkSessionServiceImpl) Confirm(ctx context.Context, id, confirmedBy string) (worksession.WorkSessionResponse, error) {
	ws, err := s.WorkSessionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.WorkSessionResponse{}, worksession.ErrWorkSessionNotFound
		}
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to get work session: %w", err)
	}

	if ws.Status == worksession.StatusCancelled {
		return worksession.WorkSessionResponse{}, worksession.ErrWorkSessionCancelled
	}

	now := time.Now().UTC()
	ws.Confirmed = true
	ws.ConfirmedBy = &confirmedBy
	ws.ConfirmedAt = &now

	updated, err := s.WorkSessionRepository.Update(ctx, ws)
	if err != nil {
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to update work session: %w", err)
	}

	return worksession.NewWorkSessionResponse(updated), nil
}

// Cancel implements worksession.WorkSessionService. Administrative terminal
// state; cancelled sessions reject clock events and confirmation.
func (s *WorkSessionServiceImpl) Cancel(ctx context.Context, id string) (worksession.WorkSessionResponse, error) {
	ws, err := s.WorkSessionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.WorkSessionResponse{}, worksession.ErrWorkSessionNotFound
		}
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to get work session: %w", err)
	}

	ws.Status = worksession.StatusCancelled

	updated, err := s.WorkSessionRepository.Update(ctx, ws)
	if err != nil {
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to update work session: %w", err)
	}

	return worksession.NewWorkSessionResponse(updated), nil
}

// GetByID implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) GetByID(ctx context.Context, id string) (worksession.WorkSessionResponse, error) {
	ws, err := s.WorkSessionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.WorkSessionResponse{}, worksession.ErrWorkSessionNotFound
		}
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to get work session: %w", err)
	}

	return worksession.NewWorkSessionResponse(ws), nil
}

// GetByShiftID implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) GetByShiftID(ctx context.Context, shiftID string) (worksession.WorkSessionResponse, error) {
	ws, err := s.WorkSessionRepository.GetByShiftID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.WorkSessionResponse{}, worksession.ErrWorkSessionNotFound
		}
		return worksession.WorkSessionResponse{}, fmt.Errorf("failed to get work session: %w", err)
	}

	return worksession.NewWorkSessionResponse(ws), nil
}

// ListUnconfirmed implements worksession.WorkSessionService. The manager's
// review queue: sessions leave the moment they are confirmed and come back
// when an edit resets confirmation. Each entry carries the shift's window
// and employee, and the note when one exists; a session whose shift has
// vanished is skipped rather than failing the whole queue.
func (s *WorkSessionServiceImpl) ListUnconfirmed(ctx context.Context, businessUnitID string) ([]worksession.UnconfirmedWorkSessionResponse, error) {
	sessions, err := s.WorkSessionRepository.ListUnconfirmedByBusinessUnit(ctx, businessUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unconfirmed work sessions: %w", err)
	}

	out := make([]worksession.UnconfirmedWorkSessionResponse, 0, len(sessions))
	for _, ws := range sessions {
		sh, err := s.ShiftRepository.GetByID(ctx, ws.ShiftID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("failed to get shift for work session %s: %w", ws.ID, err)
		}

		entry := worksession.UnconfirmedWorkSessionResponse{
			WorkSessionResponse: worksession.NewWorkSessionResponse(ws),
			ShiftStartTime:      sh.StartTime.Format(time.RFC3339),
			ShiftEndTime:        sh.EndTime.Format(time.RFC3339),
			EmployeeID:          sh.EmployeeID,
			Position:            sh.Position,
		}

		if note, err := s.SessionNoteRepository.GetByWorkSessionID(ctx, ws.ID); err == nil {
			resp := worksession.NewSessionNoteResponse(note)
			entry.SessionNote = &resp
		}

		out = append(out, entry)
	}

	return out, nil
}

// GetWorkHours implements worksession.WorkSessionService. Every session in
// the range counts toward the total, confirmed or not.
func (s *WorkSessionServiceImpl) GetWorkHours(ctx context.Context, userID string, from, to time.Time) (worksession.WorkHoursResponse, error) {
	sessions, err := s.WorkSessionRepository.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		return worksession.WorkHoursResponse{}, fmt.Errorf("failed to get work hours: %w", err)
	}

	total := 0
	for _, ws := range sessions {
		if ws.TotalMinutes != nil {
			total += *ws.TotalMinutes
		}
	}

	return worksession.WorkHoursResponse{
		UserID:        userID,
		From:          from.Format(time.RFC3339),
		To:            to.Format(time.RFC3339),
		TotalSessions: len(sessions),
		TotalMinutes:  total,
		Sessions:      worksession.NewWorkSessionResponses(sessions),
	}, nil
}

// UpsertNote implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) UpsertNote(ctx context.Context, workSessionID string, req worksession.SessionNoteRequest) (worksession.SessionNoteResponse, error) {
	if err := req.Validate(); err != nil {
		return worksession.SessionNoteResponse{}, err
	}

	if _, err := s.WorkSessionRepository.GetByID(ctx, workSessionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.SessionNoteResponse{}, worksession.ErrWorkSessionNotFound
		}
		return worksession.SessionNoteResponse{}, fmt.Errorf("failed to get work session: %w", err)
	}

	note, err := s.SessionNoteRepository.Upsert(ctx, worksession.SessionNote{
		WorkSessionID: workSessionID,
		Note:          req.Note,
	})
	if err != nil {
		return worksession.SessionNoteResponse{}, fmt.Errorf("failed to upsert session note: %w", err)
	}

	return worksession.NewSessionNoteResponse(note), nil
}

// GetNote implements worksession.WorkSessionService.
func (s *WorkSessionServiceImpl) GetNote(ctx context.Context, workSessionID string) (worksession.SessionNoteResponse, error) {
	note, err := s.SessionNoteRepository.GetByWorkSessionID(ctx, workSessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksession.SessionNoteResponse{}, worksession.ErrSessionNoteNotFound
		}
		return worksession.SessionNoteResponse{}, fmt.Errorf("failed to get session note: %w", err)
	}

	return worksession.NewSessionNoteResponse(note), nil
}

func resetConfirmation(ws *worksession.WorkSession) {
	ws.Confirmed = false
	ws.ConfirmedBy = nil
	ws.ConfirmedAt = nil
}

func wholeMinutes(in, out time.Time) int {
	return int(out.Sub(in) / time.Minute)
}
