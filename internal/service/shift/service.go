package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/event"
	"github.com/clockwise-org/planning-service-go/internal/domain/schedule"
	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
	"github.com/clockwise-org/planning-service-go/internal/domain/worksession"
	"github.com/clockwise-org/planning-service-go/internal/pkg/database"
	"github.com/clockwise-org/planning-service-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type ShiftServiceImpl struct {
	db *database.DB
	shift.ShiftRepository
	schedule.ScheduleRepository
	worksession.WorkSessionRepository
	worksession.SessionNoteRepository
	resolver event.NameResolver
	logger   *slog.Logger
}

func NewShiftService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	scheduleRepo schedule.ScheduleRepository,
	sessionRepo worksession.WorkSessionRepository,
	noteRepo worksession.SessionNoteRepository,
	resolver event.NameResolver,
	logger *slog.Logger,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:                    db,
		ShiftRepository:       shiftRepo,
		ScheduleRepository:    scheduleRepo,
		WorkSessionRepository: sessionRepo,
		SessionNoteRepository: noteRepo,
		resolver:              resolver,
		logger:                logger,
	}
}

// Create implements shift.ShiftService. The work session and its empty note
// are created in the same transaction as the shift, so a shift never exists
// without its session.
func (s *ShiftServiceImpl) Create(ctx context.Context, scheduleID string, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	owner, err := s.ScheduleRepository.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, schedule.ErrScheduleNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}
	if owner.Status == schedule.StatusArchived {
		return shift.ShiftResponse{}, schedule.ErrScheduleArchived
	}

	start, end := req.ParsedTimes()

	var created shift.Shift
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.ShiftRepository.Create(txCtx, shift.Shift{
			ScheduleID: scheduleID,
			EmployeeID: req.EmployeeID,
			StartTime:  start,
			EndTime:    end,
			Position:   req.Position,
		})
		if err != nil {
			return err
		}

		session, err := s.WorkSessionRepository.Create(txCtx, worksession.WorkSession{
			ShiftID: created.ID,
			UserID:  req.EmployeeID,
			Status:  worksession.StatusCreated,
		})
		if err != nil {
			return fmt.Errorf("failed to create work session: %w", err)
		}

		if _, err := s.SessionNoteRepository.Upsert(txCtx, worksession.SessionNote{
			WorkSessionID: session.ID,
		}); err != nil {
			return fmt.Errorf("failed to create session note: %w", err)
		}

		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	go s.resolveEmployeeName(created.EmployeeID, created.ID)

	return shift.NewShiftResponse(created), nil
}

// GetByID implements shift.ShiftService.
func (s *ShiftServiceImpl) GetByID(ctx context.Context, id string) (shift.ShiftResponse, error) {
	found, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return shift.NewShiftResponse(found), nil
}

// Update implements shift.ShiftService. When the shift's recorded work
// session times no longer match the corrected start and end, the session is
// rewritten to the new times with confirmation reset, so recorded work time
// cannot silently diverge from a corrected shift.
func (s *ShiftServiceImpl) Update(ctx context.Context, id string, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	current, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	target, err := s.ScheduleRepository.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, schedule.ErrScheduleNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}
	if target.Status == schedule.StatusArchived {
		return shift.ShiftResponse{}, schedule.ErrScheduleArchived
	}

	start, end := req.ParsedTimes()
	employeeChanged := current.EmployeeID != req.EmployeeID

	current.ScheduleID = req.ScheduleID
	current.EmployeeID = req.EmployeeID
	current.StartTime = start
	current.EndTime = end
	current.Position = req.Position
	if employeeChanged {
		current.EmployeeFirstName = nil
		current.EmployeeLastName = nil
	}

	var updated shift.Shift
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		updated, err = s.ShiftRepository.Update(txCtx, current)
		if err != nil {
			return fmt.Errorf("failed to update shift: %w", err)
		}

		if employeeChanged {
			if err := s.WorkSessionRepository.UpdateUserByShiftID(txCtx, updated.ID, updated.EmployeeID); err != nil {
				return err
			}
		}

		return s.reconcileSession(txCtx, updated)
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if employeeChanged {
		go s.resolveEmployeeName(updated.EmployeeID, updated.ID)
	}

	return shift.NewShiftResponse(updated), nil
}

// reconcileSession rewrites the shift's work session when its recorded
// times drifted from the shift boundaries. The rewrite resets confirmation
// and is attributed to the system marker, and the original recorded times
// are snapshotted once for the audit trail.
func (s *ShiftServiceImpl) reconcileSession(ctx context.Context, sh shift.Shift) error {
	ws, err := s.WorkSessionRepository.GetByShiftID(ctx, sh.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to get work session: %w", err)
	}

	if ws.ClockInTime == nil && ws.ClockOutTime == nil {
		return nil
	}
	if timeEqual(ws.ClockInTime, sh.StartTime) && timeEqual(ws.ClockOutTime, sh.EndTime) {
		return nil
	}

	if ws.OriginalClockIn == nil {
		ws.OriginalClockIn = ws.ClockInTime
	}
	if ws.OriginalClockOut == nil {
		ws.OriginalClockOut = ws.ClockOutTime
	}

	start, end := sh.StartTime, sh.EndTime
	minutes := int(end.Sub(start).Minutes())
	actor := worksession.SystemActor

	ws.ClockInTime = &start
	ws.ClockOutTime = &end
	ws.TotalMinutes = &minutes
	ws.Status = worksession.StatusCompleted
	ws.ModifiedBy = &actor
	ws.Confirmed = false
	ws.ConfirmedBy = nil
	ws.ConfirmedAt = nil

	if _, err := s.WorkSessionRepository.Update(ctx, ws); err != nil {
		return fmt.Errorf("failed to reconcile work session: %w", err)
	}

	return nil
}

func timeEqual(a *time.Time, b time.Time) bool {
	return a != nil && a.Equal(b)
}

// Delete implements shift.ShiftService. Cascade order: note, session, shift,
// all in one transaction.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	current, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to get shift: %w", err)
	}

	owner, err := s.ScheduleRepository.GetByID(ctx, current.ScheduleID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to get schedule: %w", err)
	}
	if err == nil && owner.Status == schedule.StatusArchived {
		return schedule.ErrScheduleArchived
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		session, err := s.WorkSessionRepository.GetByShiftID(txCtx, id)
		if err == nil {
			if err := s.SessionNoteRepository.DeleteByWorkSessionID(txCtx, session.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to get work session: %w", err)
		}

		if err := s.WorkSessionRepository.DeleteByShiftID(txCtx, id); err != nil {
			return err
		}

		return s.ShiftRepository.Delete(txCtx, id)
	})
}

// Reassign implements shift.ShiftService. Used when a take exchange is
// approved: the new owner gets the shift, the cached name is cleared for
// re-resolution, and the work session follows.
func (s *ShiftServiceImpl) Reassign(ctx context.Context, id string, req shift.ReassignShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.reassign(ctx, id, "", req.EmployeeID)
}

// ReassignTo implements shift.ShiftService.
func (s *ShiftServiceImpl) ReassignTo(ctx context.Context, id, expectedOwnerID, newEmployeeID string) (shift.ShiftResponse, error) {
	return s.reassign(ctx, id, expectedOwnerID, newEmployeeID)
}

func (s *ShiftServiceImpl) reassign(ctx context.Context, id, expectedOwnerID, newEmployeeID string) (shift.ShiftResponse, error) {
	current, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	if expectedOwnerID != "" && current.EmployeeID != expectedOwnerID {
		return shift.ShiftResponse{}, shift.ErrShiftOwnerMismatch
	}

	var updated shift.Shift
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		updated, err = s.ShiftRepository.UpdateEmployee(txCtx, id, newEmployeeID)
		if err != nil {
			return fmt.Errorf("failed to reassign shift: %w", err)
		}

		return s.WorkSessionRepository.UpdateUserByShiftID(txCtx, id, newEmployeeID)
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	go s.resolveEmployeeName(newEmployeeID, id)

	return shift.NewShiftResponse(updated), nil
}

// Swap implements shift.ShiftService, exchanging owners without expected
// owner guards.
func (s *ShiftServiceImpl) Swap(ctx context.Context, req shift.SwapShiftsRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.swap(ctx, req.FirstShiftID, "", req.SecondShiftID, "")
}

// SwapOwners implements shift.ShiftService. Stale approval replay defense:
// both current owners must match the expected owners, checked inside the
// transaction, so either both shifts swap or neither does.
func (s *ShiftServiceImpl) SwapOwners(ctx context.Context, firstID, firstExpectedOwner, secondID, secondExpectedOwner string) ([]shift.ShiftResponse, error) {
	return s.swap(ctx, firstID, firstExpectedOwner, secondID, secondExpectedOwner)
}

func (s *ShiftServiceImpl) swap(ctx context.Context, firstID, firstExpectedOwner, secondID, secondExpectedOwner string) ([]shift.ShiftResponse, error) {
	var first, second shift.Shift

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		first, err = s.ShiftRepository.GetByID(txCtx, firstID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shift.ErrShiftNotFound
			}
			return fmt.Errorf("failed to get shift: %w", err)
		}
		second, err = s.ShiftRepository.GetByID(txCtx, secondID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shift.ErrShiftNotFound
			}
			return fmt.Errorf("failed to get shift: %w", err)
		}

		if first.EmployeeID == second.EmployeeID {
			return shift.ErrSameEmployeeSwap
		}
		if firstExpectedOwner != "" && first.EmployeeID != firstExpectedOwner {
			return shift.ErrShiftOwnerMismatch
		}
		if secondExpectedOwner != "" && second.EmployeeID != secondExpectedOwner {
			return shift.ErrShiftOwnerMismatch
		}

		firstOwner, secondOwner := first.EmployeeID, second.EmployeeID

		first, err = s.ShiftRepository.UpdateEmployee(txCtx, firstID, secondOwner)
		if err != nil {
			return fmt.Errorf("failed to swap shift: %w", err)
		}
		second, err = s.ShiftRepository.UpdateEmployee(txCtx, secondID, firstOwner)
		if err != nil {
			return fmt.Errorf("failed to swap shift: %w", err)
		}

		if err := s.WorkSessionRepository.UpdateUserByShiftID(txCtx, firstID, secondOwner); err != nil {
			return err
		}
		return s.WorkSessionRepository.UpdateUserByShiftID(txCtx, secondID, firstOwner)
	})
	if err != nil {
		return nil, err
	}

	go s.resolveEmployeeName(first.EmployeeID, first.ID)
	go s.resolveEmployeeName(second.EmployeeID, second.ID)

	return []shift.ShiftResponse{
		shift.NewShiftResponse(first),
		shift.NewShiftResponse(second),
	}, nil
}

// ListBySchedule implements shift.ShiftService.
func (s *ShiftServiceImpl) ListBySchedule(ctx context.Context, scheduleID string) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	return shift.NewShiftResponses(shifts), nil
}

// ListByEmployee implements shift.ShiftService.
func (s *ShiftServiceImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts by employee: %w", err)
	}

	return shift.NewShiftResponses(shifts), nil
}

// FindOverlapping implements shift.ShiftService.
func (s *ShiftServiceImpl) FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeShiftID string) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.FindOverlapping(ctx, employeeID, start, end, excludeShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping shifts: %w", err)
	}

	return shift.NewShiftResponses(shifts), nil
}

// ApplyEmployeeName implements shift.ShiftService. Inbound sink for the
// asynchronous user info response; a missing shift is tolerated because the
// shift may be gone by the time the response lands.
func (s *ShiftServiceImpl) ApplyEmployeeName(ctx context.Context, shiftID string, firstName, lastName *string) error {
	err := s.ShiftRepository.SetEmployeeName(ctx, shiftID, firstName, lastName)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			s.logger.Warn("name resolution for missing shift", "shift_id", shiftID)
			return nil
		}
		return err
	}

	return nil
}

// resolveEmployeeName requests display name resolution over the bus. Best
// effort and detached: failure is logged and never reaches the caller.
func (s *ShiftServiceImpl) resolveEmployeeName(employeeID, shiftID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.resolver.RequestUserInfo(ctx, employeeID, shiftID); err != nil {
		s.logger.Error("failed to request user info",
			"employee_id", employeeID, "shift_id", shiftID, "error", err)
	}
}
