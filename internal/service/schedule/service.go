package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/event"
	"github.com/clockwise-org/planning-service-go/internal/domain/schedule"
	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
	"github.com/clockwise-org/planning-service-go/internal/pkg/timeutil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type ScheduleServiceImpl struct {
	schedule.ScheduleRepository
	shift.ShiftRepository
	publisher event.SchedulePublisher
	logger    *slog.Logger
}

func NewScheduleService(
	scheduleRepo schedule.ScheduleRepository,
	shiftRepo shift.ShiftRepository,
	publisher event.SchedulePublisher,
	logger *slog.Logger,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		ScheduleRepository: scheduleRepo,
		ShiftRepository:    shiftRepo,
		publisher:          publisher,
		logger:             logger,
	}
}

// Create implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Create(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	newSchedule := schedule.Schedule{
		BusinessUnitID: req.BusinessUnitID,
		WeekStart:      timeutil.NormalizeToWeekStart(req.ParsedWeekStart()),
		Status:         schedule.StatusDraft,
	}

	created, err := s.ScheduleRepository.Create(ctx, newSchedule)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return schedule.ScheduleResponse{}, schedule.ErrScheduleExists
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to create schedule: %w", err)
	}

	return schedule.NewScheduleResponse(created), nil
}

// GetByID implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetByID(ctx context.Context, id string) (schedule.ScheduleResponse, error) {
	found, err := s.ScheduleRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	return schedule.NewScheduleResponse(found), nil
}

// Update implements schedule.ScheduleService. Only DRAFT schedules may move
// to another week.
func (s *ScheduleServiceImpl) Update(ctx context.Context, id string, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	current, err := s.ScheduleRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	if current.Status != schedule.StatusDraft {
		return schedule.ScheduleResponse{}, schedule.ErrScheduleNotDraft
	}

	current.BusinessUnitID = req.BusinessUnitID
	current.WeekStart = timeutil.NormalizeToWeekStart(req.ParsedWeekStart())

	updated, err := s.ScheduleRepository.Update(ctx, current)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return schedule.ScheduleResponse{}, schedule.ErrScheduleExists
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to update schedule: %w", err)
	}

	return schedule.NewScheduleResponse(updated), nil
}

// Publish implements schedule.ScheduleService. The published event is fired
// after the state change commits; a publish failure is logged and never
// rolls the schedule back.
func (s *ScheduleServiceImpl) Publish(ctx context.Context, id string) (schedule.ScheduleResponse, error) {
	current, err := s.ScheduleRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	if current.Status != schedule.StatusDraft {
		return schedule.ScheduleResponse{}, schedule.ErrScheduleNotDraft
	}

	published, err := s.ScheduleRepository.UpdateStatus(ctx, id, schedule.StatusPublished)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to publish schedule: %w", err)
	}

	go s.emitPublished(published)

	return schedule.NewScheduleResponse(published), nil
}

// emitPublished assembles the employee-to-shifts map and hands it to the
// publisher. Runs detached from the request, so it carries its own context.
func (s *ScheduleServiceImpl) emitPublished(published schedule.Schedule) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shifts, err := s.ShiftRepository.ListBySchedule(ctx, published.ID)
	if err != nil {
		s.logger.Error("failed to load shifts for publish event",
			"schedule_id", published.ID, "error", err)
		return
	}

	employeeShifts := make(map[string][]event.ShiftSummary)
	for _, sh := range shifts {
		employeeShifts[sh.EmployeeID] = append(employeeShifts[sh.EmployeeID], event.ShiftSummary{
			ShiftID:   sh.ID,
			StartTime: sh.StartTime,
			EndTime:   sh.EndTime,
			Position:  sh.Position,
		})
	}

	evt := event.SchedulePublished{
		ScheduleID:     published.ID,
		BusinessUnitID: published.BusinessUnitID,
		WeekStart:      published.WeekStart,
		EmployeeShifts: employeeShifts,
	}

	if err := s.publisher.SchedulePublished(ctx, evt); err != nil {
		s.logger.Error("failed to publish schedule event",
			"schedule_id", published.ID, "error", err)
	}
}

// RevertToDraft implements schedule.ScheduleService. No event is emitted.
func (s *ScheduleServiceImpl) RevertToDraft(ctx context.Context, id string) (schedule.ScheduleResponse, error) {
	current, err := s.ScheduleRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	if current.Status != schedule.StatusPublished {
		return schedule.ScheduleResponse{}, schedule.ErrScheduleNotPublished
	}

	reverted, err := s.ScheduleRepository.UpdateStatus(ctx, id, schedule.StatusDraft)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to revert schedule: %w", err)
	}

	return schedule.NewScheduleResponse(reverted), nil
}

// Archive implements schedule.ScheduleService. Terminal: nothing transitions
// out of ARCHIVED and the owned shifts become read only.
func (s *ScheduleServiceImpl) Archive(ctx context.Context, id string) (schedule.ScheduleResponse, error) {
	current, err := s.ScheduleRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	if current.Status == schedule.StatusArchived {
		return schedule.NewScheduleResponse(current), nil
	}

	archived, err := s.ScheduleRepository.UpdateStatus(ctx, id, schedule.StatusArchived)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to archive schedule: %w", err)
	}

	return schedule.NewScheduleResponse(archived), nil
}

// GetPublishedByWeek implements schedule.ScheduleService. Unprivileged
// callers must never see draft contents, so anything but PUBLISHED fails.
func (s *ScheduleServiceImpl) GetPublishedByWeek(ctx context.Context, businessUnitID string, week time.Time) (schedule.ScheduleWithShiftsResponse, error) {
	found, err := s.getByWeek(ctx, businessUnitID, week)
	if err != nil {
		return schedule.ScheduleWithShiftsResponse{}, err
	}

	if found.Status != schedule.StatusPublished {
		return schedule.ScheduleWithShiftsResponse{}, schedule.ErrScheduleNotPublished
	}

	return s.withShifts(ctx, found)
}

// GetAnyByWeek implements schedule.ScheduleService. Privileged path: status
// is not checked.
func (s *ScheduleServiceImpl) GetAnyByWeek(ctx context.Context, businessUnitID string, week time.Time) (schedule.ScheduleWithShiftsResponse, error) {
	found, err := s.getByWeek(ctx, businessUnitID, week)
	if err != nil {
		return schedule.ScheduleWithShiftsResponse{}, err
	}

	return s.withShifts(ctx, found)
}

func (s *ScheduleServiceImpl) getByWeek(ctx context.Context, businessUnitID string, week time.Time) (schedule.Schedule, error) {
	weekStart := timeutil.NormalizeToWeekStart(week)

	found, err := s.ScheduleRepository.GetByBusinessUnitAndWeekStart(ctx, businessUnitID, weekStart)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule by week: %w", err)
	}

	return found, nil
}

func (s *ScheduleServiceImpl) withShifts(ctx context.Context, found schedule.Schedule) (schedule.ScheduleWithShiftsResponse, error) {
	shifts, err := s.ShiftRepository.ListBySchedule(ctx, found.ID)
	if err != nil {
		return schedule.ScheduleWithShiftsResponse{}, fmt.Errorf("failed to list schedule shifts: %w", err)
	}

	return schedule.ScheduleWithShiftsResponse{
		ScheduleResponse: schedule.NewScheduleResponse(found),
		Shifts:           shift.NewShiftResponses(shifts),
	}, nil
}

// ListByBusinessUnit implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListByBusinessUnit(ctx context.Context, businessUnitID string) ([]schedule.ScheduleResponse, error) {
	schedules, err := s.ScheduleRepository.ListByBusinessUnit(ctx, businessUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	out := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sc := range schedules {
		out = append(out, schedule.NewScheduleResponse(sc))
	}

	return out, nil
}

// GetCurrent implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetCurrent(ctx context.Context, businessUnitID string) (schedule.ScheduleResponse, error) {
	found, err := s.ScheduleRepository.GetCurrentByBusinessUnit(ctx, businessUnitID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to get current schedule: %w", err)
	}

	return schedule.NewScheduleResponse(found), nil
}
