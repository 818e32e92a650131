package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/event"
	"github.com/clockwise-org/planning-service-go/internal/domain/schedule"
	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBusinessUnitID = "f1d9a6ce-3c55-4f24-9b2e-7a2b0f6f4d11"

type fakeScheduleRepo struct {
	byID   map[string]schedule.Schedule
	nextID int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{byID: map[string]schedule.Schedule{}}
}

func (r *fakeScheduleRepo) hasWeek(businessUnitID string, weekStart time.Time, excludeID string) bool {
	for _, sc := range r.byID {
		if sc.ID != excludeID && sc.BusinessUnitID == businessUnitID && sc.WeekStart.Equal(weekStart) {
			return true
		}
	}
	return false
}

func (r *fakeScheduleRepo) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	if r.hasWeek(s.BusinessUnitID, s.WeekStart, "") {
		return schedule.Schedule{}, &pgconn.PgError{Code: "23505"}
	}
	r.nextID++
	s.ID = fmt.Sprintf("sched-%d", r.nextID)
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	r.byID[s.ID] = s
	return s, nil
}

func (r *fakeScheduleRepo) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	s, ok := r.byID[id]
	if !ok {
		return schedule.Schedule{}, pgx.ErrNoRows
	}
	return s, nil
}

func (r *fakeScheduleRepo) GetByBusinessUnitAndWeekStart(ctx context.Context, businessUnitID string, weekStart time.Time) (schedule.Schedule, error) {
	for _, s := range r.byID {
		if s.BusinessUnitID == businessUnitID && s.WeekStart.Equal(weekStart) {
			return s, nil
		}
	}
	return schedule.Schedule{}, pgx.ErrNoRows
}

func (r *fakeScheduleRepo) Update(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	if _, ok := r.byID[s.ID]; !ok {
		return schedule.Schedule{}, pgx.ErrNoRows
	}
	if r.hasWeek(s.BusinessUnitID, s.WeekStart, s.ID) {
		return schedule.Schedule{}, &pgconn.PgError{Code: "23505"}
	}
	s.UpdatedAt = time.Now().UTC()
	r.byID[s.ID] = s
	return s, nil
}

func (r *fakeScheduleRepo) UpdateStatus(ctx context.Context, id string, status schedule.Status) (schedule.Schedule, error) {
	s, ok := r.byID[id]
	if !ok {
		return schedule.Schedule{}, pgx.ErrNoRows
	}
	s.Status = status
	s.UpdatedAt = time.Now().UTC()
	r.byID[id] = s
	return s, nil
}

func (r *fakeScheduleRepo) ListByBusinessUnit(ctx context.Context, businessUnitID string) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for _, s := range r.byID {
		if s.BusinessUnitID == businessUnitID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) GetCurrentByBusinessUnit(ctx context.Context, businessUnitID string, now time.Time) (schedule.Schedule, error) {
	for _, s := range r.byID {
		if s.BusinessUnitID == businessUnitID && !now.Before(s.WeekStart) && now.Before(s.WeekStart.AddDate(0, 0, 7)) {
			return s, nil
		}
	}
	return schedule.Schedule{}, pgx.ErrNoRows
}

type fakeShiftLister struct {
	bySchedule map[string][]shift.Shift
}

func newFakeShiftLister() *fakeShiftLister {
	return &fakeShiftLister{bySchedule: map[string][]shift.Shift{}}
}

func (r *fakeShiftLister) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	return s, nil
}

func (r *fakeShiftLister) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	return shift.Shift{}, pgx.ErrNoRows
}

func (r *fakeShiftLister) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	return s, nil
}

func (r *fakeShiftLister) Delete(ctx context.Context, id string) error { return nil }

func (r *fakeShiftLister) ListBySchedule(ctx context.Context, scheduleID string) ([]shift.Shift, error) {
	return r.bySchedule[scheduleID], nil
}

func (r *fakeShiftLister) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]shift.Shift, error) {
	return nil, nil
}

func (r *fakeShiftLister) FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeShiftID string) ([]shift.Shift, error) {
	return nil, nil
}

func (r *fakeShiftLister) UpdateEmployee(ctx context.Context, shiftID, employeeID string) (shift.Shift, error) {
	return shift.Shift{}, pgx.ErrNoRows
}

func (r *fakeShiftLister) SetEmployeeName(ctx context.Context, shiftID string, firstName, lastName *string) error {
	return nil
}

type capturingPublisher struct {
	events chan event.SchedulePublished
}

func newCapturingPublisher() *capturingPublisher {
	return &capturingPublisher{events: make(chan event.SchedulePublished, 1)}
}

func (p *capturingPublisher) SchedulePublished(ctx context.Context, evt event.SchedulePublished) error {
	p.events <- evt
	return nil
}

func newTestScheduleService() (schedule.ScheduleService, *fakeScheduleRepo, *fakeShiftLister, *capturingPublisher) {
	scheduleRepo := newFakeScheduleRepo()
	shiftRepo := newFakeShiftLister()
	publisher := newCapturingPublisher()
	svc := NewScheduleService(scheduleRepo, shiftRepo, publisher, slog.Default())
	return svc, scheduleRepo, shiftRepo, publisher
}

func TestScheduleService_Create_NormalizesWeekStart(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestScheduleService()

	// 2026-03-05 is a Thursday; the schedule must land on Monday 2026-03-02.
	resp, err := svc.Create(ctx, schedule.CreateScheduleRequest{
		BusinessUnitID: testBusinessUnitID,
		WeekStart:      "2026-03-05",
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.WeekStart)
	assert.Equal(t, string(schedule.StatusDraft), resp.Status)
}

func TestScheduleService_Create_DuplicateWeek(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestScheduleService()

	_, err := svc.Create(ctx, schedule.CreateScheduleRequest{BusinessUnitID: testBusinessUnitID, WeekStart: "2026-03-02"})
	require.NoError(t, err)

	// Another day of the same week collides after normalization.
	_, err = svc.Create(ctx, schedule.CreateScheduleRequest{BusinessUnitID: testBusinessUnitID, WeekStart: "2026-03-06"})
	assert.ErrorIs(t, err, schedule.ErrScheduleExists)
}

func TestScheduleService_Update_DraftOnly(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestScheduleService()

	created, err := svc.Create(ctx, schedule.CreateScheduleRequest{BusinessUnitID: testBusinessUnitID, WeekStart: "2026-03-02"})
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, created.ID, schedule.StatusPublished)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, schedule.UpdateScheduleRequest{BusinessUnitID: testBusinessUnitID, WeekStart: "2026-03-09"})
	assert.ErrorIs(t, err, schedule.ErrScheduleNotDraft)
}

func TestScheduleService_Update_OverwritesBusinessUnitAndWeek(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestScheduleService()

	created, err := svc.Create(ctx, schedule.CreateScheduleRequest{BusinessUnitID: testBusinessUnitID, WeekStart: "2026-03-02"})
	require.NoError(t, err)

	otherBusinessUnitID := "9b3f64a0-52f1-4a8d-b7c4-0e5d2a1f8c33"
	updated, err := svc.Update(ctx, created.ID, schedule.UpdateScheduleRequest{
		BusinessUnitID: otherBusinessUnitID,
		WeekStart:      "2026-03-12",
	})
	require.NoError(t, err)
	assert.Equal(t, otherBusinessUnitID, updated.BusinessUnitID)
	assert.Equal(t, "2026-03-09", updated.WeekStart)
}

func TestScheduleService_Publish_EmitsEvent(t *testing.T) {
	ctx := context.Background()
	svc, _, shiftRepo, publisher := newTestScheduleService()

	created, err := svc.Create(ctx, schedule.CreateScheduleRequest{BusinessUnitID: testBusinessUnitID, WeekStart: "2026-03-02"})
	require.NoError(t, err)

	shiftRepo.bySchedule[created.ID] = []shift.Shift{
		{ID: "shift-1", ScheduleID: created.ID, EmployeeID: "emp-1"},
		{ID: "shift-2", ScheduleID: created.ID, EmployeeID: "emp-1"},
		{ID: "shift-3", ScheduleID: created.ID, EmployeeID: "emp-2"},
	}

	resp, err := svc.Publish(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusPublished), resp.Status)

	select {
	case evt := <-publisher.events:
		assert.Equal(t, created.ID, evt.ScheduleID)
		assert.Equal(t, testBusinessUnitID, evt.BusinessUnitID)
		assert.Len(t, evt.EmployeeShifts["emp-1"], 2)
		assert.Len(t, evt.EmployeeShifts["emp-2"], 1)
	case <-time.After(2 * time.Second):
		t.Fatal("publish event was never emitted")
	}
}

func TestScheduleService_Publish_NotDraft(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestScheduleService()

	created, err := svc.Create(ctx, schedule.CreateScheduleRequest{BusinessUnitID: testBusinessUnitID, WeekStart: "2026-03-02"})
	require.NoError(t, err)

	_, err = svc.Publish(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.Publish(ctx, created.ID)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotDraft)
}

func TestScheduleService_RevertToDraft(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestScheduleService()

	created, err := svc.Create(ctx, schedule.CreateScheduleRequest{BusinessUnitID: testBusinessUnitID, WeekStart: "2026-03-02"})
	require.NoError(t, err)

	_, err = svc.RevertToDraft(ctx, created.ID)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotPublished)

	_, err = svc.Publish(ctx, created.ID)
	require.NoError(t, err)

	resp, err := svc.RevertToDraft(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusDraft), resp.Status)
}

func TestScheduleService_Archive_TerminalAndIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestScheduleService()

	created, err := svc.Create(ctx, schedule.CreateScheduleRequest{BusinessUnitID: testBusinessUnitID, WeekStart: "2026-03-02"})
	require.NoError(t, err)

	resp, err := svc.Archive(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusArchived), resp.Status)

	// Archiving twice is a no-op, and nothing transitions out.
	resp, err = svc.Archive(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusArchived), resp.Status)

	_, err = svc.Publish(ctx, created.ID)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotDraft)

	_, err = svc.RevertToDraft(ctx, created.ID)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotPublished)
}

func TestScheduleService_GetPublishedByWeek_HidesDrafts(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestScheduleService()

	_, err := svc.Create(ctx, schedule.CreateScheduleRequest{BusinessUnitID: testBusinessUnitID, WeekStart: "2026-03-02"})
	require.NoError(t, err)

	week := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	_, err = svc.GetPublishedByWeek(ctx, testBusinessUnitID, week)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotPublished)

	_, err = svc.GetAnyByWeek(ctx, testBusinessUnitID, week)
	assert.NoError(t, err)
}

func TestScheduleService_GetPublishedByWeek_WithShifts(t *testing.T) {
	ctx := context.Background()
	svc, _, shiftRepo, _ := newTestScheduleService()

	created, err := svc.Create(ctx, schedule.CreateScheduleRequest{BusinessUnitID: testBusinessUnitID, WeekStart: "2026-03-02"})
	require.NoError(t, err)

	shiftRepo.bySchedule[created.ID] = []shift.Shift{
		{ID: "shift-1", ScheduleID: created.ID, EmployeeID: "emp-1"},
	}

	_, err = svc.Publish(ctx, created.ID)
	require.NoError(t, err)

	resp, err := svc.GetPublishedByWeek(ctx, testBusinessUnitID, time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	require.Len(t, resp.Shifts, 1)
	assert.Equal(t, "shift-1", resp.Shifts[0].ID)
}

func TestScheduleService_GetByWeek_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestScheduleService()

	_, err := svc.GetAnyByWeek(ctx, testBusinessUnitID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}

func TestScheduleService_GetCurrent(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestScheduleService()

	now := time.Now().UTC()
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysSinceMonday := (int(weekStart.Weekday()) + 6) % 7
	weekStart = weekStart.AddDate(0, 0, -daysSinceMonday)

	repo.byID["sched-now"] = schedule.Schedule{
		ID:             "sched-now",
		BusinessUnitID: testBusinessUnitID,
		WeekStart:      weekStart,
		Status:         schedule.StatusPublished,
	}

	resp, err := svc.GetCurrent(ctx, testBusinessUnitID)
	require.NoError(t, err)
	assert.Equal(t, "sched-now", resp.ID)
}
