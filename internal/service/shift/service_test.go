package shift

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/schedule"
	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
	"github.com/clockwise-org/planning-service-go/internal/domain/worksession"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testScheduleID = "3a4f2b1c-9d8e-4f6a-b5c3-2e1d0f9a8b7c"
	testEmployeeA  = "11111111-1111-4111-8111-111111111111"
	testEmployeeB  = "22222222-2222-4222-8222-222222222222"
	testShiftIDA   = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	testShiftIDB   = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
)

// stubTx satisfies pgx.Tx so transactional service paths can run against
// in-memory repositories; WithTransaction reuses it from the context.
type stubTx struct{}

func (stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return stubTx{}, nil }
func (stubTx) Commit(ctx context.Context) error          { return nil }
func (stubTx) Rollback(ctx context.Context) error        { return nil }
func (stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (stubTx) Conn() *pgx.Conn                                               { return nil }

func txContext() context.Context {
	return context.WithValue(context.Background(), "tx", stubTx{})
}

type fakeShiftRepo struct {
	byID   map[string]shift.Shift
	nextID int
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{byID: map[string]shift.Shift{}}
}

func (r *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	r.nextID++
	s.ID = fmt.Sprintf("shift-%d", r.nextID)
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	r.byID[s.ID] = s
	return s, nil
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	s, ok := r.byID[id]
	if !ok {
		return shift.Shift{}, pgx.ErrNoRows
	}
	return s, nil
}

func (r *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	if _, ok := r.byID[s.ID]; !ok {
		return shift.Shift{}, pgx.ErrNoRows
	}
	s.UpdatedAt = time.Now().UTC()
	r.byID[s.ID] = s
	return s, nil
}

func (r *fakeShiftRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeShiftRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range r.byID {
		if s.ScheduleID == scheduleID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range r.byID {
		if s.EmployeeID == employeeID && s.Overlaps(from, to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeShiftID string) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range r.byID {
		if s.EmployeeID != employeeID || s.ID == excludeShiftID {
			continue
		}
		if s.Overlaps(start, end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) UpdateEmployee(ctx context.Context, shiftID, employeeID string) (shift.Shift, error) {
	s, ok := r.byID[shiftID]
	if !ok {
		return shift.Shift{}, pgx.ErrNoRows
	}
	s.EmployeeID = employeeID
	s.EmployeeFirstName = nil
	s.EmployeeLastName = nil
	r.byID[shiftID] = s
	return s, nil
}

func (r *fakeShiftRepo) SetEmployeeName(ctx context.Context, shiftID string, firstName, lastName *string) error {
	s, ok := r.byID[shiftID]
	if !ok {
		return shift.ErrShiftNotFound
	}
	s.EmployeeFirstName = firstName
	s.EmployeeLastName = lastName
	r.byID[shiftID] = s
	return nil
}

type fakeScheduleRepo struct {
	byID map[string]schedule.Schedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{byID: map[string]schedule.Schedule{}}
}

func (r *fakeScheduleRepo) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
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
	return schedule.Schedule{}, pgx.ErrNoRows
}

func (r *fakeScheduleRepo) Update(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	r.byID[s.ID] = s
	return s, nil
}

func (r *fakeScheduleRepo) UpdateStatus(ctx context.Context, id string, status schedule.Status) (schedule.Schedule, error) {
	s, ok := r.byID[id]
	if !ok {
		return schedule.Schedule{}, pgx.ErrNoRows
	}
	s.Status = status
	r.byID[id] = s
	return s, nil
}

func (r *fakeScheduleRepo) ListByBusinessUnit(ctx context.Context, businessUnitID string) ([]schedule.Schedule, error) {
	return nil, nil
}

func (r *fakeScheduleRepo) GetCurrentByBusinessUnit(ctx context.Context, businessUnitID string, now time.Time) (schedule.Schedule, error) {
	return schedule.Schedule{}, pgx.ErrNoRows
}

type fakeWorkSessionRepo struct {
	byShiftID map[string]worksession.WorkSession
	nextID    int
}

func newFakeWorkSessionRepo() *fakeWorkSessionRepo {
	return &fakeWorkSessionRepo{byShiftID: map[string]worksession.WorkSession{}}
}

func (r *fakeWorkSessionRepo) Create(ctx context.Context, ws worksession.WorkSession) (worksession.WorkSession, error) {
	r.nextID++
	ws.ID = fmt.Sprintf("ws-%d", r.nextID)
	r.byShiftID[ws.ShiftID] = ws
	return ws, nil
}

func (r *fakeWorkSessionRepo) GetByID(ctx context.Context, id string) (worksession.WorkSession, error) {
	for _, ws := range r.byShiftID {
		if ws.ID == id {
			return ws, nil
		}
	}
	return worksession.WorkSession{}, pgx.ErrNoRows
}

func (r *fakeWorkSessionRepo) GetByShiftID(ctx context.Context, shiftID string) (worksession.WorkSession, error) {
	ws, ok := r.byShiftID[shiftID]
	if !ok {
		return worksession.WorkSession{}, pgx.ErrNoRows
	}
	return ws, nil
}

func (r *fakeWorkSessionRepo) Update(ctx context.Context, ws worksession.WorkSession) (worksession.WorkSession, error) {
	if _, ok := r.byShiftID[ws.ShiftID]; !ok {
		return worksession.WorkSession{}, pgx.ErrNoRows
	}
	r.byShiftID[ws.ShiftID] = ws
	return ws, nil
}

func (r *fakeWorkSessionRepo) DeleteByShiftID(ctx context.Context, shiftID string) error {
	delete(r.byShiftID, shiftID)
	return nil
}

func (r *fakeWorkSessionRepo) UpdateUserByShiftID(ctx context.Context, shiftID, userID string) error {
	ws, ok := r.byShiftID[shiftID]
	if !ok {
		return pgx.ErrNoRows
	}
	ws.UserID = userID
	r.byShiftID[shiftID] = ws
	return nil
}

func (r *fakeWorkSessionRepo) ListUnconfirmedByBusinessUnit(ctx context.Context, businessUnitID string) ([]worksession.WorkSession, error) {
	return nil, nil
}

func (r *fakeWorkSessionRepo) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]worksession.WorkSession, error) {
	return nil, nil
}

type fakeSessionNoteRepo struct {
	bySessionID map[string]worksession.SessionNote
}

func newFakeSessionNoteRepo() *fakeSessionNoteRepo {
	return &fakeSessionNoteRepo{bySessionID: map[string]worksession.SessionNote{}}
}

func (r *fakeSessionNoteRepo) Upsert(ctx context.Context, n worksession.SessionNote) (worksession.SessionNote, error) {
	n.ID = "note-" + n.WorkSessionID
	r.bySessionID[n.WorkSessionID] = n
	return n, nil
}

func (r *fakeSessionNoteRepo) GetByWorkSessionID(ctx context.Context, workSessionID string) (worksession.SessionNote, error) {
	n, ok := r.bySessionID[workSessionID]
	if !ok {
		return worksession.SessionNote{}, pgx.ErrNoRows
	}
	return n, nil
}

func (r *fakeSessionNoteRepo) DeleteByWorkSessionID(ctx context.Context, workSessionID string) error {
	delete(r.bySessionID, workSessionID)
	return nil
}

type recordingResolver struct {
	mu       sync.Mutex
	requests []string
}

func (r *recordingResolver) RequestUserInfo(ctx context.Context, userID, shiftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, userID+"/"+shiftID)
	return nil
}

func (r *recordingResolver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

type shiftServiceFixture struct {
	svc          shift.ShiftService
	shiftRepo    *fakeShiftRepo
	scheduleRepo *fakeScheduleRepo
	sessionRepo  *fakeWorkSessionRepo
	noteRepo     *fakeSessionNoteRepo
	resolver     *recordingResolver
}

func newShiftServiceFixture() *shiftServiceFixture {
	f := &shiftServiceFixture{
		shiftRepo:    newFakeShiftRepo(),
		scheduleRepo: newFakeScheduleRepo(),
		sessionRepo:  newFakeWorkSessionRepo(),
		noteRepo:     newFakeSessionNoteRepo(),
		resolver:     &recordingResolver{},
	}
	f.svc = NewShiftService(nil, f.shiftRepo, f.scheduleRepo, f.sessionRepo, f.noteRepo, f.resolver, slog.Default())
	f.scheduleRepo.byID[testScheduleID] = schedule.Schedule{
		ID:             testScheduleID,
		BusinessUnitID: "bu-1",
		WeekStart:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:         schedule.StatusDraft,
	}
	return f
}

func (f *shiftServiceFixture) seedShift(id, employeeID string, start, end time.Time) {
	f.shiftRepo.byID[id] = shift.Shift{
		ID:         id,
		ScheduleID: testScheduleID,
		EmployeeID: employeeID,
		StartTime:  start,
		EndTime:    end,
	}
}

func TestShiftService_Create_SpawnsSessionAndNote(t *testing.T) {
	f := newShiftServiceFixture()

	resp, err := f.svc.Create(txContext(), testScheduleID, shift.CreateShiftRequest{
		EmployeeID: testEmployeeA,
		StartTime:  "2026-03-02T09:00:00Z",
		EndTime:    "2026-03-02T17:00:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, testEmployeeA, resp.EmployeeID)

	ws, err := f.sessionRepo.GetByShiftID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, worksession.StatusCreated, ws.Status)
	assert.Equal(t, testEmployeeA, ws.UserID)
	assert.Nil(t, ws.ClockInTime)

	note, err := f.noteRepo.GetByWorkSessionID(context.Background(), ws.ID)
	require.NoError(t, err)
	assert.Empty(t, note.Note)

	assert.Eventually(t, func() bool { return f.resolver.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestShiftService_Create_ScheduleNotFound(t *testing.T) {
	f := newShiftServiceFixture()

	_, err := f.svc.Create(txContext(), "b2c3d4e5-f6a7-4b8c-9d0e-1f2a3b4c5d6e", shift.CreateShiftRequest{
		EmployeeID: testEmployeeA,
		StartTime:  "2026-03-02T09:00:00Z",
		EndTime:    "2026-03-02T17:00:00Z",
	})

	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}

func TestShiftService_Create_ArchivedScheduleRejected(t *testing.T) {
	f := newShiftServiceFixture()
	sc := f.scheduleRepo.byID[testScheduleID]
	sc.Status = schedule.StatusArchived
	f.scheduleRepo.byID[testScheduleID] = sc

	_, err := f.svc.Create(txContext(), testScheduleID, shift.CreateShiftRequest{
		EmployeeID: testEmployeeA,
		StartTime:  "2026-03-02T09:00:00Z",
		EndTime:    "2026-03-02T17:00:00Z",
	})

	assert.ErrorIs(t, err, schedule.ErrScheduleArchived)
}

func TestShiftService_Create_EndNotAfterStart(t *testing.T) {
	f := newShiftServiceFixture()

	_, err := f.svc.Create(txContext(), testScheduleID, shift.CreateShiftRequest{
		EmployeeID: testEmployeeA,
		StartTime:  "2026-03-02T17:00:00Z",
		EndTime:    "2026-03-02T17:00:00Z",
	})

	assert.ErrorIs(t, err, shift.ErrInvalidShiftTimes)
}

func TestShiftService_Update_ReconcilesDriftedSession(t *testing.T) {
	f := newShiftServiceFixture()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	f.seedShift(testShiftIDA, testEmployeeA, start, end)

	clockIn := time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC)
	clockOut := time.Date(2026, 3, 2, 16, 50, 0, 0, time.UTC)
	confirmedBy := "mgr-1"
	f.sessionRepo.byShiftID[testShiftIDA] = worksession.WorkSession{
		ID:           "ws-1",
		ShiftID:      testShiftIDA,
		UserID:       testEmployeeA,
		Status:       worksession.StatusCompleted,
		ClockInTime:  &clockIn,
		ClockOutTime: &clockOut,
		Confirmed:    true,
		ConfirmedBy:  &confirmedBy,
	}

	_, err := f.svc.Update(txContext(), testShiftIDA, shift.UpdateShiftRequest{
		ScheduleID: testScheduleID,
		EmployeeID: testEmployeeA,
		StartTime:  "2026-03-02T10:00:00Z",
		EndTime:    "2026-03-02T18:00:00Z",
	})
	require.NoError(t, err)

	ws := f.sessionRepo.byShiftID[testShiftIDA]
	require.NotNil(t, ws.ClockInTime)
	require.NotNil(t, ws.ClockOutTime)
	assert.True(t, ws.ClockInTime.Equal(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)))
	assert.True(t, ws.ClockOutTime.Equal(time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)))
	require.NotNil(t, ws.TotalMinutes)
	assert.Equal(t, 480, *ws.TotalMinutes)

	require.NotNil(t, ws.ModifiedBy)
	assert.Equal(t, worksession.SystemActor, *ws.ModifiedBy)
	assert.False(t, ws.Confirmed)
	assert.Nil(t, ws.ConfirmedBy)

	require.NotNil(t, ws.OriginalClockIn)
	require.NotNil(t, ws.OriginalClockOut)
	assert.True(t, ws.OriginalClockIn.Equal(clockIn))
	assert.True(t, ws.OriginalClockOut.Equal(clockOut))
}

func TestShiftService_Update_LeavesUnclockedSessionAlone(t *testing.T) {
	f := newShiftServiceFixture()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	f.seedShift(testShiftIDA, testEmployeeA, start, end)
	f.sessionRepo.byShiftID[testShiftIDA] = worksession.WorkSession{
		ID:      "ws-1",
		ShiftID: testShiftIDA,
		UserID:  testEmployeeA,
		Status:  worksession.StatusCreated,
	}

	_, err := f.svc.Update(txContext(), testShiftIDA, shift.UpdateShiftRequest{
		ScheduleID: testScheduleID,
		EmployeeID: testEmployeeA,
		StartTime:  "2026-03-02T10:00:00Z",
		EndTime:    "2026-03-02T18:00:00Z",
	})
	require.NoError(t, err)

	ws := f.sessionRepo.byShiftID[testShiftIDA]
	assert.Equal(t, worksession.StatusCreated, ws.Status)
	assert.Nil(t, ws.ClockInTime)
	assert.Nil(t, ws.ModifiedBy)
}

func TestShiftService_Update_EmployeeChangeClearsNameAndMovesSession(t *testing.T) {
	f := newShiftServiceFixture()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	first, last := "Ada", "Lovelace"
	f.shiftRepo.byID[testShiftIDA] = shift.Shift{
		ID:                testShiftIDA,
		ScheduleID:        testScheduleID,
		EmployeeID:        testEmployeeA,
		StartTime:         start,
		EndTime:           end,
		EmployeeFirstName: &first,
		EmployeeLastName:  &last,
	}
	f.sessionRepo.byShiftID[testShiftIDA] = worksession.WorkSession{
		ID:      "ws-1",
		ShiftID: testShiftIDA,
		UserID:  testEmployeeA,
		Status:  worksession.StatusCreated,
	}

	resp, err := f.svc.Update(txContext(), testShiftIDA, shift.UpdateShiftRequest{
		ScheduleID: testScheduleID,
		EmployeeID: testEmployeeB,
		StartTime:  "2026-03-02T09:00:00Z",
		EndTime:    "2026-03-02T17:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, testEmployeeB, resp.EmployeeID)
	assert.Nil(t, resp.EmployeeFirstName)
	assert.Nil(t, resp.EmployeeLastName)
	assert.Equal(t, testEmployeeB, f.sessionRepo.byShiftID[testShiftIDA].UserID)
}

func TestShiftService_Delete_CascadesSessionAndNote(t *testing.T) {
	f := newShiftServiceFixture()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	f.seedShift(testShiftIDA, testEmployeeA, start, end)
	f.sessionRepo.byShiftID[testShiftIDA] = worksession.WorkSession{ID: "ws-1", ShiftID: testShiftIDA}
	f.noteRepo.bySessionID["ws-1"] = worksession.SessionNote{ID: "note-1", WorkSessionID: "ws-1"}

	err := f.svc.Delete(txContext(), testShiftIDA)
	require.NoError(t, err)

	assert.Empty(t, f.shiftRepo.byID)
	assert.Empty(t, f.sessionRepo.byShiftID)
	assert.Empty(t, f.noteRepo.bySessionID)
}

func TestShiftService_Delete_ArchivedScheduleRejected(t *testing.T) {
	f := newShiftServiceFixture()
	f.seedShift(testShiftIDA, testEmployeeA, time.Now(), time.Now().Add(time.Hour))
	sc := f.scheduleRepo.byID[testScheduleID]
	sc.Status = schedule.StatusArchived
	f.scheduleRepo.byID[testScheduleID] = sc

	err := f.svc.Delete(txContext(), testShiftIDA)

	assert.ErrorIs(t, err, schedule.ErrScheduleArchived)
}

func TestShiftService_ReassignTo_OwnerMismatch(t *testing.T) {
	f := newShiftServiceFixture()
	f.seedShift(testShiftIDA, testEmployeeA, time.Now(), time.Now().Add(time.Hour))

	_, err := f.svc.ReassignTo(txContext(), testShiftIDA, testEmployeeB, testEmployeeA)

	assert.ErrorIs(t, err, shift.ErrShiftOwnerMismatch)
	assert.Equal(t, testEmployeeA, f.shiftRepo.byID[testShiftIDA].EmployeeID)
}

func TestShiftService_Reassign_MovesOwnerAndSession(t *testing.T) {
	f := newShiftServiceFixture()
	f.seedShift(testShiftIDA, testEmployeeA, time.Now(), time.Now().Add(time.Hour))
	f.sessionRepo.byShiftID[testShiftIDA] = worksession.WorkSession{ID: "ws-1", ShiftID: testShiftIDA, UserID: testEmployeeA}

	resp, err := f.svc.Reassign(txContext(), testShiftIDA, shift.ReassignShiftRequest{EmployeeID: testEmployeeB})

	require.NoError(t, err)
	assert.Equal(t, testEmployeeB, resp.EmployeeID)
	assert.Equal(t, testEmployeeB, f.sessionRepo.byShiftID[testShiftIDA].UserID)
}

func TestShiftService_SwapOwners_ExchangesBothSides(t *testing.T) {
	f := newShiftServiceFixture()
	f.seedShift(testShiftIDA, testEmployeeA, time.Now(), time.Now().Add(time.Hour))
	f.seedShift(testShiftIDB, testEmployeeB, time.Now().Add(2*time.Hour), time.Now().Add(3*time.Hour))
	f.sessionRepo.byShiftID[testShiftIDA] = worksession.WorkSession{ID: "ws-1", ShiftID: testShiftIDA, UserID: testEmployeeA}
	f.sessionRepo.byShiftID[testShiftIDB] = worksession.WorkSession{ID: "ws-2", ShiftID: testShiftIDB, UserID: testEmployeeB}

	resp, err := f.svc.SwapOwners(txContext(), testShiftIDA, testEmployeeA, testShiftIDB, testEmployeeB)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, testEmployeeB, resp[0].EmployeeID)
	assert.Equal(t, testEmployeeA, resp[1].EmployeeID)
	assert.Equal(t, testEmployeeB, f.sessionRepo.byShiftID[testShiftIDA].UserID)
	assert.Equal(t, testEmployeeA, f.sessionRepo.byShiftID[testShiftIDB].UserID)
}

func TestShiftService_SwapOwners_SameEmployeeRejected(t *testing.T) {
	f := newShiftServiceFixture()
	f.seedShift(testShiftIDA, testEmployeeA, time.Now(), time.Now().Add(time.Hour))
	f.seedShift(testShiftIDB, testEmployeeA, time.Now().Add(2*time.Hour), time.Now().Add(3*time.Hour))

	_, err := f.svc.SwapOwners(txContext(), testShiftIDA, testEmployeeA, testShiftIDB, testEmployeeA)

	assert.ErrorIs(t, err, shift.ErrSameEmployeeSwap)
}

func TestShiftService_SwapOwners_StaleApprovalRejected(t *testing.T) {
	f := newShiftServiceFixture()
	f.seedShift(testShiftIDA, testEmployeeA, time.Now(), time.Now().Add(time.Hour))
	f.seedShift(testShiftIDB, testEmployeeB, time.Now().Add(2*time.Hour), time.Now().Add(3*time.Hour))

	// The approval expected employee B on the first shift, but it changed
	// hands since. Neither side may move.
	_, err := f.svc.SwapOwners(txContext(), testShiftIDA, testEmployeeB, testShiftIDB, testEmployeeA)

	assert.ErrorIs(t, err, shift.ErrShiftOwnerMismatch)
	assert.Equal(t, testEmployeeA, f.shiftRepo.byID[testShiftIDA].EmployeeID)
	assert.Equal(t, testEmployeeB, f.shiftRepo.byID[testShiftIDB].EmployeeID)
}

func TestShiftService_ApplyEmployeeName_MissingShiftTolerated(t *testing.T) {
	f := newShiftServiceFixture()

	first := "Ada"
	err := f.svc.ApplyEmployeeName(context.Background(), "gone", &first, nil)

	assert.NoError(t, err)
}

func TestShiftService_ApplyEmployeeName_WritesCache(t *testing.T) {
	f := newShiftServiceFixture()
	f.seedShift(testShiftIDA, testEmployeeA, time.Now(), time.Now().Add(time.Hour))

	first, last := "Ada", "Lovelace"
	err := f.svc.ApplyEmployeeName(context.Background(), testShiftIDA, &first, &last)

	require.NoError(t, err)
	s := f.shiftRepo.byID[testShiftIDA]
	require.NotNil(t, s.EmployeeFirstName)
	assert.Equal(t, "Ada", *s.EmployeeFirstName)
	require.NotNil(t, s.EmployeeLastName)
	assert.Equal(t, "Lovelace", *s.EmployeeLastName)
}
