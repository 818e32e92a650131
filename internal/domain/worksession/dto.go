package worksession

import (
	"time"

	"github.com/clockwise-org/planning-service-go/internal/pkg/validator"
)

type ModifyWorkSessionRequest struct {
	ClockInTime  string  `json:"clock_in_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	ClockOutTime *string `json:"clock_out_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (r ModifyWorkSessionRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	in, out := r.ParsedTimes()
	if out != nil && !out.After(in) {
		return ErrClockOutBeforeIn
	}
	return nil
}

func (r ModifyWorkSessionRequest) ParsedTimes() (time.Time, *time.Time) {
	in, _ := time.Parse(time.RFC3339, r.ClockInTime)
	if r.ClockOutTime == nil {
		return in.UTC(), nil
	}
	out, _ := time.Parse(time.RFC3339, *r.ClockOutTime)
	outUTC := out.UTC()
	return in.UTC(), &outUTC
}

// SessionNoteRequest carries the note text. Empty clears the note; notes
// start out empty when the session is created.
type SessionNoteRequest struct {
	Note string `json:"note" validate:"max=500"`
}

func (r SessionNoteRequest) Validate() error {
	return validator.Struct(r)
}

type WorkSessionResponse struct {
	ID               string  `json:"id"`
	ShiftID          string  `json:"shift_id"`
	UserID           string  `json:"user_id"`
	Status           string  `json:"status"`
	ClockInTime      *string `json:"clock_in_time"`
	ClockOutTime     *string `json:"clock_out_time"`
	TotalMinutes     *int    `json:"total_minutes"`
	Confirmed        bool    `json:"confirmed"`
	ConfirmedBy      *string `json:"confirmed_by"`
	ConfirmedAt      *string `json:"confirmed_at"`
	ModifiedBy       *string `json:"modified_by"`
	OriginalClockIn  *string `json:"original_clock_in"`
	OriginalClockOut *string `json:"original_clock_out"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func NewWorkSessionResponse(ws WorkSession) WorkSessionResponse {
	return WorkSessionResponse{
		ID:               ws.ID,
		ShiftID:          ws.ShiftID,
		UserID:           ws.UserID,
		Status:           string(ws.Status),
		ClockInTime:      formatTimePtr(ws.ClockInTime),
		ClockOutTime:     formatTimePtr(ws.ClockOutTime),
		TotalMinutes:     ws.TotalMinutes,
		Confirmed:        ws.Confirmed,
		ConfirmedBy:      ws.ConfirmedBy,
		ConfirmedAt:      formatTimePtr(ws.ConfirmedAt),
		ModifiedBy:       ws.ModifiedBy,
		OriginalClockIn:  formatTimePtr(ws.OriginalClockIn),
		OriginalClockOut: formatTimePtr(ws.OriginalClockOut),
		CreatedAt:        ws.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        ws.UpdatedAt.Format(time.RFC3339),
	}
}

func NewWorkSessionResponses(sessions []WorkSession) []WorkSessionResponse {
	out := make([]WorkSessionResponse, 0, len(sessions))
	for _, ws := range sessions {
		out = append(out, NewWorkSessionResponse(ws))
	}
	return out
}

// UnconfirmedWorkSessionResponse is one entry in the manager review queue:
// the session joined with its shift's window and employee, plus the session
// note when one has been written.
type UnconfirmedWorkSessionResponse struct {
	WorkSessionResponse
	ShiftStartTime string               `json:"shift_start_time"`
	ShiftEndTime   string               `json:"shift_end_time"`
	EmployeeID     string               `json:"employee_id"`
	Position       *string              `json:"position"`
	SessionNote    *SessionNoteResponse `json:"session_note"`
}

type SessionNoteResponse struct {
	ID            string `json:"id"`
	WorkSessionID string `json:"work_session_id"`
	Note          string `json:"note"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func NewSessionNoteResponse(n SessionNote) SessionNoteResponse {
	return SessionNoteResponse{
		ID:            n.ID,
		WorkSessionID: n.WorkSessionID,
		Note:          n.Note,
		CreatedAt:     n.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     n.UpdatedAt.Format(time.RFC3339),
	}
}

type WorkHoursResponse struct {
	UserID        string                `json:"user_id"`
	From          string                `json:"from"`
	To            string                `json:"to"`
	TotalSessions int                   `json:"total_sessions"`
	TotalMinutes  int                   `json:"total_minutes"`
	Sessions      []WorkSessionResponse `json:"sessions"`
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
