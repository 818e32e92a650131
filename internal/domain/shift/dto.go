package shift

import (
	"time"

	"github.com/clockwise-org/planning-service-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	StartTime  string  `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime    string  `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
}

func (r CreateShiftRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	start, end := r.ParsedTimes()
	if !end.After(start) {
		return ErrInvalidShiftTimes
	}
	return nil
}

func (r CreateShiftRequest) ParsedTimes() (time.Time, time.Time) {
	start, _ := time.Parse(time.RFC3339, r.StartTime)
	end, _ := time.Parse(time.RFC3339, r.EndTime)
	return start.UTC(), end.UTC()
}

type UpdateShiftRequest struct {
	ScheduleID string  `json:"schedule_id" validate:"required,uuid"`
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	StartTime  string  `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime    string  `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
}

func (r UpdateShiftRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	start, end := r.ParsedTimes()
	if !end.After(start) {
		return ErrInvalidShiftTimes
	}
	return nil
}

func (r UpdateShiftRequest) ParsedTimes() (time.Time, time.Time) {
	start, _ := time.Parse(time.RFC3339, r.StartTime)
	end, _ := time.Parse(time.RFC3339, r.EndTime)
	return start.UTC(), end.UTC()
}

type ReassignShiftRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
}

func (r ReassignShiftRequest) Validate() error {
	return validator.Struct(r)
}

type SwapShiftsRequest struct {
	FirstShiftID  string `json:"first_shift_id" validate:"required,uuid"`
	SecondShiftID string `json:"second_shift_id" validate:"required,uuid"`
}

func (r SwapShiftsRequest) Validate() error {
	return validator.Struct(r)
}

type ShiftResponse struct {
	ID                string  `json:"id"`
	ScheduleID        string  `json:"schedule_id"`
	EmployeeID        string  `json:"employee_id"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	Position          *string `json:"position"`
	EmployeeFirstName *string `json:"employee_first_name"`
	EmployeeLastName  *string `json:"employee_last_name"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:                s.ID,
		ScheduleID:        s.ScheduleID,
		EmployeeID:        s.EmployeeID,
		StartTime:         s.StartTime.Format(time.RFC3339),
		EndTime:           s.EndTime.Format(time.RFC3339),
		Position:          s.Position,
		EmployeeFirstName: s.EmployeeFirstName,
		EmployeeLastName:  s.EmployeeLastName,
		CreatedAt:         s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         s.UpdatedAt.Format(time.RFC3339),
	}
}

func NewShiftResponses(shifts []Shift) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, NewShiftResponse(s))
	}
	return out
}
