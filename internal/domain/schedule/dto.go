package schedule

import (
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
	"github.com/clockwise-org/planning-service-go/internal/pkg/validator"
)

type CreateScheduleRequest struct {
	BusinessUnitID string `json:"business_unit_id" validate:"required,uuid"`
	WeekStart      string `json:"week_start" validate:"required,datetime=2006-01-02"`
}

func (r CreateScheduleRequest) Validate() error {
	return validator.Struct(r)
}

// ParsedWeekStart returns the requested date; callers normalize it to the
// canonical week start before persisting.
func (r CreateScheduleRequest) ParsedWeekStart() time.Time {
	t, _ := time.Parse("2006-01-02", r.WeekStart)
	return t
}

type UpdateScheduleRequest struct {
	BusinessUnitID string `json:"business_unit_id" validate:"required,uuid"`
	WeekStart      string `json:"week_start" validate:"required,datetime=2006-01-02"`
}

func (r UpdateScheduleRequest) Validate() error {
	return validator.Struct(r)
}

func (r UpdateScheduleRequest) ParsedWeekStart() time.Time {
	t, _ := time.Parse("2006-01-02", r.WeekStart)
	return t
}

type ScheduleResponse struct {
	ID             string `json:"id"`
	BusinessUnitID string `json:"business_unit_id"`
	WeekStart      string `json:"week_start"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func NewScheduleResponse(s Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:             s.ID,
		BusinessUnitID: s.BusinessUnitID,
		WeekStart:      s.WeekStart.Format("2006-01-02"),
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
}

type ScheduleWithShiftsResponse struct {
	ScheduleResponse
	Shifts []shift.ShiftResponse `json:"shifts"`
}
