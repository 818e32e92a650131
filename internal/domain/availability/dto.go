package availability

import (
	"time"

	"github.com/clockwise-org/planning-service-go/internal/pkg/validator"
)

type CreateAvailabilityRequest struct {
	EmployeeID     string  `json:"employee_id" validate:"required,uuid"`
	BusinessUnitID *string `json:"business_unit_id" validate:"omitempty,uuid"`
	StartTime      string  `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime        string  `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (r CreateAvailabilityRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	start, end := r.ParsedTimes()
	if !end.After(start) {
		return ErrInvalidWindow
	}
	return nil
}

func (r CreateAvailabilityRequest) ParsedTimes() (time.Time, time.Time) {
	start, _ := time.Parse(time.RFC3339, r.StartTime)
	end, _ := time.Parse(time.RFC3339, r.EndTime)
	return start.UTC(), end.UTC()
}

type UpdateAvailabilityRequest struct {
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (r UpdateAvailabilityRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	start, end := r.ParsedTimes()
	if !end.After(start) {
		return ErrInvalidWindow
	}
	return nil
}

func (r UpdateAvailabilityRequest) ParsedTimes() (time.Time, time.Time) {
	start, _ := time.Parse(time.RFC3339, r.StartTime)
	end, _ := time.Parse(time.RFC3339, r.EndTime)
	return start.UTC(), end.UTC()
}

type AvailabilityResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	BusinessUnitID *string `json:"business_unit_id"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func NewAvailabilityResponse(a Availability) AvailabilityResponse {
	return AvailabilityResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		BusinessUnitID: a.BusinessUnitID,
		StartTime:      a.StartTime.Format(time.RFC3339),
		EndTime:        a.EndTime.Format(time.RFC3339),
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}

func NewAvailabilityResponses(items []Availability) []AvailabilityResponse {
	out := make([]AvailabilityResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewAvailabilityResponse(a))
	}
	return out
}
