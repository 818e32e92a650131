package response

import (
	"errors"
	"net/http"

	"github.com/clockwise-org/planning-service-go/internal/domain/availability"
	"github.com/clockwise-org/planning-service-go/internal/domain/exchange"
	"github.com/clockwise-org/planning-service-go/internal/domain/schedule"
	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
	"github.com/clockwise-org/planning-service-go/internal/domain/worksession"
	"github.com/clockwise-org/planning-service-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrScheduleExists):
		Conflict(w, "A schedule already exists for this business unit and week")
	case errors.Is(err, schedule.ErrScheduleNotDraft):
		InvalidState(w, "Schedule is not in draft state")
	case errors.Is(err, schedule.ErrScheduleNotPublished):
		InvalidState(w, "Schedule is not published")
	case errors.Is(err, schedule.ErrScheduleArchived):
		InvalidState(w, "Schedule is archived")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrInvalidShiftTimes):
		BadRequest(w, "Shift end time must be after start time", nil)
	case errors.Is(err, shift.ErrSameEmployeeSwap):
		BadRequest(w, "Cannot swap shifts belonging to the same employee", nil)
	case errors.Is(err, shift.ErrShiftOwnerMismatch):
		BadRequest(w, "Shift is no longer owned by the expected employee", nil)

	// Work session domain errors
	case errors.Is(err, worksession.ErrWorkSessionNotFound):
		NotFound(w, "Work session not found")
	case errors.Is(err, worksession.ErrSessionNoteNotFound):
		NotFound(w, "Session note not found")
	case errors.Is(err, worksession.ErrNotClockedIn):
		InvalidState(w, "Cannot clock out before clocking in")
	case errors.Is(err, worksession.ErrWorkSessionCancelled):
		InvalidState(w, "Work session is cancelled")
	case errors.Is(err, worksession.ErrClockOutBeforeIn):
		BadRequest(w, "Clock out time must be after clock in time", nil)

	// Availability domain errors
	case errors.Is(err, availability.ErrAvailabilityNotFound):
		NotFound(w, "Availability not found")
	case errors.Is(err, availability.ErrInvalidWindow):
		BadRequest(w, "Availability end time must be after start time", nil)

	// Exchange domain errors
	case errors.Is(err, exchange.ErrMissingSwapShift):
		BadRequest(w, "Swap request is missing the swap shift id", nil)
	case errors.Is(err, exchange.ErrUnknownRequestType):
		BadRequest(w, "Unknown exchange request type", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
