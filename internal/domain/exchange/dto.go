package exchange

import (
	"time"

	"github.com/clockwise-org/planning-service-go/internal/pkg/validator"
)

const (
	RequestTypeTake = "TAKE"
	RequestTypeSwap = "SWAP"
)

// ApprovedEvent is an externally approved exchange request arriving over
// the bus. SwapShiftID is set only for SWAP.
type ApprovedEvent struct {
	RequestID       string  `json:"request_id"`
	RequestType     string  `json:"request_type"`
	OriginalShiftID string  `json:"original_shift_id"`
	PosterUserID    string  `json:"poster_user_id"`
	RequesterUserID string  `json:"requester_user_id"`
	SwapShiftID     *string `json:"swap_shift_id"`
}

type ScheduleConflictRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (r ScheduleConflictRequest) Validate() error {
	return validator.Struct(r)
}

func (r ScheduleConflictRequest) ParsedTimes() (time.Time, time.Time) {
	start, _ := time.Parse(time.RFC3339, r.StartTime)
	end, _ := time.Parse(time.RFC3339, r.EndTime)
	return start.UTC(), end.UTC()
}

type ScheduleConflictResponse struct {
	HasConflict         bool     `json:"has_conflict"`
	ConflictingShiftIDs []string `json:"conflicting_shift_ids"`
}

type SwapConflictRequest struct {
	PosterUserID    string `json:"poster_user_id" validate:"required,uuid"`
	RequesterUserID string `json:"requester_user_id" validate:"required,uuid"`
	OriginalShiftID string `json:"original_shift_id" validate:"required,uuid"`
	SwapShiftID     string `json:"swap_shift_id" validate:"required,uuid"`
}

func (r SwapConflictRequest) Validate() error {
	return validator.Struct(r)
}

type SwapConflictResponse struct {
	PosterHasConflict    bool `json:"poster_has_conflict"`
	RequesterHasConflict bool `json:"requester_has_conflict"`
	IsSwapPossible       bool `json:"is_swap_possible"`
}
