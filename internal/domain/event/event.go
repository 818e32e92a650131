// Package event defines the outbound and inbound contracts of the message
// bus boundary. The core publishes through these interfaces and consumes
// inbound payloads through the sinks; transport, queue names, and wire
// format live in internal/messaging.
package event

import (
	"context"
	"time"
)

// ShiftSummary is the slice of a shift that crosses the bus.
type ShiftSummary struct {
	ShiftID   string    `json:"shift_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Position  *string   `json:"position"`
}

// SchedulePublished announces that a schedule moved to PUBLISHED, carrying
// every affected employee and their shifts for that week.
type SchedulePublished struct {
	ScheduleID     string                    `json:"schedule_id"`
	BusinessUnitID string                    `json:"business_unit_id"`
	WeekStart      time.Time                 `json:"week_start"`
	EmployeeShifts map[string][]ShiftSummary `json:"employee_shifts"`
}

// ExchangeConfirmation reports back to the exchange service whether an
// approved take or swap was applied.
type ExchangeConfirmation struct {
	RequestID   string  `json:"request_id"`
	RequestType string  `json:"request_type"`
	Status      string  `json:"status"`
	Detail      *string `json:"detail"`
}

const (
	ConfirmationSuccess = "SUCCESS"
	ConfirmationFailed  = "FAILED"
)

// UserInfo is the resolved identity payload coming back from the user
// service. Any field except ID may be missing.
type UserInfo struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	FCMToken  *string `json:"fcm_token"`
}

// SchedulePublisher announces schedule lifecycle events. Callers fire and
// forget; a failed publish never affects the state change that caused it.
type SchedulePublisher interface {
	SchedulePublished(ctx context.Context, evt SchedulePublished) error
}

// ConfirmationPublisher delivers exchange outcomes back to the requester.
type ConfirmationPublisher interface {
	ExchangeConfirmation(ctx context.Context, evt ExchangeConfirmation) error
}

// NameResolver asks the user service for one employee's display name.
// Best effort, at most once; the response arrives later through the shift
// service's name sink, or never.
type NameResolver interface {
	RequestUserInfo(ctx context.Context, userID, shiftID string) error
}

// UserDirectory asks the user service for everyone in a business unit.
// The response is matched back by correlation id.
type UserDirectory interface {
	RequestUsersByBusinessUnit(ctx context.Context, businessUnitID, correlationID string) error
}

// NotificationTrigger hands one (user, shift) pair to the notification
// collaborator. One call per shift, never batched per user.
type NotificationTrigger interface {
	NotifyShiftPublished(ctx context.Context, user UserInfo, shift ShiftSummary, evt SchedulePublished) error
}
