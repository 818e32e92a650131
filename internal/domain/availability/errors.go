package availability

import "errors"

var (
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrInvalidWindow        = errors.New("availability end time must be after start time")
)
