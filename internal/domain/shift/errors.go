package shift

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrInvalidShiftTimes  = errors.New("shift end time must be after start time")
	ErrSameEmployeeSwap   = errors.New("cannot swap shifts belonging to the same employee")
	ErrShiftOwnerMismatch = errors.New("shift is no longer owned by the expected employee")
)
