package availability

import "time"

// Availability is a window in which an employee declares they can work.
// Windows may overlap freely; there is no state machine here.
type Availability struct {
	ID             string
	EmployeeID     string
	BusinessUnitID *string
	StartTime      time.Time
	EndTime        time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
