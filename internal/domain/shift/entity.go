package shift

import "time"

// Shift assigns one employee to one time interval inside a schedule.
// The interval is half open: [StartTime, EndTime). EmployeeFirstName and
// EmployeeLastName are a denormalized cache filled in asynchronously by
// the user info exchange; they may stay nil when resolution never lands.
type Shift struct {
	ID                string
	ScheduleID        string
	EmployeeID        string
	StartTime         time.Time
	EndTime           time.Time
	Position          *string
	EmployeeFirstName *string
	EmployeeLastName  *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Overlaps reports whether two half-open intervals intersect. Shifts that
// merely touch (one ends exactly when the other starts) do not overlap.
func (s Shift) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}
