package shift

import "time"

// Shift is one planned work block. Start and end are minute offsets from
// midnight on ShiftDate; shifts never span midnight.
type Shift struct {
	ID           string
	StoreID      string
	EmployeeID   string
	ShiftDate    time.Time // date only, midnight UTC
	StartMinute  int
	EndMinute    int
	BreakMinutes int
	IsFixed      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	EmployeeName *string
}

const MaxBreakMinutes = 120

// Overlaps reports whether [aStart,aEnd) intersects [bStart,bEnd).
// Back-to-back shifts (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
