package shift

import (
	"errors"
	"fmt"
)

// Shift domain errors
var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrInvalidTimeRange = errors.New("shift end time must be after start time")
)

// OverlapError reports the exact shift/date that collided so the UI can show
// it. errors.Is(err, ErrShiftOverlap) matches.
var ErrShiftOverlap = errors.New("shift overlaps an existing shift")

type OverlapError struct {
	EmployeeID string
	Date       string // YYYY-MM-DD
	Start      string // HH:MM of the existing shift
	End        string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("shift overlaps an existing shift on %s (%s-%s)", e.Date, e.Start, e.End)
}

func (e *OverlapError) Unwrap() error {
	return ErrShiftOverlap
}
