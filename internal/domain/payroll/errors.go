package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("payroll record not found")
	ErrAlreadyFinalized  = errors.New("payroll run is already finalized")
	ErrNothingToFinalize = errors.New("no payroll run to finalize for this month")
	ErrComputationFailed = errors.New("payroll computation failed")
)

// RunLockedError explains which month is closed and why.
// errors.Is(err, ErrRunLocked) matches.
var ErrRunLocked = errors.New("payroll run is locked")

type RunLockedError struct {
	StoreID   string
	YearMonth YearMonth
	Reason    string
}

func (e *RunLockedError) Error() string {
	return fmt.Sprintf("payroll for %s is locked: %s", e.YearMonth, e.Reason)
}

func (e *RunLockedError) Unwrap() error {
	return ErrRunLocked
}
