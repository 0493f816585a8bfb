package payroll

import (
	"time"

	"github.com/heakbomb/resto-backend-go/internal/domain/wage"
	"github.com/shopspring/decimal"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusNone      RunStatus = "NONE"
	RunStatusDraft     RunStatus = "DRAFT"
	RunStatusFinalized RunStatus = "FINALIZED"
	RunStatusFailed    RunStatus = "FAILED"
)

// Run gates payroll computation for one store-month. At most one live run
// exists per (StoreID, YearMonth); Version counts successful computations.
type Run struct {
	ID          string
	StoreID     string
	YearMonth   YearMonth
	Status      RunStatus
	Version     int
	FinalizedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SyntheticRun represents a month with no run row yet.
func SyntheticRun(storeID string, ym YearMonth) Run {
	return Run{StoreID: storeID, YearMonth: ym, Status: RunStatusNone}
}

// Locked reports whether computation is blocked for this month. A month is
// locked once explicitly finalized, and any month strictly before the
// current calendar month is implicitly closed even without a finalize call.
func (r Run) Locked(now time.Time) bool {
	if r.Status == RunStatusFinalized {
		return true
	}
	return r.YearMonth.Before(YearMonthOf(now))
}

// RecordStatus enum
type RecordStatus string

const (
	RecordStatusPending RecordStatus = "PENDING"
	RecordStatusPaid    RecordStatus = "PAID"
)

var RecordStatusValues = []string{
	string(RecordStatusPending),
	string(RecordStatusPaid),
}

// Record is the computed pay snapshot for one employee-month. The wage and
// deduction fields are copied from the profile at computation time so later
// profile edits never alter a closed month.
type Record struct {
	ID          string
	EmployeeID  string
	StoreID     string
	YearMonth   YearMonth
	WorkDays    int
	WorkMinutes int
	GrossPay    decimal.Decimal
	Deductions  decimal.Decimal
	NetPay      decimal.Decimal
	Status      RecordStatus
	PaidAt      *time.Time
	RunVersion  int

	// Profile snapshot
	WageType      wage.WageType
	BaseWage      int64
	DeductionType wage.DeductionType
	DeductionRate *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}
