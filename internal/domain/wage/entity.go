package wage

import (
	"time"

	"github.com/shopspring/decimal"
)

type WageType string

const (
	WageTypeHourly  WageType = "HOURLY"
	WageTypeMonthly WageType = "MONTHLY"
)

var WageTypeValues = []string{
	string(WageTypeHourly),
	string(WageTypeMonthly),
}

type DeductionType string

const (
	DeductionNone          DeductionType = "NONE"
	DeductionFourInsurance DeductionType = "FOUR_INSURANCE"
	DeductionTax33         DeductionType = "TAX_3_3"
)

var DeductionTypeValues = []string{
	string(DeductionNone),
	string(DeductionFourInsurance),
	string(DeductionTax33),
}

// deductionRates is the closed enum-to-constant table. Rates are derived from
// the type tag server-side; a client can never submit an inconsistent
// (type, rate) pair.
var deductionRates = map[DeductionType]decimal.Decimal{
	DeductionFourInsurance: decimal.NewFromFloat(0.094),
	DeductionTax33:         decimal.NewFromFloat(0.033),
}

// DeductionRate returns the fixed rate for a deduction type. NONE has no
// rate; unknown types report false.
func DeductionRate(t DeductionType) (*decimal.Decimal, bool) {
	switch t {
	case DeductionNone:
		return nil, true
	case DeductionFourInsurance, DeductionTax33:
		rate := deductionRates[t]
		return &rate, true
	default:
		return nil, false
	}
}

// MaxBaseWage caps base wage at 8 digits.
const MaxBaseWage = 99_999_999

// Profile is the per-employee pay configuration. Payroll computation copies a
// snapshot of it into each record, so later edits never rewrite closed months.
type Profile struct {
	EmployeeID    string
	StoreID       string
	WageType      WageType
	BaseWage      int64
	DeductionType DeductionType
	DeductionRate *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
