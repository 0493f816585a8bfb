package payroll

import (
	"github.com/heakbomb/resto-backend-go/internal/domain/wage"
	"github.com/shopspring/decimal"
)

// ComputePay derives gross, deduction and net amounts from a wage profile and
// verified work minutes.
//
//	HOURLY:  gross = baseWage * workMinutes / 60, rounded to the unit
//	MONTHLY: gross = baseWage, flat (not prorated by attendance)
//	deduction = round(gross * rate) when the profile has one, else 0
func ComputePay(profile wage.Profile, workMinutes int) (gross, deduction, net decimal.Decimal) {
	base := decimal.NewFromInt(profile.BaseWage)

	switch profile.WageType {
	case wage.WageTypeHourly:
		gross = base.
			Mul(decimal.NewFromInt(int64(workMinutes))).
			Div(decimal.NewFromInt(60)).
			Round(0)
	case wage.WageTypeMonthly:
		gross = base
	default:
		gross = decimal.Zero
	}

	deduction = decimal.Zero
	if profile.DeductionType != wage.DeductionNone && profile.DeductionRate != nil {
		deduction = gross.Mul(*profile.DeductionRate).Round(0)
	}

	net = gross.Sub(deduction)
	return gross, deduction, net
}
