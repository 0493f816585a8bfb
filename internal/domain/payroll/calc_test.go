package payroll

import (
	"testing"

	"github.com/heakbomb/resto-backend-go/internal/domain/wage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourlyProfile(baseWage int64, deductionType wage.DeductionType) wage.Profile {
	p := wage.Profile{
		WageType:      wage.WageTypeHourly,
		BaseWage:      baseWage,
		DeductionType: deductionType,
	}
	if rate, ok := wage.DeductionRate(deductionType); ok {
		p.DeductionRate = rate
	}
	return p
}

func TestComputePay_HourlyNoDeduction(t *testing.T) {
	gross, deduction, net := ComputePay(hourlyProfile(10000, wage.DeductionNone), 480)

	assert.True(t, gross.Equal(decimal.NewFromInt(80000)), "gross = %s", gross)
	assert.True(t, deduction.IsZero())
	assert.True(t, net.Equal(decimal.NewFromInt(80000)))
}

func TestComputePay_HourlyTax33(t *testing.T) {
	gross, deduction, net := ComputePay(hourlyProfile(10000, wage.DeductionTax33), 480)

	assert.True(t, gross.Equal(decimal.NewFromInt(80000)), "gross = %s", gross)
	assert.True(t, deduction.Equal(decimal.NewFromInt(2640)), "deduction = %s", deduction)
	assert.True(t, net.Equal(decimal.NewFromInt(77360)), "net = %s", net)
}

func TestComputePay_HourlyFourInsurance(t *testing.T) {
	gross, deduction, net := ComputePay(hourlyProfile(10000, wage.DeductionFourInsurance), 600)

	assert.True(t, gross.Equal(decimal.NewFromInt(100000)))
	assert.True(t, deduction.Equal(decimal.NewFromInt(9400)), "deduction = %s", deduction)
	assert.True(t, net.Equal(decimal.NewFromInt(90600)))
}

func TestComputePay_HourlyRoundsPartialHours(t *testing.T) {
	// 10000/h over 100 minutes = 16666.67 rounded to 16667.
	gross, _, _ := ComputePay(hourlyProfile(10000, wage.DeductionNone), 100)

	assert.True(t, gross.Equal(decimal.NewFromInt(16667)), "gross = %s", gross)
}

func TestComputePay_MonthlyIsFlat(t *testing.T) {
	profile := wage.Profile{
		WageType:      wage.WageTypeMonthly,
		BaseWage:      3000000,
		DeductionType: wage.DeductionNone,
	}

	for _, minutes := range []int{0, 1, 9600} {
		gross, deduction, net := ComputePay(profile, minutes)

		assert.True(t, gross.Equal(decimal.NewFromInt(3000000)), "minutes=%d gross=%s", minutes, gross)
		assert.True(t, deduction.IsZero())
		assert.True(t, net.Equal(decimal.NewFromInt(3000000)))
	}
}

func TestComputePay_MonthlyWithDeduction(t *testing.T) {
	rate, ok := wage.DeductionRate(wage.DeductionFourInsurance)
	require.True(t, ok)

	profile := wage.Profile{
		WageType:      wage.WageTypeMonthly,
		BaseWage:      2000000,
		DeductionType: wage.DeductionFourInsurance,
		DeductionRate: rate,
	}

	gross, deduction, net := ComputePay(profile, 0)

	assert.True(t, gross.Equal(decimal.NewFromInt(2000000)))
	assert.True(t, deduction.Equal(decimal.NewFromInt(188000)), "deduction = %s", deduction)
	assert.True(t, net.Equal(decimal.NewFromInt(1812000)))
}

func TestComputePay_ZeroMinutesHourly(t *testing.T) {
	gross, deduction, net := ComputePay(hourlyProfile(10000, wage.DeductionTax33), 0)

	assert.True(t, gross.IsZero())
	assert.True(t, deduction.IsZero())
	assert.True(t, net.IsZero())
}
