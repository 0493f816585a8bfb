package payroll

import (
	"time"

	"github.com/heakbomb/resto-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ComputeRequest struct {
	YearMonth string `json:"year_month"`
}

func (r *ComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParseYearMonth(r.YearMonth); err != nil {
		errs = append(errs, validator.ValidationError{Field: "year_month", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FinalizeRequest struct {
	YearMonth string `json:"year_month"`
}

func (r *FinalizeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParseYearMonth(r.YearMonth); err != nil {
		errs = append(errs, validator.ValidationError{Field: "year_month", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetStatusRequest struct {
	PayrollID string `json:"-"`
	Status    string `json:"status"`
}

func (r *SetStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PayrollID) {
		errs = append(errs, validator.ValidationError{Field: "payroll_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Status, RecordStatusValues) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'PENDING' or 'PAID'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	StoreID       string          `json:"store_id"`
	YearMonth     string          `json:"year_month"`
	WorkDays      int             `json:"work_days"`
	WorkMinutes   int             `json:"work_minutes"`
	GrossPay      decimal.Decimal `json:"gross_pay"`
	Deductions    decimal.Decimal `json:"deductions"`
	NetPay        decimal.Decimal `json:"net_pay"`
	Status        string          `json:"status"`
	PaidAt        *string         `json:"paid_at,omitempty"`
	WageType      string          `json:"wage_type"`
	BaseWage      int64           `json:"base_wage"`
	DeductionType string          `json:"deduction_type"`
	RunVersion    int             `json:"run_version"`
}

func ToRecordResponse(r Record) RecordResponse {
	var paidAt *string
	if r.PaidAt != nil {
		s := r.PaidAt.UTC().Format(time.RFC3339)
		paidAt = &s
	}
	return RecordResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		StoreID:       r.StoreID,
		YearMonth:     r.YearMonth.String(),
		WorkDays:      r.WorkDays,
		WorkMinutes:   r.WorkMinutes,
		GrossPay:      r.GrossPay,
		Deductions:    r.Deductions,
		NetPay:        r.NetPay,
		Status:        string(r.Status),
		PaidAt:        paidAt,
		WageType:      string(r.WageType),
		BaseWage:      r.BaseWage,
		DeductionType: string(r.DeductionType),
		RunVersion:    r.RunVersion,
	}
}

func ToRecordResponses(records []Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToRecordResponse(r))
	}
	return out
}

type RunResponse struct {
	StoreID     string  `json:"store_id"`
	YearMonth   string  `json:"year_month"`
	Status      string  `json:"status"`
	Version     int     `json:"version"`
	FinalizedAt *string `json:"finalized_at,omitempty"`
	Locked      bool    `json:"locked"`
}

func ToRunResponse(r Run, now time.Time) RunResponse {
	var finalizedAt *string
	if r.FinalizedAt != nil {
		s := r.FinalizedAt.UTC().Format(time.RFC3339)
		finalizedAt = &s
	}
	return RunResponse{
		StoreID:     r.StoreID,
		YearMonth:   r.YearMonth.String(),
		Status:      string(r.Status),
		Version:     r.Version,
		FinalizedAt: finalizedAt,
		Locked:      r.Locked(now),
	}
}

type SummaryResponse struct {
	YearMonth       string          `json:"year_month"`
	TotalEmployees  int             `json:"total_employees"`
	TotalGrossPay   decimal.Decimal `json:"total_gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
	PendingCount    int             `json:"pending_count"`
	PaidCount       int             `json:"paid_count"`
}
