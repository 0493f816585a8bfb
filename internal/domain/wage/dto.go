package wage

import (
	"github.com/heakbomb/resto-backend-go/internal/pkg/validator"
)

type UpsertProfileRequest struct {
	WageType      string `json:"wage_type"`
	BaseWage      int64  `json:"base_wage"`
	DeductionType string `json:"deduction_type"`
}

func (r *UpsertProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.WageType, WageTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "wage_type", Message: "must be 'HOURLY' or 'MONTHLY'"})
	}
	if r.BaseWage <= 0 {
		errs = append(errs, validator.ValidationError{Field: "base_wage", Message: "must be positive"})
	}
	if r.BaseWage > MaxBaseWage {
		errs = append(errs, validator.ValidationError{Field: "base_wage", Message: "must be at most 8 digits"})
	}
	if !validator.IsInSlice(r.DeductionType, DeductionTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "deduction_type", Message: "must be 'NONE', 'FOUR_INSURANCE' or 'TAX_3_3'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProfileResponse struct {
	EmployeeID    string  `json:"employee_id"`
	StoreID       string  `json:"store_id"`
	WageType      string  `json:"wage_type"`
	BaseWage      int64   `json:"base_wage"`
	DeductionType string  `json:"deduction_type"`
	DeductionRate *string `json:"deduction_rate,omitempty"`
}

func ToProfileResponse(p Profile) ProfileResponse {
	var rate *string
	if p.DeductionRate != nil {
		s := p.DeductionRate.String()
		rate = &s
	}
	return ProfileResponse{
		EmployeeID:    p.EmployeeID,
		StoreID:       p.StoreID,
		WageType:      string(p.WageType),
		BaseWage:      p.BaseWage,
		DeductionType: string(p.DeductionType),
		DeductionRate: rate,
	}
}
