package shift

import (
	"time"

	"github.com/heakbomb/resto-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	EmployeeID   string `json:"employee_id"`
	ShiftDate    string `json:"shift_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	IsFixed      bool   `json:"is_fixed"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.ShiftDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "shift_date", Message: "must be in YYYY-MM-DD format"})
	}
	start, startOK := validator.ParseTimeOfDay(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be in HH:MM format"})
	}
	end, endOK := validator.ParseTimeOfDay(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be in HH:MM format"})
	}
	if startOK && endOK && end <= start {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be after start_time"})
	}
	if r.BreakMinutes < 0 || r.BreakMinutes > MaxBreakMinutes {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "must be between 0 and 120"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkCreateShiftRequest struct {
	EmployeeID   string `json:"employee_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Weekdays     []int  `json:"weekdays"` // 1=Monday .. 7=Sunday; empty = every day
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	IsFixed      bool   `json:"is_fixed"`
}

func (r *BulkCreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	startDate, startDateOK := validator.IsValidDate(r.StartDate)
	if !startDateOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}
	endDate, endDateOK := validator.IsValidDate(r.EndDate)
	if !endDateOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
	}
	if startDateOK && endDateOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if _, ok := ParseWeekdays(r.Weekdays); !ok {
		errs = append(errs, validator.ValidationError{Field: "weekdays", Message: "values must be between 1 (Monday) and 7 (Sunday)"})
	}
	start, startOK := validator.ParseTimeOfDay(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be in HH:MM format"})
	}
	end, endOK := validator.ParseTimeOfDay(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be in HH:MM format"})
	}
	if startOK && endOK && end <= start {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be after start_time"})
	}
	if r.BreakMinutes < 0 || r.BreakMinutes > MaxBreakMinutes {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "must be between 0 and 120"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID           string  `json:"-"`
	ShiftDate    *string `json:"shift_date,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	IsFixed      *bool   `json:"is_fixed,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ShiftDate != nil {
		if _, ok := validator.IsValidDate(*r.ShiftDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "shift_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.StartTime != nil {
		if _, ok := validator.ParseTimeOfDay(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be in HH:MM format"})
		}
	}
	if r.EndTime != nil {
		if _, ok := validator.ParseTimeOfDay(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be in HH:MM format"})
		}
	}
	if r.BreakMinutes != nil && (*r.BreakMinutes < 0 || *r.BreakMinutes > MaxBreakMinutes) {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "must be between 0 and 120"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteRangeRequest struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}

func (r *DeleteRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}
	endDate, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListShiftsFilter struct {
	EmployeeID *string
	StartDate  string
	EndDate    string
}

func (f *ListShiftsFilter) Validate() error {
	var errs validator.ValidationErrors

	startDate, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}
	endDate, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID           string  `json:"id"`
	StoreID      string  `json:"store_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	ShiftDate    string  `json:"shift_date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
	IsFixed      bool    `json:"is_fixed"`
}

func ToShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:           s.ID,
		StoreID:      s.StoreID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		ShiftDate:    s.ShiftDate.Format("2006-01-02"),
		StartTime:    validator.FormatTimeOfDay(s.StartMinute),
		EndTime:      validator.FormatTimeOfDay(s.EndMinute),
		BreakMinutes: s.BreakMinutes,
		IsFixed:      s.IsFixed,
	}
}

func ToShiftResponses(shifts []Shift) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, ToShiftResponse(s))
	}
	return out
}

// dateOnly normalizes a parsed date to midnight UTC, the canonical ShiftDate
// representation.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToShift converts a validated create request into an entity.
func (r *CreateShiftRequest) ToShift(storeID string) Shift {
	date, _ := validator.IsValidDate(r.ShiftDate)
	start, _ := validator.ParseTimeOfDay(r.StartTime)
	end, _ := validator.ParseTimeOfDay(r.EndTime)
	return Shift{
		StoreID:      storeID,
		EmployeeID:   r.EmployeeID,
		ShiftDate:    dateOnly(date),
		StartMinute:  start,
		EndMinute:    end,
		BreakMinutes: r.BreakMinutes,
		IsFixed:      r.IsFixed,
	}
}
