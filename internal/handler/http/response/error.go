package response

import (
	"errors"
	"net/http"

	"github.com/heakbomb/resto-backend-go/internal/domain/attendance"
	"github.com/heakbomb/resto-backend-go/internal/domain/employee"
	"github.com/heakbomb/resto-backend-go/internal/domain/payroll"
	"github.com/heakbomb/resto-backend-go/internal/domain/shift"
	"github.com/heakbomb/resto-backend-go/internal/domain/store"
	"github.com/heakbomb/resto-backend-go/internal/domain/user"
	"github.com/heakbomb/resto-backend-go/internal/domain/wage"
	"github.com/heakbomb/resto-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Overlaps and run locks carry structured details worth surfacing.
	var overlapErr *shift.OverlapError
	if errors.As(err, &overlapErr) {
		ConflictWithDetails(w, "Shift overlaps an existing shift", map[string]string{
			"employee_id": overlapErr.EmployeeID,
			"date":        overlapErr.Date,
			"start_time":  overlapErr.Start,
			"end_time":    overlapErr.End,
		})
		return
	}
	var lockedErr *payroll.RunLockedError
	if errors.As(err, &lockedErr) {
		Locked(w, lockedErr.Error())
		return
	}

	switch {
	// User/auth errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")
	case errors.Is(err, user.ErrEmployeeAccessRequired):
		Forbidden(w, "Employee access required")
	case errors.Is(err, user.ErrStoreAccessDenied):
		Forbidden(w, "You do not have access to this store")

	// Directory errors
	case errors.Is(err, store.ErrStoreNotFound):
		NotFound(w, "Store not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNotInStore):
		Forbidden(w, "Employee does not belong to this store")

	// Attendance errors
	case errors.Is(err, attendance.ErrInvalidQRToken):
		Unauthorized(w, "QR token does not match or has expired")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Not checked in")
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")

	// Shift errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrInvalidTimeRange):
		BadRequest(w, "Shift end time must be after start time", nil)
	case errors.Is(err, shift.ErrShiftOverlap):
		Conflict(w, "Shift overlaps an existing shift")

	// Wage errors
	case errors.Is(err, wage.ErrProfileNotFound):
		NotFound(w, "Wage profile not found")

	// Payroll errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrAlreadyFinalized):
		Conflict(w, "Payroll run is already finalized")
	case errors.Is(err, payroll.ErrNothingToFinalize):
		Conflict(w, "No computed payroll run to finalize for this month")
	case errors.Is(err, payroll.ErrRunLocked):
		Locked(w, "Payroll run is locked")
	case errors.Is(err, payroll.ErrComputationFailed):
		InternalServerError(w, "Payroll computation failed; the month was rolled back")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
