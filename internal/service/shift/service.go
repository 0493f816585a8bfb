package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/heakbomb/resto-backend-go/internal/domain/employee"
	"github.com/heakbomb/resto-backend-go/internal/domain/shift"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
	"github.com/heakbomb/resto-backend-go/internal/pkg/validator"
	"github.com/heakbomb/resto-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type ShiftServiceImpl struct {
	db *database.DB
	shift.ShiftRepository
	employee.EmployeeRepository

	// runInTx wraps writes that pair the overlap pre-check with the insert;
	// tests swap in a pass-through runner.
	runInTx func(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, storeID string, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, storeID); err != nil {
		return shift.ShiftResponse{}, err
	}

	candidate := req.ToShift(storeID)

	var created shift.Shift
	err := s.runInTx(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.checkConflict(txCtx, storeID, candidate, ""); err != nil {
			return err
		}

		var err error
		created, err = s.ShiftRepository.Create(txCtx, candidate)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.ToShiftResponse(created), nil
}

// CreateShiftsBulk implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShiftsBulk(ctx context.Context, storeID string, req shift.BulkCreateShiftRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, storeID); err != nil {
		return nil, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)
	weekdays, _ := shift.ParseWeekdays(req.Weekdays)
	startMinute, _ := validator.ParseTimeOfDay(req.StartTime)
	endMinute, _ := validator.ParseTimeOfDay(req.EndTime)

	dates := shift.ExpandDates(startDate, endDate, weekdays)
	if len(dates) == 0 {
		return []shift.ShiftResponse{}, nil
	}

	candidates := make([]shift.Shift, 0, len(dates))
	for _, date := range dates {
		candidates = append(candidates, shift.Shift{
			StoreID:      storeID,
			EmployeeID:   req.EmployeeID,
			ShiftDate:    date,
			StartMinute:  startMinute,
			EndMinute:    endMinute,
			BreakMinutes: req.BreakMinutes,
			IsFixed:      req.IsFixed,
		})
	}

	// All-or-nothing: one conflicting date fails the whole batch.
	var created []shift.Shift
	err := s.runInTx(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.ShiftRepository.ListByEmployeeDates(txCtx, req.EmployeeID, storeID, dates)
		if err != nil {
			return fmt.Errorf("failed to load existing shifts: %w", err)
		}

		for _, candidate := range candidates {
			if conflict := shift.FirstConflict(candidate, existing, ""); conflict != nil {
				return overlapError(*conflict)
			}
		}

		created, err = s.ShiftRepository.CreateBatch(txCtx, candidates)
		return err
	})
	if err != nil {
		return nil, err
	}

	return shift.ToShiftResponses(created), nil
}

// UpdateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, storeID string, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var updated shift.Shift
	err := s.runInTx(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		current, err := s.ShiftRepository.GetByID(txCtx, req.ID, storeID)
		if err != nil {
			return err
		}

		candidate := applyPatch(current, req)
		if candidate.EndMinute <= candidate.StartMinute {
			return shift.ErrInvalidTimeRange
		}

		if err := s.checkConflict(txCtx, storeID, candidate, candidate.ID); err != nil {
			return err
		}

		updated, err = s.ShiftRepository.Update(txCtx, candidate)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.ToShiftResponse(updated), nil
}

// DeleteShift implements shift.ShiftService.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, storeID string, shiftID string) error {
	return s.ShiftRepository.Delete(ctx, shiftID, storeID)
}

// DeleteShiftsInRange implements shift.ShiftService.
func (s *ShiftServiceImpl) DeleteShiftsInRange(ctx context.Context, storeID string, req shift.DeleteRangeRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, storeID); err != nil {
		return 0, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	return s.ShiftRepository.DeleteByEmployeeRange(ctx, req.EmployeeID, storeID, startDate, endDate)
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, storeID string, filter shift.ListShiftsFilter) ([]shift.ShiftResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	startDate, _ := validator.IsValidDate(filter.StartDate)
	endDate, _ := validator.IsValidDate(filter.EndDate)

	shifts, err := s.ShiftRepository.ListByStoreRange(ctx, storeID, startDate, endDate, filter.EmployeeID)
	if err != nil {
		return nil, err
	}

	return shift.ToShiftResponses(shifts), nil
}

// checkConflict loads the employee's shifts on the candidate date and rejects
// the candidate if any of them overlaps it. The storage-level exclusion
// constraint remains the authoritative guard; this check exists to return a
// detailed error instead of a raw constraint violation.
func (s *ShiftServiceImpl) checkConflict(ctx context.Context, storeID string, candidate shift.Shift, excludeID string) error {
	existing, err := s.ShiftRepository.ListByEmployeeDates(ctx, candidate.EmployeeID, storeID, []time.Time{candidate.ShiftDate})
	if err != nil {
		return fmt.Errorf("failed to load existing shifts: %w", err)
	}
	if conflict := shift.FirstConflict(candidate, existing, excludeID); conflict != nil {
		return overlapError(*conflict)
	}
	return nil
}

func applyPatch(current shift.Shift, req shift.UpdateShiftRequest) shift.Shift {
	if req.ShiftDate != nil {
		if date, ok := validator.IsValidDate(*req.ShiftDate); ok {
			current.ShiftDate = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	if req.StartTime != nil {
		if start, ok := validator.ParseTimeOfDay(*req.StartTime); ok {
			current.StartMinute = start
		}
	}
	if req.EndTime != nil {
		if end, ok := validator.ParseTimeOfDay(*req.EndTime); ok {
			current.EndMinute = end
		}
	}
	if req.BreakMinutes != nil {
		current.BreakMinutes = *req.BreakMinutes
	}
	if req.IsFixed != nil {
		current.IsFixed = *req.IsFixed
	}
	return current
}

func overlapError(conflict shift.Shift) error {
	return &shift.OverlapError{
		EmployeeID: conflict.EmployeeID,
		Date:       conflict.ShiftDate.Format("2006-01-02"),
		Start:      validator.FormatTimeOfDay(conflict.StartMinute),
		End:        validator.FormatTimeOfDay(conflict.EndMinute),
	}
}

func NewShiftService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:                 db,
		ShiftRepository:    shiftRepo,
		EmployeeRepository: employeeRepo,
		runInTx:            postgresql.WithTransaction,
	}
}
