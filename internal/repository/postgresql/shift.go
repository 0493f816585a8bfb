package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/heakbomb/resto-backend-go/internal/domain/shift"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

const shiftColumns = `id, store_id, employee_id, shift_date, start_minute, end_minute,
	   break_minutes, is_fixed, created_at, updated_at`

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			store_id, employee_id, shift_date, start_minute, end_minute,
			break_minutes, is_fixed
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.StoreID,
		s.EmployeeID,
		s.ShiftDate,
		s.StartMinute,
		s.EndMinute,
		s.BreakMinutes,
		s.IsFixed,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		// ex_shifts_no_overlap is the exclusion constraint on
		// (employee_id, shift_date, minute range).
		if strings.Contains(err.Error(), "ex_shifts_no_overlap") {
			return shift.Shift{}, shift.ErrShiftOverlap
		}
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// CreateBatch implements shift.ShiftRepository.
func (r *shiftRepository) CreateBatch(ctx context.Context, shifts []shift.Shift) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			store_id, employee_id, shift_date, start_minute, end_minute,
			break_minutes, is_fixed
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	created := make([]shift.Shift, 0, len(shifts))
	for _, s := range shifts {
		err := q.QueryRow(ctx, query,
			s.StoreID,
			s.EmployeeID,
			s.ShiftDate,
			s.StartMinute,
			s.EndMinute,
			s.BreakMinutes,
			s.IsFixed,
		).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

		if err != nil {
			if strings.Contains(err.Error(), "ex_shifts_no_overlap") {
				return nil, shift.ErrShiftOverlap
			}
			return nil, fmt.Errorf("failed to create shift batch: %w", err)
		}
		created = append(created, s)
	}

	return created, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string, storeID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE id = $1 AND store_id = $2
	`

	var s shift.Shift
	err := q.QueryRow(ctx, query, id, storeID).Scan(
		&s.ID, &s.StoreID, &s.EmployeeID, &s.ShiftDate, &s.StartMinute, &s.EndMinute,
		&s.BreakMinutes, &s.IsFixed, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return s, nil
}

// ListByEmployeeDates implements shift.ShiftRepository.
func (r *shiftRepository) ListByEmployeeDates(ctx context.Context, employeeID string, storeID string, dates []time.Time) ([]shift.Shift, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE employee_id = $1
		  AND store_id = $2
		  AND shift_date = ANY($3)
		ORDER BY shift_date ASC, start_minute ASC
	`

	rows, err := q.Query(ctx, query, employeeID, storeID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts by dates: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows, false)
}

// ListByStoreRange implements shift.ShiftRepository.
func (r *shiftRepository) ListByStoreRange(ctx context.Context, storeID string, startDate, endDate time.Time, employeeID *string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "s.store_id = $1 AND s.shift_date >= $2 AND s.shift_date <= $3"
	args := []interface{}{storeID, startDate, endDate}

	if employeeID != nil && *employeeID != "" {
		baseWhere += " AND s.employee_id = $4"
		args = append(args, *employeeID)
	}

	query := `
		SELECT s.id, s.store_id, s.employee_id, s.shift_date, s.start_minute, s.end_minute,
			   s.break_minutes, s.is_fixed, s.created_at, s.updated_at,
			   e.name AS employee_name
		FROM shifts s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE ` + baseWhere + `
		ORDER BY s.shift_date ASC, s.start_minute ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts by range: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows, true)
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET shift_date = $1, start_minute = $2, end_minute = $3,
			break_minutes = $4, is_fixed = $5, updated_at = $6
		WHERE id = $7 AND store_id = $8
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ShiftDate,
		s.StartMinute,
		s.EndMinute,
		s.BreakMinutes,
		s.IsFixed,
		time.Now(),
		s.ID,
		s.StoreID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		if strings.Contains(err.Error(), "ex_shifts_no_overlap") {
			return shift.Shift{}, shift.ErrShiftOverlap
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return s, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string, storeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM shifts WHERE id = $1 AND store_id = $2`

	commandTag, err := q.Exec(ctx, query, id, storeID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// DeleteByEmployeeRange implements shift.ShiftRepository.
func (r *shiftRepository) DeleteByEmployeeRange(ctx context.Context, employeeID string, storeID string, startDate, endDate time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM shifts
		WHERE employee_id = $1
		  AND store_id = $2
		  AND shift_date >= $3
		  AND shift_date <= $4
	`

	commandTag, err := q.Exec(ctx, query, employeeID, storeID, startDate, endDate)
	if err != nil {
		return 0, fmt.Errorf("failed to delete shifts by range: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

func scanShifts(rows pgx.Rows, withName bool) ([]shift.Shift, error) {
	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		dest := []interface{}{
			&s.ID, &s.StoreID, &s.EmployeeID, &s.ShiftDate, &s.StartMinute, &s.EndMinute,
			&s.BreakMinutes, &s.IsFixed, &s.CreatedAt, &s.UpdatedAt,
		}
		if withName {
			dest = append(dest, &s.EmployeeName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, nil
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}
