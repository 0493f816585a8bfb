package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/heakbomb/resto-backend-go/internal/domain/payroll"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

// GetRun implements payroll.RunRepository.
func (r *payrollRepository) GetRun(ctx context.Context, storeID string, ym payroll.YearMonth) (*payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, store_id, year_month, status, version, finalized_at, created_at, updated_at
		FROM payroll_runs
		WHERE store_id = $1 AND year_month = $2
	`

	var run payroll.Run
	var rawYM string
	err := q.QueryRow(ctx, query, storeID, ym.String()).Scan(
		&run.ID, &run.StoreID, &rawYM, &run.Status, &run.Version,
		&run.FinalizedAt, &run.CreatedAt, &run.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get payroll run: %w", err)
	}

	if run.YearMonth, err = payroll.ParseYearMonth(rawYM); err != nil {
		return nil, fmt.Errorf("failed to parse stored year_month: %w", err)
	}

	return &run, nil
}

// UpsertRun implements payroll.RunRepository.
func (r *payrollRepository) UpsertRun(ctx context.Context, run *payroll.Run) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (
			store_id, year_month, status, version, finalized_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
		ON CONFLICT (store_id, year_month) DO UPDATE SET
			status = EXCLUDED.status,
			version = EXCLUDED.version,
			finalized_at = EXCLUDED.finalized_at,
			updated_at = $6
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		run.StoreID,
		run.YearMonth.String(),
		run.Status,
		run.Version,
		run.FinalizedAt,
		time.Now(),
	).Scan(&run.ID, &run.CreatedAt, &run.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert payroll run: %w", err)
	}

	return nil
}

const payrollRecordColumns = `id, employee_id, store_id, year_month, work_days, work_minutes,
	   gross_pay, deductions, net_pay, status, paid_at, run_version,
	   wage_type, base_wage, deduction_type, deduction_rate,
	   created_at, updated_at`

// UpsertRecord implements payroll.RecordRepository.
// A recomputation replaces the figures but keeps the existing payment state:
// status and paid_at survive the upsert.
func (r *payrollRepository) UpsertRecord(ctx context.Context, rec *payroll.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, store_id, year_month, work_days, work_minutes,
			gross_pay, deductions, net_pay, status, run_version,
			wage_type, base_wage, deduction_type, deduction_rate
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		ON CONFLICT (employee_id, store_id, year_month) DO UPDATE SET
			work_days = EXCLUDED.work_days,
			work_minutes = EXCLUDED.work_minutes,
			gross_pay = EXCLUDED.gross_pay,
			deductions = EXCLUDED.deductions,
			net_pay = EXCLUDED.net_pay,
			run_version = EXCLUDED.run_version,
			wage_type = EXCLUDED.wage_type,
			base_wage = EXCLUDED.base_wage,
			deduction_type = EXCLUDED.deduction_type,
			deduction_rate = EXCLUDED.deduction_rate,
			updated_at = $15
		RETURNING id, status, paid_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.StoreID,
		rec.YearMonth.String(),
		rec.WorkDays,
		rec.WorkMinutes,
		rec.GrossPay,
		rec.Deductions,
		rec.NetPay,
		rec.Status,
		rec.RunVersion,
		rec.WageType,
		rec.BaseWage,
		rec.DeductionType,
		rec.DeductionRate,
		time.Now(),
	).Scan(&rec.ID, &rec.Status, &rec.PaidAt, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return nil
}

// GetRecordByID implements payroll.RecordRepository.
func (r *payrollRepository) GetRecordByID(ctx context.Context, id string, storeID string) (*payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records
		WHERE id = $1 AND store_id = $2
	`

	var rec payroll.Record
	var rawYM string
	err := q.QueryRow(ctx, query, id, storeID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.StoreID, &rawYM, &rec.WorkDays, &rec.WorkMinutes,
		&rec.GrossPay, &rec.Deductions, &rec.NetPay, &rec.Status, &rec.PaidAt, &rec.RunVersion,
		&rec.WageType, &rec.BaseWage, &rec.DeductionType, &rec.DeductionRate,
		&rec.CreatedAt, &rec.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get payroll record: %w", err)
	}

	if rec.YearMonth, err = payroll.ParseYearMonth(rawYM); err != nil {
		return nil, fmt.Errorf("failed to parse stored year_month: %w", err)
	}

	return &rec, nil
}

// ListRecords implements payroll.RecordRepository.
func (r *payrollRepository) ListRecords(ctx context.Context, storeID string, ym payroll.YearMonth) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_id, p.store_id, p.year_month, p.work_days, p.work_minutes,
			   p.gross_pay, p.deductions, p.net_pay, p.status, p.paid_at, p.run_version,
			   p.wage_type, p.base_wage, p.deduction_type, p.deduction_rate,
			   p.created_at, p.updated_at,
			   e.name AS employee_name
		FROM payroll_records p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.store_id = $1 AND p.year_month = $2
		ORDER BY e.name ASC, p.employee_id ASC
	`

	rows, err := q.Query(ctx, query, storeID, ym.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		var rec payroll.Record
		var rawYM string
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.StoreID, &rawYM, &rec.WorkDays, &rec.WorkMinutes,
			&rec.GrossPay, &rec.Deductions, &rec.NetPay, &rec.Status, &rec.PaidAt, &rec.RunVersion,
			&rec.WageType, &rec.BaseWage, &rec.DeductionType, &rec.DeductionRate,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		if rec.YearMonth, err = payroll.ParseYearMonth(rawYM); err != nil {
			return nil, fmt.Errorf("failed to parse stored year_month: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// UpdateRecordStatus implements payroll.RecordRepository.
func (r *payrollRepository) UpdateRecordStatus(ctx context.Context, rec *payroll.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $1, paid_at = $2, updated_at = $3
		WHERE id = $4 AND store_id = $5
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.Status,
		rec.PaidAt,
		time.Now(),
		rec.ID,
		rec.StoreID,
	).Scan(&rec.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update payroll record status: %w", err)
	}

	return nil
}

// DeleteRecordsNotIn implements payroll.RecordRepository.
func (r *payrollRepository) DeleteRecordsNotIn(ctx context.Context, storeID string, ym payroll.YearMonth, keepEmployeeIDs []string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM payroll_records
		WHERE store_id = $1
		  AND year_month = $2
		  AND NOT (employee_id = ANY($3))
	`

	commandTag, err := q.Exec(ctx, query, storeID, ym.String(), keepEmployeeIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale payroll records: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
