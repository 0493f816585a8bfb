package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/heakbomb/resto-backend-go/internal/domain/attendance"
	"github.com/heakbomb/resto-backend-go/internal/domain/payroll"
	"github.com/heakbomb/resto-backend-go/internal/domain/wage"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
	"github.com/heakbomb/resto-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// monthlyAggregator is the slice of the attendance service payroll consumes.
type monthlyAggregator interface {
	AggregateMonthly(ctx context.Context, storeID string, employeeID string, year int, month time.Month) (attendance.MonthlySummary, error)
}

type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayrollRepository
	wage.ProfileRepository
	aggregator monthlyAggregator

	// runInTx wraps the computation in a snapshot transaction; tests swap in
	// a pass-through runner.
	runInTx func(ctx context.Context, db *database.DB, fn func(pgx.Tx) error) error

	// compute collapses concurrent computations of the same store-month into
	// one; the second caller gets the first caller's result.
	compute singleflight.Group
}

type computeResult struct {
	run     *payroll.Run
	records []payroll.Record
}

// ComputeMonth implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputeMonth(ctx context.Context, storeID string, ym payroll.YearMonth) (*payroll.Run, []payroll.Record, error) {
	key := storeID + "|" + ym.String()
	v, err, _ := s.compute.Do(key, func() (interface{}, error) {
		return s.computeMonth(ctx, storeID, ym)
	})
	if err != nil {
		return nil, nil, err
	}

	result := v.(*computeResult)
	return result.run, result.records, nil
}

func (s *PayrollServiceImpl) computeMonth(ctx context.Context, storeID string, ym payroll.YearMonth) (*computeResult, error) {
	now := time.Now().UTC()

	run, err := s.loadOrSynthesizeRun(ctx, storeID, ym)
	if err != nil {
		return nil, err
	}
	if run.Locked(now) {
		reason := "month is before the current month"
		if run.Status == payroll.RunStatusFinalized {
			reason = "month is finalized"
		}
		return nil, &payroll.RunLockedError{StoreID: storeID, YearMonth: ym, Reason: reason}
	}

	nextVersion := run.Version + 1

	var records []payroll.Record
	err = s.runInTx(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		profiles, err := s.ProfileRepository.ListByStore(txCtx, storeID)
		if err != nil {
			return fmt.Errorf("failed to load wage profiles: %w", err)
		}

		records = records[:0]
		keep := make([]string, 0, len(profiles))
		for _, profile := range profiles {
			summary, err := s.aggregator.AggregateMonthly(txCtx, storeID, profile.EmployeeID, ym.Year, ym.Month)
			if err != nil {
				return fmt.Errorf("failed to aggregate punches for %s: %w", profile.EmployeeID, err)
			}

			gross, deduction, net := payroll.ComputePay(profile, summary.WorkMinutes)

			record := payroll.Record{
				EmployeeID:    profile.EmployeeID,
				StoreID:       storeID,
				YearMonth:     ym,
				WorkDays:      summary.WorkDays,
				WorkMinutes:   summary.WorkMinutes,
				GrossPay:      gross,
				Deductions:    deduction,
				NetPay:        net,
				Status:        payroll.RecordStatusPending,
				RunVersion:    nextVersion,
				WageType:      profile.WageType,
				BaseWage:      profile.BaseWage,
				DeductionType: profile.DeductionType,
				DeductionRate: profile.DeductionRate,
			}
			if err := s.PayrollRepository.UpsertRecord(txCtx, &record); err != nil {
				return err
			}

			records = append(records, record)
			keep = append(keep, record.EmployeeID)
		}

		// Recomputation drops records of employees who no longer qualify
		// (profile removed, punches voided).
		if _, err := s.PayrollRepository.DeleteRecordsNotIn(txCtx, storeID, ym, keep); err != nil {
			return err
		}

		run.Status = payroll.RunStatusDraft
		run.Version = nextVersion
		return s.PayrollRepository.UpsertRun(txCtx, run)
	})
	if err != nil {
		// The transaction rolled back; mark the failure on the run row so the
		// owner sees the month needs another attempt. A month that never had a
		// run stays NONE: FAILED is only reachable from an existing run.
		if run.Status != payroll.RunStatusNone {
			failed := *run
			failed.Status = payroll.RunStatusFailed
			if markErr := s.PayrollRepository.UpsertRun(ctx, &failed); markErr != nil {
				return nil, fmt.Errorf("failed to mark payroll run as failed: %v (original error: %w)", markErr, err)
			}
		}
		return nil, fmt.Errorf("%w: %w", payroll.ErrComputationFailed, err)
	}

	return &computeResult{run: run, records: records}, nil
}

// GetRun implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetRun(ctx context.Context, storeID string, ym payroll.YearMonth) (*payroll.Run, error) {
	return s.loadOrSynthesizeRun(ctx, storeID, ym)
}

// ListRecords implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListRecords(ctx context.Context, storeID string, ym payroll.YearMonth) ([]payroll.Record, error) {
	return s.PayrollRepository.ListRecords(ctx, storeID, ym)
}

// SetRecordStatus implements payroll.PayrollService.
func (s *PayrollServiceImpl) SetRecordStatus(ctx context.Context, storeID string, req *payroll.SetStatusRequest) (*payroll.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := s.PayrollRepository.GetRecordByID(ctx, req.PayrollID, storeID)
	if err != nil {
		return nil, err
	}

	status := payroll.RecordStatus(req.Status)
	record.Status = status
	if status == payroll.RecordStatusPaid {
		now := time.Now().UTC()
		record.PaidAt = &now
	} else {
		record.PaidAt = nil
	}

	if err := s.PayrollRepository.UpdateRecordStatus(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Finalize implements payroll.PayrollService.
func (s *PayrollServiceImpl) Finalize(ctx context.Context, storeID string, ym payroll.YearMonth) (*payroll.Run, error) {
	run, err := s.PayrollRepository.GetRun(ctx, storeID, ym)
	if err != nil {
		if errors.Is(err, payroll.ErrRecordNotFound) {
			return nil, payroll.ErrNothingToFinalize
		}
		return nil, err
	}

	switch run.Status {
	case payroll.RunStatusFinalized:
		return nil, payroll.ErrAlreadyFinalized
	case payroll.RunStatusDraft:
		// computed and open, proceed
	default:
		return nil, payroll.ErrNothingToFinalize
	}

	now := time.Now().UTC()
	run.Status = payroll.RunStatusFinalized
	run.FinalizedAt = &now
	if err := s.PayrollRepository.UpsertRun(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}

// Summary implements payroll.PayrollService.
func (s *PayrollServiceImpl) Summary(ctx context.Context, storeID string, ym payroll.YearMonth) (*payroll.SummaryResponse, error) {
	records, err := s.PayrollRepository.ListRecords(ctx, storeID, ym)
	if err != nil {
		return nil, err
	}

	summary := &payroll.SummaryResponse{YearMonth: ym.String()}
	for _, rec := range records {
		summary.TotalEmployees++
		summary.TotalGrossPay = summary.TotalGrossPay.Add(rec.GrossPay)
		summary.TotalDeductions = summary.TotalDeductions.Add(rec.Deductions)
		summary.TotalNetPay = summary.TotalNetPay.Add(rec.NetPay)
		if rec.Status == payroll.RecordStatusPaid {
			summary.PaidCount++
		} else {
			summary.PendingCount++
		}
	}

	return summary, nil
}

func (s *PayrollServiceImpl) loadOrSynthesizeRun(ctx context.Context, storeID string, ym payroll.YearMonth) (*payroll.Run, error) {
	run, err := s.PayrollRepository.GetRun(ctx, storeID, ym)
	if err != nil {
		if errors.Is(err, payroll.ErrRecordNotFound) {
			synthetic := payroll.SyntheticRun(storeID, ym)
			return &synthetic, nil
		}
		return nil, err
	}
	return run, nil
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	profileRepo wage.ProfileRepository,
	attendanceService attendance.AttendanceService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                db,
		PayrollRepository: payrollRepo,
		ProfileRepository: profileRepo,
		aggregator:        attendanceService,
		runInTx:           postgresql.WithSnapshotTransaction,
	}
}
