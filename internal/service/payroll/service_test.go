package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/heakbomb/resto-backend-go/internal/domain/attendance"
	"github.com/heakbomb/resto-backend-go/internal/domain/payroll"
	"github.com/heakbomb/resto-backend-go/internal/domain/wage"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollRepo struct {
	runs    map[string]payroll.Run
	records map[string]payroll.Record
	nextID  int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		runs:    make(map[string]payroll.Run),
		records: make(map[string]payroll.Record),
	}
}

func runKey(storeID string, ym payroll.YearMonth) string {
	return storeID + "|" + ym.String()
}

func (f *fakePayrollRepo) GetRun(ctx context.Context, storeID string, ym payroll.YearMonth) (*payroll.Run, error) {
	run, ok := f.runs[runKey(storeID, ym)]
	if !ok {
		return nil, payroll.ErrRecordNotFound
	}
	return &run, nil
}

func (f *fakePayrollRepo) UpsertRun(ctx context.Context, run *payroll.Run) error {
	if run.ID == "" {
		f.nextID++
		run.ID = "run-" + string(rune('a'+f.nextID))
	}
	f.runs[runKey(run.StoreID, run.YearMonth)] = *run
	return nil
}

func (f *fakePayrollRepo) UpsertRecord(ctx context.Context, record *payroll.Record) error {
	key := record.EmployeeID + "|" + record.StoreID + "|" + record.YearMonth.String()
	if existing, ok := f.records[key]; ok {
		record.ID = existing.ID
		record.Status = existing.Status
		record.PaidAt = existing.PaidAt
	} else {
		f.nextID++
		record.ID = "rec-" + string(rune('a'+f.nextID))
	}
	f.records[key] = *record
	return nil
}

func (f *fakePayrollRepo) GetRecordByID(ctx context.Context, id string, storeID string) (*payroll.Record, error) {
	for _, rec := range f.records {
		if rec.ID == id && rec.StoreID == storeID {
			out := rec
			return &out, nil
		}
	}
	return nil, payroll.ErrRecordNotFound
}

func (f *fakePayrollRepo) ListRecords(ctx context.Context, storeID string, ym payroll.YearMonth) ([]payroll.Record, error) {
	var out []payroll.Record
	for _, rec := range f.records {
		if rec.StoreID == storeID && rec.YearMonth == ym {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) UpdateRecordStatus(ctx context.Context, record *payroll.Record) error {
	for key, rec := range f.records {
		if rec.ID == record.ID && rec.StoreID == record.StoreID {
			rec.Status = record.Status
			rec.PaidAt = record.PaidAt
			f.records[key] = rec
			return nil
		}
	}
	return payroll.ErrRecordNotFound
}

func (f *fakePayrollRepo) DeleteRecordsNotIn(ctx context.Context, storeID string, ym payroll.YearMonth, keepEmployeeIDs []string) (int64, error) {
	keep := make(map[string]bool, len(keepEmployeeIDs))
	for _, id := range keepEmployeeIDs {
		keep[id] = true
	}
	var deleted int64
	for key, rec := range f.records {
		if rec.StoreID == storeID && rec.YearMonth == ym && !keep[rec.EmployeeID] {
			delete(f.records, key)
			deleted++
		}
	}
	return deleted, nil
}

type fakeProfileRepo struct {
	profiles map[string]wage.Profile
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, p wage.Profile) (wage.Profile, error) {
	f.profiles[p.EmployeeID] = p
	return p, nil
}

func (f *fakeProfileRepo) GetByEmployee(ctx context.Context, employeeID string, storeID string) (wage.Profile, error) {
	p, ok := f.profiles[employeeID]
	if !ok || p.StoreID != storeID {
		return wage.Profile{}, wage.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) ListByStore(ctx context.Context, storeID string) ([]wage.Profile, error) {
	var out []wage.Profile
	for _, p := range f.profiles {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAggregator struct {
	minutes map[string]int
	days    map[string]int
	err     error
}

func (f *fakeAggregator) AggregateMonthly(ctx context.Context, storeID string, employeeID string, year int, month time.Month) (attendance.MonthlySummary, error) {
	if f.err != nil {
		return attendance.MonthlySummary{}, f.err
	}
	return attendance.MonthlySummary{
		EmployeeID:  employeeID,
		WorkDays:    f.days[employeeID],
		WorkMinutes: f.minutes[employeeID],
	}, nil
}

func passthroughTx(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

func newTestService(repo *fakePayrollRepo) *PayrollServiceImpl {
	return &PayrollServiceImpl{PayrollRepository: repo, runInTx: passthroughTx}
}

func newComputeService(repo *fakePayrollRepo, profiles *fakeProfileRepo, agg *fakeAggregator) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		PayrollRepository: repo,
		ProfileRepository: profiles,
		aggregator:        agg,
		runInTx:           passthroughTx,
	}
}

func hourlyProfile(employeeID string, baseWage int64) wage.Profile {
	return wage.Profile{
		EmployeeID:    employeeID,
		StoreID:       "store-1",
		WageType:      wage.WageTypeHourly,
		BaseWage:      baseWage,
		DeductionType: wage.DeductionNone,
	}
}

func currentMonth() payroll.YearMonth {
	return payroll.YearMonthOf(time.Now().UTC())
}

func seedDraftRun(repo *fakePayrollRepo, storeID string, ym payroll.YearMonth) {
	repo.runs[runKey(storeID, ym)] = payroll.Run{
		ID: "run-seed", StoreID: storeID, YearMonth: ym,
		Status: payroll.RunStatusDraft, Version: 1,
	}
}

func TestGetRun_SynthesizesNone(t *testing.T) {
	svc := newTestService(newFakePayrollRepo())

	run, err := svc.GetRun(context.Background(), "store-1", currentMonth())
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusNone, run.Status)
	assert.Equal(t, 0, run.Version)
}

func TestFinalize_DraftBecomesFinalized(t *testing.T) {
	repo := newFakePayrollRepo()
	ym := currentMonth()
	seedDraftRun(repo, "store-1", ym)
	svc := newTestService(repo)

	run, err := svc.Finalize(context.Background(), "store-1", ym)
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusFinalized, run.Status)
	require.NotNil(t, run.FinalizedAt)

	// A finalized month is locked for recomputation.
	assert.True(t, run.Locked(time.Now().UTC()))
}

func TestFinalize_TwiceFails(t *testing.T) {
	repo := newFakePayrollRepo()
	ym := currentMonth()
	seedDraftRun(repo, "store-1", ym)
	svc := newTestService(repo)

	_, err := svc.Finalize(context.Background(), "store-1", ym)
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), "store-1", ym)
	assert.ErrorIs(t, err, payroll.ErrAlreadyFinalized)
}

func TestFinalize_NothingComputed(t *testing.T) {
	svc := newTestService(newFakePayrollRepo())

	_, err := svc.Finalize(context.Background(), "store-1", currentMonth())
	assert.ErrorIs(t, err, payroll.ErrNothingToFinalize)
}

func TestFinalize_FailedRunNotFinalizable(t *testing.T) {
	repo := newFakePayrollRepo()
	ym := currentMonth()
	repo.runs[runKey("store-1", ym)] = payroll.Run{
		ID: "run-seed", StoreID: "store-1", YearMonth: ym,
		Status: payroll.RunStatusFailed, Version: 1,
	}
	svc := newTestService(repo)

	_, err := svc.Finalize(context.Background(), "store-1", ym)
	assert.ErrorIs(t, err, payroll.ErrNothingToFinalize)
}

func TestComputeMonth_PastMonthLocked(t *testing.T) {
	svc := newTestService(newFakePayrollRepo())

	ym := currentMonth()
	past := payroll.YearMonth{Year: ym.Year, Month: ym.Month - 1}
	if ym.Month == time.January {
		past = payroll.YearMonth{Year: ym.Year - 1, Month: time.December}
	}

	_, _, err := svc.ComputeMonth(context.Background(), "store-1", past)
	assert.ErrorIs(t, err, payroll.ErrRunLocked)
}

func TestComputeMonth_FinalizedMonthLocked(t *testing.T) {
	repo := newFakePayrollRepo()
	ym := currentMonth()
	now := time.Now().UTC()
	repo.runs[runKey("store-1", ym)] = payroll.Run{
		ID: "run-seed", StoreID: "store-1", YearMonth: ym,
		Status: payroll.RunStatusFinalized, Version: 2, FinalizedAt: &now,
	}
	svc := newTestService(repo)

	_, _, err := svc.ComputeMonth(context.Background(), "store-1", ym)
	assert.ErrorIs(t, err, payroll.ErrRunLocked)

	var lockedErr *payroll.RunLockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, "store-1", lockedErr.StoreID)
}

func TestSetRecordStatus_TogglePaid(t *testing.T) {
	repo := newFakePayrollRepo()
	ym := currentMonth()
	repo.records["emp-1|store-1|"+ym.String()] = payroll.Record{
		ID: "rec-1", EmployeeID: "emp-1", StoreID: "store-1", YearMonth: ym,
		Status: payroll.RecordStatusPending,
	}
	svc := newTestService(repo)

	record, err := svc.SetRecordStatus(context.Background(), "store-1", &payroll.SetStatusRequest{
		PayrollID: "rec-1", Status: "PAID",
	})
	require.NoError(t, err)
	assert.Equal(t, payroll.RecordStatusPaid, record.Status)
	require.NotNil(t, record.PaidAt)

	record, err = svc.SetRecordStatus(context.Background(), "store-1", &payroll.SetStatusRequest{
		PayrollID: "rec-1", Status: "PENDING",
	})
	require.NoError(t, err)
	assert.Equal(t, payroll.RecordStatusPending, record.Status)
	assert.Nil(t, record.PaidAt)
}

func TestSetRecordStatus_UnknownRecord(t *testing.T) {
	svc := newTestService(newFakePayrollRepo())

	_, err := svc.SetRecordStatus(context.Background(), "store-1", &payroll.SetStatusRequest{
		PayrollID: "rec-404", Status: "PAID",
	})
	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)
}

func TestComputeMonth_CreatesDraftRunAndRecords(t *testing.T) {
	repo := newFakePayrollRepo()
	profiles := &fakeProfileRepo{profiles: map[string]wage.Profile{
		"emp-1": hourlyProfile("emp-1", 10000),
	}}
	agg := &fakeAggregator{
		minutes: map[string]int{"emp-1": 480},
		days:    map[string]int{"emp-1": 3},
	}
	svc := newComputeService(repo, profiles, agg)
	ym := currentMonth()

	run, records, err := svc.ComputeMonth(context.Background(), "store-1", ym)
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusDraft, run.Status)
	assert.Equal(t, 1, run.Version)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "emp-1", rec.EmployeeID)
	assert.Equal(t, 480, rec.WorkMinutes)
	assert.Equal(t, 3, rec.WorkDays)
	assert.True(t, rec.GrossPay.Equal(decimal.NewFromInt(80000)))
	assert.True(t, rec.NetPay.Equal(decimal.NewFromInt(80000)))
	assert.Equal(t, payroll.RecordStatusPending, rec.Status)
	assert.Equal(t, 1, rec.RunVersion)
	assert.Equal(t, wage.WageTypeHourly, rec.WageType)
	assert.Equal(t, int64(10000), rec.BaseWage)
}

func TestComputeMonth_Idempotent(t *testing.T) {
	repo := newFakePayrollRepo()
	profiles := &fakeProfileRepo{profiles: map[string]wage.Profile{
		"emp-1": hourlyProfile("emp-1", 10000),
	}}
	agg := &fakeAggregator{
		minutes: map[string]int{"emp-1": 480},
		days:    map[string]int{"emp-1": 3},
	}
	svc := newComputeService(repo, profiles, agg)
	ym := currentMonth()

	_, first, err := svc.ComputeMonth(context.Background(), "store-1", ym)
	require.NoError(t, err)
	run, second, err := svc.ComputeMonth(context.Background(), "store-1", ym)
	require.NoError(t, err)

	// Same punches, same figures; no duplicate rows, only the version moves.
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.True(t, first[0].GrossPay.Equal(second[0].GrossPay))
	assert.Len(t, repo.records, 1)
	assert.Equal(t, 2, run.Version)
}

func TestComputeMonth_RecomputePreservesPaidStatus(t *testing.T) {
	repo := newFakePayrollRepo()
	profiles := &fakeProfileRepo{profiles: map[string]wage.Profile{
		"emp-1": hourlyProfile("emp-1", 10000),
	}}
	agg := &fakeAggregator{
		minutes: map[string]int{"emp-1": 480},
		days:    map[string]int{"emp-1": 3},
	}
	svc := newComputeService(repo, profiles, agg)
	ym := currentMonth()

	_, records, err := svc.ComputeMonth(context.Background(), "store-1", ym)
	require.NoError(t, err)

	_, err = svc.SetRecordStatus(context.Background(), "store-1", &payroll.SetStatusRequest{
		PayrollID: records[0].ID, Status: "PAID",
	})
	require.NoError(t, err)

	// Late punches arrive; the owner recomputes the month.
	agg.minutes["emp-1"] = 600
	_, records, err = svc.ComputeMonth(context.Background(), "store-1", ym)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.True(t, records[0].GrossPay.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, payroll.RecordStatusPaid, records[0].Status)
	assert.NotNil(t, records[0].PaidAt)
}

func TestComputeMonth_RemovesStaleRecords(t *testing.T) {
	repo := newFakePayrollRepo()
	profiles := &fakeProfileRepo{profiles: map[string]wage.Profile{
		"emp-1": hourlyProfile("emp-1", 10000),
		"emp-2": hourlyProfile("emp-2", 12000),
	}}
	agg := &fakeAggregator{
		minutes: map[string]int{"emp-1": 480, "emp-2": 240},
		days:    map[string]int{"emp-1": 3, "emp-2": 1},
	}
	svc := newComputeService(repo, profiles, agg)
	ym := currentMonth()

	_, records, err := svc.ComputeMonth(context.Background(), "store-1", ym)
	require.NoError(t, err)
	require.Len(t, records, 2)

	delete(profiles.profiles, "emp-2")
	_, records, err = svc.ComputeMonth(context.Background(), "store-1", ym)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "emp-1", records[0].EmployeeID)
	assert.Len(t, repo.records, 1)
}

func TestComputeMonth_FailureMarksExistingRunFailed(t *testing.T) {
	repo := newFakePayrollRepo()
	profiles := &fakeProfileRepo{profiles: map[string]wage.Profile{
		"emp-1": hourlyProfile("emp-1", 10000),
	}}
	agg := &fakeAggregator{
		minutes: map[string]int{"emp-1": 480},
		days:    map[string]int{"emp-1": 3},
	}
	svc := newComputeService(repo, profiles, agg)
	ym := currentMonth()

	_, _, err := svc.ComputeMonth(context.Background(), "store-1", ym)
	require.NoError(t, err)

	agg.err = errors.New("punch store unavailable")
	_, _, err = svc.ComputeMonth(context.Background(), "store-1", ym)
	assert.ErrorIs(t, err, payroll.ErrComputationFailed)

	run, ok := repo.runs[runKey("store-1", ym)]
	require.True(t, ok)
	assert.Equal(t, payroll.RunStatusFailed, run.Status)
	assert.Equal(t, 1, run.Version)
}

func TestComputeMonth_FirstFailureLeavesNoRun(t *testing.T) {
	repo := newFakePayrollRepo()
	profiles := &fakeProfileRepo{profiles: map[string]wage.Profile{
		"emp-1": hourlyProfile("emp-1", 10000),
	}}
	agg := &fakeAggregator{err: errors.New("punch store unavailable")}
	svc := newComputeService(repo, profiles, agg)
	ym := currentMonth()

	_, _, err := svc.ComputeMonth(context.Background(), "store-1", ym)
	assert.ErrorIs(t, err, payroll.ErrComputationFailed)

	// No run existed, so none is written; the month stays NONE.
	assert.Empty(t, repo.runs)
	run, err := svc.GetRun(context.Background(), "store-1", ym)
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusNone, run.Status)
}

func TestSummary_Totals(t *testing.T) {
	repo := newFakePayrollRepo()
	ym := currentMonth()
	repo.records["emp-1|store-1|"+ym.String()] = payroll.Record{
		ID: "rec-1", EmployeeID: "emp-1", StoreID: "store-1", YearMonth: ym,
		GrossPay:   decimal.NewFromInt(80000),
		Deductions: decimal.NewFromInt(2640),
		NetPay:     decimal.NewFromInt(77360),
		Status:     payroll.RecordStatusPaid,
	}
	repo.records["emp-2|store-1|"+ym.String()] = payroll.Record{
		ID: "rec-2", EmployeeID: "emp-2", StoreID: "store-1", YearMonth: ym,
		GrossPay:   decimal.NewFromInt(100000),
		Deductions: decimal.NewFromInt(0),
		NetPay:     decimal.NewFromInt(100000),
		Status:     payroll.RecordStatusPending,
	}
	svc := newTestService(repo)

	summary, err := svc.Summary(context.Background(), "store-1", ym)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalEmployees)
	assert.True(t, summary.TotalGrossPay.Equal(decimal.NewFromInt(180000)))
	assert.True(t, summary.TotalDeductions.Equal(decimal.NewFromInt(2640)))
	assert.True(t, summary.TotalNetPay.Equal(decimal.NewFromInt(177360)))
	assert.Equal(t, 1, summary.PaidCount)
	assert.Equal(t, 1, summary.PendingCount)
}
