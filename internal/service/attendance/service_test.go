package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/heakbomb/resto-backend-go/internal/domain/attendance"
	"github.com/heakbomb/resto-backend-go/internal/domain/employee"
	"github.com/heakbomb/resto-backend-go/internal/domain/store"
	"github.com/heakbomb/resto-backend-go/internal/pkg/qrtoken"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events []attendance.Event
}

func (f *fakeEventRepo) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	event.ID = "evt-" + time.Now().Format("150405.000000000")
	event.CreatedAt = time.Now()
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventRepo) GetLast(ctx context.Context, employeeID string, storeID string) (*attendance.Event, error) {
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].EmployeeID == employeeID && f.events[i].StoreID == storeID {
			ev := f.events[i]
			return &ev, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) ListRecent(ctx context.Context, employeeID string, storeID string, limit int) ([]attendance.Event, error) {
	var out []attendance.Event
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].EmployeeID == employeeID && f.events[i].StoreID == storeID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByEmployeeRange(ctx context.Context, employeeID string, storeID string, from, to time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && ev.StoreID == storeID &&
			!ev.RecordTime.Before(from) && ev.RecordTime.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByStoreRange(ctx context.Context, storeID string, from, to time.Time, page, limit int) ([]attendance.Event, int64, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.StoreID == storeID && !ev.RecordTime.Before(from) && ev.RecordTime.Before(to) {
			out = append(out, ev)
		}
	}
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, storeID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.StoreID != storeID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeStoreRepo struct {
	stores map[string]store.Store
}

func (f *fakeStoreRepo) GetByID(ctx context.Context, id string) (store.Store, error) {
	st, ok := f.stores[id]
	if !ok {
		return store.Store{}, store.ErrStoreNotFound
	}
	return st, nil
}

func employeeClaimsContext(t *testing.T, employeeID string) context.Context {
	tok := jwt.New()
	require.NoError(t, tok.Set("employee_id", employeeID))
	require.NoError(t, tok.Set("type", "access"))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newTestService(t *testing.T) (attendance.AttendanceService, *fakeEventRepo, qrtoken.Service) {
	t.Helper()

	lat, lng := 37.5665, 126.9780
	stores := &fakeStoreRepo{stores: map[string]store.Store{
		"store-1": {ID: "store-1", Name: "Gangnam Branch", Latitude: &lat, Longitude: &lng},
	}}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", StoreID: "store-1", Name: "Kim", IsActive: true},
		"emp-2": {ID: "emp-2", StoreID: "store-1", Name: "Lee", IsActive: false},
	}}
	events := &fakeEventRepo{}
	qrTokens := qrtoken.NewService(5 * time.Minute)

	svc := NewAttendanceService(nil, events, employees, stores, qrTokens)
	return svc, events, qrTokens
}

func validToken(qrTokens qrtoken.Service) string {
	return qrTokens.IssueOrGet("store-1", false).Value
}

func TestPunch_InThenOut(t *testing.T) {
	svc, _, qrTokens := newTestService(t)
	ctx := employeeClaimsContext(t, "emp-1")
	token := validToken(qrTokens)

	in, err := svc.Punch(ctx, attendance.PunchRequest{
		StoreID: "store-1", RecordType: "IN", QRToken: token,
	})
	require.NoError(t, err)
	assert.Equal(t, "IN", in.RecordType)
	assert.Equal(t, "emp-1", in.EmployeeID)

	out, err := svc.Punch(ctx, attendance.PunchRequest{
		StoreID: "store-1", RecordType: "OUT", QRToken: token,
	})
	require.NoError(t, err)
	assert.Equal(t, "OUT", out.RecordType)
}

func TestPunch_DuplicateInRejected(t *testing.T) {
	svc, _, qrTokens := newTestService(t)
	ctx := employeeClaimsContext(t, "emp-1")
	token := validToken(qrTokens)

	_, err := svc.Punch(ctx, attendance.PunchRequest{
		StoreID: "store-1", RecordType: "IN", QRToken: token,
	})
	require.NoError(t, err)

	_, err = svc.Punch(ctx, attendance.PunchRequest{
		StoreID: "store-1", RecordType: "IN", QRToken: token,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestPunch_OutWithoutInRejected(t *testing.T) {
	svc, _, qrTokens := newTestService(t)
	ctx := employeeClaimsContext(t, "emp-1")

	_, err := svc.Punch(ctx, attendance.PunchRequest{
		StoreID: "store-1", RecordType: "OUT", QRToken: validToken(qrTokens),
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestPunch_WrongQRToken(t *testing.T) {
	svc, _, qrTokens := newTestService(t)
	ctx := employeeClaimsContext(t, "emp-1")
	validToken(qrTokens)

	_, err := svc.Punch(ctx, attendance.PunchRequest{
		StoreID: "store-1", RecordType: "IN", QRToken: "not-the-token",
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidQRToken)
}

func TestPunch_InactiveEmployeeRejected(t *testing.T) {
	svc, _, qrTokens := newTestService(t)
	ctx := employeeClaimsContext(t, "emp-2")

	_, err := svc.Punch(ctx, attendance.PunchRequest{
		StoreID: "store-1", RecordType: "IN", QRToken: validToken(qrTokens),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotInStore)
}

func TestPunch_UnknownEmployeeRejected(t *testing.T) {
	svc, _, qrTokens := newTestService(t)
	ctx := employeeClaimsContext(t, "emp-unknown")

	_, err := svc.Punch(ctx, attendance.PunchRequest{
		StoreID: "store-1", RecordType: "IN", QRToken: validToken(qrTokens),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPunch_RecordsDistanceForAudit(t *testing.T) {
	svc, events, qrTokens := newTestService(t)
	ctx := employeeClaimsContext(t, "emp-1")

	// Roughly 1km north of the store.
	lat, lng := 37.5755, 126.9780
	resp, err := svc.Punch(ctx, attendance.PunchRequest{
		StoreID: "store-1", RecordType: "IN", QRToken: validToken(qrTokens),
		Latitude: &lat, Longitude: &lng,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.DistanceMeters)
	assert.InDelta(t, 1000, *resp.DistanceMeters, 50)

	// A far-away punch is still stored.
	require.Len(t, events.events, 1)
}

func TestIssueStoreToken_UnknownStore(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.IssueStoreToken(context.Background(), "store-404", false)
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestIssueStoreToken_StableUntilRefresh(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.IssueStoreToken(ctx, "store-1", false)
	require.NoError(t, err)
	second, err := svc.IssueStoreToken(ctx, "store-1", false)
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token)

	rotated, err := svc.IssueStoreToken(ctx, "store-1", true)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, rotated.Token)
}
