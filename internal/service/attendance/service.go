package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/heakbomb/resto-backend-go/internal/domain/attendance"
	"github.com/heakbomb/resto-backend-go/internal/domain/employee"
	"github.com/heakbomb/resto-backend-go/internal/domain/payroll"
	"github.com/heakbomb/resto-backend-go/internal/domain/store"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
	"github.com/heakbomb/resto-backend-go/internal/pkg/qrtoken"
	"github.com/heakbomb/resto-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.EventRepository
	employee.EmployeeRepository
	store.StoreRepository
	qrTokens qrtoken.Service
}

// Punch implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}
	nowUTC := time.Now().UTC()

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return attendance.EventResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, req.StoreID)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	if !emp.IsActive {
		return attendance.EventResponse{}, employee.ErrEmployeeNotInStore
	}

	if err := a.qrTokens.Validate(req.StoreID, req.QRToken); err != nil {
		if errors.Is(err, qrtoken.ErrTokenMismatch) {
			return attendance.EventResponse{}, attendance.ErrInvalidQRToken
		}
		return attendance.EventResponse{}, fmt.Errorf("failed to validate qr token: %w", err)
	}

	// Reject IN-after-IN and OUT-after-OUT before touching the ledger.
	last, err := a.EventRepository.GetLast(ctx, employeeID, req.StoreID)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to get last punch: %w", err)
	}
	recordType := attendance.RecordType(req.RecordType)
	if recordType == attendance.RecordTypeIn {
		if last != nil && last.RecordType == attendance.RecordTypeIn {
			return attendance.EventResponse{}, attendance.ErrAlreadyCheckedIn
		}
	} else {
		if last == nil || last.RecordType == attendance.RecordTypeOut {
			return attendance.EventResponse{}, attendance.ErrNotCheckedIn
		}
	}

	event := attendance.Event{
		EmployeeID: employeeID,
		StoreID:    req.StoreID,
		RecordType: recordType,
		RecordTime: nowUTC,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		ClientIP:   req.ClientIP,
	}

	// Distance to the store is recorded for audit only; a far-away punch is
	// still accepted.
	if req.Latitude != nil && req.Longitude != nil {
		st, err := a.StoreRepository.GetByID(ctx, req.StoreID)
		if err != nil {
			return attendance.EventResponse{}, err
		}
		if st.Latitude != nil && st.Longitude != nil {
			distance := utils.CalculateHaversineDistance(
				*req.Latitude, *req.Longitude,
				*st.Latitude, *st.Longitude,
			)
			distance = math.Round(distance*100) / 100
			event.DistanceMeters = &distance
		}
	}

	created, err := a.EventRepository.Append(ctx, event)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to record punch: %w", err)
	}

	return attendance.ToEventResponse(created), nil
}

// ListRecent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRecent(ctx context.Context, storeID string, limit int) ([]attendance.EventResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return nil, fmt.Errorf("employee_id claim is missing or invalid")
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}

	events, err := a.EventRepository.ListRecent(ctx, employeeID, storeID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, attendance.ToEventResponse(ev))
	}

	return responses, nil
}

// ListStoreMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListStoreMonth(ctx context.Context, storeID string, filter attendance.StoreMonthFilter) (attendance.ListEventsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListEventsResponse{}, err
	}

	ym, err := payroll.ParseYearMonth(filter.YearMonth)
	if err != nil {
		return attendance.ListEventsResponse{}, err
	}
	from, to := ym.Range(time.UTC)

	events, total, err := a.EventRepository.ListByStoreRange(ctx, storeID, from, to, filter.Page, filter.Limit)
	if err != nil {
		return attendance.ListEventsResponse{}, err
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, attendance.ToEventResponse(ev))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListEventsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Events:     responses,
	}, nil
}

// IssueStoreToken implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) IssueStoreToken(ctx context.Context, storeID string, refresh bool) (attendance.QRTokenResponse, error) {
	if _, err := a.StoreRepository.GetByID(ctx, storeID); err != nil {
		return attendance.QRTokenResponse{}, err
	}

	token := a.qrTokens.IssueOrGet(storeID, refresh)

	return attendance.QRTokenResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// AggregateMonthly implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) AggregateMonthly(ctx context.Context, storeID string, employeeID string, year int, month time.Month) (attendance.MonthlySummary, error) {
	ym := payroll.YearMonth{Year: year, Month: month}
	from, to := ym.Range(time.UTC)

	events, err := a.EventRepository.ListByEmployeeRange(ctx, employeeID, storeID, from, to)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to load punches for aggregation: %w", err)
	}

	return attendance.Aggregate(employeeID, events, time.UTC), nil
}

func NewAttendanceService(
	db *database.DB,
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	storeRepo store.StoreRepository,
	qrTokens qrtoken.Service,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                 db,
		EventRepository:    eventRepo,
		EmployeeRepository: employeeRepo,
		StoreRepository:    storeRepo,
		qrTokens:           qrTokens,
	}
}
