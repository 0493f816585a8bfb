package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for the punch ledger.
type AttendanceService interface {
	// Punch records a check-in or check-out after validating the store QR
	// token and the employee's current punch state.
	Punch(ctx context.Context, req PunchRequest) (EventResponse, error)

	// ListRecent retrieves the authenticated employee's latest punches.
	ListRecent(ctx context.Context, storeID string, limit int) ([]EventResponse, error)

	// ListStoreMonth retrieves a store's punches for a month (owner view).
	ListStoreMonth(ctx context.Context, storeID string, filter StoreMonthFilter) (ListEventsResponse, error)

	// IssueStoreToken issues or returns the store's live QR token.
	IssueStoreToken(ctx context.Context, storeID string, refresh bool) (QRTokenResponse, error)

	// AggregateMonthly computes verified work days and minutes for one
	// employee over one calendar month.
	AggregateMonthly(ctx context.Context, storeID string, employeeID string, year int, month time.Month) (MonthlySummary, error)
}
