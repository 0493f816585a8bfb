package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access for the punch ledger. The ledger is
// append-only: there is no update or delete.
// All methods include storeID to prevent cross-store data access.
type EventRepository interface {
	// Append writes a new punch event.
	Append(ctx context.Context, event Event) (Event, error)

	// GetLast retrieves the most recent event for an employee in a store.
	// Used to reject IN-after-IN and OUT-after-OUT.
	GetLast(ctx context.Context, employeeID string, storeID string) (*Event, error)

	// ListRecent retrieves an employee's latest events, newest first.
	ListRecent(ctx context.Context, employeeID string, storeID string, limit int) ([]Event, error)

	// ListByEmployeeRange retrieves one employee's events in [from, to),
	// ascending by record time. A single query, so payroll aggregation reads
	// a consistent snapshot.
	ListByEmployeeRange(ctx context.Context, employeeID string, storeID string, from, to time.Time) ([]Event, error)

	// ListByStoreRange retrieves a store's events in [from, to) with employee
	// names joined, newest first, paginated.
	ListByStoreRange(ctx context.Context, storeID string, from, to time.Time, page, limit int) ([]Event, int64, error)
}
