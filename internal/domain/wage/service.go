package wage

import "context"

// WageService defines business logic for wage profiles.
type WageService interface {
	// Upsert writes the employee's pay configuration. The deduction rate is
	// derived from the deduction type; client-supplied rates are ignored.
	Upsert(ctx context.Context, storeID string, employeeID string, req UpsertProfileRequest) (ProfileResponse, error)

	// Get retrieves the employee's pay configuration.
	Get(ctx context.Context, storeID string, employeeID string) (ProfileResponse, error)
}
