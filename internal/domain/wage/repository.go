package wage

import "context"

// ProfileRepository defines data access for wage profiles.
// All methods include storeID to prevent cross-store data access.
type ProfileRepository interface {
	// Upsert creates or replaces the profile for (employeeID, storeID).
	Upsert(ctx context.Context, p Profile) (Profile, error)

	// GetByEmployee retrieves the profile with store isolation.
	GetByEmployee(ctx context.Context, employeeID string, storeID string) (Profile, error)

	// ListByStore retrieves every profile in a store.
	ListByStore(ctx context.Context, storeID string) ([]Profile, error)
}
