package employee

import "context"

// EmployeeRepository is read-only: the directory is maintained elsewhere.
// All methods include storeID to prevent cross-store data access.
type EmployeeRepository interface {
	// GetByID retrieves an employee with store isolation.
	GetByID(ctx context.Context, id string, storeID string) (Employee, error)
}
