package employee

import "time"

// Employee is the directory read model. Employment records are owned by the
// portal backend; the core trusts the ids once authorization has been
// established upstream and only reads id, store membership and name.
type Employee struct {
	ID        string
	StoreID   string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
