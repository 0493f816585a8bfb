package store

import "context"

// StoreRepository is read-only: stores are owned by the portal backend.
type StoreRepository interface {
	GetByID(ctx context.Context, id string) (Store, error)
}
