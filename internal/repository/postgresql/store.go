package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/heakbomb/resto-backend-go/internal/domain/store"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type storeRepository struct {
	db *database.DB
}

// GetByID implements store.StoreRepository.
func (r *storeRepository) GetByID(ctx context.Context, id string) (store.Store, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, owner_id, name, latitude, longitude, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var st store.Store
	err := q.QueryRow(ctx, query, id).Scan(
		&st.ID, &st.OwnerID, &st.Name, &st.Latitude, &st.Longitude, &st.CreatedAt, &st.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Store{}, store.ErrStoreNotFound
		}
		return store.Store{}, fmt.Errorf("failed to get store by ID: %w", err)
	}

	return st, nil
}

func NewStoreRepository(db *database.DB) store.StoreRepository {
	return &storeRepository{db: db}
}
