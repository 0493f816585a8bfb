package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/heakbomb/resto-backend-go/internal/domain/wage"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type wageProfileRepository struct {
	db *database.DB
}

// Upsert implements wage.ProfileRepository.
func (r *wageProfileRepository) Upsert(ctx context.Context, p wage.Profile) (wage.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wage_profiles (
			employee_id, store_id, wage_type, base_wage, deduction_type, deduction_rate
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		ON CONFLICT (employee_id, store_id) DO UPDATE SET
			wage_type = EXCLUDED.wage_type,
			base_wage = EXCLUDED.base_wage,
			deduction_type = EXCLUDED.deduction_type,
			deduction_rate = EXCLUDED.deduction_rate,
			updated_at = $7
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.EmployeeID,
		p.StoreID,
		p.WageType,
		p.BaseWage,
		p.DeductionType,
		p.DeductionRate,
		time.Now(),
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return wage.Profile{}, fmt.Errorf("failed to upsert wage profile: %w", err)
	}

	return p, nil
}

// GetByEmployee implements wage.ProfileRepository.
func (r *wageProfileRepository) GetByEmployee(ctx context.Context, employeeID string, storeID string) (wage.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, store_id, wage_type, base_wage, deduction_type, deduction_rate,
			   created_at, updated_at
		FROM wage_profiles
		WHERE employee_id = $1 AND store_id = $2
	`

	var p wage.Profile
	err := q.QueryRow(ctx, query, employeeID, storeID).Scan(
		&p.EmployeeID, &p.StoreID, &p.WageType, &p.BaseWage, &p.DeductionType, &p.DeductionRate,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wage.Profile{}, wage.ErrProfileNotFound
		}
		return wage.Profile{}, fmt.Errorf("failed to get wage profile: %w", err)
	}

	return p, nil
}

// ListByStore implements wage.ProfileRepository.
func (r *wageProfileRepository) ListByStore(ctx context.Context, storeID string) ([]wage.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, store_id, wage_type, base_wage, deduction_type, deduction_rate,
			   created_at, updated_at
		FROM wage_profiles
		WHERE store_id = $1
	`

	rows, err := q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wage profiles: %w", err)
	}
	defer rows.Close()

	var profiles []wage.Profile
	for rows.Next() {
		var p wage.Profile
		err := rows.Scan(
			&p.EmployeeID, &p.StoreID, &p.WageType, &p.BaseWage, &p.DeductionType, &p.DeductionRate,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wage profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

func NewWageProfileRepository(db *database.DB) wage.ProfileRepository {
	return &wageProfileRepository{db: db}
}
