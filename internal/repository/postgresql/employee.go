package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/heakbomb/resto-backend-go/internal/domain/employee"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, storeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, store_id, name, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1 AND store_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, storeID).Scan(
		&emp.ID, &emp.StoreID, &emp.Name, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
