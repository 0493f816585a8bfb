package wage

import (
	"context"
	"fmt"

	"github.com/heakbomb/resto-backend-go/internal/domain/employee"
	"github.com/heakbomb/resto-backend-go/internal/domain/wage"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
)

type WageServiceImpl struct {
	db *database.DB
	wage.ProfileRepository
	employee.EmployeeRepository
}

// Upsert implements wage.WageService.
func (s *WageServiceImpl) Upsert(ctx context.Context, storeID string, employeeID string, req wage.UpsertProfileRequest) (wage.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return wage.ProfileResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID, storeID); err != nil {
		return wage.ProfileResponse{}, err
	}

	deductionType := wage.DeductionType(req.DeductionType)
	rate, ok := wage.DeductionRate(deductionType)
	if !ok {
		return wage.ProfileResponse{}, fmt.Errorf("no rate defined for deduction type %q", req.DeductionType)
	}

	profile := wage.Profile{
		EmployeeID:    employeeID,
		StoreID:       storeID,
		WageType:      wage.WageType(req.WageType),
		BaseWage:      req.BaseWage,
		DeductionType: deductionType,
		DeductionRate: rate,
	}

	saved, err := s.ProfileRepository.Upsert(ctx, profile)
	if err != nil {
		return wage.ProfileResponse{}, err
	}

	return wage.ToProfileResponse(saved), nil
}

// Get implements wage.WageService.
func (s *WageServiceImpl) Get(ctx context.Context, storeID string, employeeID string) (wage.ProfileResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID, storeID); err != nil {
		return wage.ProfileResponse{}, err
	}

	profile, err := s.ProfileRepository.GetByEmployee(ctx, employeeID, storeID)
	if err != nil {
		return wage.ProfileResponse{}, err
	}

	return wage.ToProfileResponse(profile), nil
}

func NewWageService(
	db *database.DB,
	profileRepo wage.ProfileRepository,
	employeeRepo employee.EmployeeRepository,
) wage.WageService {
	return &WageServiceImpl{
		db:                 db,
		ProfileRepository:  profileRepo,
		EmployeeRepository: employeeRepo,
	}
}
