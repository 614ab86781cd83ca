package compensation

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/compensation"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/salarystructure"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/database"
)

type ComponentServiceImpl struct {
	db            *database.DB
	componentRepo compensation.ComponentRepository
	structureRepo salarystructure.SalaryStructureRepository
}

func NewComponentService(
	db *database.DB,
	componentRepo compensation.ComponentRepository,
	structureRepo salarystructure.SalaryStructureRepository,
) compensation.ComponentService {
	return &ComponentServiceImpl{
		db:            db,
		componentRepo: componentRepo,
		structureRepo: structureRepo,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func (s *ComponentServiceImpl) Create(ctx context.Context, req compensation.CreateComponentRequest) (compensation.ComponentResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return compensation.ComponentResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return compensation.ComponentResponse{}, err
	}

	kind, err := compensation.ParseComponentKind(req.Kind)
	if err != nil {
		return compensation.ComponentResponse{}, err
	}
	calc, err := compensation.ParseCalculationMode(req.CalculationType, req.Amount, req.Percent)
	if err != nil {
		return compensation.ComponentResponse{}, err
	}

	component := compensation.Component{
		CompanyID:   companyID,
		Name:        req.Name,
		Kind:        kind,
		Calculation: calc,
		Recurrence:  compensation.RecurrenceMonthly,
		IsActive:    true,
	}
	if req.Recurrence != "" {
		if component.Recurrence, err = compensation.ParseRecurrence(req.Recurrence); err != nil {
			return compensation.ComponentResponse{}, err
		}
	}
	if req.Taxable != nil {
		component.Taxable = *req.Taxable
	}
	if req.TaxPercent != nil {
		if kind == compensation.KindDeduction {
			return compensation.ComponentResponse{}, compensation.ErrTaxOnDeduction
		}
		component.TaxPercent = *req.TaxPercent
	}

	created, err := s.componentRepo.Create(ctx, component)
	if err != nil {
		return compensation.ComponentResponse{}, err
	}

	return compensation.ToResponse(created), nil
}

func (s *ComponentServiceImpl) Get(ctx context.Context, id string) (compensation.ComponentResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return compensation.ComponentResponse{}, err
	}

	component, err := s.componentRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return compensation.ComponentResponse{}, err
	}

	return compensation.ToResponse(component), nil
}

func (s *ComponentServiceImpl) List(ctx context.Context, activeOnly bool) ([]compensation.ComponentResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	components, err := s.componentRepo.GetByCompanyID(ctx, companyID, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]compensation.ComponentResponse, 0, len(components))
	for _, c := range components {
		responses = append(responses, compensation.ToResponse(c))
	}

	return responses, nil
}

func (s *ComponentServiceImpl) Update(ctx context.Context, req compensation.UpdateComponentRequest) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.componentRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return err
	}
	if req.TaxPercent != nil && existing.Kind == compensation.KindDeduction {
		return compensation.ErrTaxOnDeduction
	}
	// An amount only makes sense on fixed components, a percent on
	// percentage ones; the stored calculation type never changes.
	if req.Amount != nil && !existing.Calculation.IsFixed() {
		return compensation.ErrInvalidCalculationMode
	}
	if req.Percent != nil && existing.Calculation.IsFixed() {
		return compensation.ErrInvalidCalculationMode
	}

	return s.componentRepo.Update(ctx, companyID, req)
}

func (s *ComponentServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := s.componentRepo.GetByID(ctx, id, companyID); err != nil {
		return err
	}

	inUse, err := s.structureRepo.CountByComponentID(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return compensation.ErrComponentInUse
	}

	return s.componentRepo.Delete(ctx, id, companyID)
}
