package salarystructure

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/compensation"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/employee"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/salarystructure"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/database"
	"github.com/talenthub-id/payroll-backend-go/internal/repository/postgresql"
)

type SalaryStructureServiceImpl struct {
	db            *database.DB
	structureRepo salarystructure.SalaryStructureRepository
	componentRepo compensation.ComponentRepository
	employeeRepo  employee.EmployeeRepository
}

func NewSalaryStructureService(
	db *database.DB,
	structureRepo salarystructure.SalaryStructureRepository,
	componentRepo compensation.ComponentRepository,
	employeeRepo employee.EmployeeRepository,
) salarystructure.SalaryStructureService {
	return &SalaryStructureServiceImpl{
		db:            db,
		structureRepo: structureRepo,
		componentRepo: componentRepo,
		employeeRepo:  employeeRepo,
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

func (s *SalaryStructureServiceImpl) Create(ctx context.Context, req salarystructure.CreateStructureRequest) (salarystructure.StructureResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salarystructure.StructureResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return salarystructure.StructureResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return salarystructure.StructureResponse{}, err
	}
	if err := s.verifyComponents(ctx, companyID, req.ComponentIDs); err != nil {
		return salarystructure.StructureResponse{}, err
	}

	var created salarystructure.SalaryStructure
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		created, err = s.structureRepo.Create(txCtx, salarystructure.SalaryStructure{
			CompanyID:  companyID,
			EmployeeID: req.EmployeeID,
			BaseSalary: req.BaseSalary,
		}, req.ComponentIDs)
		return err
	})
	if err != nil {
		return salarystructure.StructureResponse{}, err
	}

	return s.toResponse(ctx, companyID, created)
}

func (s *SalaryStructureServiceImpl) verifyComponents(ctx context.Context, companyID string, componentIDs []string) error {
	if len(componentIDs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(componentIDs))
	for _, id := range componentIDs {
		if seen[id] {
			return salarystructure.ErrComponentAlreadyLinked
		}
		seen[id] = true
	}
	components, err := s.componentRepo.GetByIDs(ctx, companyID, componentIDs)
	if err != nil {
		return err
	}
	if len(components) != len(componentIDs) {
		return compensation.ErrComponentNotFound
	}
	return nil
}

func (s *SalaryStructureServiceImpl) toResponse(ctx context.Context, companyID string, structure salarystructure.SalaryStructure) (salarystructure.StructureResponse, error) {
	componentIDs, err := s.structureRepo.GetComponentIDs(ctx, structure.ID)
	if err != nil {
		return salarystructure.StructureResponse{}, err
	}
	components, err := s.orderedComponents(ctx, companyID, componentIDs)
	if err != nil {
		return salarystructure.StructureResponse{}, err
	}
	return salarystructure.ToStructureResponse(structure, components), nil
}

// orderedComponents fetches the catalog rows and returns them in attachment
// order.
func (s *SalaryStructureServiceImpl) orderedComponents(ctx context.Context, companyID string, componentIDs []string) ([]compensation.Component, error) {
	if len(componentIDs) == 0 {
		return nil, nil
	}
	components, err := s.componentRepo.GetByIDs(ctx, companyID, componentIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]compensation.Component, len(components))
	for _, c := range components {
		byID[c.ID] = c
	}
	ordered := make([]compensation.Component, 0, len(componentIDs))
	for _, id := range componentIDs {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

func (s *SalaryStructureServiceImpl) GetByEmployee(ctx context.Context, employeeID string) (salarystructure.StructureResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salarystructure.StructureResponse{}, err
	}

	structure, err := s.structureRepo.GetByEmployeeID(ctx, companyID, employeeID)
	if err != nil {
		return salarystructure.StructureResponse{}, err
	}

	return s.toResponse(ctx, companyID, structure)
}

func (s *SalaryStructureServiceImpl) List(ctx context.Context) ([]salarystructure.StructureResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	structures, err := s.structureRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]salarystructure.StructureResponse, 0, len(structures))
	for _, structure := range structures {
		resp, err := s.toResponse(ctx, companyID, structure)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

func (s *SalaryStructureServiceImpl) Update(ctx context.Context, req salarystructure.UpdateStructureRequest) (salarystructure.StructureResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salarystructure.StructureResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return salarystructure.StructureResponse{}, err
	}

	existing, err := s.structureRepo.GetByEmployeeID(ctx, companyID, req.EmployeeID)
	if err != nil {
		return salarystructure.StructureResponse{}, err
	}
	if req.ComponentIDs != nil {
		if err := s.verifyComponents(ctx, companyID, *req.ComponentIDs); err != nil {
			return salarystructure.StructureResponse{}, err
		}
	}

	updated := existing
	if req.BaseSalary != nil {
		updated.BaseSalary = *req.BaseSalary
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		updated, err = s.structureRepo.Update(txCtx, updated, req.ComponentIDs)
		return err
	})
	if err != nil {
		return salarystructure.StructureResponse{}, err
	}

	return s.toResponse(ctx, companyID, updated)
}

func (s *SalaryStructureServiceImpl) Delete(ctx context.Context, employeeID string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.structureRepo.Delete(ctx, companyID, employeeID)
}

func (s *SalaryStructureServiceImpl) Resolve(ctx context.Context, employeeID string, month int, year int) (salarystructure.ResolvedCompensationResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salarystructure.ResolvedCompensationResponse{}, err
	}

	resolved, err := s.resolve(ctx, companyID, employeeID, month, year)
	if err != nil {
		return salarystructure.ResolvedCompensationResponse{}, err
	}

	return salarystructure.ToResolvedResponse(resolved), nil
}

// resolve is the internal entry point shared with the payrun engine.
func (s *SalaryStructureServiceImpl) resolve(ctx context.Context, companyID string, employeeID string, month int, year int) (salarystructure.ResolvedCompensation, error) {
	structure, err := s.structureRepo.GetByEmployeeID(ctx, companyID, employeeID)
	if err != nil {
		return salarystructure.ResolvedCompensation{}, err
	}
	componentIDs, err := s.structureRepo.GetComponentIDs(ctx, structure.ID)
	if err != nil {
		return salarystructure.ResolvedCompensation{}, err
	}
	components, err := s.orderedComponents(ctx, companyID, componentIDs)
	if err != nil {
		return salarystructure.ResolvedCompensation{}, err
	}

	resolved := salarystructure.ResolvedCompensation{
		EmployeeID:  employeeID,
		PeriodMonth: month,
		PeriodYear:  year,
		BaseSalary:  structure.BaseSalary,
		Lines:       ResolveLines(structure.BaseSalary, components, month),
	}
	return resolved, nil
}

// ResolveCompensation computes the signed pay lines for an employee and
// period. The payrun engine calls this; it never writes.
func (s *SalaryStructureServiceImpl) ResolveCompensation(ctx context.Context, companyID string, employeeID string, month int, year int) (salarystructure.ResolvedCompensation, error) {
	return s.resolve(ctx, companyID, employeeID, month, year)
}
