package salarystructure

import "context"

type SalaryStructureRepository interface {
	Create(ctx context.Context, structure SalaryStructure, componentIDs []string) (SalaryStructure, error)
	GetByEmployeeID(ctx context.Context, companyID string, employeeID string) (SalaryStructure, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]SalaryStructure, error)
	// GetComponentIDs returns the attached component ids in attachment order.
	GetComponentIDs(ctx context.Context, structureID string) ([]string, error)
	Update(ctx context.Context, structure SalaryStructure, componentIDs *[]string) (SalaryStructure, error)
	Delete(ctx context.Context, companyID string, employeeID string) error
	// CountByComponentID reports how many structures reference a component, used
	// to block deleting a component that is still in use.
	CountByComponentID(ctx context.Context, componentID string) (int, error)
	// ListEmployeeIDsWithComponent returns active employees entitled to a
	// component, in employee code order.
	ListEmployeeIDsWithComponent(ctx context.Context, companyID string, componentID string) ([]string, error)
}
