package salarystructure

import "context"

// Resolver computes signed compensation lines for one employee and period.
// The payrun engine consumes this without going through request claims.
type Resolver interface {
	ResolveCompensation(ctx context.Context, companyID string, employeeID string, month int, year int) (ResolvedCompensation, error)
}

type SalaryStructureService interface {
	Resolver

	Create(ctx context.Context, req CreateStructureRequest) (StructureResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (StructureResponse, error)
	List(ctx context.Context) ([]StructureResponse, error)
	Update(ctx context.Context, req UpdateStructureRequest) (StructureResponse, error)
	Delete(ctx context.Context, employeeID string) error
	// Resolve computes the signed compensation lines for one employee and
	// period without persisting anything.
	Resolve(ctx context.Context, employeeID string, month int, year int) (ResolvedCompensationResponse, error)
}
