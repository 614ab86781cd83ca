package compensation

import "context"

// ComponentRepository defines data access for the compensation catalog.
// All methods take companyID to prevent cross-company data access.
type ComponentRepository interface {
	Create(ctx context.Context, component Component) (Component, error)
	GetByID(ctx context.Context, id string, companyID string) (Component, error)
	GetByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]Component, error)
	GetByIDs(ctx context.Context, companyID string, ids []string) ([]Component, error)
	Update(ctx context.Context, companyID string, req UpdateComponentRequest) error
	Delete(ctx context.Context, id string, companyID string) error
}
