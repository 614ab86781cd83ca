package payrun

import (
	"context"
	"time"
)

// PayrunRepository defines data access for payruns and their items.
// All methods take companyID to prevent cross-company data access.
type PayrunRepository interface {
	// Create inserts the payrun and all its items; callers run it inside a
	// transaction so the batch lands atomically.
	Create(ctx context.Context, payrun Payrun, items []PayrunItem) (Payrun, error)
	GetByID(ctx context.Context, id string, companyID string) (Payrun, error)
	// GetByIDForUpdate locks the payrun row for the duration of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (Payrun, error)
	// LockPeriod takes a transaction-scoped lock serializing concurrent
	// generations for one period scope.
	LockPeriod(ctx context.Context, companyID string, payrunType PayrunType, allowanceID *string, month, year int) error
	// ExistsForPeriod reports whether a non-rolled-back payrun of the given
	// type (and allowance, for allowance runs) already covers the period.
	ExistsForPeriod(ctx context.Context, companyID string, payrunType PayrunType, allowanceID *string, month, year int) (bool, error)
	List(ctx context.Context, companyID string, filter PayrunFilter) ([]Payrun, int64, error)
	GetItems(ctx context.Context, payrunID string) ([]PayrunItem, error)
	MarkApproved(ctx context.Context, id string, approvedBy string, approvedAt time.Time) error
	MarkPaid(ctx context.Context, id string, paidBy string, paidAt time.Time) error
	MarkArchived(ctx context.Context, id string) error
	// Delete removes the payrun and its items (pending rollback only).
	Delete(ctx context.Context, id string, companyID string) error
}
