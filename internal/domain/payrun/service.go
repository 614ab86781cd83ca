package payrun

import "context"

type PayrunService interface {
	Generate(ctx context.Context, req GeneratePayrunRequest) (PayrunResponse, error)
	GetByID(ctx context.Context, id string) (PayrunResponse, error)
	List(ctx context.Context, filter PayrunFilter) (ListPayrunResponse, error)
	Approve(ctx context.Context, id string) (PayrunResponse, error)
	// Rollback deletes a pending payrun and its items.
	Rollback(ctx context.Context, id string) error
	// Complete marks an approved payrun paid and settles every loan
	// installment its items carry, all in one transaction.
	Complete(ctx context.Context, id string) (PayrunResponse, error)
	Archive(ctx context.Context, id string) (PayrunResponse, error)
}
