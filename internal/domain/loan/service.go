package loan

import "context"

type LoanService interface {
	ListTypes(ctx context.Context) ([]LoanTypeResponse, error)
	GetType(ctx context.Context, id string) (LoanTypeResponse, error)
	// CalculateEligibility computes the remaining borrowing headroom for an
	// employee against one loan type. Pure read.
	CalculateEligibility(ctx context.Context, employeeID string, loanTypeID string) (EligibilityResponse, error)
	Apply(ctx context.Context, req ApplyLoanRequest) (LoanApplicationResponse, error)
	Review(ctx context.Context, req ReviewLoanRequest) (LoanApplicationResponse, error)
	Disburse(ctx context.Context, req DisburseLoanRequest) (LoanApplicationResponse, error)
	Cancel(ctx context.Context, req CancelLoanRequest) (LoanApplicationResponse, error)
	// SettleInstallment records an out-of-band repayment of one installment.
	SettleInstallment(ctx context.Context, loanID string, installmentNumber int) (LoanApplicationResponse, error)
	List(ctx context.Context, filter LoanFilter) (ListLoanResponse, error)
	GetByID(ctx context.Context, id string) (LoanApplicationResponse, error)
	GetSchedule(ctx context.Context, loanID string) ([]InstallmentResponse, error)
	GetHistory(ctx context.Context, loanID string) ([]HistoryEntryResponse, error)
}
