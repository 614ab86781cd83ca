package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LoanRepository defines data access for loan types, applications,
// installments and history. All company-facing methods take companyID to
// prevent cross-company data access.
type LoanRepository interface {
	// Loan types
	GetTypeByID(ctx context.Context, id string, companyID string) (LoanType, error)
	GetTypesByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]LoanType, error)

	// Applications
	// LockApplicationScope takes a transaction-scoped lock serializing
	// concurrent applications for one employee and loan type.
	LockApplicationScope(ctx context.Context, companyID string, employeeID string, loanTypeID string) error
	CreateApplication(ctx context.Context, app LoanApplication) (LoanApplication, error)
	GetApplicationByID(ctx context.Context, id string, companyID string) (LoanApplication, error)
	// GetApplicationByIDForUpdate locks the application row for the duration
	// of the surrounding transaction.
	GetApplicationByIDForUpdate(ctx context.Context, id string, companyID string) (LoanApplication, error)
	ListApplications(ctx context.Context, companyID string, filter LoanFilter) ([]LoanApplication, int64, error)
	// GetOpenApplications returns pending, hr_approved and active loans of
	// one type for one employee.
	GetOpenApplications(ctx context.Context, companyID string, employeeID string, loanTypeID string) ([]LoanApplication, error)
	UpdateApplicationStatus(ctx context.Context, app LoanApplication) error
	// ApplyRepayment decrements remaining_balance and increments total_repaid.
	ApplyRepayment(ctx context.Context, loanID string, amount decimal.Decimal) (LoanApplication, error)
	// NextReferenceNumber issues the next LN-YYYY-NNNNN for the company.
	NextReferenceNumber(ctx context.Context, companyID string, year int) (string, error)

	// Installments
	CreateInstallments(ctx context.Context, installments []RepaymentInstallment) error
	GetInstallments(ctx context.Context, loanID string) ([]RepaymentInstallment, error)
	GetInstallmentByNumber(ctx context.Context, loanID string, number int) (RepaymentInstallment, error)
	// GetInstallmentForUpdate locks the installment row.
	GetInstallmentForUpdate(ctx context.Context, id string) (RepaymentInstallment, error)
	// GetDueInstallmentsForPeriod returns the unpaid installments of active
	// loans due in the given period, with EmployeeID joined in, for payrun
	// generation.
	GetDueInstallmentsForPeriod(ctx context.Context, companyID string, month, year int) ([]RepaymentInstallment, error)
	MarkInstallmentPaid(ctx context.Context, id string, paidAmount decimal.Decimal, balanceAfter decimal.Decimal, paidAt time.Time) error
	// MarkOverdueInstallments flips pending installments past the cutoff to
	// overdue and returns how many rows changed.
	MarkOverdueInstallments(ctx context.Context, cutoff time.Time) (int64, error)

	// History
	AddHistory(ctx context.Context, entry HistoryEntry) error
	GetHistory(ctx context.Context, loanID string) ([]HistoryEntry, error)
}
