package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanType - company loan product catalog, read-only from the engine's side
type LoanType struct {
	ID                string
	CompanyID         string
	Name              string
	InterestRate      decimal.Decimal // percent per year, flat rate
	MaxTenureMonths   int
	MaxSalaryMultiple decimal.Decimal
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LoanStatus enum
type LoanStatus string

const (
	StatusPending    LoanStatus = "pending"
	StatusHRApproved LoanStatus = "hr_approved"
	StatusHRRejected LoanStatus = "hr_rejected"
	StatusActive     LoanStatus = "active"
	StatusCompleted  LoanStatus = "completed"
	StatusCancelled  LoanStatus = "cancelled"
)

func ParseLoanStatus(s string) (LoanStatus, error) {
	switch LoanStatus(s) {
	case StatusPending, StatusHRApproved, StatusHRRejected,
		StatusActive, StatusCompleted, StatusCancelled:
		return LoanStatus(s), nil
	}
	return "", ErrInvalidLoanStatus
}

// IsOpen reports whether the loan still counts against the employee's
// exposure for its loan type.
func (s LoanStatus) IsOpen() bool {
	return s == StatusPending || s == StatusHRApproved || s == StatusActive
}

var transitions = map[LoanStatus][]LoanStatus{
	StatusPending:    {StatusHRApproved, StatusHRRejected, StatusCancelled},
	StatusHRApproved: {StatusActive, StatusCancelled},
	StatusHRRejected: {},
	StatusActive:     {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether moving from one loan status to another is
// allowed.
func CanTransition(from, to LoanStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// LoanApplication - one loan from application through repayment
type LoanApplication struct {
	ID               string
	CompanyID        string
	ReferenceNumber  string // LN-YYYY-NNNNN, unique per company
	EmployeeID       string
	LoanTypeID       string
	RequestedAmount  decimal.Decimal
	ApprovedAmount   *decimal.Decimal
	TenureMonths     int
	MonthlyDeduction *decimal.Decimal
	TotalInterest    *decimal.Decimal
	Reason           string
	Status           LoanStatus
	ReviewedBy       *string
	ReviewedAt       *time.Time
	ReviewRemarks    *string
	DisbursedBy      *string
	DisbursedAt      *time.Time
	TotalRepaid      decimal.Decimal
	RemainingBalance decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
	LoanTypeName *string
}

// InstallmentStatus enum
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

func ParseInstallmentStatus(s string) (InstallmentStatus, error) {
	switch InstallmentStatus(s) {
	case InstallmentPending, InstallmentPaid, InstallmentOverdue:
		return InstallmentStatus(s), nil
	}
	return "", ErrInvalidInstallmentStatus
}

// RepaymentInstallment - one scheduled repayment; the schedule sums exactly
// to principal + total interest.
type RepaymentInstallment struct {
	ID                string
	LoanApplicationID string
	Number            int
	DueMonth          int
	DueYear           int
	DueDate           time.Time
	ExpectedAmount    decimal.Decimal
	PaidAmount        *decimal.Decimal
	BalanceAfter      *decimal.Decimal
	Status            InstallmentStatus
	PaidAt            *time.Time
	CreatedAt         time.Time

	// Joined fields
	EmployeeID *string
}

// HistoryEntry - append-only audit trail per loan
type HistoryEntry struct {
	ID                string
	LoanApplicationID string
	Action            string
	Description       string
	PerformedBy       string
	CreatedAt         time.Time
}

// History actions
const (
	ActionApplied   = "applied"
	ActionApproved  = "approved"
	ActionRejected  = "rejected"
	ActionDisbursed = "disbursed"
	ActionCancelled = "cancelled"
	ActionRepayment = "repayment"
	ActionCompleted = "completed"
)
