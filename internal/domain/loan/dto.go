package loan

import (
	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/pkg/validator"
)

type LoanTypeResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	MaxTenureMonths   int             `json:"max_tenure_months"`
	MaxSalaryMultiple decimal.Decimal `json:"max_salary_multiple"`
	IsActive          bool            `json:"is_active"`
}

type EligibilityResponse struct {
	EmployeeID      string          `json:"employee_id"`
	LoanTypeID      string          `json:"loan_type_id"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	MaxAmount       decimal.Decimal `json:"max_amount"`
	OpenExposure    decimal.Decimal `json:"open_exposure"`
	EligibleAmount  decimal.Decimal `json:"eligible_amount"`
	MaxTenureMonths int             `json:"max_tenure_months"`
}

type ApplyLoanRequest struct {
	LoanTypeID      string          `json:"loan_type_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	TenureMonths    int             `json:"tenure_months"`
	Reason          string          `json:"reason"`
}

func (r *ApplyLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LoanTypeID) {
		errs = append(errs, validator.ValidationError{Field: "loan_type_id", Message: "is required"})
	}
	if !r.RequestedAmount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "requested_amount", Message: "must be positive"})
	}
	if r.TenureMonths < 1 {
		errs = append(errs, validator.ValidationError{Field: "tenure_months", Message: "must be at least 1"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewLoanRequest struct {
	ID             string
	Action         string           `json:"action"` // "approve" or "reject"
	ApprovedAmount *decimal.Decimal `json:"approved_amount,omitempty"`
	Remarks        string           `json:"remarks"`
}

func (r *ReviewLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Action != "approve" && r.Action != "reject" {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "must be 'approve' or 'reject'"})
	}
	if r.Action == "approve" && r.ApprovedAmount == nil {
		errs = append(errs, validator.ValidationError{Field: "approved_amount", Message: "is required to approve"})
	}
	if r.Action == "reject" && validator.IsEmpty(r.Remarks) {
		errs = append(errs, validator.ValidationError{Field: "remarks", Message: "are required to reject"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DisburseLoanRequest struct {
	ID      string
	Remarks string `json:"remarks"`
	// FirstDueMonth/FirstDueYear pin the schedule start. Zero values mean
	// "the month after disbursement".
	FirstDueMonth int `json:"first_due_month,omitempty"`
	FirstDueYear  int `json:"first_due_year,omitempty"`
}

func (r *DisburseLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.FirstDueMonth != 0) != (r.FirstDueYear != 0) {
		errs = append(errs, validator.ValidationError{Field: "first_due_month", Message: "month and year must be set together"})
	}
	if r.FirstDueMonth != 0 && (r.FirstDueMonth < 1 || r.FirstDueMonth > 12) {
		errs = append(errs, validator.ValidationError{Field: "first_due_month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CancelLoanRequest struct {
	ID     string
	Reason string `json:"reason"`
}

func (r *CancelLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type InstallmentResponse struct {
	ID             string           `json:"id"`
	Number         int              `json:"number"`
	DueMonth       int              `json:"due_month"`
	DueYear        int              `json:"due_year"`
	DueDate        string           `json:"due_date"`
	ExpectedAmount decimal.Decimal  `json:"expected_amount"`
	PaidAmount     *decimal.Decimal `json:"paid_amount,omitempty"`
	BalanceAfter   *decimal.Decimal `json:"balance_after,omitempty"`
	Status         string           `json:"status"`
	PaidAt         *string          `json:"paid_at,omitempty"`
}

type HistoryEntryResponse struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	PerformedBy string `json:"performed_by"`
	CreatedAt   string `json:"created_at"`
}

type LoanApplicationResponse struct {
	ID               string                 `json:"id"`
	ReferenceNumber  string                 `json:"reference_number"`
	EmployeeID       string                 `json:"employee_id"`
	EmployeeName     *string                `json:"employee_name,omitempty"`
	EmployeeCode     *string                `json:"employee_code,omitempty"`
	LoanTypeID       string                 `json:"loan_type_id"`
	LoanTypeName     *string                `json:"loan_type_name,omitempty"`
	RequestedAmount  decimal.Decimal        `json:"requested_amount"`
	ApprovedAmount   *decimal.Decimal       `json:"approved_amount,omitempty"`
	TenureMonths     int                    `json:"tenure_months"`
	MonthlyDeduction *decimal.Decimal       `json:"monthly_deduction,omitempty"`
	TotalInterest    *decimal.Decimal       `json:"total_interest,omitempty"`
	Reason           string                 `json:"reason"`
	Status           string                 `json:"status"`
	ReviewedBy       *string                `json:"reviewed_by,omitempty"`
	ReviewedAt       *string                `json:"reviewed_at,omitempty"`
	ReviewRemarks    *string                `json:"review_remarks,omitempty"`
	DisbursedBy      *string                `json:"disbursed_by,omitempty"`
	DisbursedAt      *string                `json:"disbursed_at,omitempty"`
	TotalRepaid      decimal.Decimal        `json:"total_repaid"`
	RemainingBalance decimal.Decimal        `json:"remaining_balance"`
	CreatedAt        string                 `json:"created_at"`
	Schedule         []InstallmentResponse  `json:"schedule,omitempty"`
	History          []HistoryEntryResponse `json:"history,omitempty"`
}

type LoanFilter struct {
	Status     *string `json:"status,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	LoanTypeID *string `json:"loan_type_id,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type ListLoanResponse struct {
	Data       []LoanApplicationResponse `json:"data"`
	TotalCount int64                     `json:"total_count"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
}
