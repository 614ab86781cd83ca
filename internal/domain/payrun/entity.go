package payrun

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrunType enum
type PayrunType string

const (
	TypeSalary    PayrunType = "salary"
	TypeAllowance PayrunType = "allowance"
)

func ParsePayrunType(s string) (PayrunType, error) {
	switch PayrunType(s) {
	case TypeSalary, TypeAllowance:
		return PayrunType(s), nil
	}
	return "", ErrInvalidPayrunType
}

// PayrunStatus enum
type PayrunStatus string

const (
	StatusPending  PayrunStatus = "pending"
	StatusApproved PayrunStatus = "approved"
	StatusPaid     PayrunStatus = "paid"
	StatusArchived PayrunStatus = "archived"
)

func ParsePayrunStatus(s string) (PayrunStatus, error) {
	switch PayrunStatus(s) {
	case StatusPending, StatusApproved, StatusPaid, StatusArchived:
		return PayrunStatus(s), nil
	}
	return "", ErrInvalidPayrunStatus
}

// transitions is the full state machine: a payrun only ever moves forward,
// and nothing leaves paid except archiving.
var transitions = map[PayrunStatus][]PayrunStatus{
	StatusPending:  {StatusApproved},
	StatusApproved: {StatusPaid},
	StatusPaid:     {StatusArchived},
	StatusArchived: {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to PayrunStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Payrun - one generated batch for a company and period
type Payrun struct {
	ID              string
	CompanyID       string
	Type            PayrunType
	AllowanceID     *string // set iff Type == allowance
	PeriodMonth     int
	PeriodYear      int
	TotalEmployees  int
	TotalGrossPay   decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNetPay     decimal.Decimal
	Status          PayrunStatus
	GeneratedBy     string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	PaidBy          *string
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	AllowanceName *string
}

// PayrunItem - per-employee result, immutable after generation
type PayrunItem struct {
	ID                string
	PayrunID          string
	EmployeeID        string
	BaseSalary        decimal.Decimal
	TotalAllowances   decimal.Decimal
	TotalDeductions   decimal.Decimal
	GrossPay          decimal.Decimal
	LoanInstallmentID *string
	LoanApplicationID *string
	LoanDeduction     decimal.Decimal
	NetPay            decimal.Decimal
	AllowancesDetail  map[string]decimal.Decimal
	DeductionsDetail  map[string]decimal.Decimal
	CreatedAt         time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
