package salarystructure

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/compensation"
)

// SalaryStructure is the per-employee base salary plus the ordered set of
// attached compensation components. Maintained by HR/Finance; the payrun
// engine only reads it.
type SalaryStructure struct {
	ID         string
	CompanyID  string
	EmployeeID string
	BaseSalary decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CompensationLine is one signed pay line resolved for a period: allowances
// positive, deductions negative.
type CompensationLine struct {
	ComponentID *string
	Name        string
	Kind        compensation.ComponentKind
	Amount      decimal.Decimal
}

// ResolvedCompensation is the resolver output for one employee and period.
type ResolvedCompensation struct {
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int
	BaseSalary  decimal.Decimal
	Lines       []CompensationLine
}

// TotalAllowances sums the positive lines.
func (rc ResolvedCompensation) TotalAllowances() decimal.Decimal {
	total := decimal.Zero
	for _, line := range rc.Lines {
		if line.Amount.IsPositive() {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// TotalDeductions sums the negative lines, returned as a positive amount.
func (rc ResolvedCompensation) TotalDeductions() decimal.Decimal {
	total := decimal.Zero
	for _, line := range rc.Lines {
		if line.Amount.IsNegative() {
			total = total.Sub(line.Amount)
		}
	}
	return total
}

// GrossPay is base salary plus all allowance lines.
func (rc ResolvedCompensation) GrossPay() decimal.Decimal {
	return rc.BaseSalary.Add(rc.TotalAllowances())
}

// NetPay is gross pay minus all deduction lines.
func (rc ResolvedCompensation) NetPay() decimal.Decimal {
	return rc.GrossPay().Sub(rc.TotalDeductions())
}
