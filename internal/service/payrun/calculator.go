package payrun

import (
	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/compensation"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/loan"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/payrun"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/salarystructure"
)

var oneHundred = decimal.NewFromInt(100)

// buildSalaryItem turns one employee's resolved compensation, plus the loan
// installment due this period if any, into an immutable payrun item. The
// resolved line amounts are snapshotted into the detail maps so later
// catalog edits never change this item.
func buildSalaryItem(resolved salarystructure.ResolvedCompensation, installment *loan.RepaymentInstallment) (payrun.PayrunItem, error) {
	item := payrun.PayrunItem{
		EmployeeID:       resolved.EmployeeID,
		BaseSalary:       resolved.BaseSalary,
		TotalAllowances:  resolved.TotalAllowances(),
		TotalDeductions:  resolved.TotalDeductions(),
		GrossPay:         resolved.GrossPay(),
		LoanDeduction:    decimal.Zero,
		AllowancesDetail: make(map[string]decimal.Decimal),
		DeductionsDetail: make(map[string]decimal.Decimal),
	}

	for _, line := range resolved.Lines {
		if line.Amount.IsNegative() {
			item.DeductionsDetail[line.Name] = line.Amount.Neg()
		} else {
			item.AllowancesDetail[line.Name] = line.Amount
		}
	}

	if installment != nil {
		installmentID := installment.ID
		loanID := installment.LoanApplicationID
		item.LoanInstallmentID = &installmentID
		item.LoanApplicationID = &loanID
		item.LoanDeduction = installment.ExpectedAmount
		item.DeductionsDetail["Loan repayment"] = installment.ExpectedAmount
	}

	item.NetPay = item.GrossPay.Sub(item.TotalDeductions).Sub(item.LoanDeduction)
	if item.NetPay.IsNegative() {
		return payrun.PayrunItem{}, payrun.ErrNegativeNetPay
	}

	return item, nil
}

// buildAllowanceItem builds an item for an allowance-only payrun: just that
// component's amount against the employee's base salary, plus the companion
// tax deduction when the allowance is taxable.
func buildAllowanceItem(employeeID string, baseSalary decimal.Decimal, component compensation.Component) (payrun.PayrunItem, error) {
	amount := component.Calculation.Resolve(baseSalary)

	item := payrun.PayrunItem{
		EmployeeID:      employeeID,
		BaseSalary:      decimal.Zero,
		TotalAllowances: amount,
		TotalDeductions: decimal.Zero,
		GrossPay:        amount,
		LoanDeduction:   decimal.Zero,
		AllowancesDetail: map[string]decimal.Decimal{
			component.Name: amount,
		},
		DeductionsDetail: make(map[string]decimal.Decimal),
	}

	if component.Taxable && component.TaxPercent.IsPositive() {
		tax := amount.Mul(component.TaxPercent).Div(oneHundred).Round(2)
		item.TotalDeductions = tax
		item.DeductionsDetail[component.Name+" tax"] = tax
	}

	item.NetPay = item.GrossPay.Sub(item.TotalDeductions)
	if item.NetPay.IsNegative() {
		return payrun.PayrunItem{}, payrun.ErrNegativeNetPay
	}

	return item, nil
}

// totalsOf derives the payrun header totals from its items. Loan deductions
// count toward total deductions, so total net pay always equals total gross
// pay minus total deductions.
func totalsOf(items []payrun.PayrunItem) (gross, deductions, net decimal.Decimal) {
	gross, deductions, net = decimal.Zero, decimal.Zero, decimal.Zero
	for _, item := range items {
		gross = gross.Add(item.GrossPay)
		deductions = deductions.Add(item.TotalDeductions).Add(item.LoanDeduction)
		net = net.Add(item.NetPay)
	}
	return gross, deductions, net
}
