package salarystructure

import (
	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/compensation"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/salarystructure"
)

var oneHundred = decimal.NewFromInt(100)

// ResolveLines turns the attached components into signed pay lines for one
// period: allowances positive, deductions negative, in attachment order.
// Inactive components and components whose recurrence does not land on the
// period month are skipped. A taxable allowance is followed immediately by
// its companion tax deduction line.
func ResolveLines(baseSalary decimal.Decimal, components []compensation.Component, month int) []salarystructure.CompensationLine {
	lines := make([]salarystructure.CompensationLine, 0, len(components))
	for _, c := range components {
		if !c.IsActive || !c.Recurrence.ResolvesInMonth(month) {
			continue
		}

		componentID := c.ID
		amount := c.Calculation.Resolve(baseSalary)

		switch c.Kind {
		case compensation.KindAllowance:
			lines = append(lines, salarystructure.CompensationLine{
				ComponentID: &componentID,
				Name:        c.Name,
				Kind:        compensation.KindAllowance,
				Amount:      amount,
			})
			if c.Taxable && c.TaxPercent.IsPositive() {
				tax := amount.Mul(c.TaxPercent).Div(oneHundred).Round(2)
				lines = append(lines, salarystructure.CompensationLine{
					ComponentID: &componentID,
					Name:        c.Name + " tax",
					Kind:        compensation.KindDeduction,
					Amount:      tax.Neg(),
				})
			}
		case compensation.KindDeduction:
			lines = append(lines, salarystructure.CompensationLine{
				ComponentID: &componentID,
				Name:        c.Name,
				Kind:        compensation.KindDeduction,
				Amount:      amount.Neg(),
			})
		}
	}
	return lines
}
