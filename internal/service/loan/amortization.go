package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/loan"
)

var (
	twelveHundred = decimal.NewFromInt(1200)
)

// AmortizationPlan is the flat-rate repayment breakdown for an approved loan.
type AmortizationPlan struct {
	Principal        decimal.Decimal
	TotalInterest    decimal.Decimal
	TotalRepayment   decimal.Decimal
	MonthlyDeduction decimal.Decimal
	Installments     []loan.RepaymentInstallment
}

// BuildAmortizationPlan computes the flat-rate schedule:
//
//	totalInterest  = principal × rate × tenure / 1200
//	totalRepayment = principal + totalInterest
//	monthly        = totalRepayment / tenure, rounded to 2dp
//
// The final installment absorbs the rounding remainder so the schedule sums
// to totalRepayment exactly. Due periods start at (firstDueMonth,
// firstDueYear) and advance month by month; each due date is the first of
// its month. Deterministic: never reads the clock.
func BuildAmortizationPlan(principal decimal.Decimal, annualRate decimal.Decimal, tenureMonths int, firstDueMonth int, firstDueYear int) AmortizationPlan {
	tenure := decimal.NewFromInt(int64(tenureMonths))

	totalInterest := principal.Mul(annualRate).Mul(tenure).Div(twelveHundred).Round(2)
	totalRepayment := principal.Add(totalInterest)
	monthly := totalRepayment.Div(tenure).Round(2)

	installments := make([]loan.RepaymentInstallment, 0, tenureMonths)
	month, year := firstDueMonth, firstDueYear
	for n := 1; n <= tenureMonths; n++ {
		amount := monthly
		if n == tenureMonths {
			amount = totalRepayment.Sub(monthly.Mul(decimal.NewFromInt(int64(tenureMonths - 1))))
		}
		installments = append(installments, loan.RepaymentInstallment{
			Number:         n,
			DueMonth:       month,
			DueYear:        year,
			DueDate:        time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
			ExpectedAmount: amount,
			Status:         loan.InstallmentPending,
		})
		month++
		if month > 12 {
			month = 1
			year++
		}
	}

	return AmortizationPlan{
		Principal:        principal,
		TotalInterest:    totalInterest,
		TotalRepayment:   totalRepayment,
		MonthlyDeduction: monthly,
		Installments:     installments,
	}
}
