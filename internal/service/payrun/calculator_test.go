package payrun

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/compensation"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/loan"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/payrun"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/salarystructure"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func line(name string, kind compensation.ComponentKind, amount string) salarystructure.CompensationLine {
	id := name
	return salarystructure.CompensationLine{
		ComponentID: &id,
		Name:        name,
		Kind:        kind,
		Amount:      dec(amount),
	}
}

func TestBuildSalaryItem(t *testing.T) {
	resolved := salarystructure.ResolvedCompensation{
		EmployeeID:  "emp-1",
		PeriodMonth: 5,
		PeriodYear:  2026,
		BaseSalary:  dec("8000000"),
		Lines: []salarystructure.CompensationLine{
			line("Transport", compensation.KindAllowance, "500000"),
			line("Pension", compensation.KindDeduction, "-160000"),
		},
	}

	item, err := buildSalaryItem(resolved, nil)
	require.NoError(t, err)

	assert.True(t, item.GrossPay.Equal(dec("8500000")))
	assert.True(t, item.TotalDeductions.Equal(dec("160000")))
	assert.True(t, item.NetPay.Equal(dec("8340000")))
	assert.True(t, item.LoanDeduction.IsZero())
	assert.Nil(t, item.LoanInstallmentID)
	assert.True(t, item.AllowancesDetail["Transport"].Equal(dec("500000")))
	assert.True(t, item.DeductionsDetail["Pension"].Equal(dec("160000")))
}

func TestBuildSalaryItem_LoanInstallmentDue(t *testing.T) {
	resolved := salarystructure.ResolvedCompensation{
		EmployeeID: "emp-1",
		BaseSalary: dec("6000000"),
	}
	installment := &loan.RepaymentInstallment{
		ID:                "inst-1",
		LoanApplicationID: "loan-1",
		Number:            3,
		ExpectedAmount:    dec("437500"),
		Status:            loan.InstallmentPending,
	}

	item, err := buildSalaryItem(resolved, installment)
	require.NoError(t, err)

	require.NotNil(t, item.LoanInstallmentID)
	assert.Equal(t, "inst-1", *item.LoanInstallmentID)
	require.NotNil(t, item.LoanApplicationID)
	assert.Equal(t, "loan-1", *item.LoanApplicationID)
	assert.True(t, item.LoanDeduction.Equal(dec("437500")))
	assert.True(t, item.NetPay.Equal(dec("5562500")))
	assert.True(t, item.DeductionsDetail["Loan repayment"].Equal(dec("437500")))
}

func TestBuildSalaryItem_NegativeNetPayRejected(t *testing.T) {
	resolved := salarystructure.ResolvedCompensation{
		EmployeeID: "emp-1",
		BaseSalary: dec("1000000"),
		Lines: []salarystructure.CompensationLine{
			line("Court garnishment", compensation.KindDeduction, "-1200000"),
		},
	}

	_, err := buildSalaryItem(resolved, nil)
	assert.ErrorIs(t, err, payrun.ErrNegativeNetPay)
}

func TestBuildSalaryItem_LoanPushesNetPayNegative(t *testing.T) {
	resolved := salarystructure.ResolvedCompensation{
		EmployeeID: "emp-1",
		BaseSalary: dec("500000"),
	}
	installment := &loan.RepaymentInstallment{
		ID:                "inst-1",
		LoanApplicationID: "loan-1",
		ExpectedAmount:    dec("600000"),
	}

	_, err := buildSalaryItem(resolved, installment)
	assert.ErrorIs(t, err, payrun.ErrNegativeNetPay)
}

func TestBuildAllowanceItem(t *testing.T) {
	component := compensation.Component{
		ID:          "c1",
		Name:        "Religious Holiday Bonus",
		Kind:        compensation.KindAllowance,
		Calculation: compensation.Percentage(dec("100")),
		Recurrence:  compensation.RecurrenceAnnual,
		IsActive:    true,
	}

	item, err := buildAllowanceItem("emp-1", dec("7000000"), component)
	require.NoError(t, err)

	assert.True(t, item.BaseSalary.IsZero())
	assert.True(t, item.GrossPay.Equal(dec("7000000")))
	assert.True(t, item.NetPay.Equal(dec("7000000")))
	assert.True(t, item.AllowancesDetail["Religious Holiday Bonus"].Equal(dec("7000000")))
	assert.Empty(t, item.DeductionsDetail)
}

func TestBuildAllowanceItem_TaxableAllowance(t *testing.T) {
	component := compensation.Component{
		ID:          "c1",
		Name:        "Performance Bonus",
		Kind:        compensation.KindAllowance,
		Calculation: compensation.Fixed(dec("2000000")),
		Taxable:     true,
		TaxPercent:  dec("5"),
		Recurrence:  compensation.RecurrenceOneTime,
		IsActive:    true,
	}

	item, err := buildAllowanceItem("emp-1", dec("7000000"), component)
	require.NoError(t, err)

	assert.True(t, item.GrossPay.Equal(dec("2000000")))
	assert.True(t, item.TotalDeductions.Equal(dec("100000")))
	assert.True(t, item.NetPay.Equal(dec("1900000")))
	assert.True(t, item.DeductionsDetail["Performance Bonus tax"].Equal(dec("100000")))
}

func TestTotalsOf_MatchItemSums(t *testing.T) {
	items := []payrun.PayrunItem{
		{
			GrossPay:        dec("8500000"),
			TotalDeductions: dec("160000"),
			LoanDeduction:   dec("437500"),
			NetPay:          dec("7902500"),
		},
		{
			GrossPay:        dec("6000000"),
			TotalDeductions: dec("0"),
			LoanDeduction:   dec("0"),
			NetPay:          dec("6000000"),
		},
	}

	gross, deductions, net := totalsOf(items)
	assert.True(t, gross.Equal(dec("14500000")))
	assert.True(t, deductions.Equal(dec("597500")))
	assert.True(t, net.Equal(dec("13902500")))
	assert.True(t, net.Equal(gross.Sub(deductions)), "net must equal gross minus deductions")
}
