package loan

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuildAmortizationPlan_FlatRate(t *testing.T) {
	// 100,000 at 10%/yr over 12 months: 10,000 interest, 110,000 total,
	// 9,166.67 monthly with the last installment absorbing the remainder.
	plan := BuildAmortizationPlan(dec("100000"), dec("10"), 12, 1, 2026)

	assert.True(t, plan.TotalInterest.Equal(dec("10000")), "got %s", plan.TotalInterest)
	assert.True(t, plan.TotalRepayment.Equal(dec("110000")))
	assert.True(t, plan.MonthlyDeduction.Equal(dec("9166.67")))
	require.Len(t, plan.Installments, 12)

	for _, inst := range plan.Installments[:11] {
		assert.True(t, inst.ExpectedAmount.Equal(dec("9166.67")))
	}
	assert.True(t, plan.Installments[11].ExpectedAmount.Equal(dec("9166.63")),
		"last installment should absorb rounding, got %s", plan.Installments[11].ExpectedAmount)
}

func TestBuildAmortizationPlan_SumsExactly(t *testing.T) {
	cases := []struct {
		principal string
		rate      string
		tenure    int
	}{
		{"100000", "10", 12},
		{"5000000", "12", 24},
		{"1000000", "0", 6},
		{"333333", "7.5", 7},
		{"123456.78", "9.9", 36},
		{"50000", "15", 1},
		{"999999.99", "3.33", 13},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s_%s_%d", c.principal, c.rate, c.tenure), func(t *testing.T) {
			plan := BuildAmortizationPlan(dec(c.principal), dec(c.rate), c.tenure, 1, 2026)

			require.Len(t, plan.Installments, c.tenure)
			sum := decimal.Zero
			for _, inst := range plan.Installments {
				assert.True(t, inst.ExpectedAmount.IsPositive())
				sum = sum.Add(inst.ExpectedAmount)
			}
			assert.True(t, sum.Equal(plan.TotalRepayment),
				"schedule sums to %s, want %s", sum, plan.TotalRepayment)
			assert.True(t, plan.TotalRepayment.Equal(dec(c.principal).Add(plan.TotalInterest)))
		})
	}
}

func TestBuildAmortizationPlan_DuePeriodsAdvanceAcrossYearEnd(t *testing.T) {
	plan := BuildAmortizationPlan(dec("600000"), dec("6"), 4, 11, 2026)

	require.Len(t, plan.Installments, 4)
	type period struct{ month, year int }
	want := []period{{11, 2026}, {12, 2026}, {1, 2027}, {2, 2027}}
	for i, inst := range plan.Installments {
		assert.Equal(t, i+1, inst.Number)
		assert.Equal(t, want[i].month, inst.DueMonth)
		assert.Equal(t, want[i].year, inst.DueYear)
		assert.Equal(t, 1, inst.DueDate.Day())
	}
}

func TestBuildAmortizationPlan_ZeroInterest(t *testing.T) {
	plan := BuildAmortizationPlan(dec("1200000"), dec("0"), 12, 1, 2026)

	assert.True(t, plan.TotalInterest.IsZero())
	assert.True(t, plan.MonthlyDeduction.Equal(dec("100000")))
	assert.True(t, plan.Installments[11].ExpectedAmount.Equal(dec("100000")))
}
