package salarystructure

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/compensation"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolveLines_FixedAndPercentage(t *testing.T) {
	base := dec("5000000")
	components := []compensation.Component{
		{
			ID:          "c1",
			Name:        "Transport Allowance",
			Kind:        compensation.KindAllowance,
			Calculation: compensation.Fixed(dec("500000")),
			Recurrence:  compensation.RecurrenceMonthly,
			IsActive:    true,
		},
		{
			ID:          "c2",
			Name:        "Pension Fund",
			Kind:        compensation.KindDeduction,
			Calculation: compensation.Percentage(dec("2")),
			Recurrence:  compensation.RecurrenceMonthly,
			IsActive:    true,
		},
	}

	lines := ResolveLines(base, components, 1)
	require.Len(t, lines, 2)

	assert.Equal(t, "Transport Allowance", lines[0].Name)
	assert.True(t, lines[0].Amount.Equal(dec("500000")))

	assert.Equal(t, "Pension Fund", lines[1].Name)
	assert.True(t, lines[1].Amount.Equal(dec("-100000")), "2%% of 5,000,000 negated, got %s", lines[1].Amount)
}

func TestResolveLines_TaxableAllowanceEmitsCompanionLine(t *testing.T) {
	base := dec("4000000")
	components := []compensation.Component{
		{
			ID:          "c1",
			Name:        "Meal Allowance",
			Kind:        compensation.KindAllowance,
			Calculation: compensation.Fixed(dec("600000")),
			Taxable:     true,
			TaxPercent:  dec("5"),
			Recurrence:  compensation.RecurrenceMonthly,
			IsActive:    true,
		},
	}

	lines := ResolveLines(base, components, 3)
	require.Len(t, lines, 2)

	assert.Equal(t, "Meal Allowance", lines[0].Name)
	assert.True(t, lines[0].Amount.Equal(dec("600000")))

	assert.Equal(t, "Meal Allowance tax", lines[1].Name)
	assert.Equal(t, compensation.KindDeduction, lines[1].Kind)
	assert.True(t, lines[1].Amount.Equal(dec("-30000")))
}

func TestResolveLines_RecurrenceGating(t *testing.T) {
	base := dec("3000000")
	component := func(id string, recurrence compensation.Recurrence) compensation.Component {
		return compensation.Component{
			ID:          id,
			Name:        id,
			Kind:        compensation.KindAllowance,
			Calculation: compensation.Fixed(dec("100000")),
			Recurrence:  recurrence,
			IsActive:    true,
		}
	}
	components := []compensation.Component{
		component("monthly", compensation.RecurrenceMonthly),
		component("quarterly", compensation.RecurrenceQuarterly),
		component("bi_annual", compensation.RecurrenceBiAnnual),
		component("annual", compensation.RecurrenceAnnual),
	}

	names := func(month int) []string {
		var out []string
		for _, line := range ResolveLines(base, components, month) {
			out = append(out, line.Name)
		}
		return out
	}

	assert.Equal(t, []string{"monthly"}, names(1))
	assert.Equal(t, []string{"monthly", "quarterly"}, names(3))
	assert.Equal(t, []string{"monthly", "quarterly", "bi_annual"}, names(6))
	assert.Equal(t, []string{"monthly", "quarterly"}, names(9))
	assert.Equal(t, []string{"monthly", "quarterly", "bi_annual", "annual"}, names(12))
}

func TestResolveLines_SkipsInactive(t *testing.T) {
	base := dec("3000000")
	components := []compensation.Component{
		{
			ID:          "c1",
			Name:        "Old Allowance",
			Kind:        compensation.KindAllowance,
			Calculation: compensation.Fixed(dec("100000")),
			Recurrence:  compensation.RecurrenceMonthly,
			IsActive:    false,
		},
	}

	assert.Empty(t, ResolveLines(base, components, 1))
}

func TestResolveLines_PercentageRoundsToTwoPlaces(t *testing.T) {
	base := dec("3333333")
	components := []compensation.Component{
		{
			ID:          "c1",
			Name:        "Housing",
			Kind:        compensation.KindAllowance,
			Calculation: compensation.Percentage(dec("7.5")),
			Recurrence:  compensation.RecurrenceMonthly,
			IsActive:    true,
		},
	}

	lines := ResolveLines(base, components, 1)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Amount.Equal(dec("249999.98")), "got %s", lines[0].Amount)
}
