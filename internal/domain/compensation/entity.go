package compensation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ComponentKind enum
type ComponentKind string

const (
	KindAllowance ComponentKind = "allowance"
	KindDeduction ComponentKind = "deduction"
)

// ParseComponentKind rejects anything outside the closed set.
func ParseComponentKind(s string) (ComponentKind, error) {
	switch ComponentKind(s) {
	case KindAllowance, KindDeduction:
		return ComponentKind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidComponentKind, s)
}

// Recurrence enum
type Recurrence string

const (
	RecurrenceOneTime   Recurrence = "one_time"
	RecurrenceMonthly   Recurrence = "monthly"
	RecurrenceQuarterly Recurrence = "quarterly"
	RecurrenceBiAnnual  Recurrence = "bi_annual"
	RecurrenceAnnual    Recurrence = "annual"
	RecurrenceCustom    Recurrence = "custom"
)

func ParseRecurrence(s string) (Recurrence, error) {
	switch Recurrence(s) {
	case RecurrenceOneTime, RecurrenceMonthly, RecurrenceQuarterly,
		RecurrenceBiAnnual, RecurrenceAnnual, RecurrenceCustom:
		return Recurrence(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRecurrence, s)
}

// ResolvesInMonth reports whether a component of this recurrence class is
// part of the given payroll month. Monthly, one-time and custom components
// resolve every period; the longer classes resolve at period boundaries.
func (r Recurrence) ResolvesInMonth(month int) bool {
	switch r {
	case RecurrenceQuarterly:
		return month%3 == 0
	case RecurrenceBiAnnual:
		return month == 6 || month == 12
	case RecurrenceAnnual:
		return month == 12
	default:
		return true
	}
}

const (
	calcFixed      = "fixed"
	calcPercentage = "percentage"
)

// CalculationMode is the fixed-amount / percentage-of-base variant. The two
// fields are mutually exclusive by construction: use Fixed or Percentage.
type CalculationMode struct {
	kind    string
	amount  decimal.Decimal
	percent decimal.Decimal
}

func Fixed(amount decimal.Decimal) CalculationMode {
	return CalculationMode{kind: calcFixed, amount: amount}
}

func Percentage(percent decimal.Decimal) CalculationMode {
	return CalculationMode{kind: calcPercentage, percent: percent}
}

// ParseCalculationMode rebuilds the variant from its persisted columns.
// Exactly one of amount/percent must be set; anything else is corrupt data.
func ParseCalculationMode(kind string, amount, percent *decimal.Decimal) (CalculationMode, error) {
	switch kind {
	case calcFixed:
		if amount == nil || percent != nil {
			return CalculationMode{}, ErrInvalidCalculationMode
		}
		return Fixed(*amount), nil
	case calcPercentage:
		if percent == nil || amount != nil {
			return CalculationMode{}, ErrInvalidCalculationMode
		}
		return Percentage(*percent), nil
	}
	return CalculationMode{}, fmt.Errorf("%w: %q", ErrInvalidCalculationMode, kind)
}

func (m CalculationMode) Kind() string { return m.kind }

func (m CalculationMode) IsFixed() bool { return m.kind == calcFixed }

// FixedAmount returns the stored amount for fixed components.
func (m CalculationMode) FixedAmount() decimal.Decimal { return m.amount }

// Percent returns the stored percentage for percentage components.
func (m CalculationMode) Percent() decimal.Decimal { return m.percent }

// Resolve computes the component amount against a base salary.
func (m CalculationMode) Resolve(base decimal.Decimal) decimal.Decimal {
	if m.kind == calcPercentage {
		return base.Mul(m.percent).Div(decimal.NewFromInt(100)).Round(2)
	}
	return m.amount
}

// Component is a reusable allowance or deduction definition. Finalized
// payrun items snapshot the resolved amounts, so catalog edits never
// rewrite payroll history.
type Component struct {
	ID          string
	CompanyID   string
	Name        string
	Kind        ComponentKind
	Calculation CalculationMode
	Taxable     bool
	TaxPercent  decimal.Decimal
	Recurrence  Recurrence
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
