package compensation

import (
	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/pkg/validator"
)

type CreateComponentRequest struct {
	Name            string           `json:"name"`
	Kind            string           `json:"kind"` // "allowance" or "deduction"
	CalculationType string           `json:"calculation_type"` // "fixed" or "percentage"
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Percent         *decimal.Decimal `json:"percent,omitempty"`
	Taxable         *bool            `json:"taxable,omitempty"`
	TaxPercent      *decimal.Decimal `json:"tax_percent,omitempty"`
	Recurrence      string           `json:"recurrence"`
}

func (r *CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if _, err := ParseComponentKind(r.Kind); err != nil {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'allowance' or 'deduction'"})
	}
	switch r.CalculationType {
	case "fixed":
		if r.Amount == nil || r.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "amount", Message: "is required and must be non-negative for fixed components"})
		}
		if r.Percent != nil {
			errs = append(errs, validator.ValidationError{Field: "percent", Message: "must not be set for fixed components"})
		}
	case "percentage":
		if r.Percent == nil || r.Percent.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "percent", Message: "is required and must be non-negative for percentage components"})
		}
		if r.Amount != nil {
			errs = append(errs, validator.ValidationError{Field: "amount", Message: "must not be set for percentage components"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "calculation_type", Message: "must be 'fixed' or 'percentage'"})
	}
	if r.Recurrence != "" {
		if _, err := ParseRecurrence(r.Recurrence); err != nil {
			errs = append(errs, validator.ValidationError{Field: "recurrence", Message: "is not a known recurrence class"})
		}
	}
	if r.TaxPercent != nil {
		if r.Kind == string(KindDeduction) {
			errs = append(errs, validator.ValidationError{Field: "tax_percent", Message: "only applies to allowances"})
		}
		if r.TaxPercent.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "tax_percent", Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateComponentRequest struct {
	ID         string
	Name       *string          `json:"name,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percent    *decimal.Decimal `json:"percent,omitempty"`
	Taxable    *bool            `json:"taxable,omitempty"`
	TaxPercent *decimal.Decimal `json:"tax_percent,omitempty"`
	IsActive   *bool            `json:"is_active,omitempty"`
}

type ComponentResponse struct {
	ID              string           `json:"id"`
	CompanyID       string           `json:"company_id"`
	Name            string           `json:"name"`
	Kind            string           `json:"kind"`
	CalculationType string           `json:"calculation_type"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Percent         *decimal.Decimal `json:"percent,omitempty"`
	Taxable         bool             `json:"taxable"`
	TaxPercent      decimal.Decimal  `json:"tax_percent"`
	Recurrence      string           `json:"recurrence"`
	IsActive        bool             `json:"is_active"`
}

// ToResponse maps a Component to its API shape.
func ToResponse(c Component) ComponentResponse {
	resp := ComponentResponse{
		ID:              c.ID,
		CompanyID:       c.CompanyID,
		Name:            c.Name,
		Kind:            string(c.Kind),
		CalculationType: c.Calculation.Kind(),
		Taxable:         c.Taxable,
		TaxPercent:      c.TaxPercent,
		Recurrence:      string(c.Recurrence),
		IsActive:        c.IsActive,
	}
	if c.Calculation.IsFixed() {
		amount := c.Calculation.FixedAmount()
		resp.Amount = &amount
	} else {
		percent := c.Calculation.Percent()
		resp.Percent = &percent
	}
	return resp
}
