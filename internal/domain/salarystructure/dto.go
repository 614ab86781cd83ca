package salarystructure

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/compensation"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/validator"
)

type CreateStructureRequest struct {
	EmployeeID   string          `json:"employee_id"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	ComponentIDs []string        `json:"component_ids"`
}

func (r *CreateStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStructureRequest struct {
	EmployeeID   string
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	ComponentIDs *[]string        `json:"component_ids,omitempty"`
}

func (r *UpdateStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StructureComponentResponse struct {
	ComponentID     string           `json:"component_id"`
	Name            string           `json:"name"`
	Kind            string           `json:"kind"`
	CalculationType string           `json:"calculation_type"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Percent         *decimal.Decimal `json:"percent,omitempty"`
	Recurrence      string           `json:"recurrence"`
}

type StructureResponse struct {
	ID         string                       `json:"id"`
	EmployeeID string                       `json:"employee_id"`
	BaseSalary decimal.Decimal              `json:"base_salary"`
	Components []StructureComponentResponse `json:"components"`
	CreatedAt  time.Time                    `json:"created_at"`
	UpdatedAt  time.Time                    `json:"updated_at"`
}

// ToStructureResponse maps a structure and its attached components to the API
// shape, preserving attachment order.
func ToStructureResponse(s SalaryStructure, components []compensation.Component) StructureResponse {
	resp := StructureResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		BaseSalary: s.BaseSalary,
		Components: make([]StructureComponentResponse, 0, len(components)),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	for _, c := range components {
		item := StructureComponentResponse{
			ComponentID:     c.ID,
			Name:            c.Name,
			Kind:            string(c.Kind),
			CalculationType: c.Calculation.Kind(),
			Recurrence:      string(c.Recurrence),
		}
		if c.Calculation.IsFixed() {
			amount := c.Calculation.FixedAmount()
			item.Amount = &amount
		} else {
			percent := c.Calculation.Percent()
			item.Percent = &percent
		}
		resp.Components = append(resp.Components, item)
	}
	return resp
}

type CompensationLineResponse struct {
	ComponentID *string         `json:"component_id"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
}

type ResolvedCompensationResponse struct {
	EmployeeID      string                     `json:"employee_id"`
	PeriodMonth     int                        `json:"period_month"`
	PeriodYear      int                        `json:"period_year"`
	BaseSalary      decimal.Decimal            `json:"base_salary"`
	Lines           []CompensationLineResponse `json:"lines"`
	GrossPay        decimal.Decimal            `json:"gross_pay"`
	TotalDeductions decimal.Decimal            `json:"total_deductions"`
	NetPay          decimal.Decimal            `json:"net_pay"`
}

func ToResolvedResponse(rc ResolvedCompensation) ResolvedCompensationResponse {
	lines := make([]CompensationLineResponse, 0, len(rc.Lines))
	for _, line := range rc.Lines {
		lines = append(lines, CompensationLineResponse{
			ComponentID: line.ComponentID,
			Name:        line.Name,
			Kind:        string(line.Kind),
			Amount:      line.Amount,
		})
	}
	return ResolvedCompensationResponse{
		EmployeeID:      rc.EmployeeID,
		PeriodMonth:     rc.PeriodMonth,
		PeriodYear:      rc.PeriodYear,
		BaseSalary:      rc.BaseSalary,
		Lines:           lines,
		GrossPay:        rc.GrossPay(),
		TotalDeductions: rc.TotalDeductions(),
		NetPay:          rc.NetPay(),
	}
}
