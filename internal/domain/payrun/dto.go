package payrun

import (
	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/pkg/validator"
)

type GeneratePayrunRequest struct {
	Type        string  `json:"type"` // "salary" or "allowance"
	AllowanceID *string `json:"allowance_id,omitempty"`
	PeriodMonth int     `json:"period_month"`
	PeriodYear  int     `json:"period_year"`
}

func (r *GeneratePayrunRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParsePayrunType(r.Type); err != nil {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'salary' or 'allowance'"})
	}
	if r.Type == string(TypeAllowance) && (r.AllowanceID == nil || validator.IsEmpty(*r.AllowanceID)) {
		errs = append(errs, validator.ValidationError{Field: "allowance_id", Message: "is required for allowance payruns"})
	}
	if r.Type == string(TypeSalary) && r.AllowanceID != nil {
		errs = append(errs, validator.ValidationError{Field: "allowance_id", Message: "must not be set for salary payruns"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2020 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrunItemResponse struct {
	ID                string                     `json:"id"`
	EmployeeID        string                     `json:"employee_id"`
	EmployeeName      *string                    `json:"employee_name,omitempty"`
	EmployeeCode      *string                    `json:"employee_code,omitempty"`
	BaseSalary        decimal.Decimal            `json:"base_salary"`
	TotalAllowances   decimal.Decimal            `json:"total_allowances"`
	TotalDeductions   decimal.Decimal            `json:"total_deductions"`
	GrossPay          decimal.Decimal            `json:"gross_pay"`
	LoanInstallmentID *string                    `json:"loan_installment_id,omitempty"`
	LoanDeduction     decimal.Decimal            `json:"loan_deduction"`
	NetPay            decimal.Decimal            `json:"net_pay"`
	AllowancesDetail  map[string]decimal.Decimal `json:"allowances_detail,omitempty"`
	DeductionsDetail  map[string]decimal.Decimal `json:"deductions_detail,omitempty"`
}

type PayrunResponse struct {
	ID              string               `json:"id"`
	Type            string               `json:"type"`
	AllowanceID     *string              `json:"allowance_id,omitempty"`
	AllowanceName   *string              `json:"allowance_name,omitempty"`
	PeriodMonth     int                  `json:"period_month"`
	PeriodYear      int                  `json:"period_year"`
	TotalEmployees  int                  `json:"total_employees"`
	TotalGrossPay   decimal.Decimal      `json:"total_gross_pay"`
	TotalDeductions decimal.Decimal      `json:"total_deductions"`
	TotalNetPay     decimal.Decimal      `json:"total_net_pay"`
	Status          string               `json:"status"`
	GeneratedBy     string               `json:"generated_by"`
	ApprovedBy      *string              `json:"approved_by,omitempty"`
	ApprovedAt      *string              `json:"approved_at,omitempty"`
	PaidBy          *string              `json:"paid_by,omitempty"`
	PaidAt          *string              `json:"paid_at,omitempty"`
	CreatedAt       string               `json:"created_at"`
	Items           []PayrunItemResponse `json:"items,omitempty"`
}

type PayrunFilter struct {
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	Type        *string `json:"type,omitempty"`
	Status      *string `json:"status,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

type ListPayrunResponse struct {
	Data       []PayrunResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}
