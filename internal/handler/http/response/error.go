package response

import (
	"errors"
	"net/http"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/compensation"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/employee"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/loan"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/notification"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/payrun"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/salarystructure"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/user"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Access errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrFinanceAccessRequired):
		Forbidden(w, err.Error())

	// Compensation catalog errors
	case errors.Is(err, compensation.ErrComponentNotFound):
		NotFound(w, "Compensation component not found")
	case errors.Is(err, compensation.ErrComponentNameExists):
		Conflict(w, "Compensation component name already exists")
	case errors.Is(err, compensation.ErrComponentInUse):
		Conflict(w, "Component is attached to salary structures")
	case errors.Is(err, compensation.ErrInvalidComponentKind),
		errors.Is(err, compensation.ErrInvalidRecurrence),
		errors.Is(err, compensation.ErrInvalidCalculationMode),
		errors.Is(err, compensation.ErrTaxOnDeduction):
		UnprocessableEntity(w, err.Error())

	// Salary structure errors
	case errors.Is(err, salarystructure.ErrStructureNotFound),
		errors.Is(err, salarystructure.ErrStructureNotConfigured):
		NotFound(w, err.Error())
	case errors.Is(err, salarystructure.ErrStructureExists):
		Conflict(w, "Employee already has a salary structure")
	case errors.Is(err, salarystructure.ErrComponentAlreadyLinked):
		Conflict(w, "Component already attached to this structure")
	case errors.Is(err, salarystructure.ErrComponentNotLinked):
		NotFound(w, "Component not attached to this structure")

	// Payrun errors
	case errors.Is(err, payrun.ErrPayrunNotFound):
		NotFound(w, "Payrun not found")
	case errors.Is(err, payrun.ErrDuplicatePeriod):
		Conflict(w, "Payrun already exists for this period")
	case errors.Is(err, payrun.ErrPayrunNotPending),
		errors.Is(err, payrun.ErrPayrunNotApproved),
		errors.Is(err, payrun.ErrPayrunNotPaid):
		Conflict(w, err.Error())
	case errors.Is(err, payrun.ErrNegativeNetPay),
		errors.Is(err, payrun.ErrNoEligibleEmployees),
		errors.Is(err, payrun.ErrInvalidPayrunType),
		errors.Is(err, payrun.ErrInvalidPayrunStatus),
		errors.Is(err, payrun.ErrAllowanceRequired),
		errors.Is(err, payrun.ErrNotAnAllowance):
		UnprocessableEntity(w, err.Error())

	// Loan errors
	case errors.Is(err, loan.ErrLoanTypeNotFound):
		NotFound(w, "Loan type not found")
	case errors.Is(err, loan.ErrLoanNotFound):
		NotFound(w, "Loan application not found")
	case errors.Is(err, loan.ErrInstallmentNotFound):
		NotFound(w, "Repayment installment not found")
	case errors.Is(err, loan.ErrLoanAlreadyOpen),
		errors.Is(err, loan.ErrLoanNotPending),
		errors.Is(err, loan.ErrLoanNotApproved),
		errors.Is(err, loan.ErrLoanNotActive),
		errors.Is(err, loan.ErrLoanNotCancellable),
		errors.Is(err, loan.ErrInstallmentAlreadyPaid):
		Conflict(w, err.Error())
	case errors.Is(err, loan.ErrExceedsEligibility),
		errors.Is(err, loan.ErrExceedsMaxTenure),
		errors.Is(err, loan.ErrInvalidApprovedAmount),
		errors.Is(err, loan.ErrRemarksRequired),
		errors.Is(err, loan.ErrInvalidLoanStatus),
		errors.Is(err, loan.ErrInvalidInstallmentStatus):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, loan.ErrMissingBankDetails):
		PreconditionFailed(w, "Employee has no bank details on file")

	// Collaborator errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
