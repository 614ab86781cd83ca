package loan

import "errors"

var (
	ErrLoanTypeNotFound         = errors.New("loan type not found")
	ErrLoanNotFound             = errors.New("loan application not found")
	ErrInstallmentNotFound      = errors.New("repayment installment not found")
	ErrLoanAlreadyOpen          = errors.New("employee already has an open loan of this type")
	ErrExceedsEligibility       = errors.New("requested amount exceeds loan eligibility")
	ErrExceedsMaxTenure         = errors.New("tenure exceeds the loan type maximum")
	ErrLoanNotPending           = errors.New("loan application is not in pending status")
	ErrLoanNotApproved          = errors.New("loan application is not in hr_approved status")
	ErrLoanNotActive            = errors.New("loan application is not in active status")
	ErrLoanNotCancellable       = errors.New("loan application can no longer be cancelled")
	ErrInvalidApprovedAmount    = errors.New("approved amount must be positive and not exceed the requested amount")
	ErrRemarksRequired          = errors.New("review remarks are required to reject a loan")
	ErrMissingBankDetails       = errors.New("employee has no bank details on file")
	ErrInstallmentAlreadyPaid   = errors.New("installment already paid")
	ErrInvalidLoanStatus        = errors.New("invalid loan status")
	ErrInvalidInstallmentStatus = errors.New("invalid installment status")
)
