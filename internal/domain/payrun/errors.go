package payrun

import "errors"

var (
	ErrPayrunNotFound      = errors.New("payrun not found")
	ErrDuplicatePeriod     = errors.New("payrun already exists for this period")
	ErrNegativeNetPay      = errors.New("generation would produce a negative net pay")
	ErrNoEligibleEmployees = errors.New("no eligible employees for this payrun")
	ErrPayrunNotPending    = errors.New("payrun is not in pending status")
	ErrPayrunNotApproved   = errors.New("payrun is not in approved status")
	ErrPayrunNotPaid       = errors.New("payrun is not in paid status")
	ErrInvalidPayrunType   = errors.New("invalid payrun type")
	ErrInvalidPayrunStatus = errors.New("invalid payrun status")
	ErrAllowanceRequired   = errors.New("allowance payruns require an allowance component")
	ErrNotAnAllowance      = errors.New("component is not an active allowance")
)
