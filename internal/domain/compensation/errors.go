package compensation

import "errors"

var (
	ErrComponentNotFound      = errors.New("compensation component not found")
	ErrComponentNameExists    = errors.New("compensation component name already exists")
	ErrComponentInUse         = errors.New("compensation component is attached to salary structures")
	ErrInvalidComponentKind   = errors.New("invalid compensation component kind")
	ErrInvalidRecurrence      = errors.New("invalid recurrence class")
	ErrInvalidCalculationMode = errors.New("invalid calculation mode")
	ErrTaxOnDeduction         = errors.New("tax percentage only applies to allowances")
)
