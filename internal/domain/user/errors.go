package user

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or missing token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrHRAccessRequired       = errors.New("hr access required")
	ErrFinanceAccessRequired  = errors.New("finance access required")
)
