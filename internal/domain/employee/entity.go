package employee

import "time"

// Employee is the engine-facing slice of the company directory. The
// surrounding application owns employee CRUD; the payroll and loan engines
// only read from it.
type Employee struct {
	ID                    string
	UserID                *string
	CompanyID             string
	EmployeeCode          string
	FullName              string
	EmploymentStatus      EmploymentStatus
	BankName              string
	BankAccountHolderName *string
	BankAccountNumber     string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// BankDetails is the payout destination kept on file for an employee.
type BankDetails struct {
	BankName          string
	AccountHolderName string
	AccountNumber     string
}

// BankDetails returns the on-file bank account, or nil when none is recorded.
func (e *Employee) BankDetails() *BankDetails {
	if e.BankName == "" || e.BankAccountNumber == "" {
		return nil
	}
	holder := e.FullName
	if e.BankAccountHolderName != nil && *e.BankAccountHolderName != "" {
		holder = *e.BankAccountHolderName
	}
	return &BankDetails{
		BankName:          e.BankName,
		AccountHolderName: holder,
		AccountNumber:     e.BankAccountNumber,
	}
}
