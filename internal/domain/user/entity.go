package user

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, catalog management
	RoleHR       Role = "hr"       // Reviews loans, approves payruns
	RoleFinance  Role = "finance"  // Disburses loans, completes payruns
	RoleEmployee Role = "employee" // Regular employee
)

// IsHR checks if the role can perform HR review actions
func (r Role) IsHR() bool {
	return r == RoleHR || r == RoleAdmin
}

// IsFinance checks if the role can perform finance actions
func (r Role) IsFinance() bool {
	return r == RoleFinance || r == RoleAdmin
}
