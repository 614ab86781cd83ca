package notification

import (
	"time"
)

// NotificationType identifies what kind of event a notification reports.
type NotificationType string

// Payroll and loan lifecycle events that produce in-app notifications.
const (
	TypeLoanApproved    NotificationType = "loan_approved"
	TypeLoanRejected    NotificationType = "loan_rejected"
	TypeLoanDisbursed   NotificationType = "loan_disbursed"
	TypeLoanCompleted   NotificationType = "loan_completed"
	TypePayrunGenerated NotificationType = "payrun_generated"
	TypePayrunApproved  NotificationType = "payrun_approved"
	TypePayrunPaid      NotificationType = "payrun_paid"
)

// Notification is one in-app message for a recipient. Data carries
// type-specific references such as the loan application or payrun id.
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
