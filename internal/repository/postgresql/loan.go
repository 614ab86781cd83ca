package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/loan"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/database"
)

type loanRepository struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) loan.LoanRepository {
	return &loanRepository{db: db}
}

// ========== LOAN TYPES ==========

const loanTypeColumns = `
	id, company_id, name, interest_rate, max_tenure_months, max_salary_multiple,
	is_active, created_at, updated_at
`

func scanLoanType(row pgx.Row) (loan.LoanType, error) {
	var t loan.LoanType
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.InterestRate, &t.MaxTenureMonths, &t.MaxSalaryMultiple,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *loanRepository) GetTypeByID(ctx context.Context, id string, companyID string) (loan.LoanType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + loanTypeColumns + `
		FROM loan_types
		WHERE id = $1 AND company_id = $2
	`

	t, err := scanLoanType(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.LoanType{}, loan.ErrLoanTypeNotFound
		}
		return loan.LoanType{}, fmt.Errorf("failed to get loan type: %w", err)
	}

	return t, nil
}

func (r *loanRepository) GetTypesByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]loan.LoanType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + loanTypeColumns + `
		FROM loan_types
		WHERE company_id = $1
	`
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan types: %w", err)
	}
	defer rows.Close()

	var types []loan.LoanType
	for rows.Next() {
		t, err := scanLoanType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan type: %w", err)
		}
		types = append(types, t)
	}

	return types, rows.Err()
}

// ========== APPLICATIONS ==========

const loanApplicationColumns = `
	la.id, la.company_id, la.reference_number, la.employee_id, la.loan_type_id,
	la.requested_amount, la.approved_amount, la.tenure_months, la.monthly_deduction,
	la.total_interest, la.reason, la.status, la.reviewed_by, la.reviewed_at,
	la.review_remarks, la.disbursed_by, la.disbursed_at, la.total_repaid,
	la.remaining_balance, la.created_at, la.updated_at,
	e.full_name, e.employee_code, lt.name AS loan_type_name
`

const loanApplicationFrom = `
	FROM loan_applications la
	JOIN employees e ON e.id = la.employee_id
	JOIN loan_types lt ON lt.id = la.loan_type_id
`

func scanLoanApplication(row pgx.Row) (loan.LoanApplication, error) {
	var a loan.LoanApplication
	var status string
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.ReferenceNumber, &a.EmployeeID, &a.LoanTypeID,
		&a.RequestedAmount, &a.ApprovedAmount, &a.TenureMonths, &a.MonthlyDeduction,
		&a.TotalInterest, &a.Reason, &status, &a.ReviewedBy, &a.ReviewedAt,
		&a.ReviewRemarks, &a.DisbursedBy, &a.DisbursedAt, &a.TotalRepaid,
		&a.RemainingBalance, &a.CreatedAt, &a.UpdatedAt,
		&a.EmployeeName, &a.EmployeeCode, &a.LoanTypeName,
	)
	if err != nil {
		return loan.LoanApplication{}, err
	}
	if a.Status, err = loan.ParseLoanStatus(status); err != nil {
		return loan.LoanApplication{}, fmt.Errorf("loan %s: %w", a.ID, err)
	}
	return a, nil
}

func (r *loanRepository) CreateApplication(ctx context.Context, app loan.LoanApplication) (loan.LoanApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO loan_applications (
			company_id, reference_number, employee_id, loan_type_id,
			requested_amount, tenure_months, reason, status,
			total_repaid, remaining_balance
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		app.CompanyID, app.ReferenceNumber, app.EmployeeID, app.LoanTypeID,
		app.RequestedAmount, app.TenureMonths, app.Reason, app.Status,
	).Scan(&id)
	if err != nil {
		return loan.LoanApplication{}, fmt.Errorf("failed to create loan application: %w", err)
	}

	return r.GetApplicationByID(ctx, id, app.CompanyID)
}

func (r *loanRepository) GetApplicationByID(ctx context.Context, id string, companyID string) (loan.LoanApplication, error) {
	return r.getApplication(ctx, id, companyID, false)
}

func (r *loanRepository) GetApplicationByIDForUpdate(ctx context.Context, id string, companyID string) (loan.LoanApplication, error) {
	return r.getApplication(ctx, id, companyID, true)
}

func (r *loanRepository) getApplication(ctx context.Context, id string, companyID string, forUpdate bool) (loan.LoanApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + loanApplicationColumns + loanApplicationFrom + ` WHERE la.id = $1 AND la.company_id = $2`
	if forUpdate {
		query += " FOR UPDATE OF la"
	}

	a, err := scanLoanApplication(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.LoanApplication{}, loan.ErrLoanNotFound
		}
		return loan.LoanApplication{}, fmt.Errorf("failed to get loan application: %w", err)
	}

	return a, nil
}

func (r *loanRepository) ListApplications(ctx context.Context, companyID string, filter loan.LoanFilter) ([]loan.LoanApplication, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := loanApplicationFrom + ` WHERE la.company_id = $1`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND la.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND la.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.LoanTypeID != nil {
		baseQuery += fmt.Sprintf(" AND la.loan_type_id = $%d", argIdx)
		args = append(args, *filter.LoanTypeID)
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count loan applications: %w", err)
	}

	query := "SELECT " + loanApplicationColumns + baseQuery + " ORDER BY la.created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
		argIdx++
		if filter.Page > 1 {
			query += fmt.Sprintf(" OFFSET $%d", argIdx)
			args = append(args, (filter.Page-1)*filter.Limit)
		}
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list loan applications: %w", err)
	}
	defer rows.Close()

	var apps []loan.LoanApplication
	for rows.Next() {
		a, err := scanLoanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan loan application: %w", err)
		}
		apps = append(apps, a)
	}

	return apps, totalCount, rows.Err()
}

func (r *loanRepository) GetOpenApplications(ctx context.Context, companyID string, employeeID string, loanTypeID string) ([]loan.LoanApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + loanApplicationColumns + loanApplicationFrom + `
		WHERE la.company_id = $1 AND la.employee_id = $2 AND la.loan_type_id = $3
		  AND la.status IN ('pending', 'hr_approved', 'active')
		ORDER BY la.created_at
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, loanTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open loans: %w", err)
	}
	defer rows.Close()

	var apps []loan.LoanApplication
	for rows.Next() {
		a, err := scanLoanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan application: %w", err)
		}
		apps = append(apps, a)
	}

	return apps, rows.Err()
}

func (r *loanRepository) UpdateApplicationStatus(ctx context.Context, app loan.LoanApplication) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loan_applications
		SET status = $2, approved_amount = $3, monthly_deduction = $4, total_interest = $5,
			reviewed_by = $6, reviewed_at = $7, review_remarks = $8,
			disbursed_by = $9, disbursed_at = $10, remaining_balance = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		app.ID, app.Status, app.ApprovedAmount, app.MonthlyDeduction, app.TotalInterest,
		app.ReviewedBy, app.ReviewedAt, app.ReviewRemarks,
		app.DisbursedBy, app.DisbursedAt, app.RemainingBalance,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.ErrLoanNotFound
		}
		return fmt.Errorf("failed to update loan application: %w", err)
	}

	return nil
}

func (r *loanRepository) ApplyRepayment(ctx context.Context, loanID string, amount decimal.Decimal) (loan.LoanApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loan_applications
		SET total_repaid = total_repaid + $2,
			remaining_balance = remaining_balance - $2,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, company_id
	`

	var id, companyID string
	err := q.QueryRow(ctx, query, loanID, amount).Scan(&id, &companyID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.LoanApplication{}, loan.ErrLoanNotFound
		}
		return loan.LoanApplication{}, fmt.Errorf("failed to apply repayment: %w", err)
	}

	return r.GetApplicationByID(ctx, id, companyID)
}

// LockApplicationScope serializes concurrent applications for one
// employee and loan type for the duration of the transaction, so the
// open-loan check cannot race a concurrent insert.
func (r *loanRepository) LockApplicationScope(ctx context.Context, companyID, employeeID, loanTypeID string) error {
	q := GetQuerier(ctx, r.db)
	return advisoryXactLock(ctx, q, companyID+"/loan/"+employeeID+"/"+loanTypeID)
}

func (r *loanRepository) NextReferenceNumber(ctx context.Context, companyID string, year int) (string, error) {
	q := GetQuerier(ctx, r.db)

	// The advisory lock serializes issuers per company and year until the
	// surrounding transaction ends; the bare COUNT would hand the same
	// number to two concurrent read-committed transactions.
	if err := advisoryXactLock(ctx, q, fmt.Sprintf("%s/loan-ref/%d", companyID, year)); err != nil {
		return "", err
	}

	query := `
		SELECT COUNT(*) + 1
		FROM loan_applications
		WHERE company_id = $1 AND reference_number LIKE $2
	`

	var next int
	prefix := fmt.Sprintf("LN-%d-%%", year)
	if err := q.QueryRow(ctx, query, companyID, prefix).Scan(&next); err != nil {
		return "", fmt.Errorf("failed to generate reference number: %w", err)
	}

	return fmt.Sprintf("LN-%d-%05d", year, next), nil
}

// ========== INSTALLMENTS ==========

const installmentColumns = `
	ri.id, ri.loan_application_id, ri.number, ri.due_month, ri.due_year, ri.due_date,
	ri.expected_amount, ri.paid_amount, ri.balance_after, ri.status, ri.paid_at,
	ri.created_at
`

func scanInstallment(row pgx.Row, withEmployee bool) (loan.RepaymentInstallment, error) {
	var i loan.RepaymentInstallment
	var status string
	dest := []interface{}{
		&i.ID, &i.LoanApplicationID, &i.Number, &i.DueMonth, &i.DueYear, &i.DueDate,
		&i.ExpectedAmount, &i.PaidAmount, &i.BalanceAfter, &status, &i.PaidAt,
		&i.CreatedAt,
	}
	if withEmployee {
		dest = append(dest, &i.EmployeeID)
	}
	if err := row.Scan(dest...); err != nil {
		return loan.RepaymentInstallment{}, err
	}
	var err error
	if i.Status, err = loan.ParseInstallmentStatus(status); err != nil {
		return loan.RepaymentInstallment{}, fmt.Errorf("installment %s: %w", i.ID, err)
	}
	return i, nil
}

func (r *loanRepository) CreateInstallments(ctx context.Context, installments []loan.RepaymentInstallment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO repayment_installments (
			loan_application_id, number, due_month, due_year, due_date,
			expected_amount, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, inst := range installments {
		_, err := q.Exec(ctx, query,
			inst.LoanApplicationID, inst.Number, inst.DueMonth, inst.DueYear, inst.DueDate,
			inst.ExpectedAmount, inst.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to create installment: %w", err)
		}
	}

	return nil
}

func (r *loanRepository) GetInstallments(ctx context.Context, loanID string) ([]loan.RepaymentInstallment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + installmentColumns + `
		FROM repayment_installments ri
		WHERE ri.loan_application_id = $1
		ORDER BY ri.number
	`

	rows, err := q.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get installments: %w", err)
	}
	defer rows.Close()

	var installments []loan.RepaymentInstallment
	for rows.Next() {
		i, err := scanInstallment(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, i)
	}

	return installments, rows.Err()
}

func (r *loanRepository) GetInstallmentByNumber(ctx context.Context, loanID string, number int) (loan.RepaymentInstallment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + installmentColumns + `
		FROM repayment_installments ri
		WHERE ri.loan_application_id = $1 AND ri.number = $2
	`

	i, err := scanInstallment(q.QueryRow(ctx, query, loanID, number), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.RepaymentInstallment{}, loan.ErrInstallmentNotFound
		}
		return loan.RepaymentInstallment{}, fmt.Errorf("failed to get installment: %w", err)
	}

	return i, nil
}

func (r *loanRepository) GetInstallmentForUpdate(ctx context.Context, id string) (loan.RepaymentInstallment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + installmentColumns + `
		FROM repayment_installments ri
		WHERE ri.id = $1
		FOR UPDATE
	`

	i, err := scanInstallment(q.QueryRow(ctx, query, id), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.RepaymentInstallment{}, loan.ErrInstallmentNotFound
		}
		return loan.RepaymentInstallment{}, fmt.Errorf("failed to lock installment: %w", err)
	}

	return i, nil
}

func (r *loanRepository) GetDueInstallmentsForPeriod(ctx context.Context, companyID string, month, year int) ([]loan.RepaymentInstallment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + installmentColumns + `, la.employee_id
		FROM repayment_installments ri
		JOIN loan_applications la ON la.id = ri.loan_application_id
		WHERE la.company_id = $1 AND la.status = 'active'
		  AND ri.due_month = $2 AND ri.due_year = $3
		  AND ri.status IN ('pending', 'overdue')
		ORDER BY ri.due_date
	`

	rows, err := q.Query(ctx, query, companyID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get due installments: %w", err)
	}
	defer rows.Close()

	var installments []loan.RepaymentInstallment
	for rows.Next() {
		i, err := scanInstallment(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, i)
	}

	return installments, rows.Err()
}

func (r *loanRepository) MarkInstallmentPaid(ctx context.Context, id string, paidAmount decimal.Decimal, balanceAfter decimal.Decimal, paidAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE repayment_installments
		SET status = 'paid', paid_amount = $2, balance_after = $3, paid_at = $4
		WHERE id = $1 AND status IN ('pending', 'overdue')
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, paidAmount, balanceAfter, paidAt).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.ErrInstallmentAlreadyPaid
		}
		return fmt.Errorf("failed to mark installment paid: %w", err)
	}

	return nil
}

func (r *loanRepository) MarkOverdueInstallments(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE repayment_installments ri
		SET status = 'overdue'
		FROM loan_applications la
		WHERE ri.loan_application_id = la.id
		  AND la.status = 'active'
		  AND ri.status = 'pending'
		  AND ri.due_date < $1
	`

	tag, err := q.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue installments: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ========== HISTORY ==========

func (r *loanRepository) AddHistory(ctx context.Context, entry loan.HistoryEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO loan_history (loan_application_id, action, description, performed_by)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, entry.LoanApplicationID, entry.Action, entry.Description, entry.PerformedBy); err != nil {
		return fmt.Errorf("failed to add loan history: %w", err)
	}

	return nil
}

func (r *loanRepository) GetHistory(ctx context.Context, loanID string) ([]loan.HistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, loan_application_id, action, description, performed_by, created_at
		FROM loan_history
		WHERE loan_application_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan history: %w", err)
	}
	defer rows.Close()

	var entries []loan.HistoryEntry
	for rows.Next() {
		var e loan.HistoryEntry
		if err := rows.Scan(&e.ID, &e.LoanApplicationID, &e.Action, &e.Description, &e.PerformedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan history: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
