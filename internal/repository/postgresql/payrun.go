package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/payrun"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/database"
)

type payrunRepository struct {
	db *database.DB
}

func NewPayrunRepository(db *database.DB) payrun.PayrunRepository {
	return &payrunRepository{db: db}
}

const payrunColumns = `
	p.id, p.company_id, p.type, p.allowance_id, p.period_month, p.period_year,
	p.total_employees, p.total_gross_pay, p.total_deductions, p.total_net_pay,
	p.status, p.generated_by, p.approved_by, p.approved_at, p.paid_by, p.paid_at,
	p.created_at, p.updated_at, cc.name AS allowance_name
`

const payrunFrom = `
	FROM payruns p
	LEFT JOIN compensation_components cc ON cc.id = p.allowance_id
`

func scanPayrun(row pgx.Row) (payrun.Payrun, error) {
	var p payrun.Payrun
	var status, payrunType string
	err := row.Scan(
		&p.ID, &p.CompanyID, &payrunType, &p.AllowanceID, &p.PeriodMonth, &p.PeriodYear,
		&p.TotalEmployees, &p.TotalGrossPay, &p.TotalDeductions, &p.TotalNetPay,
		&status, &p.GeneratedBy, &p.ApprovedBy, &p.ApprovedAt, &p.PaidBy, &p.PaidAt,
		&p.CreatedAt, &p.UpdatedAt, &p.AllowanceName,
	)
	if err != nil {
		return payrun.Payrun{}, err
	}
	if p.Type, err = payrun.ParsePayrunType(payrunType); err != nil {
		return payrun.Payrun{}, fmt.Errorf("payrun %s: %w", p.ID, err)
	}
	if p.Status, err = payrun.ParsePayrunStatus(status); err != nil {
		return payrun.Payrun{}, fmt.Errorf("payrun %s: %w", p.ID, err)
	}
	return p, nil
}

func (r *payrunRepository) Create(ctx context.Context, p payrun.Payrun, items []payrun.PayrunItem) (payrun.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payruns (
			company_id, type, allowance_id, period_month, period_year,
			total_employees, total_gross_pay, total_deductions, total_net_pay,
			status, generated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	created := p
	err := q.QueryRow(ctx, query,
		p.CompanyID, p.Type, p.AllowanceID, p.PeriodMonth, p.PeriodYear,
		p.TotalEmployees, p.TotalGrossPay, p.TotalDeductions, p.TotalNetPay,
		p.Status, p.GeneratedBy,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return payrun.Payrun{}, fmt.Errorf("failed to create payrun: %w", err)
	}

	itemQuery := `
		INSERT INTO payrun_items (
			payrun_id, employee_id, base_salary, total_allowances, total_deductions,
			gross_pay, loan_installment_id, loan_application_id, loan_deduction,
			net_pay, allowances_detail, deductions_detail
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, item := range items {
		allowancesJSON, _ := json.Marshal(item.AllowancesDetail)
		deductionsJSON, _ := json.Marshal(item.DeductionsDetail)
		_, err := q.Exec(ctx, itemQuery,
			created.ID, item.EmployeeID, item.BaseSalary, item.TotalAllowances, item.TotalDeductions,
			item.GrossPay, item.LoanInstallmentID, item.LoanApplicationID, item.LoanDeduction,
			item.NetPay, allowancesJSON, deductionsJSON,
		)
		if err != nil {
			return payrun.Payrun{}, fmt.Errorf("failed to create payrun item: %w", err)
		}
	}

	return created, nil
}

func (r *payrunRepository) GetByID(ctx context.Context, id string, companyID string) (payrun.Payrun, error) {
	return r.getByID(ctx, id, companyID, false)
}

func (r *payrunRepository) GetByIDForUpdate(ctx context.Context, id string, companyID string) (payrun.Payrun, error) {
	return r.getByID(ctx, id, companyID, true)
}

func (r *payrunRepository) getByID(ctx context.Context, id string, companyID string, forUpdate bool) (payrun.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrunColumns + payrunFrom + ` WHERE p.id = $1 AND p.company_id = $2`
	if forUpdate {
		// Lock only the payruns row; the joined catalog row stays free.
		query += " FOR UPDATE OF p"
	}

	p, err := scanPayrun(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrun.Payrun{}, payrun.ErrPayrunNotFound
		}
		return payrun.Payrun{}, fmt.Errorf("failed to get payrun: %w", err)
	}

	return p, nil
}

// LockPeriod serializes concurrent generations for one period scope for
// the duration of the transaction, so the duplicate-period check cannot
// race a concurrent insert.
func (r *payrunRepository) LockPeriod(ctx context.Context, companyID string, payrunType payrun.PayrunType, allowanceID *string, month, year int) error {
	q := GetQuerier(ctx, r.db)
	key := fmt.Sprintf("%s/payrun/%s/%d-%d", companyID, payrunType, year, month)
	if allowanceID != nil {
		key += "/" + *allowanceID
	}
	return advisoryXactLock(ctx, q, key)
}

func (r *payrunRepository) ExistsForPeriod(ctx context.Context, companyID string, payrunType payrun.PayrunType, allowanceID *string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payruns
			WHERE company_id = $1 AND type = $2 AND period_month = $3 AND period_year = $4
			  AND ($5::uuid IS NULL OR allowance_id = $5)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, companyID, payrunType, month, year, allowanceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payrun period: %w", err)
	}

	return exists, nil
}

func (r *payrunRepository) List(ctx context.Context, companyID string, filter payrun.PayrunFilter) ([]payrun.Payrun, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := payrunFrom + ` WHERE p.company_id = $1`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.PeriodMonth != nil {
		baseQuery += fmt.Sprintf(" AND p.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND p.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Type != nil {
		baseQuery += fmt.Sprintf(" AND p.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payruns: %w", err)
	}

	query := "SELECT " + payrunColumns + baseQuery +
		" ORDER BY p.period_year DESC, p.period_month DESC, p.created_at DESC"

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
		return nil, 0, fmt.Errorf("failed to list payruns: %w", err)
	}
	defer rows.Close()

	var payruns []payrun.Payrun
	for rows.Next() {
		p, err := scanPayrun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payrun: %w", err)
		}
		payruns = append(payruns, p)
	}

	return payruns, totalCount, rows.Err()
}

const payrunItemColumns = `
	pi.id, pi.payrun_id, pi.employee_id, pi.base_salary, pi.total_allowances,
	pi.total_deductions, pi.gross_pay, pi.loan_installment_id, pi.loan_application_id,
	pi.loan_deduction, pi.net_pay, pi.allowances_detail, pi.deductions_detail,
	pi.created_at, e.full_name, e.employee_code
`

func scanPayrunItem(row pgx.Row) (payrun.PayrunItem, error) {
	var item payrun.PayrunItem
	var allowancesBytes, deductionsBytes []byte
	err := row.Scan(
		&item.ID, &item.PayrunID, &item.EmployeeID, &item.BaseSalary, &item.TotalAllowances,
		&item.TotalDeductions, &item.GrossPay, &item.LoanInstallmentID, &item.LoanApplicationID,
		&item.LoanDeduction, &item.NetPay, &allowancesBytes, &deductionsBytes,
		&item.CreatedAt, &item.EmployeeName, &item.EmployeeCode,
	)
	if err != nil {
		return payrun.PayrunItem{}, err
	}
	_ = json.Unmarshal(allowancesBytes, &item.AllowancesDetail)
	_ = json.Unmarshal(deductionsBytes, &item.DeductionsDetail)
	return item, nil
}

func (r *payrunRepository) GetItems(ctx context.Context, payrunID string) ([]payrun.PayrunItem, error) {
	query := `
		SELECT ` + payrunItemColumns + `
		FROM payrun_items pi
		JOIN employees e ON e.id = pi.employee_id
		WHERE pi.payrun_id = $1
		ORDER BY e.employee_code
	`
	return r.queryItems(ctx, query, payrunID)
}

func (r *payrunRepository) queryItems(ctx context.Context, query string, payrunID string) ([]payrun.PayrunItem, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, payrunID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payrun items: %w", err)
	}
	defer rows.Close()

	var items []payrun.PayrunItem
	for rows.Next() {
		item, err := scanPayrunItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payrun item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *payrunRepository) MarkApproved(ctx context.Context, id string, approvedBy string, approvedAt time.Time) error {
	return r.markStatus(ctx, id, `
		UPDATE payruns
		SET status = 'approved', approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id
	`, payrun.ErrPayrunNotPending, approvedBy, approvedAt)
}

func (r *payrunRepository) MarkPaid(ctx context.Context, id string, paidBy string, paidAt time.Time) error {
	return r.markStatus(ctx, id, `
		UPDATE payruns
		SET status = 'paid', paid_by = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'approved'
		RETURNING id
	`, payrun.ErrPayrunNotApproved, paidBy, paidAt)
}

func (r *payrunRepository) MarkArchived(ctx context.Context, id string) error {
	return r.markStatus(ctx, id, `
		UPDATE payruns
		SET status = 'archived', updated_at = NOW()
		WHERE id = $1 AND status = 'paid'
		RETURNING id
	`, payrun.ErrPayrunNotPaid)
}

// markStatus guards the transition in SQL as well: the WHERE clause only
// matches the expected prior status, so a lost race surfaces as stateErr.
func (r *payrunRepository) markStatus(ctx context.Context, id string, query string, stateErr error, extraArgs ...interface{}) error {
	q := GetQuerier(ctx, r.db)

	args := append([]interface{}{id}, extraArgs...)
	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return stateErr
		}
		return fmt.Errorf("failed to update payrun status: %w", err)
	}

	return nil
}

func (r *payrunRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payrun_items WHERE payrun_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete payrun items: %w", err)
	}

	var deletedID string
	err := q.QueryRow(ctx, `DELETE FROM payruns WHERE id = $1 AND company_id = $2 RETURNING id`, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrun.ErrPayrunNotFound
		}
		return fmt.Errorf("failed to delete payrun: %w", err)
	}

	return nil
}
