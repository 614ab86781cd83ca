package payrun

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/compensation"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/employee"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/loan"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/notification"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/payrun"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/salarystructure"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/database"
	"github.com/talenthub-id/payroll-backend-go/internal/repository/postgresql"
)

type PayrunServiceImpl struct {
	db              *database.DB
	payrunRepo      payrun.PayrunRepository
	loanRepo        loan.LoanRepository
	employeeRepo    employee.EmployeeRepository
	componentRepo   compensation.ComponentRepository
	structureRepo   salarystructure.SalaryStructureRepository
	resolver        salarystructure.Resolver
	notificationSvc notification.Service
}

func NewPayrunService(
	db *database.DB,
	payrunRepo payrun.PayrunRepository,
	loanRepo loan.LoanRepository,
	employeeRepo employee.EmployeeRepository,
	componentRepo compensation.ComponentRepository,
	structureRepo salarystructure.SalaryStructureRepository,
	resolver salarystructure.Resolver,
	notificationSvc notification.Service,
) payrun.PayrunService {
	return &PayrunServiceImpl{
		db:              db,
		payrunRepo:      payrunRepo,
		loanRepo:        loanRepo,
		employeeRepo:    employeeRepo,
		componentRepo:   componentRepo,
		structureRepo:   structureRepo,
		resolver:        resolver,
		notificationSvc: notificationSvc,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func (s *PayrunServiceImpl) Generate(ctx context.Context, req payrun.GeneratePayrunRequest) (payrun.PayrunResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payrun.PayrunResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return payrun.PayrunResponse{}, err
	}
	payrunType, err := payrun.ParsePayrunType(req.Type)
	if err != nil {
		return payrun.PayrunResponse{}, err
	}

	var created payrun.Payrun
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.payrunRepo.LockPeriod(txCtx, companyID, payrunType, req.AllowanceID, req.PeriodMonth, req.PeriodYear); err != nil {
			return err
		}

		exists, err := s.payrunRepo.ExistsForPeriod(txCtx, companyID, payrunType, req.AllowanceID, req.PeriodMonth, req.PeriodYear)
		if err != nil {
			return err
		}
		if exists {
			return payrun.ErrDuplicatePeriod
		}

		var items []payrun.PayrunItem
		if payrunType == payrun.TypeSalary {
			items, err = s.buildSalaryItems(txCtx, companyID, req.PeriodMonth, req.PeriodYear)
		} else {
			items, err = s.buildAllowanceItems(txCtx, companyID, *req.AllowanceID, req.PeriodMonth, req.PeriodYear)
		}
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return payrun.ErrNoEligibleEmployees
		}

		gross, deductions, net := totalsOf(items)
		created, err = s.payrunRepo.Create(txCtx, payrun.Payrun{
			CompanyID:       companyID,
			Type:            payrunType,
			AllowanceID:     req.AllowanceID,
			PeriodMonth:     req.PeriodMonth,
			PeriodYear:      req.PeriodYear,
			TotalEmployees:  len(items),
			TotalGrossPay:   gross,
			TotalDeductions: deductions,
			TotalNetPay:     net,
			Status:          payrun.StatusPending,
			GeneratedBy:     userID,
		}, items)
		return err
	})
	if err != nil {
		return payrun.PayrunResponse{}, err
	}

	s.notifyUser(ctx, companyID, userID, notification.TypePayrunGenerated,
		"Payrun Generated",
		fmt.Sprintf("Payrun for %d/%d has been generated with %d employees", created.PeriodMonth, created.PeriodYear, created.TotalEmployees),
		created.ID)

	return s.GetByID(ctx, created.ID)
}

// buildSalaryItems resolves every active employee's compensation and attaches
// the loan installment due this period where one exists. Employees without a
// configured salary structure are skipped.
func (s *PayrunServiceImpl) buildSalaryItems(ctx context.Context, companyID string, month, year int) ([]payrun.PayrunItem, error) {
	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	due, err := s.loanRepo.GetDueInstallmentsForPeriod(ctx, companyID, month, year)
	if err != nil {
		return nil, err
	}
	dueByEmployee := make(map[string]loan.RepaymentInstallment, len(due))
	for _, inst := range due {
		if inst.EmployeeID != nil {
			dueByEmployee[*inst.EmployeeID] = inst
		}
	}

	var items []payrun.PayrunItem
	for _, emp := range employees {
		resolved, err := s.resolver.ResolveCompensation(ctx, companyID, emp.ID, month, year)
		if err != nil {
			if errors.Is(err, salarystructure.ErrStructureNotConfigured) {
				continue
			}
			return nil, err
		}

		var installment *loan.RepaymentInstallment
		if inst, ok := dueByEmployee[emp.ID]; ok {
			installment = &inst
		}

		item, err := buildSalaryItem(resolved, installment)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", emp.EmployeeCode, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *PayrunServiceImpl) buildAllowanceItems(ctx context.Context, companyID string, allowanceID string, month, year int) ([]payrun.PayrunItem, error) {
	component, err := s.componentRepo.GetByID(ctx, allowanceID, companyID)
	if err != nil {
		return nil, err
	}
	if component.Kind != compensation.KindAllowance || !component.IsActive {
		return nil, payrun.ErrNotAnAllowance
	}

	entitled, err := s.structureRepo.ListEmployeeIDsWithComponent(ctx, companyID, allowanceID)
	if err != nil {
		return nil, err
	}

	var items []payrun.PayrunItem
	for _, employeeID := range entitled {
		structure, err := s.structureRepo.GetByEmployeeID(ctx, companyID, employeeID)
		if err != nil {
			return nil, err
		}
		item, err := buildAllowanceItem(employeeID, structure.BaseSalary, component)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *PayrunServiceImpl) GetByID(ctx context.Context, id string) (payrun.PayrunResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payrun.PayrunResponse{}, err
	}

	p, err := s.payrunRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payrun.PayrunResponse{}, err
	}
	items, err := s.payrunRepo.GetItems(ctx, id)
	if err != nil {
		return payrun.PayrunResponse{}, err
	}

	return toResponse(p, items), nil
}

func (s *PayrunServiceImpl) List(ctx context.Context, filter payrun.PayrunFilter) (payrun.ListPayrunResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payrun.ListPayrunResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Status != nil {
		if _, err := payrun.ParsePayrunStatus(*filter.Status); err != nil {
			return payrun.ListPayrunResponse{}, err
		}
	}
	if filter.Type != nil {
		if _, err := payrun.ParsePayrunType(*filter.Type); err != nil {
			return payrun.ListPayrunResponse{}, err
		}
	}

	payruns, totalCount, err := s.payrunRepo.List(ctx, companyID, filter)
	if err != nil {
		return payrun.ListPayrunResponse{}, err
	}

	data := make([]payrun.PayrunResponse, 0, len(payruns))
	for _, p := range payruns {
		data = append(data, toResponse(p, nil))
	}

	return payrun.ListPayrunResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrunServiceImpl) Approve(ctx context.Context, id string) (payrun.PayrunResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payrun.PayrunResponse{}, err
	}

	var generatedBy string
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		p, err := s.payrunRepo.GetByIDForUpdate(txCtx, id, companyID)
		if err != nil {
			return err
		}
		if p.Status != payrun.StatusPending {
			return payrun.ErrPayrunNotPending
		}
		generatedBy = p.GeneratedBy

		return s.payrunRepo.MarkApproved(txCtx, id, userID, time.Now())
	})
	if err != nil {
		return payrun.PayrunResponse{}, err
	}

	s.notifyUser(ctx, companyID, generatedBy, notification.TypePayrunApproved,
		"Payrun Approved", "A payrun you generated has been approved for payment", id)

	return s.GetByID(ctx, id)
}

func (s *PayrunServiceImpl) Rollback(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		p, err := s.payrunRepo.GetByIDForUpdate(txCtx, id, companyID)
		if err != nil {
			return err
		}
		if p.Status != payrun.StatusPending {
			return payrun.ErrPayrunNotPending
		}

		return s.payrunRepo.Delete(txCtx, id, companyID)
	})
}

func (s *PayrunServiceImpl) Complete(ctx context.Context, id string) (payrun.PayrunResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payrun.PayrunResponse{}, err
	}

	var completedLoans []loan.LoanApplication
	var paidEmployeeIDs []string
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		p, err := s.payrunRepo.GetByIDForUpdate(txCtx, id, companyID)
		if err != nil {
			return err
		}
		if p.Status != payrun.StatusApproved {
			return payrun.ErrPayrunNotApproved
		}

		items, err := s.payrunRepo.GetItems(txCtx, id)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, item := range items {
			paidEmployeeIDs = append(paidEmployeeIDs, item.EmployeeID)
			if item.LoanInstallmentID == nil {
				continue
			}

			settled, err := s.settleInstallment(txCtx, companyID, *item.LoanInstallmentID, item.LoanDeduction, userID, now)
			if err != nil {
				return err
			}
			if settled.Status == loan.StatusCompleted {
				completedLoans = append(completedLoans, settled)
			}
		}

		return s.payrunRepo.MarkPaid(txCtx, id, userID, now)
	})
	if err != nil {
		return payrun.PayrunResponse{}, err
	}

	s.notifyEmployees(ctx, companyID, paidEmployeeIDs, notification.TypePayrunPaid,
		"Salary Paid", "Your salary for this period has been paid", id)
	for _, app := range completedLoans {
		s.notifyEmployees(ctx, companyID, []string{app.EmployeeID}, notification.TypeLoanCompleted,
			"Loan Fully Repaid", fmt.Sprintf("Loan %s has been fully repaid", app.ReferenceNumber), app.ID)
	}

	return s.GetByID(ctx, id)
}

// settleInstallment books one installment as paid and updates the loan's
// running balance, completing the loan when the balance reaches zero. Runs
// inside the caller's transaction.
func (s *PayrunServiceImpl) settleInstallment(ctx context.Context, companyID string, installmentID string, amount decimal.Decimal, userID string, now time.Time) (loan.LoanApplication, error) {
	inst, err := s.loanRepo.GetInstallmentForUpdate(ctx, installmentID)
	if err != nil {
		return loan.LoanApplication{}, err
	}
	if inst.Status == loan.InstallmentPaid {
		return loan.LoanApplication{}, loan.ErrInstallmentAlreadyPaid
	}

	app, err := s.loanRepo.GetApplicationByIDForUpdate(ctx, inst.LoanApplicationID, companyID)
	if err != nil {
		return loan.LoanApplication{}, err
	}

	balanceAfter := app.RemainingBalance.Sub(amount)
	if err := s.loanRepo.MarkInstallmentPaid(ctx, installmentID, amount, balanceAfter, now); err != nil {
		return loan.LoanApplication{}, err
	}
	updated, err := s.loanRepo.ApplyRepayment(ctx, app.ID, amount)
	if err != nil {
		return loan.LoanApplication{}, err
	}
	if err := s.loanRepo.AddHistory(ctx, loan.HistoryEntry{
		LoanApplicationID: app.ID,
		Action:            loan.ActionRepayment,
		Description:       fmt.Sprintf("Installment %d of %d settled via payroll", inst.Number, app.TenureMonths),
		PerformedBy:       userID,
	}); err != nil {
		return loan.LoanApplication{}, err
	}

	if updated.RemainingBalance.IsZero() {
		updated.Status = loan.StatusCompleted
		if err := s.loanRepo.UpdateApplicationStatus(ctx, updated); err != nil {
			return loan.LoanApplication{}, err
		}
		if err := s.loanRepo.AddHistory(ctx, loan.HistoryEntry{
			LoanApplicationID: app.ID,
			Action:            loan.ActionCompleted,
			Description:       "All installments repaid",
			PerformedBy:       userID,
		}); err != nil {
			return loan.LoanApplication{}, err
		}
	}

	return updated, nil
}

func (s *PayrunServiceImpl) Archive(ctx context.Context, id string) (payrun.PayrunResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payrun.PayrunResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		p, err := s.payrunRepo.GetByIDForUpdate(txCtx, id, companyID)
		if err != nil {
			return err
		}
		if p.Status != payrun.StatusPaid {
			return payrun.ErrPayrunNotPaid
		}

		return s.payrunRepo.MarkArchived(txCtx, id)
	})
	if err != nil {
		return payrun.PayrunResponse{}, err
	}

	return s.GetByID(ctx, id)
}

// notifyUser queues a single-recipient notification; delivery failure never
// fails the financial operation.
func (s *PayrunServiceImpl) notifyUser(ctx context.Context, companyID, recipientID string, notifType notification.NotificationType, title, message, payrunID string) {
	if recipientID == "" {
		return
	}
	_ = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   companyID,
		RecipientID: recipientID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"payrun_id": payrunID,
		},
	})
}

func (s *PayrunServiceImpl) notifyEmployees(ctx context.Context, companyID string, employeeIDs []string, notifType notification.NotificationType, title, message, refID string) {
	if len(employeeIDs) == 0 {
		return
	}
	employees, err := s.employeeRepo.GetActiveByIDs(ctx, companyID, employeeIDs)
	if err != nil {
		return
	}
	var reqs []notification.CreateNotificationRequest
	for _, emp := range employees {
		if emp.UserID == nil {
			continue
		}
		reqs = append(reqs, notification.CreateNotificationRequest{
			CompanyID:   companyID,
			RecipientID: *emp.UserID,
			Type:        notifType,
			Title:       title,
			Message:     message,
			Data: map[string]interface{}{
				"reference_id": refID,
			},
		})
	}
	_ = s.notificationSvc.QueueBulkNotification(ctx, reqs)
}

func toResponse(p payrun.Payrun, items []payrun.PayrunItem) payrun.PayrunResponse {
	resp := payrun.PayrunResponse{
		ID:              p.ID,
		Type:            string(p.Type),
		AllowanceID:     p.AllowanceID,
		AllowanceName:   p.AllowanceName,
		PeriodMonth:     p.PeriodMonth,
		PeriodYear:      p.PeriodYear,
		TotalEmployees:  p.TotalEmployees,
		TotalGrossPay:   p.TotalGrossPay,
		TotalDeductions: p.TotalDeductions,
		TotalNetPay:     p.TotalNetPay,
		Status:          string(p.Status),
		GeneratedBy:     p.GeneratedBy,
		ApprovedBy:      p.ApprovedBy,
		PaidBy:          p.PaidBy,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
	if p.ApprovedAt != nil {
		approvedAt := p.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &approvedAt
	}
	if p.PaidAt != nil {
		paidAt := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	for _, item := range items {
		resp.Items = append(resp.Items, payrun.PayrunItemResponse{
			ID:                item.ID,
			EmployeeID:        item.EmployeeID,
			EmployeeName:      item.EmployeeName,
			EmployeeCode:      item.EmployeeCode,
			BaseSalary:        item.BaseSalary,
			TotalAllowances:   item.TotalAllowances,
			TotalDeductions:   item.TotalDeductions,
			GrossPay:          item.GrossPay,
			LoanInstallmentID: item.LoanInstallmentID,
			LoanDeduction:     item.LoanDeduction,
			NetPay:            item.NetPay,
			AllowancesDetail:  item.AllowancesDetail,
			DeductionsDetail:  item.DeductionsDetail,
		})
	}
	return resp
}
