package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/employee"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/loan"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/notification"
	"github.com/talenthub-id/payroll-backend-go/internal/domain/salarystructure"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/database"
	"github.com/talenthub-id/payroll-backend-go/internal/repository/postgresql"
)

type LoanServiceImpl struct {
	db              *database.DB
	loanRepo        loan.LoanRepository
	employeeRepo    employee.EmployeeRepository
	structureRepo   salarystructure.SalaryStructureRepository
	notificationSvc notification.Service
}

func NewLoanService(
	db *database.DB,
	loanRepo loan.LoanRepository,
	employeeRepo employee.EmployeeRepository,
	structureRepo salarystructure.SalaryStructureRepository,
	notificationSvc notification.Service,
) loan.LoanService {
	return &LoanServiceImpl{
		db:              db,
		loanRepo:        loanRepo,
		employeeRepo:    employeeRepo,
		structureRepo:   structureRepo,
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

// ========== LOAN TYPES ==========

func (s *LoanServiceImpl) ListTypes(ctx context.Context) ([]loan.LoanTypeResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	types, err := s.loanRepo.GetTypesByCompanyID(ctx, companyID, true)
	if err != nil {
		return nil, err
	}

	responses := make([]loan.LoanTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, toTypeResponse(t))
	}

	return responses, nil
}

func (s *LoanServiceImpl) GetType(ctx context.Context, id string) (loan.LoanTypeResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return loan.LoanTypeResponse{}, err
	}

	t, err := s.loanRepo.GetTypeByID(ctx, id, companyID)
	if err != nil {
		return loan.LoanTypeResponse{}, err
	}

	return toTypeResponse(t), nil
}

func toTypeResponse(t loan.LoanType) loan.LoanTypeResponse {
	return loan.LoanTypeResponse{
		ID:                t.ID,
		Name:              t.Name,
		InterestRate:      t.InterestRate,
		MaxTenureMonths:   t.MaxTenureMonths,
		MaxSalaryMultiple: t.MaxSalaryMultiple,
		IsActive:          t.IsActive,
	}
}

// ========== ELIGIBILITY ==========

func (s *LoanServiceImpl) CalculateEligibility(ctx context.Context, employeeID string, loanTypeID string) (loan.EligibilityResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return loan.EligibilityResponse{}, err
	}

	return s.calculateEligibility(ctx, companyID, employeeID, loanTypeID)
}

// calculateEligibility computes the borrowing ceiling (base salary × the
// type's salary multiple) minus the employee's open exposure on the same
// type, floored at zero.
func (s *LoanServiceImpl) calculateEligibility(ctx context.Context, companyID string, employeeID string, loanTypeID string) (loan.EligibilityResponse, error) {
	loanType, err := s.loanRepo.GetTypeByID(ctx, loanTypeID, companyID)
	if err != nil {
		return loan.EligibilityResponse{}, err
	}
	structure, err := s.structureRepo.GetByEmployeeID(ctx, companyID, employeeID)
	if err != nil {
		return loan.EligibilityResponse{}, err
	}

	maxAmount := structure.BaseSalary.Mul(loanType.MaxSalaryMultiple)

	open, err := s.loanRepo.GetOpenApplications(ctx, companyID, employeeID, loanTypeID)
	if err != nil {
		return loan.EligibilityResponse{}, err
	}
	exposure := decimal.Zero
	for _, app := range open {
		switch app.Status {
		case loan.StatusPending:
			exposure = exposure.Add(app.RequestedAmount)
		case loan.StatusHRApproved:
			if app.ApprovedAmount != nil {
				exposure = exposure.Add(*app.ApprovedAmount)
			}
		case loan.StatusActive:
			exposure = exposure.Add(app.RemainingBalance)
		}
	}

	eligible := maxAmount.Sub(exposure)
	if eligible.IsNegative() {
		eligible = decimal.Zero
	}

	return loan.EligibilityResponse{
		EmployeeID:      employeeID,
		LoanTypeID:      loanTypeID,
		BaseSalary:      structure.BaseSalary,
		MaxAmount:       maxAmount,
		OpenExposure:    exposure,
		EligibleAmount:  eligible,
		MaxTenureMonths: loanType.MaxTenureMonths,
	}, nil
}

// ========== LIFECYCLE ==========

func (s *LoanServiceImpl) Apply(ctx context.Context, req loan.ApplyLoanRequest) (loan.LoanApplicationResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	emp, err := s.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	loanType, err := s.loanRepo.GetTypeByID(ctx, req.LoanTypeID, companyID)
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}
	if req.TenureMonths > loanType.MaxTenureMonths {
		return loan.LoanApplicationResponse{}, loan.ErrExceedsMaxTenure
	}

	var created loan.LoanApplication
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.loanRepo.LockApplicationScope(txCtx, companyID, emp.ID, req.LoanTypeID); err != nil {
			return err
		}

		open, err := s.loanRepo.GetOpenApplications(txCtx, companyID, emp.ID, req.LoanTypeID)
		if err != nil {
			return err
		}
		if len(open) > 0 {
			return loan.ErrLoanAlreadyOpen
		}

		eligibility, err := s.calculateEligibility(txCtx, companyID, emp.ID, req.LoanTypeID)
		if err != nil {
			return err
		}
		if req.RequestedAmount.GreaterThan(eligibility.EligibleAmount) {
			return loan.ErrExceedsEligibility
		}

		reference, err := s.loanRepo.NextReferenceNumber(txCtx, companyID, time.Now().Year())
		if err != nil {
			return err
		}

		created, err = s.loanRepo.CreateApplication(txCtx, loan.LoanApplication{
			CompanyID:       companyID,
			ReferenceNumber: reference,
			EmployeeID:      emp.ID,
			LoanTypeID:      req.LoanTypeID,
			RequestedAmount: req.RequestedAmount,
			TenureMonths:    req.TenureMonths,
			Reason:          req.Reason,
			Status:          loan.StatusPending,
		})
		if err != nil {
			return err
		}

		return s.loanRepo.AddHistory(txCtx, loan.HistoryEntry{
			LoanApplicationID: created.ID,
			Action:            loan.ActionApplied,
			Description:       fmt.Sprintf("Applied for %s over %d months", req.RequestedAmount.StringFixed(2), req.TenureMonths),
			PerformedBy:       userID,
		})
	})
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	return s.GetByID(ctx, created.ID)
}

func (s *LoanServiceImpl) Review(ctx context.Context, req loan.ReviewLoanRequest) (loan.LoanApplicationResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	var reviewed loan.LoanApplication
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		app, err := s.loanRepo.GetApplicationByIDForUpdate(txCtx, req.ID, companyID)
		if err != nil {
			return err
		}
		if app.Status != loan.StatusPending {
			return loan.ErrLoanNotPending
		}

		now := time.Now()
		app.ReviewedBy = &userID
		app.ReviewedAt = &now
		if req.Remarks != "" {
			app.ReviewRemarks = &req.Remarks
		}

		if req.Action == "approve" {
			approved := *req.ApprovedAmount
			if !approved.IsPositive() || approved.GreaterThan(app.RequestedAmount) {
				return loan.ErrInvalidApprovedAmount
			}

			loanType, err := s.loanRepo.GetTypeByID(txCtx, app.LoanTypeID, companyID)
			if err != nil {
				return err
			}
			// Schedule start is fixed at disbursement; the plan here only
			// prices the loan.
			plan := BuildAmortizationPlan(approved, loanType.InterestRate, app.TenureMonths, 1, now.Year())

			app.Status = loan.StatusHRApproved
			app.ApprovedAmount = &approved
			app.MonthlyDeduction = &plan.MonthlyDeduction
			app.TotalInterest = &plan.TotalInterest
		} else {
			app.Status = loan.StatusHRRejected
		}

		if err := s.loanRepo.UpdateApplicationStatus(txCtx, app); err != nil {
			return err
		}

		action := loan.ActionApproved
		description := "Application approved"
		if app.Status == loan.StatusHRRejected {
			action = loan.ActionRejected
			description = "Application rejected: " + req.Remarks
		} else if app.ApprovedAmount != nil {
			description = fmt.Sprintf("Approved for %s", app.ApprovedAmount.StringFixed(2))
		}
		if err := s.loanRepo.AddHistory(txCtx, loan.HistoryEntry{
			LoanApplicationID: app.ID,
			Action:            action,
			Description:       description,
			PerformedBy:       userID,
		}); err != nil {
			return err
		}

		reviewed = app
		return nil
	})
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	if reviewed.Status == loan.StatusHRApproved {
		s.notifyEmployee(ctx, companyID, reviewed.EmployeeID, notification.TypeLoanApproved,
			"Loan Approved", fmt.Sprintf("Your loan application %s has been approved", reviewed.ReferenceNumber), reviewed.ID)
	} else {
		s.notifyEmployee(ctx, companyID, reviewed.EmployeeID, notification.TypeLoanRejected,
			"Loan Rejected", fmt.Sprintf("Your loan application %s has been rejected", reviewed.ReferenceNumber), reviewed.ID)
	}

	return s.GetByID(ctx, req.ID)
}

func (s *LoanServiceImpl) Disburse(ctx context.Context, req loan.DisburseLoanRequest) (loan.LoanApplicationResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	var disbursed loan.LoanApplication
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		app, err := s.loanRepo.GetApplicationByIDForUpdate(txCtx, req.ID, companyID)
		if err != nil {
			return err
		}
		if app.Status != loan.StatusHRApproved {
			return loan.ErrLoanNotApproved
		}

		emp, err := s.employeeRepo.GetByID(txCtx, app.EmployeeID, companyID)
		if err != nil {
			return err
		}
		bank := emp.BankDetails()
		if bank == nil {
			return loan.ErrMissingBankDetails
		}

		loanType, err := s.loanRepo.GetTypeByID(txCtx, app.LoanTypeID, companyID)
		if err != nil {
			return err
		}

		now := time.Now()
		firstMonth, firstYear := req.FirstDueMonth, req.FirstDueYear
		if firstMonth == 0 {
			first := now.AddDate(0, 1, 0)
			firstMonth, firstYear = int(first.Month()), first.Year()
		}

		plan := BuildAmortizationPlan(*app.ApprovedAmount, loanType.InterestRate, app.TenureMonths, firstMonth, firstYear)
		installments := plan.Installments
		for i := range installments {
			installments[i].LoanApplicationID = app.ID
		}
		if err := s.loanRepo.CreateInstallments(txCtx, installments); err != nil {
			return err
		}

		app.Status = loan.StatusActive
		app.DisbursedBy = &userID
		app.DisbursedAt = &now
		app.MonthlyDeduction = &plan.MonthlyDeduction
		app.TotalInterest = &plan.TotalInterest
		app.RemainingBalance = plan.TotalRepayment
		if err := s.loanRepo.UpdateApplicationStatus(txCtx, app); err != nil {
			return err
		}

		description := fmt.Sprintf("Disbursed %s to %s %s", app.ApprovedAmount.StringFixed(2), bank.BankName, bank.AccountNumber)
		if req.Remarks != "" {
			description += ": " + req.Remarks
		}
		if err := s.loanRepo.AddHistory(txCtx, loan.HistoryEntry{
			LoanApplicationID: app.ID,
			Action:            loan.ActionDisbursed,
			Description:       description,
			PerformedBy:       userID,
		}); err != nil {
			return err
		}

		disbursed = app
		return nil
	})
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	s.notifyEmployee(ctx, companyID, disbursed.EmployeeID, notification.TypeLoanDisbursed,
		"Loan Disbursed", fmt.Sprintf("Loan %s has been disbursed to your bank account", disbursed.ReferenceNumber), disbursed.ID)

	return s.GetByID(ctx, req.ID)
}

func (s *LoanServiceImpl) Cancel(ctx context.Context, req loan.CancelLoanRequest) (loan.LoanApplicationResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		app, err := s.loanRepo.GetApplicationByIDForUpdate(txCtx, req.ID, companyID)
		if err != nil {
			return err
		}
		if !loan.CanTransition(app.Status, loan.StatusCancelled) {
			return loan.ErrLoanNotCancellable
		}

		app.Status = loan.StatusCancelled
		if err := s.loanRepo.UpdateApplicationStatus(txCtx, app); err != nil {
			return err
		}

		return s.loanRepo.AddHistory(txCtx, loan.HistoryEntry{
			LoanApplicationID: app.ID,
			Action:            loan.ActionCancelled,
			Description:       "Cancelled: " + req.Reason,
			PerformedBy:       userID,
		})
	})
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	return s.GetByID(ctx, req.ID)
}

func (s *LoanServiceImpl) SettleInstallment(ctx context.Context, loanID string, installmentNumber int) (loan.LoanApplicationResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	var settled loan.LoanApplication
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		app, err := s.loanRepo.GetApplicationByIDForUpdate(txCtx, loanID, companyID)
		if err != nil {
			return err
		}
		if app.Status != loan.StatusActive {
			return loan.ErrLoanNotActive
		}

		inst, err := s.loanRepo.GetInstallmentByNumber(txCtx, loanID, installmentNumber)
		if err != nil {
			return err
		}
		if inst, err = s.loanRepo.GetInstallmentForUpdate(txCtx, inst.ID); err != nil {
			return err
		}
		if inst.Status == loan.InstallmentPaid {
			return loan.ErrInstallmentAlreadyPaid
		}

		now := time.Now()
		balanceAfter := app.RemainingBalance.Sub(inst.ExpectedAmount)
		if err := s.loanRepo.MarkInstallmentPaid(txCtx, inst.ID, inst.ExpectedAmount, balanceAfter, now); err != nil {
			return err
		}
		updated, err := s.loanRepo.ApplyRepayment(txCtx, app.ID, inst.ExpectedAmount)
		if err != nil {
			return err
		}
		if err := s.loanRepo.AddHistory(txCtx, loan.HistoryEntry{
			LoanApplicationID: app.ID,
			Action:            loan.ActionRepayment,
			Description:       fmt.Sprintf("Installment %d of %d settled manually", inst.Number, app.TenureMonths),
			PerformedBy:       userID,
		}); err != nil {
			return err
		}

		if updated.RemainingBalance.IsZero() {
			updated.Status = loan.StatusCompleted
			if err := s.loanRepo.UpdateApplicationStatus(txCtx, updated); err != nil {
				return err
			}
			if err := s.loanRepo.AddHistory(txCtx, loan.HistoryEntry{
				LoanApplicationID: app.ID,
				Action:            loan.ActionCompleted,
				Description:       "All installments repaid",
				PerformedBy:       userID,
			}); err != nil {
				return err
			}
		}

		settled = updated
		return nil
	})
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	if settled.Status == loan.StatusCompleted {
		s.notifyEmployee(ctx, companyID, settled.EmployeeID, notification.TypeLoanCompleted,
			"Loan Fully Repaid", fmt.Sprintf("Loan %s has been fully repaid", settled.ReferenceNumber), settled.ID)
	}

	return s.GetByID(ctx, loanID)
}

// ========== READS ==========

func (s *LoanServiceImpl) List(ctx context.Context, filter loan.LoanFilter) (loan.ListLoanResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return loan.ListLoanResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Status != nil {
		if _, err := loan.ParseLoanStatus(*filter.Status); err != nil {
			return loan.ListLoanResponse{}, err
		}
	}

	apps, totalCount, err := s.loanRepo.ListApplications(ctx, companyID, filter)
	if err != nil {
		return loan.ListLoanResponse{}, err
	}

	data := make([]loan.LoanApplicationResponse, 0, len(apps))
	for _, app := range apps {
		data = append(data, toApplicationResponse(app, nil, nil))
	}

	return loan.ListLoanResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *LoanServiceImpl) GetByID(ctx context.Context, id string) (loan.LoanApplicationResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	app, err := s.loanRepo.GetApplicationByID(ctx, id, companyID)
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}
	installments, err := s.loanRepo.GetInstallments(ctx, id)
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}
	history, err := s.loanRepo.GetHistory(ctx, id)
	if err != nil {
		return loan.LoanApplicationResponse{}, err
	}

	return toApplicationResponse(app, installments, history), nil
}

func (s *LoanServiceImpl) GetSchedule(ctx context.Context, loanID string) ([]loan.InstallmentResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.loanRepo.GetApplicationByID(ctx, loanID, companyID); err != nil {
		return nil, err
	}
	installments, err := s.loanRepo.GetInstallments(ctx, loanID)
	if err != nil {
		return nil, err
	}

	responses := make([]loan.InstallmentResponse, 0, len(installments))
	for _, inst := range installments {
		responses = append(responses, toInstallmentResponse(inst))
	}

	return responses, nil
}

func (s *LoanServiceImpl) GetHistory(ctx context.Context, loanID string) ([]loan.HistoryEntryResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.loanRepo.GetApplicationByID(ctx, loanID, companyID); err != nil {
		return nil, err
	}
	history, err := s.loanRepo.GetHistory(ctx, loanID)
	if err != nil {
		return nil, err
	}

	responses := make([]loan.HistoryEntryResponse, 0, len(history))
	for _, entry := range history {
		responses = append(responses, toHistoryResponse(entry))
	}

	return responses, nil
}

// ========== HELPERS ==========

func (s *LoanServiceImpl) notifyEmployee(ctx context.Context, companyID string, employeeID string, notifType notification.NotificationType, title, message, loanID string) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil || emp.UserID == nil {
		return
	}
	_ = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   companyID,
		RecipientID: *emp.UserID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"loan_application_id": loanID,
		},
	})
}

func toInstallmentResponse(inst loan.RepaymentInstallment) loan.InstallmentResponse {
	resp := loan.InstallmentResponse{
		ID:             inst.ID,
		Number:         inst.Number,
		DueMonth:       inst.DueMonth,
		DueYear:        inst.DueYear,
		DueDate:        inst.DueDate.Format("2006-01-02"),
		ExpectedAmount: inst.ExpectedAmount,
		PaidAmount:     inst.PaidAmount,
		BalanceAfter:   inst.BalanceAfter,
		Status:         string(inst.Status),
	}
	if inst.PaidAt != nil {
		paidAt := inst.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

func toHistoryResponse(entry loan.HistoryEntry) loan.HistoryEntryResponse {
	return loan.HistoryEntryResponse{
		Action:      entry.Action,
		Description: entry.Description,
		PerformedBy: entry.PerformedBy,
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
	}
}

func toApplicationResponse(app loan.LoanApplication, installments []loan.RepaymentInstallment, history []loan.HistoryEntry) loan.LoanApplicationResponse {
	resp := loan.LoanApplicationResponse{
		ID:               app.ID,
		ReferenceNumber:  app.ReferenceNumber,
		EmployeeID:       app.EmployeeID,
		EmployeeName:     app.EmployeeName,
		EmployeeCode:     app.EmployeeCode,
		LoanTypeID:       app.LoanTypeID,
		LoanTypeName:     app.LoanTypeName,
		RequestedAmount:  app.RequestedAmount,
		ApprovedAmount:   app.ApprovedAmount,
		TenureMonths:     app.TenureMonths,
		MonthlyDeduction: app.MonthlyDeduction,
		TotalInterest:    app.TotalInterest,
		Reason:           app.Reason,
		Status:           string(app.Status),
		ReviewedBy:       app.ReviewedBy,
		ReviewRemarks:    app.ReviewRemarks,
		DisbursedBy:      app.DisbursedBy,
		TotalRepaid:      app.TotalRepaid,
		RemainingBalance: app.RemainingBalance,
		CreatedAt:        app.CreatedAt.Format(time.RFC3339),
	}
	if app.ReviewedAt != nil {
		reviewedAt := app.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewedAt
	}
	if app.DisbursedAt != nil {
		disbursedAt := app.DisbursedAt.Format(time.RFC3339)
		resp.DisbursedAt = &disbursedAt
	}
	for _, inst := range installments {
		resp.Schedule = append(resp.Schedule, toInstallmentResponse(inst))
	}
	for _, entry := range history {
		resp.History = append(resp.History, toHistoryResponse(entry))
	}
	return resp
}
