package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/loan"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/database"
)

type LoanJobs struct {
	loanRepo loan.LoanRepository
	db       *database.DB
}

func NewLoanJobs(loanRepo loan.LoanRepository, db *database.DB) *LoanJobs {
	return &LoanJobs{
		loanRepo: loanRepo,
		db:       db,
	}
}

func (j *LoanJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_overdue_installments", 6*time.Hour, j.MarkOverdueInstallments)
}

// MarkOverdueInstallments flags pending installments on active loans whose
// due date has passed. Overdue installments still settle normally through
// payroll; the flag only surfaces them in schedules and reports.
func (j *LoanJobs) MarkOverdueInstallments(ctx context.Context) error {
	cutoff := time.Now().UTC().Truncate(24 * time.Hour)

	marked, err := j.loanRepo.MarkOverdueInstallments(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to mark overdue installments: %w", err)
	}

	if marked > 0 {
		slog.Info("Cron: Marked overdue installments", "count", marked)
	}

	return nil
}
