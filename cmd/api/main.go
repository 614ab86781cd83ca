package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talenthub-id/payroll-backend-go/internal/config"
	appHTTP "github.com/talenthub-id/payroll-backend-go/internal/handler/http"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/cron"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/database"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/jwt"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/sse"
	"github.com/talenthub-id/payroll-backend-go/internal/repository/postgresql"
	compensationService "github.com/talenthub-id/payroll-backend-go/internal/service/compensation"
	loanService "github.com/talenthub-id/payroll-backend-go/internal/service/loan"
	notificationService "github.com/talenthub-id/payroll-backend-go/internal/service/notification"
	payrunService "github.com/talenthub-id/payroll-backend-go/internal/service/payrun"
	salaryStructureService "github.com/talenthub-id/payroll-backend-go/internal/service/salarystructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	componentRepo := postgresql.NewCompensationRepository(db)
	structureRepo := postgresql.NewSalaryStructureRepository(db)
	payrunRepo := postgresql.NewPayrunRepository(db)
	loanRepo := postgresql.NewLoanRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	sseHub := sse.NewHub()
	notificationSvc := notificationService.NewNotificationService(notificationRepo, sseHub, notificationService.Config{})
	componentSvc := compensationService.NewComponentService(db, componentRepo, structureRepo)
	structureSvc := salaryStructureService.NewSalaryStructureService(db, structureRepo, componentRepo, employeeRepo)
	payrunSvc := payrunService.NewPayrunService(db, payrunRepo, loanRepo, employeeRepo, componentRepo, structureRepo, structureSvc, notificationSvc)
	loanSvc := loanService.NewLoanService(db, loanRepo, employeeRepo, structureRepo, notificationSvc)

	compensationHandler := appHTTP.NewCompensationHandler(componentSvc)
	structureHandler := appHTTP.NewSalaryStructureHandler(structureSvc)
	payrunHandler := appHTTP.NewPayrunHandler(payrunSvc)
	loanHandler := appHTTP.NewLoanHandler(loanSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, JWTService)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		compensationHandler,
		structureHandler,
		payrunHandler,
		loanHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewLoanJobs(loanRepo, db).RegisterJobs(scheduler)
	scheduler.Start()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	scheduler.Stop()
	notificationSvc.Stop()
	db.Close()
}
