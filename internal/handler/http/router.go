package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/talenthub-id/payroll-backend-go/internal/config"
	"github.com/talenthub-id/payroll-backend-go/internal/handler/http/middleware"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	compensationHandler CompensationHandler,
	structureHandler SalaryStructureHandler,
	payrunHandler PayrunHandler,
	loanHandler LoanHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.App.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// SSE stream authenticates by query token, not the Authorization
		// header.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/compensation-components", func(r chi.Router) {
				r.Get("/", compensationHandler.ListComponents)
				r.Get("/{id}", compensationHandler.GetComponent)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/", compensationHandler.CreateComponent)
					r.Put("/{id}", compensationHandler.UpdateComponent)
					r.Delete("/{id}", compensationHandler.DeleteComponent)
				})
			})

			r.Route("/salary-structures", func(r chi.Router) {
				r.Get("/", structureHandler.List)
				r.Get("/{employeeId}", structureHandler.GetByEmployee)
				r.Get("/{employeeId}/resolve", structureHandler.Resolve)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/", structureHandler.Create)
					r.Put("/{employeeId}", structureHandler.Update)
					r.Delete("/{employeeId}", structureHandler.Delete)
				})
			})

			r.Route("/payruns", func(r chi.Router) {
				r.Get("/", payrunHandler.List)
				r.Get("/{id}", payrunHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/", payrunHandler.Generate)
					r.Post("/{id}/approve", payrunHandler.Approve)
					r.Delete("/{id}", payrunHandler.Rollback)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/archive", payrunHandler.Archive)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireFinance)
					r.Post("/{id}/complete", payrunHandler.Complete)
				})
			})

			r.Route("/loans", func(r chi.Router) {
				r.Get("/types", loanHandler.ListTypes)
				r.Get("/types/{id}", loanHandler.GetType)
				r.Get("/eligibility", loanHandler.Eligibility)

				r.Post("/", loanHandler.Apply)
				r.Get("/", loanHandler.List)
				r.Get("/{id}", loanHandler.Get)
				r.Get("/{id}/schedule", loanHandler.GetSchedule)
				r.Get("/{id}/history", loanHandler.GetHistory)
				r.Post("/{id}/cancel", loanHandler.Cancel)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/{id}/review", loanHandler.Review)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireFinance)
					r.Post("/{id}/disburse", loanHandler.Disburse)
					r.Post("/{id}/installments/{number}/settle", loanHandler.SettleInstallment)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/read", notificationHandler.MarkAsRead)
				r.Post("/read-all", notificationHandler.MarkAllAsRead)
				r.Get("/sse-token", notificationHandler.GetSSEToken)
			})
		})
	})
	return r
}
