package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/user"
	"github.com/talenthub-id/payroll-backend-go/internal/handler/http/response"
)

func roleFromContext(r *http.Request) (user.Role, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", user.ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok {
		return "", user.ErrInvalidToken
	}

	return user.Role(role), nil
}

// AdminOnly gates payrun archival.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := roleFromContext(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireHR gates loan review and payrun approval.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := roleFromContext(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !role.IsHR() {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireFinance gates loan disbursement and payrun completion.
func RequireFinance(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := roleFromContext(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !role.IsFinance() {
			response.HandleError(w, user.ErrFinanceAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
