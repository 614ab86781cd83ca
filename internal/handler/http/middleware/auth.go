package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/user"
	"github.com/talenthub-id/payroll-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose token failed verification or is
// not an access token. Runs after jwtauth.Verifier, which parses the
// Authorization header into the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}
			if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
