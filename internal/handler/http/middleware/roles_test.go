package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleTestRequest(t *testing.T, role string) *http.Request {
	t.Helper()

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"company_id": "11111111-1111-1111-1111-111111111111",
		"user_id":    "22222222-2222-2222-2222-222222222222",
		"role":       role,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		role       string
		wantStatus int
	}{
		{"admin only allows admin", AdminOnly, "admin", http.StatusOK},
		{"admin only rejects hr", AdminOnly, "hr", http.StatusForbidden},
		{"admin only rejects finance", AdminOnly, "finance", http.StatusForbidden},
		{"admin only rejects employee", AdminOnly, "employee", http.StatusForbidden},
		{"hr gate allows hr", RequireHR, "hr", http.StatusOK},
		{"hr gate allows admin", RequireHR, "admin", http.StatusOK},
		{"hr gate rejects finance", RequireHR, "finance", http.StatusForbidden},
		{"hr gate rejects employee", RequireHR, "employee", http.StatusForbidden},
		{"finance gate allows finance", RequireFinance, "finance", http.StatusOK},
		{"finance gate allows admin", RequireFinance, "admin", http.StatusOK},
		{"finance gate rejects hr", RequireFinance, "hr", http.StatusForbidden},
		{"finance gate rejects employee", RequireFinance, "employee", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.middleware(okHandler()).ServeHTTP(rec, roleTestRequest(t, tt.role))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRoleMiddleware_MissingClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	for _, mw := range []func(http.Handler) http.Handler{AdminOnly, RequireHR, RequireFinance} {
		rec := httptest.NewRecorder()
		mw(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}
