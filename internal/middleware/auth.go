package middleware

import (
	"context"
	"net/http"
	"strings"

	"chit-backend/internal/auth"
	"chit-backend/internal/services"
)

type contextKey string

const StaffIDKey contextKey = "staff_id"
const EmailKey contextKey = "email"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	staffStore services.StaffStore
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, staffStore services.StaffStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		staffStore: staffStore,
	}
}

// Authenticate validates the Bearer JWT and confirms the staff account still
// exists before letting the request through
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		staff, err := m.staffStore.Get(r.Context(), claims.StaffID)
		if err != nil {
			http.Error(w, "Account not found", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), StaffIDKey, staff.ID)
		ctx = context.WithValue(ctx, EmailKey, staff.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffIDFromContext extracts the staff id from request context
func GetStaffIDFromContext(ctx context.Context) (int, bool) {
	staffID, ok := ctx.Value(StaffIDKey).(int)
	return staffID, ok
}

// GetEmailFromContext extracts the email from request context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}
