package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated user id attached by
// AuthMiddleware, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

type Middleware struct {
	Auth *auth.Service
}

func NewMiddleware(authService *auth.Service) *Middleware {
	return &Middleware{Auth: authService}
}

// AuthMiddleware guards owner-scoped routes. It requires a Bearer token in
// the Authorization header, verifies it, and attaches the resolved user id to
// the request context. Every failure yields 401 before the handler runs.
func (m *Middleware) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(w, "No token provided")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := m.Auth.VerifyToken(r.Context(), tokenStr)
		if err != nil {
			unauthorized(w, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
