package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dhruv/estate-hub/backend/internal/models"
)

// Health reports whether the backing store is reachable.
type Health interface {
	Connected() bool
}

// UserFinder resolves a user id from a verified token to a live record.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// TokenVerifier validates a bearer token and returns the user id it
// was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type ctxKey int

const userContextKey ctxKey = iota

// WithUser returns a context carrying the resolved user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the user resolved by RequireAuth, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// RequireAuth gates a route on a valid bearer token whose user still
// exists. The store-availability check runs first so an unreachable
// database surfaces as 503, not as a bogus auth failure. A valid token
// referencing a deleted user fails exactly like a bad token.
func RequireAuth(db Health, users UserFinder, tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !db.Connected() {
				writeMessage(w, http.StatusServiceUnavailable, "Database not available. Please set up MongoDB to access protected routes.")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeMessage(w, http.StatusUnauthorized, "Access token required")
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireRole gates a route on the resolved user's role. It must run
// after RequireAuth; an unresolved identity is a 401, never a 403.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				writeMessage(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if user.Role != role {
				writeMessage(w, http.StatusForbidden, fmt.Sprintf("Access denied. %s role required.", role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
