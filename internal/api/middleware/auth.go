package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/coiffurelab/salon-booking-service/internal/api/handlers"
)

// Identity headers are set by the API gateway after token validation.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	RoleAdmin = "admin"
)

type contextKey int

const (
	userIDKey contextKey = iota
	isAdminKey
)

// Logger is the leveled printf logger subset used here.
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth extracts the caller identity from gateway headers and stores it in the
// request context. Requests without a valid user id are rejected.
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get(HeaderUserID)
			userID, err := uuid.Parse(rawID)
			if err != nil || userID == uuid.Nil {
				logger.Warn("auth: missing or invalid %s header on %s %s", HeaderUserID, r.Method, r.URL.Path)
				handlers.RespondJSON(w, http.StatusUnauthorized, handlers.ErrorResponse{Error: "authentication required"})
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, isAdminKey, r.Header.Get(HeaderUserRole) == RoleAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated caller's id.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// IsAdmin reports whether the caller carries the admin role.
func IsAdmin(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(isAdminKey).(bool)
	return isAdmin
}
