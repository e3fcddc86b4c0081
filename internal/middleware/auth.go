package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/nada/admin/internal/models"
)

type contextKey string

const sessionKey contextKey = "session"

// AdminChecker reports whether a user currently holds the admin role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// SessionAuth validates the bearer session token, rejects revoked sessions
// and rechecks the admin role on every request. revoked may be nil.
func SessionAuth(issuer *SessionIssuer, admins AdminChecker, revoked RevocationList) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authorization header required"))
				return
			}

			sess, err := issuer.Parse(tokenString)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired session"))
				return
			}

			if revoked != nil {
				isRevoked, err := revoked.IsRevoked(r.Context(), sess.ID)
				if err != nil {
					log.Printf("[auth] revocation check session=%s failed: %v", sess.ID, err)
					writeJSON(w, http.StatusServiceUnavailable, models.NewErrorResponse("Session check unavailable"))
					return
				}
				if isRevoked {
					writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Session has been signed out"))
					return
				}
			}

			isAdmin, err := admins.IsAdmin(r.Context(), sess.UserID)
			if err != nil || !isAdmin {
				writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Admin role required"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// WithSession returns ctx carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext returns the request's session, or nil outside SessionAuth.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey).(*Session)
	return sess
}

// GetUserID extracts the acting admin's user ID from context.
func GetUserID(ctx context.Context) string {
	if sess := SessionFromContext(ctx); sess != nil {
		return sess.UserID
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
