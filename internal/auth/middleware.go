package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/redmonkez12/carbon-tracker/internal/httputil"
	"github.com/redmonkez12/carbon-tracker/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	UserIDContextKey    ContextKey = "user_id"
	UserEmailContextKey ContextKey = "user_email"
)

// Authenticator resolves a bearer token to a Principal
type Authenticator interface {
	Authenticate(token string) (*Principal, error)
}

// Middleware handles authentication for protected routes
type Middleware struct {
	authenticator Authenticator
}

func NewMiddleware(authenticator Authenticator) *Middleware {
	return &Middleware{authenticator: authenticator}
}

// RequireAuth rejects requests without a valid bearer token.
// No token is 401; any token that fails verification is 403.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.authenticator.Authenticate(bearerToken(r))
		if err != nil {
			if errors.Is(err, ErrMissingToken) {
				httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
				return
			}
			logging.GetLoggerFromContext(r.Context()).Warn("token rejected", "error", err.Error())
			httputil.RespondErrorWithCode(w, "invalid or expired token", httputil.CodeInvalidToken, http.StatusForbidden)
			return
		}

		ctx := ContextWithUser(r.Context(), principal.UserID, principal.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken returns whatever follows the scheme in the Authorization header,
// or "" when there is nothing after it. A non-Bearer scheme still yields a token
// that then fails verification.
func bearerToken(r *http.Request) string {
	_, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// ContextWithUser attaches the authenticated user to ctx
func ContextWithUser(ctx context.Context, userID uuid.UUID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDContextKey, userID)
	return context.WithValue(ctx, UserEmailContextKey, email)
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts the user email from the request context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailContextKey).(string)
	return email, ok
}
