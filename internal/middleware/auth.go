package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dormdash/campus-eats/internal/api"
	"github.com/dormdash/campus-eats/internal/models"
	"github.com/dormdash/campus-eats/internal/service"
)

// contextKey is a type for context keys
type contextKey string

// SessionKey holds the request's models.Session
const SessionKey contextKey = "session"

// WithSession returns ctx carrying sess
func WithSession(ctx context.Context, sess models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// GetSession returns the request's session, or the logged-out default
func GetSession(ctx context.Context) models.Session {
	sess, ok := ctx.Value(SessionKey).(models.Session)
	if !ok {
		return models.NewSession()
	}
	return sess
}

func bearerToken(r *http.Request) (string, bool, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false, nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", true, errInvalidHeader
	}
	return parts[1], true, nil
}

var errInvalidHeader = errors.New("Invalid Authorization header format")

// Auth middleware for authenticating API requests with a bearer token
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, present, err := bearerToken(r)
			if !present {
				api.Unauthorized(w, "Authorization header required")
				return
			}
			if err != nil {
				api.Unauthorized(w, err.Error())
				return
			}

			sess, err := authService.SessionFromToken(token)
			if err != nil {
				api.Unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// OptionalAuth attaches the token's session when a valid bearer token is
// sent and the logged-out session otherwise
func OptionalAuth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := models.NewSession()

			token, present, err := bearerToken(r)
			if present {
				if err != nil {
					api.Unauthorized(w, err.Error())
					return
				}
				sess, err = authService.SessionFromToken(token)
				if err != nil {
					api.Unauthorized(w, "Invalid or expired token")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// RequireRole middleware for checking API roles
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r.Context())
			if !sess.LoggedIn {
				api.Unauthorized(w, "Unauthorized")
				return
			}

			allowed := false
			for _, role := range roles {
				if sess.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				api.Forbidden(w, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
