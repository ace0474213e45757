package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/easeaico/zetazen/internal/session"
	"github.com/easeaico/zetazen/internal/types"
)

type contextKey string

const (
	sessionKey contextKey = "session"
	userIDKey  contextKey = "userID"
)

var (
	ErrMissingAuthorization = errors.New("authorization header missing")
	ErrInvalidAuthorization = errors.New("invalid authorization format")
)

// SessionResolver maps an anon id to its session.
type SessionResolver interface {
	Resolve(ctx context.Context, anonID string) (*types.Session, error)
}

// TokenParser validates a user token and returns the user id.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// BearerToken extracts the token from an Authorization: Bearer header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingAuthorization
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrInvalidAuthorization
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", ErrInvalidAuthorization
	}
	return token, nil
}

// AnonSession resolves the bearer anon id to a session and stores it in the context.
func AnonSession(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			anonID, err := BearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, AuthFailureMessage(err), "UNAUTHORIZED")
				return
			}
			sess, err := resolver.Resolve(r.Context(), anonID)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					writeError(w, http.StatusNotFound, "Session not found", "SESSION_NOT_FOUND")
					return
				}
				slog.Error("failed to resolve session", "error", err.Error())
				writeError(w, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
		})
	}
}

// UserJWT requires a valid user token and stores the user id in the context.
func UserJWT(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, AuthFailureMessage(err), "UNAUTHORIZED")
				return
			}
			userID, err := parser.ParseToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token", "UNAUTHORIZED")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

// SessionFromContext returns the session set by AnonSession.
func SessionFromContext(ctx context.Context) (*types.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*types.Session)
	return sess, ok && sess != nil
}

// UserIDFromContext returns the user id set by UserJWT.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// WithSession returns ctx carrying sess.
func WithSession(ctx context.Context, sess *types.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// WithUserID returns ctx carrying a user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// AuthFailureMessage is the client-facing text for a BearerToken error.
func AuthFailureMessage(err error) string {
	if errors.Is(err, ErrMissingAuthorization) {
		return "Authorization header missing"
	}
	return "Invalid authorization format"
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": code})
}
