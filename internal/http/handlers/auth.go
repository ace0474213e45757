package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/easeaico/zetazen/internal/auth"
	httpmiddleware "github.com/easeaico/zetazen/internal/http/middleware"
	"github.com/easeaico/zetazen/internal/types"
	"github.com/easeaico/zetazen/pkg/logging"
)

// Authenticator registers and signs in users.
type Authenticator interface {
	Register(ctx context.Context, name, email, password string) (*types.User, string, error)
	Login(ctx context.Context, email, password string) (*types.User, string, error)
	User(ctx context.Context, id string) (*types.User, error)
	UpdateProfile(ctx context.Context, id string, update types.UserUpdate) (*types.User, error)
}

// AuthHandler serves /api/auth and /api/users.
type AuthHandler struct {
	auth   Authenticator
	logger *logging.Logger
}

func NewAuthHandler(a Authenticator, logger *logging.Logger) *AuthHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthHandler{auth: a, logger: logger}
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  *types.User `json:"user"`
}

// Register creates an account.
// POST /api/auth/register {name, email, password}
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	user, token, err := h.auth.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			writeError(w, http.StatusConflict, err.Error(), "EMAIL_TAKEN")
		case errors.Is(err, auth.ErrInvalidName), errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		default:
			h.logger.Error("failed to register user", "error", err)
			internalError(w)
		}
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token, User: user})
}

// Login exchanges credentials for a token.
// POST /api/auth/login {email, password}
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	user, token, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS")
			return
		}
		h.logger.Error("failed to log in", "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, User: user})
}

// Me returns the signed-in user.
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED")
		return
	}
	user, err := h.auth.User(r.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found", "USER_NOT_FOUND")
			return
		}
		h.logger.Error("failed to load user", "user_id", userID, "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
