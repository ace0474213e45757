package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	httpmiddleware "github.com/easeaico/zetazen/internal/http/middleware"
	"github.com/easeaico/zetazen/internal/session"
	"github.com/easeaico/zetazen/internal/types"
	"github.com/easeaico/zetazen/pkg/logging"
)

// SessionUpserter creates or refreshes anonymous sessions.
type SessionUpserter interface {
	Upsert(ctx context.Context, anonID string) (*types.Session, error)
}

// SessionHandler serves /api/sessions.
type SessionHandler struct {
	sessions SessionUpserter
	logger   *logging.Logger
}

func NewSessionHandler(sessions SessionUpserter, logger *logging.Logger) *SessionHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionHandler{sessions: sessions, logger: logger}
}

// Upsert registers the caller's anon id.
// POST /api/sessions/upsert with Authorization: Bearer <anon_id>
func (h *SessionHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	token, err := httpmiddleware.BearerToken(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, httpmiddleware.AuthFailureMessage(err), "UNAUTHORIZED")
		return
	}

	var body struct {
		AnonID any `json:"anon_id"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	anonID, ok := body.AnonID.(string)
	if !ok || strings.TrimSpace(anonID) == "" {
		writeError(w, http.StatusBadRequest, "anon_id must be a non-empty string", "INVALID_ANON_ID")
		return
	}
	if token != anonID {
		writeError(w, http.StatusBadRequest, "Authorization token does not match anon_id", "AUTH_MISMATCH")
		return
	}

	sess, err := h.sessions.Upsert(r.Context(), anonID)
	if err != nil {
		if errors.Is(err, session.ErrInvalidAnonID) {
			writeError(w, http.StatusBadRequest, err.Error(), "INVALID_ANON_ID")
			return
		}
		h.logger.Error("failed to upsert session", "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"session_id": sess.ID})
}
