package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/easeaico/zetazen/internal/chat"
	httpmiddleware "github.com/easeaico/zetazen/internal/http/middleware"
	"github.com/easeaico/zetazen/internal/types"
	"github.com/easeaico/zetazen/pkg/logging"
)

// MessageStore appends and pages chat messages.
type MessageStore interface {
	Append(ctx context.Context, sessionID int64, role, content string, ts int64) (*types.Message, error)
	List(ctx context.Context, sessionID int64, before *int64, limit int) ([]types.Message, error)
}

// MessageHandler serves /api/messages.
type MessageHandler struct {
	messages MessageStore
	logger   *logging.Logger
}

func NewMessageHandler(messages MessageStore, logger *logging.Logger) *MessageHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &MessageHandler{messages: messages, logger: logger}
}

// List returns the session's messages oldest first.
// GET /api/messages?before=<ms>&limit=<n>
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := httpmiddleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization header missing", "UNAUTHORIZED")
		return
	}

	var before *int64
	if raw := r.URL.Query().Get("before"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid before parameter", "INVALID_BEFORE")
			return
		}
		before = &v
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	msgs, err := h.messages.List(r.Context(), sess.ID, before, limit)
	if err != nil {
		h.logger.Error("failed to list messages", "session_id", sess.ID, "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// Create stores a message authored by the client.
// POST /api/messages {role, content, timestamp}
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := httpmiddleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization header missing", "UNAUTHORIZED")
		return
	}

	var body struct {
		Role      string `json:"role"`
		Content   string `json:"content"`
		Timestamp any    `json:"timestamp"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	ts, valid := jsonInteger(body.Timestamp)
	if !valid {
		writeError(w, http.StatusBadRequest, "timestamp must be integer", "INVALID_TIMESTAMP")
		return
	}

	msg, err := h.messages.Append(r.Context(), sess.ID, body.Role, body.Content, ts)
	if err != nil {
		if code, ok := messageErrorCode(err); ok {
			writeError(w, http.StatusBadRequest, err.Error(), code)
			return
		}
		h.logger.Error("failed to save message", "session_id", sess.ID, "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func messageErrorCode(err error) (string, bool) {
	switch {
	case errors.Is(err, chat.ErrInvalidRole):
		return "INVALID_ROLE", true
	case errors.Is(err, chat.ErrEmptyContent):
		return "EMPTY_CONTENT", true
	case errors.Is(err, chat.ErrContentTooLong):
		return "CONTENT_TOO_LONG", true
	case errors.Is(err, chat.ErrInvalidTimestamp):
		return "INVALID_TIMESTAMP", true
	default:
		return "", false
	}
}
