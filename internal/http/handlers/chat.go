package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/easeaico/zetazen/internal/chat"
	httpmiddleware "github.com/easeaico/zetazen/internal/http/middleware"
	"github.com/easeaico/zetazen/internal/mood"
	"github.com/easeaico/zetazen/internal/prompt"
	"github.com/easeaico/zetazen/internal/safety"
	"github.com/easeaico/zetazen/internal/types"
	"github.com/easeaico/zetazen/pkg/logging"
)

// Chatter produces assistant replies.
type Chatter interface {
	Reply(ctx context.Context, history []prompt.Turn, input string, moodHint mood.Label) string
	Send(ctx context.Context, sessionID int64, text string) (*chat.Outcome, error)
}

// ChatHandler serves /api/chat and /api/gemini.
type ChatHandler struct {
	chat   Chatter
	logger *logging.Logger
}

func NewChatHandler(c Chatter, logger *logging.Logger) *ChatHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatHandler{chat: c, logger: logger}
}

type chatResponse struct {
	Reply            string            `json:"reply"`
	Crisis           bool              `json:"crisis"`
	Mood             string            `json:"mood,omitempty"`
	Resources        *safety.Resources `json:"resources,omitempty"`
	UserMessage      *types.Message    `json:"user_message"`
	AssistantMessage *types.Message    `json:"assistant_message"`
}

// Send stores the user's message and returns the assistant reply.
// POST /api/chat {content}
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	sess, ok := httpmiddleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization header missing", "UNAUTHORIZED")
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	out, err := h.chat.Send(r.Context(), sess.ID, body.Content)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyContent):
			writeError(w, http.StatusBadRequest, err.Error(), "EMPTY_CONTENT")
		case errors.Is(err, chat.ErrContentTooLong):
			writeError(w, http.StatusBadRequest, err.Error(), "CONTENT_TOO_LONG")
		default:
			h.logger.Error("failed to send chat message", "session_id", sess.ID, "error", err)
			internalError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:            out.AssistantMessage.Content,
		Crisis:           out.Crisis,
		Mood:             string(out.Mood),
		Resources:        out.Resources,
		UserMessage:      out.UserMessage,
		AssistantMessage: out.AssistantMessage,
	})
}

type replyTurn struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// Gemini is the stateless reply endpoint used by the chat page.
// POST /api/gemini {messages, userInput}
func (h *ChatHandler) Gemini(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Messages  []replyTurn `json:"messages"`
		UserInput any         `json:"userInput"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	history := make([]prompt.Turn, 0, len(body.Messages))
	for _, m := range body.Messages {
		role := types.RoleAssistant
		if m.Role == types.RoleUser {
			role = types.RoleUser
		}
		history = append(history, prompt.Turn{Role: role, Content: stringify(m.Content)})
	}

	reply := h.chat.Reply(r.Context(), history, stringify(body.UserInput), mood.None)
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
