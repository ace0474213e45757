package handlers

import (
	"context"
	"errors"
	"net/http"

	httpmiddleware "github.com/easeaico/zetazen/internal/http/middleware"
	"github.com/easeaico/zetazen/internal/mood"
	"github.com/easeaico/zetazen/internal/types"
	"github.com/easeaico/zetazen/pkg/logging"
)

// MoodJournal records and reads mood logs.
type MoodJournal interface {
	Record(ctx context.Context, sessionID int64, label mood.Label, note string, ts int64) (*types.MoodLog, error)
	History(ctx context.Context, sessionID int64, r mood.Range) ([]types.MoodLog, error)
	Clear(ctx context.Context, sessionID int64) (int64, error)
	Summarize(ctx context.Context, sessionID int64, r mood.Range) (mood.Summary, error)
}

// MoodHandler serves /api/moods.
type MoodHandler struct {
	moods  MoodJournal
	logger *logging.Logger
}

func NewMoodHandler(moods MoodJournal, logger *logging.Logger) *MoodHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &MoodHandler{moods: moods, logger: logger}
}

// List returns journal entries newest first.
// GET /api/moods?range=7d|30d|all
func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, rng, ok := h.sessionAndRange(w, r)
	if !ok {
		return
	}
	logs, err := h.moods.History(r.Context(), sess.ID, rng)
	if err != nil {
		h.logger.Error("failed to list moods", "session_id", sess.ID, "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// Summary returns per-label counts for the journal chart.
// GET /api/moods/summary?range=7d|30d|all
func (h *MoodHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess, rng, ok := h.sessionAndRange(w, r)
	if !ok {
		return
	}
	summary, err := h.moods.Summarize(r.Context(), sess.ID, rng)
	if err != nil {
		h.logger.Error("failed to summarize moods", "session_id", sess.ID, "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Create stores one journal entry.
// POST /api/moods {mood, note?, ts?}
func (h *MoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := httpmiddleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization header missing", "UNAUTHORIZED")
		return
	}

	var body struct {
		Mood string `json:"mood"`
		Note any    `json:"note"`
		TS   any    `json:"ts"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	label, valid := mood.ParseLabel(body.Mood)
	if !valid {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":      "Invalid mood value",
			"code":       "INVALID_MOOD",
			"validMoods": mood.LabelStrings(),
		})
		return
	}

	var note string
	if body.Note != nil {
		s, isString := body.Note.(string)
		if !isString {
			writeError(w, http.StatusBadRequest, "Note must be a string", "INVALID_NOTE")
			return
		}
		note = s
	}

	var ts int64
	if body.TS != nil {
		v, valid := jsonInteger(body.TS)
		if !valid {
			writeError(w, http.StatusBadRequest, "ts must be integer", "INVALID_TS")
			return
		}
		ts = v
	}

	entry, err := h.moods.Record(r.Context(), sess.ID, label, note, ts)
	if err != nil {
		switch {
		case errors.Is(err, mood.ErrNoteTooLong):
			writeError(w, http.StatusBadRequest, "Note cannot exceed 1000 characters", "NOTE_TOO_LONG")
		case errors.Is(err, mood.ErrInvalidLabel):
			writeError(w, http.StatusBadRequest, "Invalid mood value", "INVALID_MOOD")
		default:
			h.logger.Error("failed to save mood", "session_id", sess.ID, "error", err)
			internalError(w)
		}
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// Delete removes every journal entry for the session.
// DELETE /api/moods
func (h *MoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := httpmiddleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization header missing", "UNAUTHORIZED")
		return
	}
	n, err := h.moods.Clear(r.Context(), sess.ID)
	if err != nil {
		h.logger.Error("failed to delete moods", "session_id", sess.ID, "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Successfully deleted all mood logs",
		"count":   n,
	})
}

func (h *MoodHandler) sessionAndRange(w http.ResponseWriter, r *http.Request) (*types.Session, mood.Range, bool) {
	sess, ok := httpmiddleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization header missing", "UNAUTHORIZED")
		return nil, "", false
	}
	rng, ok := mood.ParseRange(r.URL.Query().Get("range"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid range parameter. Must be 7d, 30d, or all", "INVALID_RANGE")
		return nil, "", false
	}
	return sess, rng, true
}
