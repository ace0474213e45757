package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/easeaico/zetazen/internal/auth"
	httpmiddleware "github.com/easeaico/zetazen/internal/http/middleware"
	"github.com/easeaico/zetazen/internal/types"
)

const maxNameLength = 100

type validationError struct {
	message string
	code    string
}

// UpdateProfile changes the signed-in user's name or avatar.
// PATCH /api/users/update {name?, image?}
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required", "UNAUTHORIZED")
		return
	}

	var body map[string]any
	if !decodeJSON(w, r, &body) {
		return
	}
	update, verr := parseUserUpdate(body)
	if verr != nil {
		writeError(w, http.StatusBadRequest, verr.message, verr.code)
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found", "USER_NOT_FOUND")
			return
		}
		h.logger.Error("failed to update user", "user_id", userID, "error", err)
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func parseUserUpdate(body map[string]any) (types.UserUpdate, *validationError) {
	var update types.UserUpdate
	name, hasName := body["name"]
	image, hasImage := body["image"]
	if !truthy(name) && !truthy(image) {
		return update, &validationError{"At least one field (name or image) must be provided", "MISSING_FIELDS"}
	}

	if hasName {
		s, ok := name.(string)
		if !ok {
			return update, &validationError{"Name must be a string", "INVALID_NAME"}
		}
		if utf8.RuneCountInString(s) > maxNameLength {
			return update, &validationError{"Name must be 100 characters or less", "NAME_TOO_LONG"}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return update, &validationError{"Name cannot be empty", "EMPTY_NAME"}
		}
		update.Name = &s
	}

	if hasImage {
		s, ok := image.(string)
		if !ok {
			return update, &validationError{"Image must be a string", "INVALID_IMAGE"}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			update.ClearImage = true
		} else {
			u, err := url.Parse(s)
			if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
				return update, &validationError{"Image must be a valid URL", "INVALID_IMAGE_URL"}
			}
			update.Image = &s
		}
	}
	return update, nil
}

// truthy mirrors the client's notion of a provided field.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}
