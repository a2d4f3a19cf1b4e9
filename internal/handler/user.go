package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/unisolve/backend/internal/ctxkeys"
	"github.com/unisolve/backend/internal/repository"
	"github.com/unisolve/backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	loc         *time.Location
}

func NewUserHandler(userService *service.UserService, loc *time.Location) *UserHandler {
	return &UserHandler{
		userService: userService,
		loc:         loc,
	}
}

// Info handles GET /userinfo. A missing row should not occur for a valid
// token; it yields an empty result rather than an error.
func (h *UserHandler) Info(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	user, err := h.userService.Info(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{
				"message": "Data retrieved successfully",
				"data":    map[string]any{},
			})
			return
		}
		slog.Error("failed to load user info", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to load user info")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Data retrieved successfully",
		"data": map[string]any{
			"username":        user.Username,
			"email":           user.Email,
			"user_nickname":   user.Nickname,
			"school":          user.School,
			"major":           user.Major,
			"profile_picture": user.ProfilePicture,
			"role":            user.Role,
			"created_at":      formatTime(user.CreatedAt, h.loc),
		},
	})
}

// Update handles PUT /update_user. The update is a full overwrite: fields
// absent from the body are written as NULL, so clients resend the profile.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req struct {
		Username       *string `json:"username"`
		Email          *string `json:"email"`
		Nickname       *string `json:"user_nickname"`
		School         *string `json:"school"`
		Major          *string `json:"major"`
		ProfilePicture *string `json:"profile_picture"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.userService.Update(userID, service.UpdateProfileInput{
		Username:       req.Username,
		Email:          req.Email,
		Nickname:       req.Nickname,
		School:         req.School,
		Major:          req.Major,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		slog.Error("failed to update user", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

// Delete handles DELETE /delete_user (soft delete).
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.userService.Delete(userID)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrAlreadyDeleted):
		writeJSON(w, http.StatusConflict, map[string]any{"isDeleted": false})
	case err != nil:
		slog.Error("failed to delete user", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
	}
}
