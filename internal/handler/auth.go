package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/unisolve/backend/internal/service"
	"github.com/unisolve/backend/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.authService.Login(req.UserID, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingField):
		writeError(w, http.StatusBadRequest, "User ID and password are required!")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User ID not found!")
	case errors.Is(err, service.ErrIncorrectPassword):
		writeError(w, http.StatusUnauthorized, "Incorrect password!")
	case err != nil:
		slog.Error("login failed", "error", err, "user_id", req.UserID)
		writeError(w, http.StatusInternalServerError, "Failed to log in")
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"token":   token,
		})
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string  `json:"user_id"`
		Username string  `json:"username"`
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Nickname *string `json:"user_nickname"`
		School   *string `json:"school"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.authService.Register(service.RegisterInput{
		UserID:   req.UserID,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
		School:   req.School,
	})
	switch {
	case errors.Is(err, service.ErrMissingField):
		writeError(w, http.StatusBadRequest, "All fields are required!")
	case errors.Is(err, validation.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "Invalid email address!")
	case errors.Is(err, service.ErrDuplicateUser):
		writeError(w, http.StatusConflict, "User ID already exists!")
	case err != nil:
		slog.Error("registration failed", "error", err, "user_id", req.UserID)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "success",
			"message": "User registered successfully!",
		})
	}
}

// ExistUser reports whether the identifier is still free, for signup forms.
func (h *AuthHandler) ExistUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := decodeJSON(r, &req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required!")
		return
	}

	exists, err := h.authService.Exists(req.UserID)
	if err != nil {
		slog.Error("existence check failed", "error", err, "user_id", req.UserID)
		writeError(w, http.StatusInternalServerError, "Failed to check user id")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"isNotExist": !exists})
}
