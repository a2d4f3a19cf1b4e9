package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/unisolve/backend/internal/service"
	"github.com/unisolve/backend/internal/validation"
)

type VerificationHandler struct {
	verificationService *service.VerificationService
}

func NewVerificationHandler(verificationService *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

func (h *VerificationHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.verificationService.SendCode(r.Context(), req.Email)
	switch {
	case errors.Is(err, validation.ErrInvalidEmail):
		writeJSON(w, http.StatusBadRequest, map[string]any{"isSent": false, "error": "Invalid email address!"})
	case err != nil:
		slog.Error("failed to send verification code", "error", err, "email", req.Email)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"isSent": false, "error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"isSent": true})
	}
}

func (h *VerificationHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.verificationService.VerifyCode(req.Email, req.Code) {
		writeJSON(w, http.StatusOK, map[string]any{"isVerified": true})
		return
	}

	writeJSON(w, http.StatusBadRequest, map[string]any{"isVerified": false})
}
