package handler

import (
	"log/slog"
	"net/http"

	"github.com/unisolve/backend/internal/service"
)

type UniversityHandler struct {
	universityService *service.UniversityService
}

func NewUniversityHandler(universityService *service.UniversityService) *UniversityHandler {
	return &UniversityHandler{universityService: universityService}
}

func (h *UniversityHandler) List(w http.ResponseWriter, r *http.Request) {
	universities, err := h.universityService.All()
	if err != nil {
		slog.Error("failed to load universities", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load universities")
		return
	}

	data := make([]map[string]any, 0, len(universities))
	for _, u := range universities {
		data = append(data, map[string]any{
			"university_id": u.ID,
			"name":          u.Name,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"universities": data})
}
