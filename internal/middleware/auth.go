package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/unisolve/backend/internal/ctxkeys"
	"github.com/unisolve/backend/internal/service"
)

// RequireAuth validates the bearer token and puts the caller's identifier in
// the request context. Missing, expired, and invalid tokens all short-circuit
// with 401 before the handler body runs.
func RequireAuth(authService *service.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID, err := authService.UserIDFromRequest(r)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			ctx := ctxkeys.WithUserID(r.Context(), userID)
			next(w, r.WithContext(ctx))
		}
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	message := "Invalid token!"
	switch {
	case errors.Is(err, service.ErrMissingToken):
		message = "Authorization token is missing!"
	case errors.Is(err, service.ErrExpiredToken):
		message = "Token has expired!"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": message})
}
