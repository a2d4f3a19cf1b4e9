package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the uniform error body.
func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]any{"status": "error", "message": message})
}

// decodeJSON decodes a JSON request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// timestampLayout is the client-facing timestamp convention.
const timestampLayout = "2006.01.02 15:04"

func formatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(timestampLayout)
}
