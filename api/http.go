package api

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", "err", err)
	}
}

// writeError emits the structured failure body used across the API. Success
// and failure are always distinguishable from the body alone, not just the
// status code.
func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, map[string]any{"success": false, "error": msg}, status)
}
