// Package respond writes the envelope shared by every API endpoint:
// {success, data, message, timestamp}.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func JSON(w http.ResponseWriter, status int, success bool, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope{
		Success:   success,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes a failure envelope with no data.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, false, nil, message)
}
