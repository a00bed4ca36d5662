package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// responder writes JSON responses and reports encode failures through the
// server's logger.
type responder struct {
	logger *zap.Logger
}

// JSON writes data with the given status code.
func (rs *responder) JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Error("encoding response", zap.Error(err))
	}
}

// Error writes a JSON error body.
func (rs *responder) Error(w http.ResponseWriter, status int, message string) {
	rs.JSON(w, status, map[string]string{"error": message})
}
