package res

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

func Json(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes {"error": msg, "status": "<reason phrase>"}.
func Error(w http.ResponseWriter, msg string, statusCode int) {
	Json(w, errorBody{Error: msg, Status: http.StatusText(statusCode)}, statusCode)
}
