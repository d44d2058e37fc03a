package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

type apiError struct {
	Error apiErrorBody `json:"error"`
}

type apiErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(apiError{
		Error: apiErrorBody{
			Message: fmt.Sprintf(format, args...),
			Type:    errType,
		},
	}); err != nil {
		slog.Error("writing error response", "error", err)
	}
}
