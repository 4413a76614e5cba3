package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body for failed status API requests.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSONResponse writes a JSON response with the given status code
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeErrorResponse writes an error response in JSON format
func writeErrorResponse(w http.ResponseWriter, code, message string, statusCode int) {
	writeJSONResponse(w, statusCode, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
