package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Machine-readable error codes carried in the error envelope.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// MessageServerError is the only message ever returned with CodeInternalError.
const MessageServerError = "Server error"

// ErrorBody is the code/message pair inside an error envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	OK    bool      `json:"ok"`
	Error ErrorBody `json:"error"`
}

// DataResponse wraps a created resource: {"ok":true,"data":...}.
type DataResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
}

// RespondJSON sends a JSON response with the given status code.
// The status line is already sent when encoding fails, so the error is only logged.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "status", statusCode, "error", err.Error())
	}
}

// RespondData sends {"ok":true,"data":data}.
func RespondData(w http.ResponseWriter, data any, statusCode int) {
	RespondJSON(w, DataResponse{OK: true, Data: data}, statusCode)
}

// RespondError sends the error envelope with a machine-readable code.
func RespondError(w http.ResponseWriter, message string, code string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: ErrorBody{Code: code, Message: message}}, statusCode)
}

// RespondInternalError sends the generic 500 envelope. The cause is never echoed.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, MessageServerError, CodeInternalError, http.StatusInternalServerError)
}
