// Package handler serves the REST endpoints that sit next to the Connect
// services: group and backup export, backup import and the health check.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/mmynk/moneysplits/internal/models"
)

// Error codes returned in ErrorResponse.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeNothingToExport  = "NOTHING_TO_EXPORT"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeValidationFailed = "VALIDATION_FAILED"
)

// ErrorResponse is the body of every failed REST call.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithJSON writes data as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// RespondWithError writes an ErrorResponse.
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		RespondWithError(w, r, http.StatusBadRequest, CodeValidationFailed, err.Error())
	case errors.Is(err, models.ErrNothingToExport):
		RespondWithError(w, r, http.StatusBadRequest, CodeNothingToExport, err.Error())
	case models.IsNotFound(err):
		RespondWithError(w, r, http.StatusNotFound, CodeNotFound, err.Error())
	default:
		slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, CodeInternalError, "internal server error")
	}
}
