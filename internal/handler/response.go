package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bikerent/internal/repository"
	"bikerent/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
// Domain errors surface verbatim; mapping to a response is the transport
// layer's job, which is this function.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrBikeNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrUserNotExistent),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidBikeID),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidLocation):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrBikeUnavailable),
		errors.Is(err, service.ErrUserDuplicate),
		errors.Is(err, service.ErrNoActiveRent):
		return http.StatusConflict

	// Authentication errors
	case errors.Is(err, service.ErrUserPassword):
		return http.StatusUnauthorized

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
