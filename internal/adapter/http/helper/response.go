package helper

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"todos/internal/adapter/http/validation"
	"todos/internal/core/domain"
	"todos/internal/core/model/response"
	"todos/pkg/tracing"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	response := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		response.Message = message[0]
	}

	c.JSON(statusCode, response)
}

func SendError(c *gin.Context, statusCode int, code, message string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:    code,
			Message: message,
			Errors:  errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, err *domain.ValidationError) {
	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), validation.FormatValidationErrors(err.Errors))
}

func SendBadRequestError(c *gin.Context, field, message string) {
	SendError(c, http.StatusBadRequest, "BAD_REQUEST", message, []response.ValidationError{
		{Field: field, Message: message},
	})
}

func SendUnauthorizedError(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message, []response.ValidationError{
		{Field: "auth", Message: message},
	})
}

func SendNotFoundError(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, "NOT_FOUND", message, []response.ValidationError{
		{Field: "resource", Message: message},
	})
}

// SendInternalError never exposes err to the client.
func SendInternalError(c *gin.Context, err error) {
	tracing.AddSpanError(trace.SpanFromContext(c.Request.Context()), err)
	slog.ErrorContext(c.Request.Context(), "unhandled error", "path", c.FullPath(), "error", err)

	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", []response.ValidationError{
		{Field: "server", Message: "Internal server error"},
	})
}

// SendServiceError maps a domain error to its status code.
func SendServiceError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var unauthenticatedErr *domain.UnauthenticatedError

	switch {
	case errors.As(err, &validationErr):
		SendValidationError(c, validationErr)
	case errors.As(err, &unauthenticatedErr):
		SendUnauthorizedError(c, unauthenticatedErr.Reason)
	case errors.Is(err, domain.ErrUnauthenticated):
		SendUnauthorizedError(c, "Unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		SendNotFoundError(c, "Todo not found")
	case errors.Is(err, domain.ErrLoginTaken):
		SendValidationError(c, domain.NewValidationError(domain.FieldError{Field: "login", Message: err.Error()}))
	default:
		SendInternalError(c, err)
	}
}
