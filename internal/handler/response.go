package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"splitbill/internal/domain"
	"splitbill/internal/middleware"
	"splitbill/internal/ocr"
)

// maxMessageLen bounds the human-readable message on every envelope.
const maxMessageLen = 500

var errorCodePattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIError holds machine-readable error details in the response.
type APIError struct {
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewSuccessEnvelope builds a success envelope. The message is trimmed and
// must be non-empty and within bounds.
func NewSuccessEnvelope(message string, data interface{}, requestID string) (*APIResponse, error) {
	message, err := normalizeMessage(message)
	if err != nil {
		return nil, err
	}
	return &APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: requestID,
	}, nil
}

// NewErrorEnvelope builds an error envelope. A non-empty code must be
// uppercase alphanumeric with underscores.
func NewErrorEnvelope(message, code string, details map[string]interface{}, requestID string) (*APIResponse, error) {
	message, err := normalizeMessage(message)
	if err != nil {
		return nil, err
	}
	if code != "" && !errorCodePattern.MatchString(code) {
		return nil, fmt.Errorf("error code must match [A-Z0-9_]+, got %q", code)
	}
	var apiErr *APIError
	if code != "" || len(details) > 0 {
		apiErr = &APIError{Code: code, Details: details}
	}
	return &APIResponse{
		Success:   false,
		Message:   message,
		Error:     apiErr,
		Timestamp: time.Now(),
		RequestID: requestID,
	}, nil
}

func normalizeMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("message cannot be empty")
	}
	if len(message) > maxMessageLen {
		message = message[:maxMessageLen]
	}
	return message, nil
}

// RespondOK sends a 200 success envelope.
func RespondOK(c *gin.Context, message string, data interface{}) {
	env, err := NewSuccessEnvelope(message, data, middleware.GetRequestID(c))
	if err != nil {
		env, _ = NewSuccessEnvelope("request completed", data, middleware.GetRequestID(c))
	}
	c.JSON(http.StatusOK, env)
}

// RespondError sends an error envelope with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	RespondErrorDetails(c, status, code, msg, nil)
}

// RespondErrorDetails sends an error envelope carrying structured details.
func RespondErrorDetails(c *gin.Context, status int, code, msg string, details map[string]interface{}) {
	env, err := NewErrorEnvelope(msg, code, details, middleware.GetRequestID(c))
	if err != nil {
		env, _ = NewErrorEnvelope("an internal error occurred", "INTERNAL_ERROR", nil, middleware.GetRequestID(c))
	}
	c.JSON(status, env)
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rateLimited *ocr.RateLimitError
	switch {
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "ocr provider rate limit exceeded"
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusUnprocessableEntity, "MISSING_FILE", "file field is required"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusUnprocessableEntity, "UNSUPPORTED_FILE_TYPE", err.Error()
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusUnprocessableEntity, "FILE_TOO_LARGE", err.Error()
	case errors.Is(err, domain.ErrTooManyFiles):
		return http.StatusUnprocessableEntity, "TOO_MANY_FILES", err.Error()
	case errors.Is(err, domain.ErrAPIKeyMissing):
		return http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "ocr service is not configured"
	case errors.Is(err, domain.ErrProviderUnavailable):
		return http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "ocr service is currently unavailable"
	case errors.Is(err, domain.ErrProviderForbidden):
		return http.StatusForbidden, "ACCESS_DENIED", "ocr provider access forbidden"
	case errors.Is(err, domain.ErrNoTextExtracted), errors.Is(err, domain.ErrOCRProcessing):
		return http.StatusInternalServerError, "OCR_PROCESSING_ERROR", "ocr processing failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error envelope.
// Unanticipated errors never echo their text to the caller; only the error's
// Go type is attached as metadata.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	requestID := middleware.GetRequestID(c)

	var rateLimited *ocr.RateLimitError
	if errors.As(err, &rateLimited) {
		c.Header("Retry-After", fmt.Sprintf("%d", int(rateLimited.RetryAfter.Seconds())))
	}

	log.Printf("handler.HandleError: [%s] %s: %v", requestID, code, err)

	if code == "INTERNAL_ERROR" {
		RespondErrorDetails(c, status, code, msg, map[string]interface{}{
			"error_type": fmt.Sprintf("%T", err),
		})
		return
	}
	RespondError(c, status, code, msg)
}
