package ocr_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"splitbill/internal/domain"
	"splitbill/internal/ocr"
)

func TestClassify_Unauthorized(t *testing.T) {
	err := ocr.Classify("mistral", 401, `{"message": "Unauthorized"}`, 0)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestClassify_AuthMarkerWithoutStatus(t *testing.T) {
	err := ocr.Classify("mistral", 400, "Invalid API key provided", 0)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestClassify_Forbidden(t *testing.T) {
	err := ocr.Classify("mistral", 403, "Forbidden", 0)
	assert.True(t, errors.Is(err, domain.ErrProviderForbidden))
}

func TestClassify_RateLimit(t *testing.T) {
	err := ocr.Classify("mistral", 429, "Too Many Requests", 30)

	var rateLimited *ocr.RateLimitError
	assert.True(t, errors.As(err, &rateLimited))
	assert.Equal(t, "mistral", rateLimited.Provider)
	assert.Equal(t, 30*time.Second, rateLimited.RetryAfter)
}

func TestClassify_RateLimitDefaultRetry(t *testing.T) {
	err := ocr.Classify("mistral", 429, "quota exceeded", 0)

	var rateLimited *ocr.RateLimitError
	assert.True(t, errors.As(err, &rateLimited))
	assert.Equal(t, 60*time.Second, rateLimited.RetryAfter)
}

func TestClassify_GenericError(t *testing.T) {
	err := ocr.Classify("mistral", 500, "internal server error", 0)
	assert.True(t, errors.Is(err, domain.ErrOCRProcessing))
	assert.Contains(t, err.Error(), "status 500")
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, ocr.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, ocr.ParseRetryAfterHeader("Wed, 21 Oct 2026 07:28:00 GMT"))
	assert.Equal(t, 42, ocr.ParseRetryAfterHeader("42"))
}

func TestRateLimitError_Unwrap(t *testing.T) {
	base := errors.New("provider said no")
	err := ocr.NewRateLimitError("mistral", base, 10)
	assert.True(t, errors.Is(err, base))
	assert.Contains(t, err.Error(), "mistral")
}
