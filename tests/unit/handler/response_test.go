package handler_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"splitbill/internal/domain"
	"splitbill/internal/handler"
	"splitbill/internal/ocr"
)

func TestNewSuccessEnvelope_TrimsMessage(t *testing.T) {
	env, err := handler.NewSuccessEnvelope("  done  ", nil, "req-1")
	assert.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, "done", env.Message)
	assert.Equal(t, "req-1", env.RequestID)
	assert.False(t, env.Timestamp.IsZero())
}

func TestNewSuccessEnvelope_EmptyMessage(t *testing.T) {
	_, err := handler.NewSuccessEnvelope("   ", nil, "")
	assert.Error(t, err)
}

func TestNewSuccessEnvelope_TruncatesLongMessage(t *testing.T) {
	env, err := handler.NewSuccessEnvelope(strings.Repeat("a", 600), nil, "")
	assert.NoError(t, err)
	assert.Len(t, env.Message, 500)
}

func TestNewErrorEnvelope_ValidCode(t *testing.T) {
	env, err := handler.NewErrorEnvelope("failed", "OCR_PROCESSING_ERROR", nil, "")
	assert.NoError(t, err)
	assert.False(t, env.Success)
	assert.Equal(t, "OCR_PROCESSING_ERROR", env.Error.Code)
}

func TestNewErrorEnvelope_RejectsBadCode(t *testing.T) {
	for _, code := range []string{"lowercase", "HAS SPACE", "has-dash", "mixedCase"} {
		_, err := handler.NewErrorEnvelope("failed", code, nil, "")
		assert.Error(t, err, "code %q", code)
	}
}

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrMissingFile, 422, "MISSING_FILE"},
		{domain.ErrUnsupportedFileType, 422, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, 422, "FILE_TOO_LARGE"},
		{domain.ErrTooManyFiles, 422, "TOO_MANY_FILES"},
		{domain.ErrAPIKeyMissing, 503, "SERVICE_UNAVAILABLE"},
		{domain.ErrProviderUnavailable, 503, "SERVICE_UNAVAILABLE"},
		{domain.ErrProviderForbidden, 403, "ACCESS_DENIED"},
		{domain.ErrNoTextExtracted, 500, "OCR_PROCESSING_ERROR"},
		{domain.ErrOCRProcessing, 500, "OCR_PROCESSING_ERROR"},
		{ocr.NewRateLimitError("mistral", assert.AnError, 10), 429, "RATE_LIMIT_EXCEEDED"},
		{assert.AnError, 500, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		status, code, msg := handler.MapDomainError(tc.err)
		assert.Equal(t, tc.wantStatus, status, "error %v", tc.err)
		assert.Equal(t, tc.wantCode, code, "error %v", tc.err)
		assert.NotEmpty(t, msg)
	}
}

func TestMapDomainError_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("processing upload: %w", domain.ErrFileTooLarge)
	status, code, _ := handler.MapDomainError(wrapped)
	assert.Equal(t, 422, status)
	assert.Equal(t, "FILE_TOO_LARGE", code)
}
