package ocr

import (
	"fmt"
	"net/http"
	"strings"

	"splitbill/internal/domain"
)

// Classifier maps provider error content to a domain error. Provider APIs do
// not share a typed error contract, so classification is best-effort matching
// on status codes and error text. Keeping it behind a function type lets the
// heuristics be unit-tested against message fixtures and swapped if a
// provider changes its error format.
type Classifier func(provider string, statusCode int, message string, retryAfterSecs int) error

var authMarkers = []string{"unauthorized", "authentication", "invalid api key", "api key"}
var forbiddenMarkers = []string{"forbidden", "permission denied", "access denied"}
var rateMarkers = []string{"rate limit", "too many requests", "quota exceeded"}

// Classify is the default Classifier.
//
// Authentication failures map to ErrProviderUnavailable rather than an auth
// error: a bad provider key is a server-side misconfiguration, and callers
// should see the service as unavailable, not themselves as unauthenticated.
func Classify(provider string, statusCode int, message string, retryAfterSecs int) error {
	lower := strings.ToLower(message)

	switch {
	case statusCode == http.StatusUnauthorized || containsAny(lower, authMarkers):
		return fmt.Errorf("%w: %s: %s", domain.ErrProviderUnavailable, provider, message)
	case statusCode == http.StatusForbidden || containsAny(lower, forbiddenMarkers):
		return fmt.Errorf("%w: %s: %s", domain.ErrProviderForbidden, provider, message)
	case statusCode == http.StatusTooManyRequests || containsAny(lower, rateMarkers):
		baseErr := fmt.Errorf("%s API error (status %d): %s", provider, statusCode, message)
		return NewRateLimitError(provider, baseErr, retryAfterSecs)
	default:
		return fmt.Errorf("%w: %s API error (status %d): %s", domain.ErrOCRProcessing, provider, statusCode, message)
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
