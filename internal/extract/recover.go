// Package extract turns free-text LLM output into Bill records. Recovery is
// total: any input yields a usable Bill, pushing failure detail into the
// bill's additional_info instead of an error return.
package extract

import (
	"errors"
	"strings"

	"splitbill/internal/domain"
)

// RecoverBill locates a JSON object embedded in text and builds a Bill from
// it. It never fails: when no object is found, or decoding or validation
// fails, it returns a placeholder Bill carrying the raw text and the failure
// reason under additional_info.
func RecoverBill(text string) *domain.Bill {
	span, ok := jsonSpan(text)
	if !ok {
		return domain.EmptyBill(map[string]interface{}{
			"raw_ocr_text": text,
		})
	}

	bill, err := domain.NewBill([]byte(span))
	if err == nil {
		return bill
	}

	info := map[string]interface{}{
		"raw_ocr_text": text,
	}
	if errors.Is(err, domain.ErrInvalidBill) {
		info["error"] = err.Error()
	} else {
		info["parse_error"] = err.Error()
	}
	return domain.EmptyBill(info)
}

// jsonSpan returns the greedy first-{ to last-} span of text, matching
// across newlines. Reports false when no complete span exists.
func jsonSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return "", false
	}
	return text[start : end+1], true
}
