package domain

import "errors"

var (
	ErrMissingFile         = errors.New("file field is required")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrTooManyFiles        = errors.New("too many files in batch")
	ErrInvalidBill         = errors.New("invalid bill data")
	ErrNoTextExtracted     = errors.New("no text extracted from image")
	ErrOCRProcessing       = errors.New("ocr processing failed")
	ErrProviderUnavailable = errors.New("ocr provider is unavailable")
	ErrProviderForbidden   = errors.New("ocr provider access forbidden")
	ErrAPIKeyMissing       = errors.New("ocr provider api key is not configured")
)
