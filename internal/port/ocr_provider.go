package port

import "context"

// OCRInput carries the data needed for text extraction from an image.
type OCRInput struct {
	FileBytes []byte
	Filename  string
}

// OCRProvider abstracts the external OCR and text-generation capability.
// ExtractText performs optical character recognition on an image and returns
// the raw recognized text. Complete sends a prompt to the provider's
// text-generation model and returns the model's reply.
type OCRProvider interface {
	ExtractText(ctx context.Context, input OCRInput) (string, error)
	Complete(ctx context.Context, prompt string) (string, error)
}
