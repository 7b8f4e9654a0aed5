package ocr

import (
	"fmt"

	"splitbill/internal/config"
	"splitbill/internal/port"
)

// ProviderFactory is a function that creates an OCRProvider from a provider config.
type ProviderFactory func(cfg *config.OCRConfig) (port.OCRProvider, error)

// registry of OCR provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an OCR provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider creates an OCRProvider from a provider config using the registered factory.
func NewProvider(cfg *config.OCRConfig) (port.OCRProvider, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown ocr provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
