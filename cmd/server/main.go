package main

import (
	"fmt"
	"log"

	"splitbill/internal/config"
	"splitbill/internal/handler"
	"splitbill/internal/ocr"
	"splitbill/internal/ocr/mistral"
	"splitbill/internal/port"
	"splitbill/internal/router"
	"splitbill/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("main: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ocr.RegisterProvider("mistral", func(c *config.OCRConfig) (port.OCRProvider, error) {
		return mistral.NewClient(c), nil
	})

	var provider port.OCRProvider
	if cfg.OCR.APIKey == "" {
		log.Printf("main: no OCR API key configured, bill processing is disabled")
	} else {
		provider, err = ocr.NewProvider(&cfg.OCR)
		if err != nil {
			return fmt.Errorf("creating ocr provider: %w", err)
		}
	}

	bills := service.NewBillService(provider, &cfg.OCR, &cfg.Upload)
	ocrHandler := handler.NewOCRHandler(bills)
	healthHandler := handler.NewHealthHandler(cfg, provider)

	r := router.Setup(cfg, ocrHandler, healthHandler)

	log.Printf("main: listening on %s (env=%s)", cfg.Server.Port, cfg.Server.Environment)
	return r.Run(cfg.Server.Port)
}
