package handler

import (
	"github.com/gin-gonic/gin"

	"splitbill/internal/config"
	"splitbill/internal/domain"
	"splitbill/internal/port"
)

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	cfg      *config.Config
	provider port.OCRProvider
}

func NewHealthHandler(cfg *config.Config, provider port.OCRProvider) *HealthHandler {
	return &HealthHandler{cfg: cfg, provider: provider}
}

// Check godoc
// @Summary Service health
// @Produce json
// @Success 200 {object} APIResponse
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status, checks := h.evaluate()
	RespondOK(c, "Health check", gin.H{
		"status": status,
		"checks": checks,
	})
}

// Detailed godoc
// @Summary Detailed service health
// @Produce json
// @Success 200 {object} APIResponse
// @Router /health/detailed [get]
func (h *HealthHandler) Detailed(c *gin.Context) {
	status, checks := h.evaluate()
	RespondOK(c, "Health check", gin.H{
		"status":      status,
		"checks":      checks,
		"environment": h.cfg.Server.Environment,
		"ocr": gin.H{
			"provider":   h.cfg.OCR.Provider,
			"ocr_model":  h.cfg.OCR.OCRModel,
			"chat_model": h.cfg.OCR.ChatModel,
		},
	})
}

func (h *HealthHandler) evaluate() (domain.HealthStatus, gin.H) {
	keyCheck := "configured"
	if h.cfg.OCR.APIKey == "" {
		keyCheck = "not_configured"
	}
	providerCheck := "available"
	if h.provider == nil {
		providerCheck = "unavailable"
	}

	bad := 0
	if keyCheck != "configured" {
		bad++
	}
	if providerCheck != "available" {
		bad++
	}

	status := domain.HealthHealthy
	switch bad {
	case 1:
		status = domain.HealthDegraded
	case 2:
		status = domain.HealthUnhealthy
	}

	return status, gin.H{
		"api_key":      keyCheck,
		"ocr_provider": providerCheck,
	}
}
