package router

import (
	"github.com/gin-gonic/gin"

	"splitbill/internal/config"
	"splitbill/internal/handler"
	"splitbill/internal/middleware"
)

// Setup wires middleware and routes onto a fresh gin engine.
func Setup(cfg *config.Config, ocrHandler *handler.OCRHandler, healthHandler *handler.HealthHandler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.ProcessTime())
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/", func(c *gin.Context) {
		handler.RespondOK(c, "Bill OCR API", gin.H{
			"endpoints": gin.H{
				"process_bill":           "/ocr/process-bill",
				"process_multiple_bills": "/ocr/process-multiple-bills",
				"upload_test":            "/ocr/upload-test",
				"health":                 "/health",
			},
		})
	})

	r.GET("/health", healthHandler.Check)
	r.GET("/health/detailed", healthHandler.Detailed)

	ocrGroup := r.Group("/ocr")
	{
		ocrGroup.POST("/process-bill", ocrHandler.ProcessBill)
		ocrGroup.POST("/process-multiple-bills", ocrHandler.ProcessMultipleBills)
		ocrGroup.POST("/upload-test", ocrHandler.UploadTest)
	}

	return r
}
