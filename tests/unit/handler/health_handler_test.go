package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"splitbill/internal/config"
	"splitbill/internal/handler"
	"splitbill/internal/port"
	"splitbill/mocks"
)

func healthConfig(apiKey string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		OCR: config.OCRConfig{
			Provider:  "mistral",
			APIKey:    apiKey,
			OCRModel:  "mistral-ocr-latest",
			ChatModel: "mistral-large-latest",
		},
	}
}

func getContext(t *testing.T, path string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var err error
	c.Request, err = http.NewRequest(http.MethodGet, path, nil)
	assert.NoError(t, err)
	return c, w
}

func healthPayload(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data, ok := resp.Data.(map[string]interface{})
	assert.True(t, ok)
	return data
}

func TestHealthCheck_Healthy(t *testing.T) {
	var provider port.OCRProvider = new(mocks.MockOCRProvider)
	h := handler.NewHealthHandler(healthConfig("key"), provider)

	c, w := getContext(t, "/health")
	h.Check(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := healthPayload(t, w)
	assert.Equal(t, "healthy", data["status"])

	checks := data["checks"].(map[string]interface{})
	assert.Equal(t, "configured", checks["api_key"])
	assert.Equal(t, "available", checks["ocr_provider"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	var provider port.OCRProvider = new(mocks.MockOCRProvider)
	h := handler.NewHealthHandler(healthConfig(""), provider)

	c, w := getContext(t, "/health")
	h.Check(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := healthPayload(t, w)
	assert.Equal(t, "degraded", data["status"])
}

func TestHealthCheck_Unhealthy(t *testing.T) {
	h := handler.NewHealthHandler(healthConfig(""), nil)

	c, w := getContext(t, "/health")
	h.Check(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := healthPayload(t, w)
	assert.Equal(t, "unhealthy", data["status"])

	checks := data["checks"].(map[string]interface{})
	assert.Equal(t, "not_configured", checks["api_key"])
	assert.Equal(t, "unavailable", checks["ocr_provider"])
}

func TestHealthDetailed(t *testing.T) {
	var provider port.OCRProvider = new(mocks.MockOCRProvider)
	h := handler.NewHealthHandler(healthConfig("key"), provider)

	c, w := getContext(t, "/health/detailed")
	h.Detailed(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := healthPayload(t, w)
	assert.Equal(t, "test", data["environment"])

	ocrInfo := data["ocr"].(map[string]interface{})
	assert.Equal(t, "mistral", ocrInfo["provider"])
	assert.Equal(t, "mistral-ocr-latest", ocrInfo["ocr_model"])
}
