package mistral

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"splitbill/internal/config"
	"splitbill/internal/domain"
	"splitbill/internal/ocr"
	"splitbill/internal/port"
)

const (
	ocrAPIURL  = "https://api.mistral.ai/v1/ocr"
	chatAPIURL = "https://api.mistral.ai/v1/chat/completions"
)

// Client implements port.OCRProvider using Mistral's OCR and chat APIs.
type Client struct {
	apiKey       string
	ocrModel     string
	chatModel    string
	temperature  float64
	ocrEndpoint  string
	chatEndpoint string
	classify     ocr.Classifier
	client       *http.Client
}

// NewClient creates a Mistral-based OCR provider from a provider config.
func NewClient(cfg *config.OCRConfig) *Client {
	return newClient(cfg, ocrAPIURL, chatAPIURL)
}

// NewClientWithEndpoints creates a client pointing at custom API endpoints (for testing).
func NewClientWithEndpoints(cfg *config.OCRConfig, ocrEndpoint, chatEndpoint string) *Client {
	return newClient(cfg, ocrEndpoint, chatEndpoint)
}

func newClient(cfg *config.OCRConfig, ocrEndpoint, chatEndpoint string) *Client {
	ocrModel := cfg.OCRModel
	if ocrModel == "" {
		ocrModel = "mistral-ocr-latest"
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "mistral-large-latest"
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.1
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:       cfg.APIKey,
		ocrModel:     ocrModel,
		chatModel:    chatModel,
		temperature:  temperature,
		ocrEndpoint:  ocrEndpoint,
		chatEndpoint: chatEndpoint,
		classify:     ocr.Classify,
		client:       &http.Client{Timeout: timeout},
	}
}

// SetClassifier replaces the provider-error classifier (for testing alternate
// heuristics against fixed message fixtures).
func (c *Client) SetClassifier(fn ocr.Classifier) {
	c.classify = fn
}

// ExtractText submits an image to the Mistral OCR API and returns the raw
// recognized text.
func (c *Client) ExtractText(ctx context.Context, input port.OCRInput) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(input.FileBytes)
	mimeType := mimeTypeForFilename(input.Filename)

	reqBody := map[string]interface{}{
		"model": c.ocrModel,
		"document": map[string]interface{}{
			"type":      "image_url",
			"image_url": fmt.Sprintf("data:%s;base64,%s", mimeType, encoded),
		},
		"include_image_base64": false,
	}

	respBody, err := c.post(ctx, c.ocrEndpoint, reqBody)
	if err != nil {
		return "", err
	}

	var resp ocrResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling ocr response: %w", err)
	}

	return extractText(&resp)
}

// Complete sends a prompt to the Mistral chat API at low temperature and
// returns the model's reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": c.chatModel,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": c.temperature,
	}

	respBody, err := c.post(ctx, c.chatEndpoint, reqBody)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling chat response: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty chat completion response", domain.ErrOCRProcessing)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) post(ctx context.Context, endpoint string, reqBody map[string]interface{}) ([]byte, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling mistral API: %v", domain.ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryAfter := ocr.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return nil, c.classify("mistral", resp.StatusCode, string(respBody), retryAfter)
	}
	return respBody, nil
}

// ocrResponse models the Mistral OCR API response. Which field carries the
// recognized text is not guaranteed across model versions, so all known
// variants are declared and probed in order.
type ocrResponse struct {
	Text    string    `json:"text"`
	Content string    `json:"content"`
	Choices []choice  `json:"choices"`
	Pages   []ocrPage `json:"pages"`
	Model   string    `json:"model"`
}

type ocrPage struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
	Text     string `json:"text"`
}

// chatResponse models the Mistral chat completions response.
type chatResponse struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// textExtractors is the ordered probe table for locating recognized text in
// an OCR response. First extractor yielding non-empty text wins.
var textExtractors = []struct {
	name string
	fn   func(*ocrResponse) string
}{
	{"text", func(r *ocrResponse) string { return r.Text }},
	{"content", func(r *ocrResponse) string { return r.Content }},
	{"choices", func(r *ocrResponse) string {
		if len(r.Choices) == 0 {
			return ""
		}
		return r.Choices[0].Message.Content
	}},
	{"pages", func(r *ocrResponse) string {
		var parts []string
		for _, p := range r.Pages {
			if p.Markdown != "" {
				parts = append(parts, p.Markdown)
			} else if p.Text != "" {
				parts = append(parts, p.Text)
			}
		}
		return strings.Join(parts, "\n")
	}},
}

func extractText(resp *ocrResponse) (string, error) {
	for _, e := range textExtractors {
		if text := strings.TrimSpace(e.fn(resp)); text != "" {
			return text, nil
		}
	}
	return "", domain.ErrNoTextExtracted
}

func mimeTypeForFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".avif":
		return "image/avif"
	default:
		// Safe fallback for unknown extensions
		return "image/jpeg"
	}
}
