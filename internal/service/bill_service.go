package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"splitbill/internal/config"
	"splitbill/internal/domain"
	"splitbill/internal/extract"
	"splitbill/internal/ocr"
	"splitbill/internal/port"
)

// FileInput is the DTO for an inbound bill image.
type FileInput struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// BillResult is the outcome of processing a single bill image.
type BillResult struct {
	Status         domain.ProcessingStatus `json:"status"`
	Bill           *domain.Bill            `json:"bill_info"`
	RawText        string                  `json:"raw_text"`
	ProcessingTime float64                 `json:"processing_time"`
	Model          string                  `json:"model,omitempty"`
}

// BatchResult aggregates the outcomes of a multi-image request.
// Bills preserves input order among successes and Errors preserves input
// order among failures; the two lists are not correlated by index.
type BatchResult struct {
	TotalImages         int          `json:"total_images"`
	SuccessfulImages    int          `json:"successful_images"`
	FailedImages        int          `json:"failed_images"`
	Bills               []BillResult `json:"bills"`
	Errors              []string     `json:"errors"`
	TotalProcessingTime float64      `json:"total_processing_time"`
}

// UploadInfo echoes validated file metadata without processing.
type UploadInfo struct {
	Filename    string `json:"filename"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
}

// BillService defines the bill processing contract.
type BillService interface {
	ProcessBill(ctx context.Context, input FileInput) (*BillResult, error)
	ProcessBills(ctx context.Context, inputs []FileInput) (*BatchResult, error)
	CheckFile(input FileInput) (*UploadInfo, error)
}

type billService struct {
	provider port.OCRProvider
	ocrCfg   *config.OCRConfig
	uploads  *config.UploadConfig
}

// NewBillService creates a new BillService implementation. The provider may
// be nil when no API key is configured; processing then fails with
// domain.ErrAPIKeyMissing.
func NewBillService(provider port.OCRProvider, ocrCfg *config.OCRConfig, uploads *config.UploadConfig) BillService {
	return &billService{
		provider: provider,
		ocrCfg:   ocrCfg,
		uploads:  uploads,
	}
}

// ValidateFile checks a declared content type and size against the upload
// config. It is a pure check: an unknown or missing content type is rejected,
// not permitted by default.
func ValidateFile(contentType string, size int64, cfg *config.UploadConfig) error {
	allowed := false
	for _, t := range cfg.AllowedTypes {
		if strings.EqualFold(strings.TrimSpace(contentType), t) {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %q; allowed: %s",
			domain.ErrUnsupportedFileType, contentType, strings.Join(cfg.AllowedTypes, ", "))
	}
	if size > cfg.MaxFileSize {
		return fmt.Errorf("%w: %d bytes exceeds maximum of %d bytes",
			domain.ErrFileTooLarge, size, cfg.MaxFileSize)
	}
	return nil
}

func (s *billService) ProcessBill(ctx context.Context, input FileInput) (*BillResult, error) {
	start := time.Now()

	if err := ValidateFile(input.ContentType, input.Size, s.uploads); err != nil {
		return nil, err
	}
	if s.provider == nil {
		return nil, domain.ErrAPIKeyMissing
	}

	data, err := io.ReadAll(input.Reader)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	// Stage to a temp file so a failed provider call never leaks the upload.
	staged, cleanup, err := stageTemp(data, input.Filename)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	imageBytes, err := os.ReadFile(staged)
	if err != nil {
		return nil, fmt.Errorf("reading staged file: %w", err)
	}

	rawText, err := s.provider.ExtractText(ctx, port.OCRInput{
		FileBytes: imageBytes,
		Filename:  input.Filename,
	})
	if err != nil {
		return nil, err
	}

	bill := s.extractBill(ctx, rawText)

	return &BillResult{
		Status:         domain.StatusSuccess,
		Bill:           bill,
		RawText:        rawText,
		ProcessingTime: time.Since(start).Seconds(),
		Model:          s.ocrCfg.OCRModel,
	}, nil
}

// extractBill turns raw OCR text into a Bill. Extraction failures are never
// raised: once OCR succeeded, a partial result with diagnostics is more
// useful to the caller than a hard error.
func (s *billService) extractBill(ctx context.Context, rawText string) *domain.Bill {
	if strings.TrimSpace(rawText) == "" {
		return domain.EmptyBill(map[string]interface{}{"raw_ocr_text": rawText})
	}

	prompt := ocr.BuildBillExtractionPrompt(rawText)
	reply, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		log.Printf("billService.extractBill: extraction call failed: %v", err)
		return domain.EmptyBill(map[string]interface{}{
			"raw_ocr_text":     rawText,
			"extraction_error": err.Error(),
		})
	}

	return extract.RecoverBill(reply)
}

func (s *billService) ProcessBills(ctx context.Context, inputs []FileInput) (*BatchResult, error) {
	start := time.Now()

	if len(inputs) == 0 {
		return nil, domain.ErrMissingFile
	}
	if len(inputs) > s.uploads.MaxBatchFiles {
		return nil, fmt.Errorf("%w: %d files, maximum is %d",
			domain.ErrTooManyFiles, len(inputs), s.uploads.MaxBatchFiles)
	}

	result := &BatchResult{
		TotalImages: len(inputs),
		Bills:       []BillResult{},
		Errors:      []string{},
	}

	for i, input := range inputs {
		billResult, err := s.ProcessBill(ctx, input)
		if err != nil {
			result.FailedImages++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", input.Filename, err))
			log.Printf("billService.ProcessBills: file %d/%d %s failed: %v",
				i+1, len(inputs), input.Filename, err)
			continue
		}
		result.SuccessfulImages++
		result.Bills = append(result.Bills, *billResult)
		log.Printf("billService.ProcessBills: file %d/%d %s processed",
			i+1, len(inputs), input.Filename)
	}

	result.TotalProcessingTime = time.Since(start).Seconds()
	return result, nil
}

func (s *billService) CheckFile(input FileInput) (*UploadInfo, error) {
	if err := ValidateFile(input.ContentType, input.Size, s.uploads); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(input.Reader)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return &UploadInfo{
		Filename:    input.Filename,
		FileSize:    int64(len(data)),
		ContentType: input.ContentType,
	}, nil
}

// stageTemp writes data to a temp file named after the original extension and
// returns its path with a cleanup func. Cleanup is safe to call even when the
// provider call that follows fails.
func stageTemp(data []byte, filename string) (string, func(), error) {
	f, err := os.CreateTemp("", "bill-*"+filepath.Ext(filename))
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", err)
	}
	return path, cleanup, nil
}
