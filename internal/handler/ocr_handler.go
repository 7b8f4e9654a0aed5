package handler

import (
	"fmt"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"splitbill/internal/domain"
	"splitbill/internal/service"
)

// OCRHandler serves the bill processing endpoints.
type OCRHandler struct {
	bills service.BillService
}

func NewOCRHandler(bills service.BillService) *OCRHandler {
	return &OCRHandler{bills: bills}
}

// ProcessBill godoc
// @Summary Process a single bill image
// @Description Runs OCR on an uploaded bill image and extracts structured bill data
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Bill image (jpeg or png)"
// @Success 200 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /ocr/process-bill [post]
func (h *OCRHandler) ProcessBill(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		HandleError(c, domain.ErrMissingFile)
		return
	}
	defer file.Close()

	result, err := h.bills.ProcessBill(c.Request.Context(), fileInput(file, header))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, "Bill processed successfully", result)
}

// ProcessMultipleBills godoc
// @Summary Process multiple bill images
// @Description Runs OCR on a batch of bill images, isolating per-file failures
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Bill images (jpeg or png)"
// @Success 200 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Router /ocr/process-multiple-bills [post]
func (h *OCRHandler) ProcessMultipleBills(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		HandleError(c, domain.ErrMissingFile)
		return
	}

	headers := form.File["files"]
	inputs := make([]service.FileInput, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			HandleError(c, fmt.Errorf("opening %s: %w", header.Filename, err))
			return
		}
		opened = append(opened, f)
		inputs = append(inputs, fileInput(f, header))
	}

	result, err := h.bills.ProcessBills(c.Request.Context(), inputs)
	if err != nil {
		HandleError(c, err)
		return
	}

	msg := fmt.Sprintf("Processed %d/%d bills successfully", result.SuccessfulImages, result.TotalImages)
	if result.FailedImages > 0 {
		msg = fmt.Sprintf("%s, %d failed", msg, result.FailedImages)
	}
	RespondOK(c, msg, result)
}

// UploadTest godoc
// @Summary Validate an upload without processing it
// @Description Checks file type and size constraints and echoes upload metadata
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to validate"
// @Success 200 {object} APIResponse
// @Failure 422 {object} APIResponse
// @Router /ocr/upload-test [post]
func (h *OCRHandler) UploadTest(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		HandleError(c, domain.ErrMissingFile)
		return
	}
	defer file.Close()

	info, err := h.bills.CheckFile(fileInput(file, header))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, "File upload test successful", info)
}

func fileInput(file multipart.File, header *multipart.FileHeader) service.FileInput {
	return service.FileInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}
}
