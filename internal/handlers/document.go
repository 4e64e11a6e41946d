package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"ppt-workbench-backend/internal/document"
	"ppt-workbench-backend/internal/models"
)

// maxUploadSize caps document uploads at 10MB.
const maxUploadSize = 10 << 20

type DocumentHandler struct{}

func NewDocumentHandler() *DocumentHandler {
	return &DocumentHandler{}
}

// ParseDocument godoc
// @Summary     Extract plain text from an uploaded document
// @Description Accepts txt, md, docx, pdf, xlsx, xls and csv files up to 10MB and returns the extracted text.
// @Tags        documents
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Document to parse"
// @Success     200 {object} models.ParseDocumentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/document/parse [post]
func (h *DocumentHandler) ParseDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file is required", Message: err.Error()})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large", Message: "maximum upload size is 10MB"})
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if !document.Supported(ext) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "unsupported file format",
			Message: "supported formats: " + strings.Join(document.SupportedExtensions, ", "),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to open upload", Message: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read upload", Message: err.Error()})
		return
	}

	content, err := document.Parse(data, fileHeader.Filename)
	if err != nil {
		respondError(c, "failed to parse document", err)
		return
	}

	c.JSON(http.StatusOK, models.ParseDocumentResponse{Content: content})
}
