package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ppt-workbench-backend/internal/models"
	"ppt-workbench-backend/internal/services"
)

type ExportHandler struct {
	exports *services.ExportService
}

func NewExportHandler(exports *services.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// ExportPDF godoc
// @Summary     Export a project as a PDF deck
// @Description Renders one 1280x720 page per slide with the generated image full-bleed. Every slide must be completed with an image first.
// @Tags        export
// @Produce     json
// @Param       projectId path string true "Project ID"
// @Success     200 {object} models.ExportResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/export/pdf/{projectId} [post]
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	h.export(c, h.exports.ExportPDF, "failed to export pdf")
}

// ExportPPTX godoc
// @Summary     Export a project as a PowerPoint deck
// @Description One 16:9 slide per page with the generated image full-bleed. Every slide must be completed with an image first.
// @Tags        export
// @Produce     json
// @Param       projectId path string true "Project ID"
// @Success     200 {object} models.ExportResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/export/pptx/{projectId} [post]
func (h *ExportHandler) ExportPPTX(c *gin.Context) {
	h.export(c, h.exports.ExportPPTX, "failed to export pptx")
}

// ExportImages godoc
// @Summary     Export slide images as a ZIP archive
// @Description Packs the decoded slide images into a ZIP named slide-<pageNumber>.<ext>. Every slide must be completed with an image first.
// @Tags        export
// @Produce     json
// @Param       projectId path string true "Project ID"
// @Success     200 {object} models.ExportResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/export/images/{projectId} [post]
func (h *ExportHandler) ExportImages(c *gin.Context) {
	h.export(c, h.exports.ExportImages, "failed to export images")
}

func (h *ExportHandler) export(c *gin.Context, run func(uuid.UUID) (string, error), action string) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	downloadURL, err := run(projectID)
	if err != nil {
		respondError(c, action, err)
		return
	}

	c.JSON(http.StatusOK, models.ExportResponse{DownloadURL: downloadURL})
}

// Download godoc
// @Summary     Download an exported artifact
// @Tags        export
// @Produce     application/octet-stream
// @Param       filename path string true "Artifact filename"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/export/download/{filename} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	filename := c.Param("filename")

	data, err := h.exports.GetArtifact(filename)
	if err != nil {
		respondError(c, "failed to download export", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentTypeFor(filename), data)
}

// Cleanup godoc
// @Summary     Remove exported artifacts older than the given age
// @Tags        export
// @Produce     json
// @Param       maxAgeHours query int true "Remove artifacts older than this many hours"
// @Success     200 {object} models.CleanupResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/export/cleanup [delete]
func (h *ExportHandler) Cleanup(c *gin.Context) {
	hours, err := strconv.Atoi(c.Query("maxAgeHours"))
	if err != nil || hours <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid maxAgeHours", Message: "maxAgeHours must be a positive integer"})
		return
	}

	removed, err := h.exports.Cleanup(time.Duration(hours) * time.Hour)
	if err != nil {
		respondError(c, "failed to clean up exports", err)
		return
	}

	c.JSON(http.StatusOK, models.CleanupResponse{Removed: removed})
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".pptx":
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case ".zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
