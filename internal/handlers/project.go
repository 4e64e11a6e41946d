package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ppt-workbench-backend/internal/models"
	"ppt-workbench-backend/internal/services"
)

type ProjectHandler struct {
	projects *services.ProjectService
	slides   *services.SlideService
}

func NewProjectHandler(projects *services.ProjectService, slides *services.SlideService) *ProjectHandler {
	return &ProjectHandler{projects: projects, slides: slides}
}

// GenerateOutline godoc
// @Summary     Generate a presentation outline
// @Description Runs the text model over the supplied content and persists the resulting project with one pending slide per outline entry.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       request body models.GenerateOutlineRequest true "Source content, slide count (1-30), style mode and locale"
// @Success     200 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/project/generate-outline [post]
func (h *ProjectHandler) GenerateOutline(c *gin.Context) {
	var req models.GenerateOutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	project, err := h.projects.GenerateOutline(c.Request.Context(), req)
	if err != nil {
		respondError(c, "failed to generate outline", err)
		return
	}

	c.JSON(http.StatusOK, models.NewProjectResponse(project))
}

// GetProject godoc
// @Summary     Get a project with its slides
// @Tags        projects
// @Produce     json
// @Param       id path string true "Project ID"
// @Success     200 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/project/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	project, err := h.projects.GetProject(id)
	if err != nil {
		respondError(c, "failed to get project", err)
		return
	}

	c.JSON(http.StatusOK, models.NewProjectResponse(project))
}

// DeleteProject godoc
// @Summary     Delete a project
// @Description Deletes the project and all of its slides.
// @Tags        projects
// @Produce     json
// @Param       id path string true "Project ID"
// @Success     200 {object} models.DeleteResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/project/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	if err := h.projects.DeleteProject(id); err != nil {
		respondError(c, "failed to delete project", err)
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Success: true})
}

// GenerateImages godoc
// @Summary     Generate images for all pending slides of a project
// @Description Iterates slides in page order and regenerates every slide that is not already completed. Per-slide failures are counted and do not abort the batch.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       id path string true "Project ID"
// @Param       request body models.GenerateAllImagesRequest false "Optional API key override"
// @Success     200 {object} models.BatchGenerateResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/project/{id}/generate-images [post]
func (h *ProjectHandler) GenerateImages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var req models.GenerateAllImagesRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.slides.GenerateAll(c.Request.Context(), id, req.GeminiAPIKey)
	if err != nil {
		respondError(c, "failed to generate images", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
