package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ppt-workbench-backend/internal/models"
	"ppt-workbench-backend/internal/services"
)

type SlideHandler struct {
	slides *services.SlideService
}

func NewSlideHandler(slides *services.SlideService) *SlideHandler {
	return &SlideHandler{slides: slides}
}

// GetSlide godoc
// @Summary     Get a single slide
// @Tags        slides
// @Produce     json
// @Param       id path string true "Slide ID"
// @Success     200 {object} models.SlideResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/slide/{id} [get]
func (h *SlideHandler) GetSlide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid slide id"})
		return
	}

	slide, err := h.slides.GetSlide(id)
	if err != nil {
		respondError(c, "failed to get slide", err)
		return
	}

	c.JSON(http.StatusOK, models.NewSlideResponse(slide))
}

// UpdateSlide godoc
// @Summary     Partially update a slide
// @Description Updates only the fields present in the body. An explicit null referenceImageUrl clears the stored reference image.
// @Tags        slides
// @Accept      json
// @Produce     json
// @Param       id path string true "Slide ID"
// @Param       request body models.UpdateSlideRequest true "Fields to update"
// @Success     200 {object} models.SlideResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/slide/{id} [patch]
func (h *SlideHandler) UpdateSlide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid slide id"})
		return
	}

	var req models.UpdateSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	if req.Status != nil && !models.ValidSlideStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid status", Message: "status must be one of pending, generating, completed, error"})
		return
	}

	slide, err := h.slides.UpdateSlide(id, req)
	if err != nil {
		respondError(c, "failed to update slide", err)
		return
	}

	c.JSON(http.StatusOK, models.NewSlideResponse(slide))
}

// GenerateImage godoc
// @Summary     Generate an image for one slide
// @Description Moves the slide to generating, calls the image model, and records completed with the data URI or error on failure. A failed regeneration keeps the previous image.
// @Tags        slides
// @Accept      json
// @Produce     json
// @Param       request body models.GenerateSlideImageRequest true "Slide ID, prompt and global style"
// @Success     200 {object} models.GenerateImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /api/slide/generate-image [post]
func (h *SlideHandler) GenerateImage(c *gin.Context) {
	var req models.GenerateSlideImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	imageURL, err := h.slides.GenerateImage(c.Request.Context(), req)
	if err != nil {
		respondError(c, "failed to generate image", err)
		return
	}

	c.JSON(http.StatusOK, models.GenerateImageResponse{ImageURL: imageURL})
}
