package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"ppt-workbench-backend/internal/ai"
	"ppt-workbench-backend/internal/document"
	"ppt-workbench-backend/internal/export"
	"ppt-workbench-backend/internal/gemini"
	"ppt-workbench-backend/internal/models"
	"ppt-workbench-backend/internal/store"
)

// respondError maps service errors onto the HTTP taxonomy: 404 for absent
// entities/artifacts, 400 for input and precondition failures, 502 for
// provider failures, 500 otherwise.
func respondError(c *gin.Context, action string, err error) {
	var incomplete *export.IncompleteError

	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, export.ErrArtifactNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: action, Message: err.Error()})
	case errors.As(err, &incomplete),
		errors.Is(err, ai.ErrMissingAPIKey),
		errors.Is(err, document.ErrUnsupportedFormat),
		errors.Is(err, document.ErrParseFailure):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: action, Message: err.Error()})
	case errors.Is(err, ai.ErrMalformedResponse),
		errors.Is(err, ai.ErrNoImage),
		errors.Is(err, gemini.ErrUpstream):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: action, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: action, Message: err.Error()})
	}
}
