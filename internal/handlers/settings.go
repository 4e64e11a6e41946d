package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"ppt-workbench-backend/internal/models"
	"ppt-workbench-backend/internal/store"
)

type SettingsHandler struct {
	store *store.Store
}

func NewSettingsHandler(st *store.Store) *SettingsHandler {
	return &SettingsHandler{store: st}
}

// GetSettings godoc
// @Summary     Read persisted settings
// @Description Returns the stored settings with the API key masked.
// @Tags        settings
// @Produce     json
// @Success     200 {object} map[string]string
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.store.GetSettings()
	if err != nil {
		respondError(c, "failed to read settings", err)
		return
	}

	if key, ok := settings["gemini_api_key"]; ok && key != "" {
		settings["gemini_api_key"] = maskKey(key)
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary     Update persisted settings
// @Description Accepts only the enumerated setting keys and rejects anything else.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Param       request body models.UpdateSettingsRequest true "Settings to store"
// @Success     200 {object} models.DeleteResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	for key := range req {
		if !store.KnownSettingKey(key) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "unknown setting key",
				Message: key + " is not one of " + strings.Join(store.SettingKeys, ", "),
			})
			return
		}
	}

	for key, value := range req {
		if err := h.store.SetSetting(key, value); err != nil {
			respondError(c, "failed to write settings", err)
			return
		}
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Success: true})
}

// maskKey keeps the first and last four characters of an API key visible.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
