package settings

import (
	"errors"
	"net/http"

	"gymdesk/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Get gym settings
// @Tags         admin,settings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} settings.Settings
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/settings [get]
func (h *Handler) Get(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// @Summary      Update gym settings
// @Description  Admin-only: timezone, check-in window and expiry policy
// @Tags         admin,settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body settings.UpdateRequest true "Settings payload"
// @Success      200 {object} settings.Settings
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/settings [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	s, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidTimezone) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Unknown timezone"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, s)
}
