package class

import (
	"errors"
	"net/http"
	"strings"

	"gymdesk/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List classes
// @Description  Weekly schedule of active classes, optionally filtered by day
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        day query string false "Day of week" Enums(SUNDAY,MONDAY,TUESDAY,WEDNESDAY,THURSDAY,FRIDAY,SATURDAY)
// @Success      200 {array} class.Class
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /classes [get]
func (h *Handler) ListClasses(c *gin.Context) {
	day := Weekday(strings.ToUpper(c.Query("day")))

	classes, err := h.service.ListClasses(c.Request.Context(), day)
	if err != nil {
		if errors.Is(err, ErrInvalidSchedule) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid day"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// @Summary      Today's classes
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} class.Class
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /classes/today [get]
func (h *Handler) TodayClasses(c *gin.Context) {
	classes, err := h.service.TodayClasses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// @Summary      Get a class
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Success      200 {object} class.Class
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /classes/{classID} [get]
func (h *Handler) GetClass(c *gin.Context) {
	id, ok := api.ParamID(c, "classID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	class, err := h.service.GetClass(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to fetch class")
		return
	}

	c.JSON(http.StatusOK, class)
}

// @Summary      Create a class
// @Description  Admin-only: add a recurring weekly class
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body class.ClassRequest true "Class payload"
// @Success      201 {object} class.Class
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/classes [post]
func (h *Handler) CreateClass(c *gin.Context) {
	var req ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	class, err := h.service.CreateClass(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create class")
		return
	}

	c.JSON(http.StatusCreated, class)
}

// @Summary      Update a class
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Param        request body class.ClassRequest true "Class payload"
// @Success      200 {object} class.Class
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/classes/{classID} [put]
func (h *Handler) UpdateClass(c *gin.Context) {
	id, ok := api.ParamID(c, "classID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	class, err := h.service.UpdateClass(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err, "Failed to update class")
		return
	}

	c.JSON(http.StatusOK, class)
}

// @Summary      Deactivate a class
// @Tags         admin,classes
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/classes/{classID} [delete]
func (h *Handler) DeactivateClass(c *gin.Context) {
	id, ok := api.ParamID(c, "classID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	if err := h.service.DeactivateClass(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to deactivate class")
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Class deactivated"})
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrClassNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
	case errors.Is(err, ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class schedule"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
