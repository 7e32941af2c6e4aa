package athlete

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

// @Summary      List athletes
// @Tags         athletes
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Status filter" Enums(ACTIVE,INACTIVE,SUSPENDED)
// @Param        tag    query string false "Tag filter"
// @Param        q      query string false "Name search"
// @Success      200 {array} athlete.Athlete
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /athletes [get]
func (h *Handler) ListAthletes(c *gin.Context) {
	filter := ListFilter{
		Status: Status(strings.ToUpper(c.Query("status"))),
		Tag:    c.Query("tag"),
		Search: strings.TrimSpace(c.Query("q")),
	}

	athletes, err := h.service.ListAthletes(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, "Failed to fetch athletes")
		return
	}

	c.JSON(http.StatusOK, athletes)
}

// @Summary      Register an athlete
// @Tags         athletes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body athlete.AthleteRequest true "Athlete payload"
// @Success      201 {object} athlete.Athlete
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /athletes [post]
func (h *Handler) CreateAthlete(c *gin.Context) {
	var req AthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	a, err := h.service.CreateAthlete(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create athlete")
		return
	}

	c.JSON(http.StatusCreated, a)
}

// @Summary      Get an athlete
// @Tags         athletes
// @Produce      json
// @Security     BearerAuth
// @Param        athleteID path int true "Athlete ID"
// @Success      200 {object} athlete.Athlete
// @Failure      404 {object} api.ErrorResponse
// @Router       /athletes/{athleteID} [get]
func (h *Handler) GetAthlete(c *gin.Context) {
	id, ok := api.ParamID(c, "athleteID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid athlete ID"})
		return
	}

	a, err := h.service.GetAthlete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to fetch athlete")
		return
	}

	c.JSON(http.StatusOK, a)
}

// @Summary      Update an athlete
// @Tags         athletes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        athleteID path int true "Athlete ID"
// @Param        request body athlete.AthleteRequest true "Athlete payload"
// @Success      200 {object} athlete.Athlete
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /athletes/{athleteID} [put]
func (h *Handler) UpdateAthlete(c *gin.Context) {
	id, ok := api.ParamID(c, "athleteID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid athlete ID"})
		return
	}

	var req AthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	a, err := h.service.UpdateAthlete(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err, "Failed to update athlete")
		return
	}

	c.JSON(http.StatusOK, a)
}

// @Summary      Change athlete status
// @Tags         athletes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        athleteID path int true "Athlete ID"
// @Param        request body athlete.StatusRequest true "New status"
// @Success      200 {object} athlete.Athlete
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /athletes/{athleteID}/status [post]
func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := api.ParamID(c, "athleteID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid athlete ID"})
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	a, err := h.service.SetStatus(c.Request.Context(), id, Status(req.Status))
	if err != nil {
		h.respondError(c, err, "Failed to update status")
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrAthleteNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Athlete not found"})
	case errors.Is(err, ErrPINTaken):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "PIN already in use"})
	case errors.Is(err, ErrInvalidPIN), errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}
