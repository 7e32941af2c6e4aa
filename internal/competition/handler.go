package competition

import (
	"errors"
	"net/http"

	"gymdesk/internal/api"
	"gymdesk/internal/athlete"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCompetitionNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Competition not found"})
	case errors.Is(err, ErrEntryNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Entry not found"})
	case errors.Is(err, athlete.ErrAthleteNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Athlete not found"})
	case errors.Is(err, ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Athlete already registered"})
	case errors.Is(err, ErrAlreadyWithdrawn):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Entry already withdrawn"})
	case errors.Is(err, ErrInvalidDate):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid event_date, expected YYYY-MM-DD"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

// ListCompetitions godoc
// @Summary      List competitions
// @Tags         competitions
// @Produce      json
// @Security     BearerAuth
// @Param        upcoming query bool false "Only competitions from today on"
// @Success      200 {array} competition.Competition
// @Failure      500 {object} api.ErrorResponse
// @Router       /competitions [get]
func (h *Handler) ListCompetitions(c *gin.Context) {
	comps, err := h.service.ListCompetitions(c.Request.Context(), c.Query("upcoming") == "true")
	if err != nil {
		respondError(c, err, "Failed to fetch competitions")
		return
	}
	c.JSON(http.StatusOK, comps)
}

// CreateCompetition godoc
// @Summary      Create a competition
// @Tags         admin,competitions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body competition.CompetitionRequest true "Competition"
// @Success      201 {object} competition.Competition
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/competitions [post]
func (h *Handler) CreateCompetition(c *gin.Context) {
	var req CompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	comp, err := h.service.CreateCompetition(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create competition")
		return
	}
	c.JSON(http.StatusCreated, comp)
}

// ListEntries godoc
// @Summary      List entries
// @Tags         competitions
// @Produce      json
// @Security     BearerAuth
// @Param        competitionID path int true "Competition ID"
// @Success      200 {array} competition.EntryWithAthlete
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /competitions/{competitionID}/entries [get]
func (h *Handler) ListEntries(c *gin.Context) {
	id, ok := api.ParamID(c, "competitionID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid competition ID"})
		return
	}

	entries, err := h.service.ListEntries(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Register godoc
// @Summary      Register an athlete
// @Description  One active entry per athlete and competition
// @Tags         competitions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        competitionID path int true "Competition ID"
// @Param        request body competition.EntryRequest true "Entry"
// @Success      201 {object} competition.Entry
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /competitions/{competitionID}/entries [post]
func (h *Handler) Register(c *gin.Context) {
	id, ok := api.ParamID(c, "competitionID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid competition ID"})
		return
	}

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	entry, err := h.service.Register(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to register athlete")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// Withdraw godoc
// @Summary      Withdraw an entry
// @Tags         competitions
// @Produce      json
// @Security     BearerAuth
// @Param        entryID path int true "Entry ID"
// @Success      200 {object} competition.Entry
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /entries/{entryID}/withdraw [post]
func (h *Handler) Withdraw(c *gin.Context) {
	id, ok := api.ParamID(c, "entryID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid entry ID"})
		return
	}

	entry, err := h.service.Withdraw(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to withdraw entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}
