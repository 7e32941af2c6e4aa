package attendance

import (
	"errors"
	"net/http"
	"time"

	"gymdesk/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.DateOnly, s)
	return t, err == nil
}

// @Summary      Class roster
// @Description  Athletes checked into a class on a date, with weekly usage per athlete
// @Tags         classes,attendance
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Param        date query string false "Date (YYYY-MM-DD), defaults to today in the gym timezone"
// @Success      200 {object} attendance.Roster
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /classes/{classID}/roster [get]
func (h *Handler) Roster(c *gin.Context) {
	classID, ok := api.ParamID(c, "classID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	date, ok := parseDate(c.Query("date"))
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}

	roster, err := h.service.Roster(c.Request.Context(), classID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch roster"})
		return
	}

	c.JSON(http.StatusOK, roster)
}

// @Summary      Athlete usage
// @Description  Weekly and total class usage against the active plan. Advisory only.
// @Tags         athletes,attendance
// @Produce      json
// @Security     BearerAuth
// @Param        athleteID path int true "Athlete ID"
// @Success      200 {object} attendance.Usage
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /athletes/{athleteID}/usage [get]
func (h *Handler) Usage(c *gin.Context) {
	athleteID, ok := api.ParamID(c, "athleteID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid athlete ID"})
		return
	}

	usage, err := h.service.UsageFor(c.Request.Context(), athleteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute usage"})
		return
	}

	c.JSON(http.StatusOK, usage)
}

// @Summary      Attendance analytics
// @Description  Admin-only: check-ins per day and per class over [from, to)
// @Tags         admin,attendance
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "Start date (YYYY-MM-DD), defaults to 30 days before to"
// @Param        to   query string false "End date, exclusive (YYYY-MM-DD), defaults to tomorrow in the gym timezone"
// @Success      200 {object} attendance.Analytics
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/analytics/attendance [get]
func (h *Handler) Analytics(c *gin.Context) {
	from, okFrom := parseDate(c.Query("from"))
	to, okTo := parseDate(c.Query("to"))
	if !okFrom || !okTo {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}

	stats, err := h.service.Analytics(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "'from' must be before 'to'"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
