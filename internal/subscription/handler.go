package subscription

import (
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

// @Summary      List an athlete's subscriptions
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        athleteID path int true "Athlete ID"
// @Success      200 {array} subscription.Detail
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /athletes/{athleteID}/subscriptions [get]
func (h *Handler) ListForAthlete(c *gin.Context) {
	athleteID, ok := api.ParamID(c, "athleteID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid athlete ID"})
		return
	}

	subs, err := h.service.ListForAthlete(c.Request.Context(), athleteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

// @Summary      Run the subscription expiry sweep now
// @Description  Admin-only: same job the scheduler runs nightly
// @Tags         admin,subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} subscription.ExpiryReport
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/jobs/expire-subscriptions [post]
func (h *Handler) ExpireNow(c *gin.Context) {
	report, err := h.service.ExpireDue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Expiry sweep failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}
