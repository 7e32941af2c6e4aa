package payment

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/athlete"
	"gymdesk/internal/membership"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Record a payment
// @Description  Sells a membership: creates the subscription and the payment together and queues a receipt email
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body payment.PaymentRequest true "Payment"
// @Success      201 {object} payment.Receipt
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /payments [post]
func (h *Handler) Create(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	receipt, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, athlete.ErrAthleteNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Athlete not found"})
		case errors.Is(err, membership.ErrMembershipNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Membership not found"})
		case errors.Is(err, ErrInvalidStartDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid start_date, expected YYYY-MM-DD"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

// @Summary      Payment history
// @Tags         athletes,payments
// @Produce      json
// @Security     BearerAuth
// @Param        athleteID path int true "Athlete ID"
// @Param        limit query int false "Page size" default(50)
// @Param        offset query int false "Offset" default(0)
// @Success      200 {array} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /athletes/{athleteID}/payments [get]
func (h *Handler) ListForAthlete(c *gin.Context) {
	athleteID, ok := api.ParamID(c, "athleteID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid athlete ID"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	payments, err := h.service.ListByAthlete(c.Request.Context(), athleteID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
