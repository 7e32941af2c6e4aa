package membership

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

// @Summary      List memberships
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Param        all query bool false "Include retired plans"
// @Success      200 {array} membership.Membership
// @Failure      500 {object} api.ErrorResponse
// @Router       /memberships [get]
func (h *Handler) List(c *gin.Context) {
	plans, err := h.service.ListMemberships(c.Request.Context(), c.Query("all") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch memberships"})
		return
	}
	c.JSON(http.StatusOK, plans)
}

// @Summary      Create a membership
// @Tags         admin,memberships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body membership.MembershipRequest true "Plan"
// @Success      201 {object} membership.Membership
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/memberships [post]
func (h *Handler) Create(c *gin.Context) {
	var req MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	m, err := h.service.CreateMembership(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidPlan) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create membership"})
		return
	}

	c.JSON(http.StatusCreated, m)
}
