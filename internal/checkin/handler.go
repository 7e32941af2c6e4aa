package checkin

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"gymdesk/internal/api"
	"gymdesk/internal/class"
	"gymdesk/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

const qrImageSize = 256

type Handler struct {
	service       Service
	publicBaseURL string
}

func NewHandler(service Service, publicBaseURL string) *Handler {
	return &Handler{service: service, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// ScanURL is what the QR image encodes: the kiosk page with the token attached.
func (h *Handler) ScanURL(token string) string {
	return h.publicBaseURL + "/checkin?token=" + url.QueryEscape(token)
}

// statusFor maps a refusal to the HTTP status the kiosk receives.
func statusFor(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindInvalidToken, KindInvalidPin:
		return http.StatusUnauthorized
	case KindClassNotFound:
		return http.StatusNotFound
	case KindWrongDay, KindTooEarly, KindTooLate:
		return http.StatusUnprocessableEntity
	case KindAthleteInactive:
		return http.StatusForbidden
	case KindStorageFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondResult(c *gin.Context, res *Result) {
	if res.Success {
		status := http.StatusCreated
		if res.AlreadyCheckedIn {
			status = http.StatusOK
		}
		c.JSON(status, res)
		return
	}
	c.JSON(statusFor(res.Kind), res)
}

// @Summary      Current QR token
// @Description  Signed token for a class, valid 60 seconds. Displays should poll every refresh_after_seconds.
// @Tags         checkin
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Success      200 {object} checkin.QRToken
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /classes/{classID}/qr-token [get]
func (h *Handler) QRToken(c *gin.Context) {
	token, ok := h.issue(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, token)
}

// @Summary      Current QR image
// @Description  PNG QR code pointing at the check-in page with a fresh token
// @Tags         checkin
// @Produce      png
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Success      200 {file} binary
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /classes/{classID}/qr.png [get]
func (h *Handler) QRImage(c *gin.Context) {
	token, ok := h.issue(c)
	if !ok {
		return
	}

	png, err := qrcode.Encode(h.ScanURL(token.Token), qrcode.Medium, qrImageSize)
	if err != nil {
		logger.Error("qr encode failed", "class_id", token.ClassID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to render QR code"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) issue(c *gin.Context) (*QRToken, bool) {
	classID, ok := api.ParamID(c, "classID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return nil, false
	}

	token, err := h.service.IssueToken(c.Request.Context(), classID)
	if err != nil {
		if errors.Is(err, class.ErrClassNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
			return nil, false
		}
		logger.Error("qr token issue failed", "class_id", classID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to issue token"})
		return nil, false
	}
	return token, true
}

// @Summary      Check in with PIN
// @Description  Kiosk check-in using the athlete PIN and the scanned class token. Repeats the same day are accepted and flagged.
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Param        request body checkin.CheckInRequest true "PIN and token"
// @Success      201 {object} checkin.Result
// @Success      200 {object} checkin.Result "Already checked in"
// @Failure      400 {object} checkin.Result
// @Failure      401 {object} checkin.Result
// @Failure      403 {object} checkin.Result
// @Failure      404 {object} checkin.Result
// @Failure      422 {object} checkin.Result
// @Failure      429 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /checkin [post]
func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	res, err := h.service.CheckInWithPin(c.Request.Context(), strings.TrimSpace(req.PIN), req.Token)
	if err != nil {
		logger.Error("check-in failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check in"})
		return
	}

	respondResult(c, res)
}

// @Summary      Manual check-in
// @Description  Staff check-in for walk-ins. Skips the time window.
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Param        request body checkin.ManualCheckInRequest true "Athlete"
// @Success      201 {object} checkin.Result
// @Success      200 {object} checkin.Result "Already checked in"
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} checkin.Result
// @Failure      403 {object} checkin.Result
// @Failure      404 {object} checkin.Result
// @Failure      500 {object} api.ErrorResponse
// @Router       /classes/{classID}/checkin [post]
func (h *Handler) ManualCheckIn(c *gin.Context) {
	classID, ok := api.ParamID(c, "classID")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req ManualCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondWithValidationErrors(c, err)
		return
	}

	res, err := h.service.CheckInManual(c.Request.Context(), classID, req.AthleteID)
	if err != nil {
		logger.Error("manual check-in failed", "class_id", classID, "athlete_id", req.AthleteID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check in"})
		return
	}

	respondResult(c, res)
}
