package server

import (
	"context"
	"net/http"
	"time"

	"gymdesk/internal/athlete"
	"gymdesk/internal/attendance"
	"gymdesk/internal/auth"
	"gymdesk/internal/checkin"
	"gymdesk/internal/class"
	"gymdesk/internal/competition"
	"gymdesk/internal/config"
	"gymdesk/internal/membership"
	"gymdesk/internal/payment"
	"gymdesk/internal/settings"
	"gymdesk/internal/staff"
	"gymdesk/internal/subscription"

	"github.com/gin-gonic/gin"
)

// Handlers groups the feature handlers mounted on the router.
type Handlers struct {
	Staff        *staff.Handler
	Settings     *settings.Handler
	Classes      *class.Handler
	Athletes     *athlete.Handler
	Attendance   *attendance.Handler
	CheckIn      *checkin.Handler
	Subscription *subscription.Handler
	Memberships  *membership.Handler
	Payments     *payment.Handler
	Competitions *competition.Handler
}

type Server struct {
	router *gin.Engine
	http   *http.Server
}

func New(cfg *config.Config, h Handlers, checks map[string]CheckFunc) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), RequestLoggingMiddleware(), MetricsMiddleware(), corsMiddleware())

	router.GET("/health", Health(checks))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	public := router.Group("/")
	{
		public.POST("/auth/login", h.Staff.Login)
		public.POST("/auth/refresh", h.Staff.Refresh)
		public.POST("/checkin", RateLimitMiddleware(cfg.CheckInRateRPS, cfg.CheckInRateBurst), h.CheckIn.CheckIn)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	desk := router.Group("/")
	desk.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin, auth.RoleCoach))
	{
		desk.GET("/me", h.Staff.Me)

		desk.GET("/classes", h.Classes.ListClasses)
		desk.GET("/classes/today", h.Classes.TodayClasses)
		desk.GET("/classes/:classID", h.Classes.GetClass)
		desk.GET("/classes/:classID/qr-token", h.CheckIn.QRToken)
		desk.GET("/classes/:classID/qr.png", h.CheckIn.QRImage)
		desk.POST("/classes/:classID/checkin", h.CheckIn.ManualCheckIn)
		desk.GET("/classes/:classID/roster", h.Attendance.Roster)

		desk.GET("/athletes", h.Athletes.ListAthletes)
		desk.POST("/athletes", h.Athletes.CreateAthlete)
		desk.GET("/athletes/:athleteID", h.Athletes.GetAthlete)
		desk.PUT("/athletes/:athleteID", h.Athletes.UpdateAthlete)
		desk.POST("/athletes/:athleteID/status", h.Athletes.SetStatus)
		desk.GET("/athletes/:athleteID/usage", h.Attendance.Usage)
		desk.GET("/athletes/:athleteID/subscriptions", h.Subscription.ListForAthlete)
		desk.GET("/athletes/:athleteID/payments", h.Payments.ListForAthlete)

		desk.GET("/memberships", h.Memberships.List)
		desk.POST("/payments", h.Payments.Create)

		desk.GET("/competitions", h.Competitions.ListCompetitions)
		desk.GET("/competitions/:competitionID/entries", h.Competitions.ListEntries)
		desk.POST("/competitions/:competitionID/entries", h.Competitions.Register)
		desk.POST("/entries/:entryID/withdraw", h.Competitions.Withdraw)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/staff", h.Staff.Create)
		admin.POST("/classes", h.Classes.CreateClass)
		admin.PUT("/classes/:classID", h.Classes.UpdateClass)
		admin.DELETE("/classes/:classID", h.Classes.DeactivateClass)
		admin.POST("/memberships", h.Memberships.Create)
		admin.GET("/settings", h.Settings.Get)
		admin.PUT("/settings", h.Settings.Update)
		admin.POST("/jobs/expire-subscriptions", h.Subscription.ExpireNow)
		admin.POST("/competitions", h.Competitions.CreateCompetition)
		admin.GET("/analytics/attendance", h.Attendance.Analytics)
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
