package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymdesk/internal/athlete"
	"gymdesk/internal/attendance"
	"gymdesk/internal/cache"
	"gymdesk/internal/checkin"
	"gymdesk/internal/class"
	"gymdesk/internal/competition"
	"gymdesk/internal/config"
	"gymdesk/internal/db"
	"gymdesk/internal/email"
	"gymdesk/internal/logger"
	"gymdesk/internal/membership"
	"gymdesk/internal/payment"
	"gymdesk/internal/scheduler"
	"gymdesk/internal/server"
	"gymdesk/internal/settings"
	"gymdesk/internal/staff"
	"gymdesk/internal/subscription"
)

// @title Gymdesk API
// @version 1.0
// @description Front desk API for a martial arts gym: classes, athletes, plans and QR check-in.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Starting Gymdesk application")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	rdb := cache.NewClient(cfg.RedisAddr)
	defer rdb.Close()
	store := cache.New(rdb)

	emailService := email.New(rdb, email.Options{
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
		SMTPHost: cfg.SMTPHost,
		SMTPPort: cfg.SMTPPort,
		SMTPUser: cfg.SMTPUser,
		SMTPPass: cfg.SMTPPass,
	})

	settingsService := settings.NewService(settings.NewRepository(database), store, cfg.DefaultTimezone)
	classService := class.NewService(class.NewRepository(database), settingsService)
	athleteService := athlete.NewService(athlete.NewRepository(database))
	subscriptionService := subscription.NewService(subscription.NewRepository(database), settingsService, emailService)
	attendanceService := attendance.NewService(attendance.NewRepository(database), settingsService, subscriptionService, store)
	membershipService := membership.NewService(membership.NewRepository(database))
	paymentService := payment.NewService(payment.NewRepository(database), athleteService, membershipService, settingsService, emailService)
	competitionService := competition.NewService(competition.NewRepository(database), athleteService)
	staffService := staff.NewService(staff.NewRepository(database), cfg.JWTSecret)

	issuer, err := checkin.NewIssuer(cfg.CheckInSecret)
	if err != nil {
		logger.Fatalf("Failed to create check-in token issuer: %v", err)
	}
	checkinService := checkin.NewService(
		issuer,
		checkin.NewValidator(classService, settingsService),
		athleteService,
		attendanceService,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := staffService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatalf("Failed to create admin account: %v", err)
	}

	gym, err := settingsService.Get(ctx)
	if err != nil {
		logger.Fatalf("Failed to load gym settings: %v", err)
	}

	go emailService.Start(ctx)
	logger.Info("Email worker started")

	jobs := scheduler.NewJobs(subscriptionService, emailService, logger.L())
	sched := scheduler.New(jobs, logger.L(), cfg.ExpiryJobSchedule, gym.Location())
	if err := sched.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	logger.Info("Scheduler started", "timezone", gym.Timezone)

	srv := server.New(cfg, server.Handlers{
		Staff:        staff.NewHandler(staffService),
		Settings:     settings.NewHandler(settingsService),
		Classes:      class.NewHandler(classService),
		Athletes:     athlete.NewHandler(athleteService),
		Attendance:   attendance.NewHandler(attendanceService),
		CheckIn:      checkin.NewHandler(checkinService, cfg.PublicBaseURL),
		Subscription: subscription.NewHandler(subscriptionService),
		Memberships:  membership.NewHandler(membershipService),
		Payments:     payment.NewHandler(paymentService),
		Competitions: competition.NewHandler(competitionService),
	}, map[string]server.CheckFunc{
		"postgres": database.PingContext,
		"redis":    store.Ping,
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		logger.Warn("Scheduled jobs still running at shutdown")
	}

	cancel()
	logger.Info("Server stopped")
}
