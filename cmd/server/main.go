package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"sportteammanager/config"
	_ "sportteammanager/docs"
	"sportteammanager/internal/adapters/auth"
	"sportteammanager/internal/adapters/email"
	delivery "sportteammanager/internal/delivery/http"
	"sportteammanager/internal/delivery/http/controllers"
	"sportteammanager/internal/delivery/http/middleware"
	"sportteammanager/internal/guestlink"
	"sportteammanager/internal/metrics"
	"sportteammanager/internal/repository/postgres"
	"sportteammanager/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Sport Team Manager API
// @version 1.0
// @description Team membership, events, and invitation lifecycle with guest links.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	userRepo := postgres.NewUserRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	guestRepo := postgres.NewGuestRepository(db)

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokenIssuer, tokenVerifier := auth.NewJWTCodec(cfg.JWTSecret, cfg.TokenExpiry)

	codec, err := guestlink.NewCodec(cfg.GuestLinkKey)
	if err != nil {
		logger.Error("failed to initialize guest link codec", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    "Sport Team Manager",
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKey,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to initialize mailer", "err", err)
		os.Exit(1)
	}

	m := metrics.New()

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), m)
	userService := services.NewUserService(userRepo, hasher, tokenIssuer, serviceTimeout)
	teamService := services.NewTeamService(teamRepo, userRepo, serviceTimeout)
	eventService := services.NewEventService(eventRepo, userRepo, serviceTimeout)
	invitationService := services.NewInvitationService(
		eventRepo, userRepo, guestRepo, codec, emailService, cfg.GuestLinkBaseURL, serviceTimeout,
	)

	authController := controllers.NewAuthController(logger, userService)
	teamController := controllers.NewTeamController(logger, teamService)
	eventController := controllers.NewEventController(logger, eventService)
	invitationController := controllers.NewInvitationController(logger, invitationService, m)

	mux := delivery.NewRouter(
		authController, teamController, eventController, invitationController,
		tokenVerifier, logger, m,
	)

	var handler http.Handler = m.Middleware(mux)
	handler = middleware.LoggingMiddleware(logger, handler)
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}
	logger.Info("server stopped")
}
