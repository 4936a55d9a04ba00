package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"

	"clubevents/config"
	_ "clubevents/docs"
	"clubevents/internal/adapters/auth"
	"clubevents/internal/adapters/email"
	"clubevents/internal/adapters/metrics"
	httpdelivery "clubevents/internal/delivery/http"
	"clubevents/internal/delivery/http/controllers"
	"clubevents/internal/delivery/http/middleware"
	"clubevents/internal/repository/postgres"
	"clubevents/internal/services"
	"clubevents/migrations"
)

const shutdownTimeout = 15 * time.Second

// @title AI Club Events API
// @version 1.0
// @description Events, registrations and posts for the AI club website and admin dashboard.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := migrations.Run(db, logger); err != nil {
			return err
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("load email templates: %w", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)

	emailService := services.NewEmailService(mailer, renderer, logger)
	registrationService := services.NewRegistrationService(eventRepo, registrationRepo, postgres.NewEventLocker(db),
		emailService, m, cfg.Registration, logger, cfg.RequestTimeout)
	eventService := services.NewEventService(eventRepo, registrationRepo, cfg.Registration, cfg.RequestTimeout)
	postService := services.NewPostService(postRepo, cfg.RequestTimeout)
	userService := services.NewUserService(userRepo, auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry)

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Events:        controllers.NewEventController(logger, eventService),
		Registrations: controllers.NewRegistrationController(logger, registrationService),
		Posts:         controllers.NewPostController(logger, postService),
		Auth:          controllers.NewAuthController(logger, userService),
	},
		middleware.RequireAuth(auth.NewJWTVerifier(cfg.JWTSecret), logger),
		db,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	var handler http.Handler = router
	handler = middleware.Instrument(m, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
