package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/careops/clinic-api/config"
	"github.com/careops/clinic-api/internal/email"
	"github.com/careops/clinic-api/internal/handler"
	appointmentHandler "github.com/careops/clinic-api/internal/handler/appointment"
	authHandler "github.com/careops/clinic-api/internal/handler/auth"
	doctorHandler "github.com/careops/clinic-api/internal/handler/doctor"
	patientHandler "github.com/careops/clinic-api/internal/handler/patient"
	statsHandler "github.com/careops/clinic-api/internal/handler/stats"
	"github.com/careops/clinic-api/internal/middleware"
	"github.com/careops/clinic-api/internal/repository/postgres"
	"github.com/careops/clinic-api/internal/router"
	appointmentService "github.com/careops/clinic-api/internal/service/appointment"
	authService "github.com/careops/clinic-api/internal/service/auth"
	patientService "github.com/careops/clinic-api/internal/service/patient"
	statsService "github.com/careops/clinic-api/internal/service/stats"
	userService "github.com/careops/clinic-api/internal/service/user"
	"github.com/careops/clinic-api/pkg/auth"
	"github.com/careops/clinic-api/pkg/logger"
	"github.com/careops/clinic-api/pkg/metrics"
	"github.com/careops/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Redis is optional; without it the dashboard stats are computed
	// from the store on every request.
	var cache *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid redis URL")
		}
		cache = redis.NewClient(opt)
		if err := cache.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, stats caching disabled")
			cache = nil
		}
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(12)
	emailSvc := email.NewService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		ResetURL: cfg.SMTP.ResetURL,
	})

	m := metrics.NewMetrics("clinic_api")

	authSvc := authService.NewService(userRepo, tokenRepo, jwtSvc, hasher, emailSvc)
	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, userRepo)
	userSvc := userService.NewService(userRepo)
	statsSvc := statsService.NewService(patientRepo, userRepo, appointmentRepo, cache, m)

	// Handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	h := handler.NewHandler(db)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		[]router.Handler{
			patientHandler.NewHandler(patientSvc),
			doctorHandler.NewHandler(userSvc),
			appointmentHandler.NewHandler(appointmentSvc),
			statsHandler.NewHandler(statsSvc),
		},
		h,
		m,
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			CORS:           corsCfg,
			Timeout:        cfg.Server.Timeout,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
