package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/goals-api/config"
	"github.com/ErlanBelekov/goals-api/internal/email"
	"github.com/ErlanBelekov/goals-api/internal/health"
	"github.com/ErlanBelekov/goals-api/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/goals-api/internal/log"
	"github.com/ErlanBelekov/goals-api/internal/metrics"
	"github.com/ErlanBelekov/goals-api/internal/password"
	"github.com/ErlanBelekov/goals-api/internal/token"
	httptransport "github.com/ErlanBelekov/goals-api/internal/transport/http"
	"github.com/ErlanBelekov/goals-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/goals-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(os.Stdout, cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.MigrateOnStart {
		if err := postgres.MigrateUp(cfg.DatabaseURL); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		logger.Info("migrations applied")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolConfig{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	hasher, err := password.NewArgon2(password.Config{
		Memory:      cfg.Argon2MemoryKB,
		Time:        cfg.Argon2Time,
		Parallelism: cfg.Argon2Parallelism,
		SaltLength:  password.DefaultConfig().SaltLength,
		KeyLength:   password.DefaultConfig().KeyLength,
	})
	if err != nil {
		stop()
		log.Fatalf("password hasher: %v", err)
	}

	tokens, err := token.NewManager([]byte(cfg.JWTSecret), token.WithTTL(cfg.JWTTTL))
	if err != nil {
		stop()
		log.Fatalf("token manager: %v", err)
	}

	mailer := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Users
	userRepo := postgres.NewUserRepository(pool)
	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, tokens, mailer, logger)

	// Goals
	goalRepo := postgres.NewGoalRepository(pool)
	goalUsecase := usecase.NewGoalUsecase(userRepo, goalRepo)

	metrics.Register()
	checker := health.NewChecker(map[string]health.Pinger{"postgres": pool}, logger, prometheus.DefaultRegisterer)

	healthCron, err := checker.Schedule(cfg.HealthCheckSpec)
	if err != nil {
		stop()
		log.Fatalf("health schedule: %v", err)
	}
	healthCron.Start()

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, httptransport.Handlers{
			User:   handler.NewUserHandler(authUsecase, logger),
			Goal:   handler.NewGoalHandler(goalUsecase, logger),
			Health: handler.NewHealthHandler(checker),
		}, tokens),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsSrv := metrics.NewServer(":" + cfg.MetricsPort)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	<-healthCron.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

