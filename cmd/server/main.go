package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eduai-labs/eduai-backend/config"
	"github.com/eduai-labs/eduai-backend/internal/ai"
	"github.com/eduai-labs/eduai-backend/internal/email"
	"github.com/eduai-labs/eduai-backend/internal/health"
	"github.com/eduai-labs/eduai-backend/internal/infrastructure/postgres"
	ctxlog "github.com/eduai-labs/eduai-backend/internal/log"
	"github.com/eduai-labs/eduai-backend/internal/metrics"
	"github.com/eduai-labs/eduai-backend/internal/password"
	"github.com/eduai-labs/eduai-backend/internal/token"
	httptransport "github.com/eduai-labs/eduai-backend/internal/transport/http"
	"github.com/eduai-labs/eduai-backend/internal/transport/http/handler"
	"github.com/eduai-labs/eduai-backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

const tokenTTL = time.Hour

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	hasher := password.NewBcryptHasher()
	tokens := token.NewIssuer([]byte(cfg.JWTSecret), tokenTTL)
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	var aiClient ai.Client
	if cfg.GeminiAPIKey != "" {
		aiClient = ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI endpoints will return 503")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, tokens)
	verifyUsecase := usecase.NewVerificationUsecase(userRepo, emailSender, hasher, tokens, cfg.AppName)
	userUsecase := usecase.NewUserUsecase(userRepo)
	aiUsecase := usecase.NewAIUsecase(aiClient)

	authHandler := handler.NewAuthHandler(authUsecase, verifyUsecase, logger)
	userHandler := handler.NewUserHandler(userUsecase, logger)
	aiHandler := handler.NewAIHandler(aiUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, userHandler, aiHandler, tokens),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
