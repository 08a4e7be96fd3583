package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/db"
	"resume-analyzer/internal/events"
	apihttp "resume-analyzer/internal/http"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/repository"
	"resume-analyzer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.LogDevelopment {
		logger, _ = zap.NewDevelopment()
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	if key := cfg.KeyPrefix(); key != "" {
		logger.Info("llm credential configured", zap.String("provider", cfg.LLMProvider), zap.String("key_prefix", key), zap.String("model", cfg.Model()))
	} else {
		logger.Warn("llm credential missing; analysis requests will fail", zap.String("provider", cfg.LLMProvider))
	}
	llmClient, err := llm.NewClient(ctx, cfg, logger)
	if err != nil {
		logger.Warn("llm client unavailable", zap.Error(err))
	}

	var analysisRepo repository.AnalysisRepository = repository.NewMemoryAnalysisRepository()
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("db schema", zap.Error(err))
		}
		analysisRepo = repository.NewPgAnalysisRepository(pool)
		logger.Info("analysis store", zap.String("backend", "postgres"))
	} else {
		logger.Info("analysis store", zap.String("backend", "memory"))
	}

	var limiter service.AnalysisRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisAnalysisRateLimiter(redisClient, cfg.AnalyzeRateWindow, cfg.AnalyzeRateLimit)
		}
		cancel()
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPub, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, logger)
		if err != nil {
			logger.Warn("nats publisher init failed", zap.Error(err))
		} else {
			publisher = natsPub
		}
	}
	defer publisher.Close()

	analysisSvc := service.NewAnalysisService(llmClient, analysisRepo, publisher, limiter, logger)
	analysisHandler := apihttp.NewAnalysisHandler(logger, analysisSvc)
	uploadHandler := apihttp.NewUploadHandler(logger, cfg.MaxUploadBytes)
	reportHandler := apihttp.NewReportHandler(logger, analysisHandler)
	router := apihttp.NewRouter(logger, analysisHandler, uploadHandler, reportHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
