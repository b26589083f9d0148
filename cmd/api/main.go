package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"researchbot/internal/config"
	apihttp "researchbot/internal/http"
	"researchbot/internal/llm"
	"researchbot/internal/scraper"
	"researchbot/internal/service"
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

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	fetcher := scraper.NewFetcher(scraper.FetcherConfig{
		UserAgent:   cfg.ScrapeUserAgent,
		Timeout:     time.Duration(cfg.ScrapeTimeoutSeconds) * time.Second,
		MaxAttempts: cfg.ScrapeMaxAttempts,
		RetryDelay:  time.Duration(cfg.ScrapeRetryDelaySeconds) * time.Second,
	}, logger)
	extractor := scraper.NewExtractor(cfg.ScrapeMaxContentChars)
	collector := scraper.NewCollector(fetcher, extractor, logger)

	llmClient := llm.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMModel)
	answerSvc := service.NewAnswerService(llmClient, cfg.LLMMaxTokens, logger)

	shareTTL := time.Duration(cfg.ShareTTLHours) * time.Hour
	shareStore := service.NewMemoryShareStore(shareTTL)
	var limiter service.RateLimiter

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-process fallbacks", zap.Error(err))
		} else {
			shareStore = service.NewRedisShareStore(redisClient, shareTTL)
			limiter = service.NewRedisRateLimiter(
				redisClient,
				time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
				cfg.RateLimitMax,
			)
		}
		cancel()
	}

	chatHandler := apihttp.NewChatHandler(logger, collector, answerSvc)
	shareHandler := apihttp.NewShareHandler(logger, shareStore)
	router := apihttp.NewRouter(logger, chatHandler, shareHandler, limiter)

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
