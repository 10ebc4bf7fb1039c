package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/akozhamseitov/weather-api/internal/auth"
	"github.com/akozhamseitov/weather-api/internal/config"
	"github.com/akozhamseitov/weather-api/internal/handlers"
	"github.com/akozhamseitov/weather-api/internal/observability"
	"github.com/akozhamseitov/weather-api/internal/repository"
	"github.com/akozhamseitov/weather-api/internal/services"
	"github.com/akozhamseitov/weather-api/internal/weather"
)

func main() {
	// 1) Load configuration from environment (.env honored when present)
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// 2) Initialize structured logger
	logger, err := observability.NewLogger()
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	// 3) Connect to Postgres and make sure the weather table exists
	db, err := repository.OpenDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	// 4) Build the weather fetcher (provider client behind a cache)
	weatherFetcher, err := weather.BuildCachingFetcher(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize weather fetcher", zap.Error(err))
	}

	// 5) Wire up auth and the weather service
	authSvc := auth.NewService(cfg)
	weatherRepo := repository.NewWeatherRepository(db, logger)
	weatherSvc := services.NewWeatherService(weatherRepo, weatherFetcher, logger)

	// 6) Set up Gin router and handlers
	router := gin.New()
	router.Use(handlers.RequestLogger(logger), gin.Recovery())

	router.POST("/token", handlers.TokenHandler(authSvc))
	router.GET("/protected-endpoint", handlers.RequireAuth(authSvc), handlers.ProtectedHandler())

	router.GET("/test-weather/:city", handlers.TestWeatherHandler(weatherFetcher))
	router.POST("/weather/", handlers.RequireAuth(authSvc), handlers.CreateWeatherHandler(weatherSvc))
	router.GET("/weather/:city", handlers.ReadWeatherHandler(weatherSvc))
	router.PUT("/weather/:city", handlers.UpdateWeatherHandler(weatherSvc))
	router.DELETE("/weather/:city", handlers.DeleteWeatherHandler(weatherSvc))
	router.GET("/weather-info/:city", handlers.RequireAuth(authSvc), handlers.WeatherInfoHandler(weatherSvc))

	router.GET("/metrics", gin.WrapH(observability.MetricsHandler()))

	// 7) Start HTTP server
	addr := ":" + cfg.Port
	logger.Info("starting API server", zap.String("address", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
