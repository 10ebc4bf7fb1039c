package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all the environment‐driven settings for the application.
type Config struct {
	// Database (Postgres)
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	DatabaseURL      string

	// Weather provider
	OpenWeatherMapKey     string
	OpenWeatherMapBaseURL string
	FetchTimeout          time.Duration

	// Auth
	JWTSecret     string
	AdminUser     string
	AdminPassword string
	TokenTTL      time.Duration

	// Cache
	CacheTTL      time.Duration
	CacheCapacity int

	// Redis (optional cache backend; the in-memory cache is used when unset)
	RedisAddr     string
	RedisPassword string

	// API
	Port string
}

// Load reads and validates all required environment variables, applying defaults
// where appropriate. It returns an error if any required variable is missing or malformed.
func Load() (*Config, error) {
	// Postgres settings
	pgUser := os.Getenv("POSTGRES_USER")
	if pgUser == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	pgPass := os.Getenv("POSTGRES_PASSWORD")
	if pgPass == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	pgDB := os.Getenv("POSTGRES_DB")
	if pgDB == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required")
	}
	pgHost := os.Getenv("POSTGRES_HOST")
	if pgHost == "" {
		pgHost = "db"
	}
	pgPortStr := os.Getenv("POSTGRES_PORT")
	if pgPortStr == "" {
		pgPortStr = "5432"
	}
	pgPort, err := strconv.Atoi(pgPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", pgPortStr, err)
	}
	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPass, pgHost, pgPort, pgDB,
	)

	// Weather provider settings
	owmKey := os.Getenv("OPENWEATHERMAP_ORG_API_KEY")
	if owmKey == "" {
		return nil, fmt.Errorf("OPENWEATHERMAP_ORG_API_KEY is required")
	}
	owmBaseURL := os.Getenv("OPENWEATHERMAP_BASE_URL")
	if owmBaseURL == "" {
		owmBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	}
	fetchTimeout, err := durationEnv("FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	// Auth settings
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	adminUser := os.Getenv("ADMIN_USER")
	if adminUser == "" {
		return nil, fmt.Errorf("ADMIN_USER is required")
	}
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminPass == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required")
	}
	tokenTTL, err := durationEnv("TOKEN_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	// Cache settings
	cacheTTL, err := durationEnv("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	capStr := os.Getenv("CACHE_CAPACITY")
	if capStr == "" {
		capStr = "128"
	}
	capacity, err := strconv.Atoi(capStr)
	if err != nil || capacity <= 0 {
		return nil, fmt.Errorf("invalid CACHE_CAPACITY %q", capStr)
	}

	// Redis settings. Both optional.
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASSWORD")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		PostgresUser:     pgUser,
		PostgresPassword: pgPass,
		PostgresDB:       pgDB,
		PostgresHost:     pgHost,
		PostgresPort:     pgPort,
		DatabaseURL:      databaseURL,

		OpenWeatherMapKey:     owmKey,
		OpenWeatherMapBaseURL: owmBaseURL,
		FetchTimeout:          fetchTimeout,

		JWTSecret:     jwtSecret,
		AdminUser:     adminUser,
		AdminPassword: adminPass,
		TokenTTL:      tokenTTL,

		CacheTTL:      cacheTTL,
		CacheCapacity: capacity,

		RedisAddr:     redisAddr,
		RedisPassword: redisPass,

		Port: port,
	}, nil
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return d, nil
}
