package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akozhamseitov/weather-api/internal/repository"
	"github.com/akozhamseitov/weather-api/internal/weather"
)

// Sentinel errors for the HTTP handlers to inspect:
var (
	// returned when a city has no stored observations
	ErrCityNotFound = errors.New("weather data not found")
)

// WeatherInfo is a stored observation or a freshly fetched one. ID is nil
// when the record came straight from the provider and has no row yet.
type WeatherInfo struct {
	ID          *int64
	City        string
	Temperature float64
	Description string
	Timestamp   time.Time
}

// WeatherService defines the business operations over observations.
type WeatherService interface {
	Save(ctx context.Context, city string) error
	List(ctx context.Context, city string) ([]repository.Observation, error)
	Update(ctx context.Context, city string) error
	Delete(ctx context.Context, city string) error
	Info(ctx context.Context, city string) (WeatherInfo, error)
}

type weatherService struct {
	repo    repository.WeatherRepository
	fetcher weather.Fetcher
	logger  *zap.Logger
}

// NewWeatherService wires service dependencies.
func NewWeatherService(repo repository.WeatherRepository, fetcher weather.Fetcher, logger *zap.Logger) WeatherService {
	return &weatherService{repo: repo, fetcher: fetcher, logger: logger}
}

// Save fetches current weather and inserts one new row. Existing rows for
// the city are kept; duplicates are permitted.
func (s *weatherService) Save(ctx context.Context, city string) error {
	w, err := s.fetcher.FetchCurrent(ctx, city)
	if err != nil {
		return fmt.Errorf("fetch weather: %w", err)
	}

	if err := s.repo.Insert(ctx, w.City, w.Temp, w.Description); err != nil {
		return fmt.Errorf("repo.Insert: %w", err)
	}

	s.logger.Info("observation saved",
		zap.String("city", w.City),
		zap.Float64("temperature", w.Temp),
	)
	return nil
}

// List returns all stored rows for the city, earliest first.
func (s *weatherService) List(ctx context.Context, city string) ([]repository.Observation, error) {
	obs, err := s.repo.ListByCity(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("repo.ListByCity: %w", err)
	}
	if len(obs) == 0 {
		return nil, ErrCityNotFound
	}
	return obs, nil
}

// Update refreshes temperature/description/timestamp on every stored row of
// the city. The existence probe runs before the upstream call so a missing
// city never costs a fetch; the probe-to-write window is an accepted race,
// the conditional UPDATE settles it.
func (s *weatherService) Update(ctx context.Context, city string) error {
	exists, err := s.repo.ExistsByCity(ctx, city)
	if err != nil {
		return fmt.Errorf("repo.ExistsByCity: %w", err)
	}
	if !exists {
		return ErrCityNotFound
	}

	w, err := s.fetcher.FetchCurrent(ctx, city)
	if err != nil {
		return fmt.Errorf("fetch weather: %w", err)
	}

	if err := s.repo.UpdateByCity(ctx, city, w.Temp, w.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCityNotFound
		}
		return fmt.Errorf("repo.UpdateByCity: %w", err)
	}
	return nil
}

// Delete removes every stored row of the city.
func (s *weatherService) Delete(ctx context.Context, city string) error {
	if err := s.repo.DeleteByCity(ctx, city); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCityNotFound
		}
		return fmt.Errorf("repo.DeleteByCity: %w", err)
	}
	return nil
}

// Info returns the earliest stored observation for the city when one exists.
// Otherwise it fetches from the provider, persists the result, and returns
// the fresh record without a row id.
func (s *weatherService) Info(ctx context.Context, city string) (WeatherInfo, error) {
	obs, err := s.repo.ListByCity(ctx, city)
	if err != nil {
		return WeatherInfo{}, fmt.Errorf("repo.ListByCity: %w", err)
	}
	if len(obs) > 0 {
		row := obs[0]
		return WeatherInfo{
			ID:          &row.ID,
			City:        row.City,
			Temperature: row.Temperature,
			Description: row.Description,
			Timestamp:   row.Timestamp,
		}, nil
	}

	w, err := s.fetcher.FetchCurrent(ctx, city)
	if err != nil {
		return WeatherInfo{}, fmt.Errorf("fetch weather: %w", err)
	}
	if err := s.repo.Insert(ctx, w.City, w.Temp, w.Description); err != nil {
		return WeatherInfo{}, fmt.Errorf("repo.Insert: %w", err)
	}

	return WeatherInfo{
		City:        w.City,
		Temperature: w.Temp,
		Description: w.Description,
		Timestamp:   time.Now(),
	}, nil
}
