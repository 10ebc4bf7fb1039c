package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akozhamseitov/weather-api/internal/services"
	"github.com/akozhamseitov/weather-api/internal/weather"
)

// createWeatherRequest matches both JSON and x-www-form-urlencoded payloads
type createWeatherRequest struct {
	City string `form:"city" json:"city" binding:"required,min=2,max=100"`
}

// observationResponse is one stored (or freshly fetched) observation.
// ID is null for records that came straight from the provider.
type observationResponse struct {
	ID          *int64    `json:"id"`
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// TestWeatherHandler handles GET /test-weather/:city — a direct pass-through
// to the cache-wrapped provider, no persistence involved.
func TestWeatherHandler(fetcher weather.Fetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := c.Param("city")

		w, err := fetcher.FetchCurrent(c.Request.Context(), city)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "success",
			"city":        w.City,
			"temperature": w.Temp,
			"description": w.Description,
		})
	}
}

// CreateWeatherHandler handles POST /weather/
func CreateWeatherHandler(svc services.WeatherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createWeatherRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := svc.Save(c.Request.Context(), req.City); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": fmt.Sprintf("Data for %s saved successfully.", req.City),
		})
	}
}

// ReadWeatherHandler handles GET /weather/:city
func ReadWeatherHandler(svc services.WeatherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := c.Param("city")

		obs, err := svc.List(c.Request.Context(), city)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrCityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Weather data not found."})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		resp := make([]observationResponse, 0, len(obs))
		for _, o := range obs {
			id := o.ID
			resp = append(resp, observationResponse{
				ID:          &id,
				City:        o.City,
				Temperature: o.Temperature,
				Description: o.Description,
				Timestamp:   o.Timestamp,
			})
		}
		c.JSON(http.StatusOK, resp)
	}
}

// UpdateWeatherHandler handles PUT /weather/:city
func UpdateWeatherHandler(svc services.WeatherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := c.Param("city")

		err := svc.Update(c.Request.Context(), city)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{
				"status":  "success",
				"message": fmt.Sprintf("Weather data for %s updated successfully.", city),
			})
		case errors.Is(err, services.ErrCityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Weather data for %s not found.", city)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

// DeleteWeatherHandler handles DELETE /weather/:city
func DeleteWeatherHandler(svc services.WeatherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := c.Param("city")

		err := svc.Delete(c.Request.Context(), city)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{
				"status":  "success",
				"message": fmt.Sprintf("Weather data for %s deleted successfully.", city),
			})
		case errors.Is(err, services.ErrCityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Weather data for %s not found.", city)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

// WeatherInfoHandler handles GET /weather-info/:city — returns the stored
// observation when one exists, otherwise fetches, persists and returns the
// fresh record with a null id.
func WeatherInfoHandler(svc services.WeatherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := c.Param("city")

		info, err := svc.Info(c.Request.Context(), city)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, observationResponse{
			ID:          info.ID,
			City:        info.City,
			Temperature: info.Temperature,
			Description: info.Description,
			Timestamp:   info.Timestamp,
		})
	}
}
