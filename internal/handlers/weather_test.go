package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akozhamseitov/weather-api/internal/repository"
	"github.com/akozhamseitov/weather-api/internal/services"
	"github.com/akozhamseitov/weather-api/internal/weather/types"
)

// stubFetcher implements weather.Fetcher for handler tests.
type stubFetcher struct {
	result types.Weather
	err    error
}

func (s *stubFetcher) FetchCurrent(_ context.Context, _ string) (types.Weather, error) {
	return s.result, s.err
}

// stubService implements services.WeatherService for handler tests.
type stubService struct {
	saveErr   error
	listObs   []repository.Observation
	listErr   error
	updateErr error
	deleteErr error
	info      services.WeatherInfo
	infoErr   error
}

func (s *stubService) Save(context.Context, string) error { return s.saveErr }
func (s *stubService) List(context.Context, string) ([]repository.Observation, error) {
	return s.listObs, s.listErr
}
func (s *stubService) Update(context.Context, string) error { return s.updateErr }
func (s *stubService) Delete(context.Context, string) error { return s.deleteErr }
func (s *stubService) Info(context.Context, string) (services.WeatherInfo, error) {
	return s.info, s.infoErr
}

func perform(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestTestWeatherHandler_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test-weather/:city", TestWeatherHandler(&stubFetcher{
		result: types.Weather{City: "Almaty", Temp: 25, Description: "clear sky"},
	}))

	rec := perform(t, router, http.MethodGet, "/test-weather/Almaty", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "success" || body["city"] != "Almaty" || body["temperature"] != 25.0 || body["description"] != "clear sky" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestTestWeatherHandler_UpstreamError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test-weather/:city", TestWeatherHandler(&stubFetcher{
		err: &types.UpstreamError{StatusCode: 502, Detail: "bad gateway"},
	}))

	rec := perform(t, router, http.MethodGet, "/test-weather/Almaty", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestCreateWeatherHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		body       string
		saveErr    error
		wantStatus int
	}{
		{"success", `{"city":"Tokyo"}`, nil, http.StatusOK},
		{"missing city", `{}`, nil, http.StatusBadRequest},
		{"city too short", `{"city":"X"}`, nil, http.StatusBadRequest},
		{"save failure", `{"city":"Tokyo"}`, errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/weather/", CreateWeatherHandler(&stubService{saveErr: tc.saveErr}))

			rec := perform(t, router, http.MethodPost, "/weather/", tc.body)
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestReadWeatherHandler_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	router := gin.New()
	router.GET("/weather/:city", ReadWeatherHandler(&stubService{
		listObs: []repository.Observation{
			{ID: 1, City: "Tokyo", Temperature: 18.5, Description: "light rain", Timestamp: ts},
			{ID: 7, City: "Tokyo", Temperature: 21.0, Description: "few clouds", Timestamp: ts},
		},
	}))

	rec := perform(t, router, http.MethodGet, "/weather/Tokyo", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var list []observationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("returned %d observations, want 2", len(list))
	}
	if list[0].ID == nil || *list[0].ID != 1 || list[0].City != "Tokyo" {
		t.Errorf("first observation = %+v", list[0])
	}
}

func TestReadWeatherHandler_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/weather/:city", ReadWeatherHandler(&stubService{listErr: services.ErrCityNotFound}))

	rec := perform(t, router, http.MethodGet, "/weather/Paris", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateWeatherHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		updateErr  error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"not found", services.ErrCityNotFound, http.StatusNotFound},
		{"other failure", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.PUT("/weather/:city", UpdateWeatherHandler(&stubService{updateErr: tc.updateErr}))

			rec := perform(t, router, http.MethodPut, "/weather/Paris", "")
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestDeleteWeatherHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		deleteErr  error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"not found", services.ErrCityNotFound, http.StatusNotFound},
		{"other failure", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.DELETE("/weather/:city", DeleteWeatherHandler(&stubService{deleteErr: tc.deleteErr}))

			rec := perform(t, router, http.MethodDelete, "/weather/Paris", "")
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestWeatherInfoHandler_FreshRecordHasNullID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/weather-info/:city", WeatherInfoHandler(&stubService{
		info: services.WeatherInfo{
			City:        "Almaty",
			Temperature: 25,
			Description: "clear sky",
			Timestamp:   time.Now(),
		},
	}))

	rec := perform(t, router, http.MethodGet, "/weather-info/Almaty", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if id, present := body["id"]; !present || id != nil {
		t.Errorf("id = %v, want explicit null", id)
	}
	if body["city"] != "Almaty" {
		t.Errorf("city = %v, want Almaty", body["city"])
	}
}
