package openweathermap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/akozhamseitov/weather-api/internal/config"
	"github.com/akozhamseitov/weather-api/internal/observability"
	"github.com/akozhamseitov/weather-api/internal/weather/types"
)

// Client queries the OpenWeatherMap current-weather endpoint.
type Client struct {
	apiKey  string
	baseURL string
	timeout time.Duration

	httpClient *http.Client
}

// NewClient returns a new Client, or an error if the API key is not set.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.OpenWeatherMapKey == "" {
		return nil, fmt.Errorf("OPENWEATHERMAP_ORG_API_KEY is not set")
	}
	return &Client{
		apiKey:     cfg.OpenWeatherMapKey,
		baseURL:    cfg.OpenWeatherMapBaseURL,
		timeout:    cfg.FetchTimeout,
		httpClient: http.DefaultClient,
	}, nil
}

// FetchCurrent implements weather.Fetcher. It issues exactly one outbound
// request with metric units and normalizes the payload. Temperature is °C.
func (c *Client) FetchCurrent(ctx context.Context, city string) (types.Weather, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return types.Weather{}, fmt.Errorf("openweathermap: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			observability.UpstreamCallsTotal.WithLabelValues("timeout").Inc()
			return types.Weather{}, fmt.Errorf("openweathermap: %w", types.ErrUpstreamTimeout)
		}
		observability.UpstreamCallsTotal.WithLabelValues("error").Inc()
		return types.Weather{}, &types.UpstreamError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.UpstreamCallsTotal.WithLabelValues("error").Inc()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return types.Weather{}, &types.UpstreamError{
			StatusCode: resp.StatusCode,
			Detail:     string(detail),
		}
	}

	var body struct {
		Name string `json:"name"`
		Main struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		observability.UpstreamCallsTotal.WithLabelValues("malformed").Inc()
		return types.Weather{}, fmt.Errorf("openweathermap: %w: %v", types.ErrMalformedResponse, err)
	}
	if body.Main.Temp == nil {
		observability.UpstreamCallsTotal.WithLabelValues("malformed").Inc()
		return types.Weather{}, fmt.Errorf("openweathermap: %w: no temperature in response", types.ErrMalformedResponse)
	}
	if len(body.Weather) == 0 {
		observability.UpstreamCallsTotal.WithLabelValues("malformed").Inc()
		return types.Weather{}, fmt.Errorf("openweathermap: %w: no weather data in response", types.ErrMalformedResponse)
	}

	name := body.Name
	if name == "" {
		name = "Unknown"
	}

	observability.UpstreamCallsTotal.WithLabelValues("success").Inc()
	return types.Weather{
		City:        name,
		Temp:        *body.Main.Temp,
		Description: body.Weather[0].Description,
	}, nil
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
