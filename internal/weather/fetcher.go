package weather

import (
	"context"

	"github.com/akozhamseitov/weather-api/internal/weather/types"
)

type Fetcher interface {
	FetchCurrent(ctx context.Context, city string) (types.Weather, error)
}

// Error taxonomy lives in the types package so provider clients can share it;
// aliased here for callers of this package.
var (
	ErrUpstreamTimeout   = types.ErrUpstreamTimeout
	ErrMalformedResponse = types.ErrMalformedResponse
)

type UpstreamError = types.UpstreamError
