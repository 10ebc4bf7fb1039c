package types

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamTimeout is returned when the provider does not answer
	// within the configured deadline.
	ErrUpstreamTimeout = errors.New("weather provider timed out")

	// ErrMalformedResponse is returned when the provider answered 200 but
	// the payload lacks required fields. Permanent for the given response;
	// results carrying it are never cached.
	ErrMalformedResponse = errors.New("malformed weather provider response")
)

// UpstreamError reports a transport failure or a non-200 answer from the
// provider. StatusCode is zero when the request never completed.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("weather provider request failed: %s", e.Detail)
	}
	return fmt.Sprintf("weather provider returned status %d: %s", e.StatusCode, e.Detail)
}
