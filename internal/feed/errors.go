package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrAPI matches *APIError.
	ErrAPI = errors.New("feed: api error")
	// ErrIncompatibleServer matches *IncompatibleServerError.
	ErrIncompatibleServer = errors.New("feed: incompatible server")
	// ErrInvalidResponse matches *InvalidResponseError.
	ErrInvalidResponse = errors.New("feed: invalid response")
)

// APIError is a non-2xx response from the feed backend.
type APIError struct {
	Status     int
	Body       string
	RetryAfter time.Duration // set for 429 responses carrying Retry-After
}

func (e *APIError) Error() string {
	if e.Status == http.StatusTooManyRequests {
		return fmt.Sprintf("feed api rate limited (retry after %s)", e.RetryAfter)
	}
	return fmt.Sprintf("feed api returned %d: %s", e.Status, e.Body)
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }

// IsRateLimited reports whether err is a 429 from the backend and, if so,
// how long to wait.
func IsRateLimited(err error) (time.Duration, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusTooManyRequests {
		return apiErr.RetryAfter, true
	}
	return 0, false
}

// IncompatibleServerError means the backend requires a newer client.
type IncompatibleServerError struct {
	ClientVersion string
	MinVersion    string
}

func (e *IncompatibleServerError) Error() string {
	return fmt.Sprintf("server requires client %s or newer, this is %s", e.MinVersion, e.ClientVersion)
}

func (e *IncompatibleServerError) Is(target error) bool { return target == ErrIncompatibleServer }

// InvalidResponseError means the body did not match the expected schema.
type InvalidResponseError struct {
	Content json.RawMessage
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid feed response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

func (e *InvalidResponseError) Is(target error) bool { return target == ErrInvalidResponse }
