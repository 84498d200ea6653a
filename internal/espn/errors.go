package espn

import (
	"errors"
	"fmt"
)

// ESPN API errors.
var (
	// ErrUnauthorized is returned for HTTP 401. For a private league it
	// usually means the espn_s2 cookie expired or the SWID is wrong.
	ErrUnauthorized = errors.New("espn: unauthorized (check espn_s2 and SWID)")

	// ErrLeagueNotFound is returned for HTTP 404.
	ErrLeagueNotFound = errors.New("espn: league not found")

	// ErrInvalidLeagueID is returned before any request for a non-positive
	// league id.
	ErrInvalidLeagueID = errors.New("espn: league id must be positive")

	// ErrInvalidYear is returned before any request for a season year the
	// API does not serve.
	ErrInvalidYear = errors.New("espn: invalid season year")

	// ErrUnexpectedPayload is returned when the response body is not the
	// expected league document.
	ErrUnexpectedPayload = errors.New("espn: unexpected response payload")
)

// HTTPError is returned for non-2xx responses other than 401 and 404.
type HTTPError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// URL is the requested URL without query parameters.
	URL string

	// Body is the beginning of the response body.
	Body string
}

// Error implements error.
func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("espn: GET %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("espn: GET %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}
