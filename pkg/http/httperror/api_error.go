package httperror

import (
	"fmt"
	"net/http"
)

// When an API call fails, we may want to distinguish among the causes
// by status code. This type is the base error for any non-"HTTP 20x"
// response the client cannot map to something more specific,
// retrievable with errors.Cause(err).
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", err.Status, err.Body)
}

// IsUnavailable reports whether the response says the repository
// manager (or a proxy in front of it) is temporarily out of action,
// meaning a poll is worth repeating.
func (err *APIError) IsUnavailable() bool {
	switch err.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsRateLimited reports whether the server pushed back on request
// volume; also worth repeating, after a delay.
func (err *APIError) IsRateLimited() bool {
	return err.StatusCode == http.StatusTooManyRequests
}
