package oauth

import "fmt"

// TokenExchangeError indicates the token endpoint answered with a
// non-success status. It carries both the status code and the raw
// response body so callers can log or display the server's error
// payload verbatim instead of a generic failure line.
type TokenExchangeError struct {
	// StatusCode is the HTTP status the token endpoint returned.
	StatusCode int

	// Body is the raw response body, typically the OAuth error JSON.
	Body string
}

// Error implements the error interface.
func (e *TokenExchangeError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("token endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("token endpoint returned status %d: %s", e.StatusCode, e.Body)
}
