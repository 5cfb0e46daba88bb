package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// Errors returned by client operations.
var (
	// ErrNilConfig indicates the client was constructed without
	// configuration.
	ErrNilConfig = errors.New("configuration is required")

	// ErrMissingAPIKey indicates no API key is configured.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrUnauthorized indicates the service rejected the API key.
	ErrUnauthorized = errors.New("API key rejected by service")

	// ErrNoAppKey indicates app registration succeeded but the
	// response carried no key.
	ErrNoAppKey = errors.New("registration response carried no app key")
)

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("service returned %d: %s", e.Status, e.Message)
}

// apiError converts an error response into a typed error, or nil for a
// successful one.
func apiError(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	msg := gjson.GetBytes(resp.Body(), "message").String()
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	return &APIError{Status: resp.StatusCode(), Message: msg}
}
