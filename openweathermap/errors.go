package openweathermap

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	ErrMissingCity    = errors.New("missing city name")
	ErrTransport      = errors.New("unable to reach forecast provider")
	ErrMalformedEntry = errors.New("malformed forecast entry")
	ErrInvalidPayload = errors.New("invalid forecast payload")
)

// APIError is returned when the forecast provider answers with a non-2xx status
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("forecast provider returned status %d: %s", e.StatusCode, e.Message)
}

// responseCode decodes the provider "cod" field which is sent as either a number or a string
type responseCode int

func (c *responseCode) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("unable to parse response code %q, %w", s, err)
	}
	*c = responseCode(v)
	return nil
}

type errorBody struct {
	Cod     responseCode `json:"cod"`
	Message string       `json:"message"`
}

// newAPIError builds an APIError from the response status and body, preferring the provider
// message when the body carries one.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Code:       statusCode,
		Message:    http.StatusText(statusCode),
	}

	var eb errorBody
	if err := unmarshal(body, &eb); err == nil && eb.Message != "" {
		apiErr.Message = eb.Message
		if eb.Cod != 0 {
			apiErr.Code = int(eb.Cod)
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = "unexpected response"
	}
	return apiErr
}
