package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/myanmarcares/myanmarcares/sdk/go/headers"
)

// defaultAPIErrorMessage is used when an error response carries no readable message.
const defaultAPIErrorMessage = "API request failed"

// retryMessage is what UserMessage shows for failures the caller can only retry.
const retryMessage = "Something went wrong. Please try again."

// APIError is a well-formed non-2xx response from the content API.
type APIError struct {
	Status    int
	Name      string
	Message   string
	Details   json.RawMessage
	RequestID string
}

// Error implements the error interface.
func (e APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = defaultAPIErrorMessage
	}
	if e.Name != "" {
		return fmt.Sprintf("sdk: %s (%d): %s", e.Name, e.Status, msg)
	}
	return fmt.Sprintf("sdk: http %d: %s", e.Status, msg)
}

// TransportError means no response was received: DNS, connection, TLS or
// context cancellation. It unwraps to the cause.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("sdk: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e TransportError) Unwrap() error { return e.Err }

// ParseError is a 2xx response whose body is not the JSON the SDK expected.
type ParseError struct {
	Status int
	Err    error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("sdk: decode %d response: %v", e.Status, e.Err)
}

func (e ParseError) Unwrap() error { return e.Err }

// ValidationError rejects a request before it is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "sdk: " + e.Reason
	}
	return fmt.Sprintf("sdk: %s: %s", e.Field, e.Reason)
}

// ConfigError reports an unusable client configuration.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string { return "sdk: invalid config: " + e.Reason }

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	apiErr := APIError{
		Status:    resp.StatusCode,
		RequestID: resp.Header.Get(headers.RequestID),
	}
	var payload struct {
		Error struct {
			Status  int             `json:"status"`
			Name    string          `json:"name"`
			Message string          `json:"message"`
			Details json.RawMessage `json:"details"`
		} `json:"error"`
	}
	if len(data) == 0 || json.Unmarshal(data, &payload) != nil {
		apiErr.Message = defaultAPIErrorMessage
		return apiErr
	}
	apiErr.Name = payload.Error.Name
	apiErr.Message = payload.Error.Message
	apiErr.Details = payload.Error.Details
	if payload.Error.Status != 0 {
		apiErr.Status = payload.Error.Status
	}
	if apiErr.Message == "" {
		apiErr.Message = defaultAPIErrorMessage
	}
	return apiErr
}

// IsNotFoundStatus reports whether err is an APIError with status 404.
// A single-entity lookup that decodes to a null body is not an error; see Envelope.Found.
func IsNotFoundStatus(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is an APIError with status 403.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	var apiErr APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// UserMessage returns text suitable for showing an end user. Server messages
// and validation reasons pass through; transport and decode failures become a
// generic retry prompt.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			return defaultAPIErrorMessage
		}
		return apiErr.Message
	}
	var vErr ValidationError
	if errors.As(err, &vErr) {
		return vErr.Reason
	}
	return retryMessage
}
