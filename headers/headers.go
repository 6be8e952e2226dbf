// Package headers defines the HTTP header names the SDK sets on requests.
package headers

const (
	// RequestID correlates a request with server and client logs.
	RequestID = "X-Request-Id"

	// Authorization carries the bearer JWT.
	Authorization = "Authorization"

	// Traceparent carries the W3C trace context.
	Traceparent = "Traceparent"
)
