package directory

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// ErrorKind is the category of a TransportError
type ErrorKind int

const (
	// KindNetwork indicates a network-level error (reset, unreachable, ...)
	KindNetwork ErrorKind = iota
	// KindTimeout indicates the request did not complete in time
	KindTimeout
	// KindConnectionRefused indicates the API host refused the connection
	KindConnectionRefused
	// KindDNS indicates a DNS resolution failure
	KindDNS
	// KindAuth indicates the bearer token was rejected (401/403)
	KindAuth
	// KindHTTP indicates any other non-2xx response
	KindHTTP
	// KindParse indicates a malformed response body
	KindParse
	// KindValidation indicates the request was rejected before being sent
	KindValidation
	// KindCanceled indicates the caller canceled the request
	KindCanceled
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "Network Error"
	case KindTimeout:
		return "Timeout"
	case KindConnectionRefused:
		return "Connection Refused"
	case KindDNS:
		return "DNS Error"
	case KindAuth:
		return "Authentication Error"
	case KindHTTP:
		return "HTTP Error"
	case KindParse:
		return "Parse Error"
	case KindValidation:
		return "Validation Error"
	case KindCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// TransportError is the only error the directory client returns. Every
// failure is terminal for that one call; nothing is retried.
type TransportError struct {
	Kind       ErrorKind // Category of error
	Op         string    // "fetch_all" or "update_status"
	Message    string    // Human-readable message
	StatusCode int       // HTTP status code, if a response was received
	RequestID  string    // X-Request-ID sent with the request
	Err        error     // Underlying error, if any
}

// Error implements the error interface
func (e *TransportError) Error() string {
	prefix := e.Kind.String()
	if e.Op != "" {
		prefix = e.Op + ": " + prefix
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *TransportError) Unwrap() error {
	return e.Err
}

// classifyNetworkError maps a transport failure onto an ErrorKind
func classifyNetworkError(err error) (ErrorKind, string) {
	if errors.Is(err, context.Canceled) {
		return KindCanceled, "request canceled"
	}
	var timeout interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &timeout) && timeout.Timeout()) {
		return KindTimeout, "request timed out"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNS, fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return KindConnectionRefused, "connection refused"
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return KindNetwork, "host unreachable"
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return KindNetwork, "network unreachable"
		}
	}

	return KindNetwork, "network error"
}

// NewNetworkError wraps a failure that happened before a response arrived
func NewNetworkError(op string, err error) *TransportError {
	kind, msg := classifyNetworkError(err)
	return &TransportError{Kind: kind, Op: op, Message: msg, Err: err}
}

// NewHTTPError creates an error for a non-2xx response
func NewHTTPError(op string, statusCode int, body string) *TransportError {
	kind := KindHTTP
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		kind = KindAuth
	}
	msg := fmt.Sprintf("unexpected status %d", statusCode)
	if body = strings.TrimSpace(body); body != "" {
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		msg += ": " + body
	}
	return &TransportError{Kind: kind, Op: op, Message: msg, StatusCode: statusCode}
}

// NewParseError creates an error for an undecodable response body
func NewParseError(op string, err error) *TransportError {
	return &TransportError{Kind: KindParse, Op: op, Message: "failed to decode response", Err: err}
}

// NewValidationError creates an error for a request rejected before sending
func NewValidationError(message string) *TransportError {
	return &TransportError{Kind: KindValidation, Message: message}
}

// AsTransportError extracts a *TransportError from an error chain
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// IsTransportError reports whether err came from the directory client
func IsTransportError(err error) bool {
	_, ok := AsTransportError(err)
	return ok
}

// IsAuthError reports whether the bearer token was rejected
func IsAuthError(err error) bool {
	te, ok := AsTransportError(err)
	return ok && te.Kind == KindAuth
}

// IsValidationError reports whether the request never left the process
func IsValidationError(err error) bool {
	te, ok := AsTransportError(err)
	return ok && te.Kind == KindValidation
}

// ShortMessage returns a concise, user-facing description of err
func ShortMessage(err error) string {
	if err == nil {
		return ""
	}
	te, ok := AsTransportError(err)
	if !ok {
		return err.Error()
	}

	switch te.Kind {
	case KindTimeout:
		return "Directory not responding (timeout)"
	case KindConnectionRefused:
		return "Directory refused the connection"
	case KindDNS:
		return "Cannot resolve directory host"
	case KindAuth:
		return fmt.Sprintf("Authentication failed (HTTP %d) - check the API token", te.StatusCode)
	case KindHTTP:
		return fmt.Sprintf("Directory error (HTTP %d)", te.StatusCode)
	case KindParse:
		return "Failed to parse directory response"
	case KindCanceled:
		return "Request canceled"
	case KindValidation:
		return te.Message
	default:
		return "Network error - check connection"
	}
}

// Hint returns troubleshooting advice for err, one tip per line
func Hint(err error) []string {
	te, ok := AsTransportError(err)
	if !ok {
		return []string{"Please try again later."}
	}

	switch te.Kind {
	case KindTimeout:
		return []string{
			"The directory did not respond in time.",
			"Increase --timeout or check your connection.",
		}
	case KindConnectionRefused, KindDNS, KindNetwork:
		return []string{
			"Check that --base-url points at the directory API.",
			"Verify your network connection and proxy settings.",
		}
	case KindAuth:
		return []string{
			"Set CAMCTL_API_TOKEN (or the variable named by api.token_env).",
			"A .env file in the working directory is loaded automatically.",
		}
	case KindHTTP:
		if te.StatusCode >= 500 {
			return []string{"The directory reported a server error. Please try again later."}
		}
		return []string{"The directory rejected the request. Check the camera id and status."}
	case KindParse:
		return []string{"The directory returned an unexpected payload. Check --base-url."}
	case KindValidation:
		return []string{"Status must be Active or Inactive and the camera id must not be empty."}
	default:
		return []string{"Please try again later."}
	}
}
