package directory

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyNetworkError(t *testing.T) {
	wrap := func(inner error) error {
		return &url.Error{Op: "Get", URL: "https://api.example.com", Err: inner}
	}

	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"timeout", wrap(&net.OpError{Op: "dial", Net: "tcp", Err: timeoutError{}}), KindTimeout},
		{"deadline", wrap(context.DeadlineExceeded), KindTimeout},
		{"canceled", wrap(context.Canceled), KindCanceled},
		{"refused", wrap(&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}), KindConnectionRefused},
		{"host unreachable", wrap(&net.OpError{Op: "dial", Net: "tcp", Err: syscall.EHOSTUNREACH}), KindNetwork},
		{"dns", wrap(&net.DNSError{Err: "no such host", Name: "api.example.com"}), KindDNS},
		{"generic", errors.New("connection reset"), KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := NewNetworkError(opFetchAll, tt.err)
			assert.Equal(t, tt.want, te.Kind)
			assert.ErrorIs(t, te, tt.err)
		})
	}
}

func TestNewHTTPErrorTruncatesBody(t *testing.T) {
	te := NewHTTPError(opFetchAll, http.StatusBadGateway, strings.Repeat("x", 500))
	assert.Equal(t, KindHTTP, te.Kind)
	assert.Less(t, len(te.Message), 260)
	assert.True(t, strings.HasSuffix(te.Message, "..."))
}

func TestTransportErrorThroughWrapping(t *testing.T) {
	base := NewHTTPError(opUpdateStatus, http.StatusUnauthorized, "")
	wrapped := fmt.Errorf("set-status: %w", base)

	assert.True(t, IsTransportError(wrapped))
	assert.True(t, IsAuthError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.Contains(t, wrapped.Error(), "update_status")
}

func TestShortMessage(t *testing.T) {
	assert.Equal(t, "", ShortMessage(nil))
	assert.Equal(t, "plain", ShortMessage(errors.New("plain")))
	assert.Equal(t, "Directory error (HTTP 500)", ShortMessage(NewHTTPError(opFetchAll, 500, "")))
	assert.Contains(t, ShortMessage(NewHTTPError(opFetchAll, 401, "")), "check the API token")
	assert.Equal(t, "camera id is required", ShortMessage(NewValidationError("camera id is required")))
}

func TestHintCoversEveryKind(t *testing.T) {
	for k := KindNetwork; k <= KindCanceled; k++ {
		hint := Hint(&TransportError{Kind: k})
		assert.NotEmpty(t, hint, k.String())
	}
	assert.NotEmpty(t, Hint(errors.New("other")))
}
