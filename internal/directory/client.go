package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/muurk/camctl/internal/logging"
	"github.com/muurk/camctl/internal/version"
)

const (
	// DefaultFetchPath is the collection endpoint (GET)
	DefaultFetchPath = "/app/v1/fetch/cameras"

	// DefaultUpdatePath is the status update endpoint (PUT)
	DefaultUpdatePath = "/app/v1/update/camera/status"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries a per-request UUID for log correlation
	RequestIDHeader = "X-Request-ID"
)

const (
	opFetchAll     = "fetch_all"
	opUpdateStatus = "update_status"
)

// Client talks to the remote camera directory. It performs exactly two
// operations and never retries: a failed call is reported to the caller as a
// *TransportError and it is up to the operator to try again.
//
// Client does not cache. UpdateStatus changes remote state only; callers
// reconcile by calling FetchAll again.
type Client struct {
	// BaseURL is the API root (e.g., "https://api-app-staging.wobot.ai")
	BaseURL string

	// FetchPath is the GET path returning { "data": [...] }
	FetchPath string

	// UpdatePath is the PUT path accepting { "status", "id" }
	UpdatePath string

	http *resty.Client
}

// NewClient creates a directory client authenticating with a bearer token.
// The token is injected by the caller; it is never read from disk here.
func NewClient(baseURL, token string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(DefaultTimeout).
		SetRetryCount(0).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", version.UserAgent()).
		SetLogger(logging.GetLogger().Sugar())

	return &Client{
		BaseURL:    baseURL,
		FetchPath:  DefaultFetchPath,
		UpdatePath: DefaultUpdatePath,
		http:       rc,
	}
}

// SetTimeout sets the per-request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.http.SetTimeout(timeout)
}

// SetPaths overrides the endpoint paths. Empty values keep the current path.
func (c *Client) SetPaths(fetchPath, updatePath string) {
	if fetchPath != "" {
		c.FetchPath = fetchPath
	}
	if updatePath != "" {
		c.UpdatePath = updatePath
	}
}

// FetchAll retrieves the complete camera collection in directory order.
func (c *Client) FetchAll(ctx context.Context) (Collection, error) {
	requestID := uuid.NewString()
	start := time.Now()

	logging.LogRequest(opFetchAll, http.MethodGet, c.BaseURL+c.FetchPath, requestID)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		Get(c.FetchPath)
	if err != nil {
		return nil, withRequestID(NewNetworkError(opFetchAll, err), requestID)
	}

	logging.LogResponse(opFetchAll, resp.StatusCode(), requestID, time.Since(start))

	if !resp.IsSuccess() {
		return nil, withRequestID(NewHTTPError(opFetchAll, resp.StatusCode(), resp.String()), requestID)
	}

	var body fetchResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, withRequestID(NewParseError(opFetchAll, err), requestID)
	}
	if body.Data == nil {
		te := NewParseError(opFetchAll, nil)
		te.Message = `response has no "data" array`
		return nil, withRequestID(te, requestID)
	}

	devices := *body.Data
	if devices == nil {
		devices = Collection{}
	}
	return devices, nil
}

// UpdateStatus asks the directory to set one camera's status. The status is
// validated and canonicalised before anything is sent.
func (c *Client) UpdateStatus(ctx context.Context, id string, status Status) error {
	if strings.TrimSpace(id) == "" {
		te := NewValidationError("camera id is required")
		te.Op = opUpdateStatus
		return te
	}
	canonical, err := ParseStatus(string(status))
	if err != nil {
		if te, ok := AsTransportError(err); ok {
			te.Op = opUpdateStatus
		}
		return err
	}

	requestID := uuid.NewString()
	start := time.Now()

	logging.LogRequest(opUpdateStatus, http.MethodPut, c.BaseURL+c.UpdatePath, requestID)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetHeader("Content-Type", "application/json").
		SetBody(statusUpdate{Status: canonical, ID: id}).
		Put(c.UpdatePath)
	if err != nil {
		return withRequestID(NewNetworkError(opUpdateStatus, err), requestID)
	}

	logging.LogResponse(opUpdateStatus, resp.StatusCode(), requestID, time.Since(start))

	if !resp.IsSuccess() {
		return withRequestID(NewHTTPError(opUpdateStatus, resp.StatusCode(), resp.String()), requestID)
	}
	return nil
}

func withRequestID(te *TransportError, requestID string) *TransportError {
	te.RequestID = requestID
	return te
}
