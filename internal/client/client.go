// Package client talks to the upstream file-management REST API. Every call
// carries the session's bearer token, decodes the {success, body|data,
// message} envelope, and reports failures as typed errors carrying a
// user-displayable message. The client never retries on its own; callers
// decide whether to surface an error and keep stale data visible.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"

	"fileadmin/internal/auth"
)

const genericErrorMessage = "Something went wrong. Please try again."

// Envelope is the upstream response shape shared by reads and writes. Some
// endpoints populate body, older ones populate data; Payload resolves the
// fallback chain without guessing which is authoritative.
type Envelope struct {
	Success bool            `json:"success"`
	Body    json.RawMessage `json:"body,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Payload returns body when present, else the legacy data field. A JSON null
// counts as absent, so an endpoint that sends body:null alongside a populated
// data still resolves to data.
func (e Envelope) Payload() json.RawMessage {
	if isPresent(e.Body) {
		return e.Body
	}
	if isPresent(e.Data) {
		return e.Data
	}
	return nil
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// APIError reports a transport failure or a server-side success:false. The
// message is safe to show to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: %s", e.Message)
}

// DisplayMessage extracts the user-facing message from an error, falling back
// to a generic one when the server supplied none.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericErrorMessage
}

// Ack is the acknowledgement for a successful mutation.
type Ack struct {
	Message string
}

// Client issues authenticated requests against the upstream API.
type Client struct {
	http *resty.Client

	// inflight drives the loading flag: set for the duration of every call,
	// reset on both success and failure paths.
	inflight atomic.Int32
}

// New builds a client for the given base URL. Retries stay disabled; the
// caller owns the decision to re-issue a failed request.
func New(baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		httpClient.SetTimeout(timeout)
	}
	return &Client{http: httpClient}
}

// Loading reports whether any request is currently in flight.
func (c *Client) Loading() bool {
	return c.inflight.Load() > 0
}

func (c *Client) beginRequest() func() {
	c.inflight.Add(1)
	return func() { c.inflight.Add(-1) }
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	// The token lives in external session state and is read fresh per request.
	if token, ok := auth.TokenFromContext(ctx); ok {
		req.SetAuthToken(token)
	}
	return req
}

// execute runs the request and decodes the envelope, folding transport
// failures and success:false into APIError.
func (c *Client) execute(req *resty.Request, method, path string) (*Envelope, error) {
	done := c.beginRequest()
	defer done()

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, &APIError{Message: genericErrorMessage}
	}
	var envelope Envelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: genericErrorMessage}
	}
	if !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = genericErrorMessage
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: message}
	}
	return &envelope, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	req := c.newRequest(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	return c.execute(req, "GET", path)
}
