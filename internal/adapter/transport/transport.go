// Package transport sends JSON requests to the remote ledger service.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the client-generated id of each request.
const RequestIDHeader = "X-Request-ID"

// Endpoint addresses one remote ledger instance.
type Endpoint struct {
	BaseURL string
	Token   string
}

// Request is one JSON call. A nil Body sends no payload.
type Request struct {
	Path   string
	Method string
	Body   any
}

// Response is the raw reply of a successful call.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// Error describes a failed call: either no response (Err set) or a non-2xx status.
type Error struct {
	Path       string
	Method     string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, strings.TrimSpace(string(e.Body)))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Observer records request outcomes.
type Observer interface {
	ObserveRequest(method, path string, status int, duration time.Duration)
}

// Sender is what API clients need from a transport.
type Sender interface {
	Send(ctx context.Context, endpoint Endpoint, req Request) (*Response, error)
}

// HTTPTransport is a Sender over net/http. It never retries.
type HTTPTransport struct {
	client   *http.Client
	logger   zerolog.Logger
	observer Observer
}

// NewHTTPTransport creates a new HTTPTransport. observer may be nil.
func NewHTTPTransport(client *http.Client, logger zerolog.Logger, observer Observer) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		client:   client,
		logger:   logger,
		observer: observer,
	}
}

// Send performs req against endpoint.
func (t *HTTPTransport) Send(ctx context.Context, endpoint Endpoint, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Error{Path: req.Path, Method: method, Err: fmt.Errorf("encode body: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(endpoint.BaseURL, "/")+req.Path, body)
	if err != nil {
		return nil, &Error{Path: req.Path, Method: method, Err: err}
	}

	requestID := ulid.Make().String()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if endpoint.Token != "" {
		httpReq.Header.Set("Authorization", "bearer "+endpoint.Token)
	}

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.observe(method, req.Path, 0, start)
		t.logger.Error().
			Err(err).
			Str("request_id", requestID).
			Str("method", method).
			Str("path", req.Path).
			Msg("request failed")
		return nil, &Error{Path: req.Path, Method: method, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	t.observe(method, req.Path, resp.StatusCode, start)
	if err != nil {
		return nil, &Error{Path: req.Path, Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	t.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Path: req.Path, Method: method, StatusCode: resp.StatusCode, Body: respBody}
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

func (t *HTTPTransport) observe(method, path string, status int, start time.Time) {
	if t.observer != nil {
		t.observer.ObserveRequest(method, path, status, time.Since(start))
	}
}
