// Package gateway wraps a single outbound HTTP request and translates the
// transport and status-code outcome into a decoded value or a typed error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrRejected  = errors.New("gateway: request rejected")
	ErrTransport = errors.New("gateway: transport error")
	ErrNetwork   = errors.New("gateway: network fault")
)

// RejectedError is returned for HTTP 400 and 403 responses. Message is the
// server's declared error message, surfaced verbatim.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

// Is reports whether target is ErrRejected.
func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// TransportError is returned for any status other than 200, 400 and 403.
// The response body is never inspected.
type TransportError struct {
	Status int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// DecodeError is returned when a 200, 400 or 403 body cannot be decoded as JSON.
type DecodeError struct {
	Status      int
	ContentType string // sniffed from the body, not the header
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gateway: decoding %d response (%s): %v", e.Status, e.ContentType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Request describes one HTTP call. A non-nil Body is JSON-encoded.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   any
}

// Doer is the subset of *http.Client used by Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs gateway requests. The zero value is not usable; use New.
type Client struct {
	doer   Doer
	logger zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithDoer sets the underlying HTTP client.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.doer = d
	}
}

// WithLogger sets the logger used for per-request debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithTimeout installs an *http.Client with the given timeout.
// Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.doer = &http.Client{Timeout: d}
	}
}

// New creates a Client. By default it uses an *http.Client without a timeout
// and a no-op logger.
func New(opts ...Option) *Client {
	c := &Client{
		doer:   &http.Client{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the declared shape of a 400/403 response body.
type errorBody struct {
	Message string `json:"message"`
}

// Do performs the request exactly once and decodes a 200 body into v.
// v may be nil to discard the body.
func (c *Client) Do(ctx context.Context, r Request, v any) error {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Debug().Str("method", req.Method).Str("url", r.URL).Err(err).Msg("request failed")
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", r.URL).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request complete")

	switch resp.StatusCode {
	case http.StatusOK:
		if v == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		return decodeBody(resp, v)

	case http.StatusBadRequest, http.StatusForbidden:
		var body errorBody
		if err := decodeBody(resp, &body); err != nil {
			return err
		}
		return &RejectedError{Status: resp.StatusCode, Message: body.Message}

	default:
		return &TransportError{Status: resp.StatusCode}
	}
}

// newRequest builds the *http.Request, encoding the body when present.
func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("gateway: encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: building request: %w", err)
	}
	for k, vals := range r.Header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}
	return req, nil
}

// decodeBody reads the full body and unmarshals it into v. On failure the
// body's content type is sniffed so the error names what actually came back.
func decodeBody(resp *http.Response, v any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %w", ErrNetwork, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{
			Status:      resp.StatusCode,
			ContentType: mimetype.Detect(data).String(),
			Err:         err,
		}
	}
	return nil
}
