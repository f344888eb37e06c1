// Package api is the HTTP client for the contacts REST backend.
//
// The backend owns persistence. The client never caches: every call is a
// fresh request, and failures are reported once without retry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smileynet/contactbook/internal/contact"
)

// CollectionPath is the backend path of the contact collection.
const CollectionPath = "/api/contacts"

// maxErrorBody caps how much of a failed response body is read for logging.
const maxErrorBody = 512

// Client talks to the contacts backend.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero means no per-request bound beyond
// the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient returns a Client for the backend rooted at baseURL
// (e.g. "http://localhost:3000").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches the full contact collection.
func (c *Client) List(ctx context.Context) ([]contact.Contact, error) {
	resp, err := c.do(ctx, http.MethodGet, CollectionPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, c.statusError(resp))
	}

	var contacts []contact.Contact
	if err := json.NewDecoder(resp.Body).Decode(&contacts); err != nil {
		c.log.Warn().Err(err).Msg("decoding contact list")
		return nil, fmt.Errorf("%w: decoding response: %w", ErrLoadFailed, err)
	}
	if contacts == nil {
		contacts = []contact.Contact{}
	}
	return contacts, nil
}

// Create asks the backend to create a contact from in.
func (c *Client) Create(ctx context.Context, in contact.Input) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: encoding request: %w", ErrCreateFailed, err)
	}
	resp, err := c.do(ctx, http.MethodPost, CollectionPath, body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("%w: %w", ErrCreateFailed, c.statusError(resp))
	}
	drain(resp.Body)
	return nil
}

// Delete removes the contact with the given id. Any 2xx status, including
// 204 No Content, counts as success.
func (c *Client) Delete(ctx context.Context, id contact.ID) error {
	resp, err := c.do(ctx, http.MethodDelete, CollectionPath+"/"+url.PathEscape(id.String()), nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, c.statusError(resp))
	}
	drain(resp.Body)
	return nil
}

// do builds and sends one request. The response body must be closed by
// the caller when err is nil.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		resp, err := c.send(ctx, method, path, body)
		if err != nil {
			cancel()
			return nil, err
		}
		resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
		return resp, nil
	}
	return c.send(ctx, method, path, body)
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, err
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")
	return resp, nil
}

// statusError builds a StatusError for resp and logs the start of its body.
func (c *Client) statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	se := &StatusError{
		Method: resp.Request.Method,
		Path:   resp.Request.URL.Path,
		Code:   resp.StatusCode,
	}
	c.log.Warn().
		Str("method", se.Method).
		Str("path", se.Path).
		Int("status", se.Code).
		Bytes("body", bytes.TrimSpace(snippet)).
		Msg("unexpected status")
	return se
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// drain reads the rest of body so the connection can be reused.
func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
}

// cancelOnClose releases a per-request timeout once the body is closed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
