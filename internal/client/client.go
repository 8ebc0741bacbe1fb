// Package client is a typed Go client for the auth endpoints and the
// collection procedures. It keeps the session in a TokenStore and refreshes
// the access token once when the server rejects it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/sahildmk/intention-app/internal/transport/rpc"
)

const (
	defaultTimeout = 30 * time.Second
	maxResponse    = 1 << 20
	// expirySkew refreshes slightly before the server would reject the token.
	expirySkew = 10 * time.Second
)

// Client talks to an intention server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	clock      clockwork.Clock
	store      TokenStore

	mu   sync.Mutex
	sess Session

	refreshMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithClock replaces the clock used for token expiry.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// New creates a Client and loads any stored session from store.
func New(baseURL string, store TokenStore, logger *slog.Logger, opts ...Option) *Client {
	if store == nil {
		store = &MemoryStore{}
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.With("adapter", "client"),
		clock:      clockwork.NewRealClock(),
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}

	sess, err := store.Load()
	switch {
	case err == nil:
		c.sess = sess
	case !errors.Is(err, ErrNoSession):
		c.log.Warn("stored session unreadable", slog.String("error", err.Error()))
	}
	return c
}

// SignedIn reports whether the client holds a session. The session may still
// be rejected by the server.
func (c *Client) SignedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.valid()
}

// User returns the signed-in user, or the zero User.
func (c *Client) User() User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.User
}

func (c *Client) session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

func (c *Client) setSession(s Session) {
	c.mu.Lock()
	c.sess = s
	c.mu.Unlock()

	var err error
	if s.valid() {
		err = c.store.Save(s)
	} else {
		err = c.store.Clear()
	}
	if err != nil {
		c.log.Warn("session not persisted", slog.String("error", err.Error()))
	}
}

// ---------------------------------------------------------------------------
// HTTP plumbing
// ---------------------------------------------------------------------------

// post sends body as JSON. A nil body sends no payload. An empty token sends
// no Authorization header.
func (c *Client) post(ctx context.Context, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("client: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.DebugContext(ctx, "request", slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s: %w", path, err)
	}
	return resp, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, fmt.Errorf("client: read body: %w", err)
	}
	return data, nil
}

// failure decodes a failure envelope. Bodies that are not envelopes become a
// generic error carrying the status.
func failure(path string, status int, data []byte) error {
	var env rpc.Envelope[json.RawMessage]
	if err := json.Unmarshal(data, &env); err == nil && !env.OK {
		return env.Error
	}
	return fmt.Errorf("client: %s: unexpected status %d", path, status)
}
