// Package api implements the Notesia HTTP client: a single request
// executor plus typed auth, notes and AI operations built on top of it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/notesia/notesia/internal/client/session"
)

// expiryMarker is the substring of the server's 401 detail that flags a
// stale token ("token is invalid or expired").
const expiryMarker = "invalid or expired"

// Client issues authenticated JSON requests against a Notesia server.
// The session store passed to New is the single owner of the persisted
// credential: Login establishes it, Logout and a rejected token clear it.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
	log     *zap.Logger
}

// New creates a Client for the given server base URL.
func New(baseURL string, store *session.Store, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		session: store,
		log:     log,
	}
}

// Session exposes the session store so the shell can restore or inspect
// the current credential.
func (c *Client) Session() *session.Store { return c.session }

// request describes one HTTP call for the executor.
type request struct {
	method string
	path   string
	header http.Header
	body   any
	auth   bool
}

// apiError is the JSON error envelope the server responds with.
type apiError struct {
	Detail string `json:"detail"`
}

// do executes a single request and normalizes the outcome.
//
// Success with a body returns the raw JSON for the caller to decode.
// Success with status 204 or an empty body returns (nil, nil). A transport
// failure returns *NetworkError. A 401, or any error body whose detail
// contains the expiry marker, clears the session store and returns
// ErrSessionExpired. Any other non-2xx returns *APIError.
func (c *Client) do(ctx context.Context, rq request) (json.RawMessage, error) {
	var body io.Reader
	if rq.body != nil {
		b, err := json.Marshal(rq.body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, rq.method, c.baseURL+rq.path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	// Caller-supplied headers win on collision
	for k, vs := range rq.header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if rq.auth {
		if sess := c.session.Current(); sess != nil {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		// An undecodable error body leaves the empty record
		_ = json.Unmarshal(data, &apiErr)

		if resp.StatusCode == http.StatusUnauthorized || strings.Contains(apiErr.Detail, expiryMarker) {
			c.log.Warn("session rejected by server", zap.Int("status", resp.StatusCode))
			if err := c.session.Clear(); err != nil {
				c.log.Error("failed to clear session", zap.Error(err))
			}
			return nil, ErrSessionExpired
		}

		msg := apiErr.Detail
		if msg == "" {
			msg = fmt.Sprintf("HTTP error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil, nil
	}

	if !json.Valid(data) {
		return nil, &DecodeError{Err: fmt.Errorf("invalid JSON in %d response", resp.StatusCode)}
	}
	return json.RawMessage(data), nil
}

// decode unmarshals raw into out, mapping failures to *DecodeError.
func decode(raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
