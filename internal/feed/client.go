// Package feed talks to the scroll feed backend: it sends the tuned
// preferences when a feed session starts or resumes and decodes the cards
// that come back.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"github.com/abhisek/feedtune/internal/logger"
	"github.com/abhisek/feedtune/internal/prefs"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20

	headerRequestID        = "X-Request-ID"
	headerClientVersion    = "X-Client-Version"
	headerMinClientVersion = "X-Min-Client-Version"
)

// Client is a feed backend client.
type Client struct {
	baseURL string
	http    *http.Client
	version string
	log     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithVersion sets the version sent in X-Client-Version.
func WithVersion(v string) Option {
	return func(c *Client) { c.version = v }
}

// WithLogger sets the request logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		version: "(devel)",
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartRequest is the body of a start call. Preferences are flattened so
// the payload carries difficulty, contentMix and questionStyle at the top
// level.
type StartRequest struct {
	Topic string `json:"topic,omitempty"`
	Count int    `json:"count,omitempty"`
	prefs.FeedPreferences
}

// ResumeRequest is the body of a resume call.
type ResumeRequest struct {
	Count int `json:"count,omitempty"`
	prefs.FeedPreferences
}

// BuildRequest returns a StartRequest carrying p.
func BuildRequest(p prefs.FeedPreferences) StartRequest {
	return StartRequest{FeedPreferences: p.Clone()}
}

// Session is a decoded start/resume response.
type Session struct {
	ID      string
	Cards   []prefs.Card
	HasMore bool
}

type sessionResponse struct {
	SessionID string            `json:"session_id"`
	Cards     []json.RawMessage `json:"cards"`
	HasMore   bool              `json:"has_more"`
}

// StartSession opens a new feed session.
func (c *Client) StartSession(ctx context.Context, req StartRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return c.post(ctx, "/scroll/start", req)
}

// ResumeSession fetches more cards for an existing session using the
// current preferences.
func (c *Client) ResumeSession(ctx context.Context, sessionID string, p prefs.FeedPreferences) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("resume session: empty session id")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	path := "/scroll/" + url.PathEscape(sessionID) + "/resume"
	return c.post(ctx, path, ResumeRequest{FeedPreferences: p.Clone()})
}

func (c *Client) post(ctx context.Context, path string, body any) (*Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set(headerClientVersion, c.version)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("feed request failed", "path", path, "request_id", requestID, "error", err)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("feed request",
		"path", path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if err := c.checkVersion(resp.Header.Get(headerMinClientVersion)); err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp, raw)
	}
	return decodeSession(raw)
}

// checkVersion rejects servers that require a newer client. Development
// builds and unparseable versions are not checked.
func (c *Client) checkVersion(minVersion string) error {
	if minVersion == "" {
		return nil
	}
	have, want := canonicalVersion(c.version), canonicalVersion(minVersion)
	if !semver.IsValid(have) || !semver.IsValid(want) {
		return nil
	}
	if semver.Compare(have, want) < 0 {
		return &IncompatibleServerError{ClientVersion: c.version, MinVersion: minVersion}
	}
	return nil
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func newAPIError(resp *http.Response, raw []byte) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	if resp.StatusCode == http.StatusTooManyRequests {
		apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
	}
	return apiErr
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d.Round(time.Second)
		}
	}
	return 0
}

func decodeSession(raw []byte) (*Session, error) {
	if err := validate("session", sessionSchema, raw); err != nil {
		return nil, err
	}
	var sr sessionResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		return nil, &InvalidResponseError{Content: raw, Err: err}
	}
	s := &Session{ID: sr.SessionID, HasMore: sr.HasMore, Cards: make([]prefs.Card, 0, len(sr.Cards))}
	for i, rc := range sr.Cards {
		card, err := prefs.DecodeCard(rc)
		if err != nil {
			return nil, &InvalidResponseError{Content: raw, Err: fmt.Errorf("card %d: %w", i, err)}
		}
		s.Cards = append(s.Cards, card)
	}
	return s, nil
}
