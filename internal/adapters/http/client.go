package http

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
	"sync"
	"time"

	"github.com/bft-labs/charview/internal/domain"
	"github.com/bft-labs/charview/internal/ports"
	"github.com/bft-labs/charview/pkg/log"
)

const charactersEndpoint = "/characters"

// maxDrain bounds how much of an error response body is read before closing.
const maxDrain = 64 << 10

// Client implements ports.CharacterAPI over HTTP.
type Client struct {
	client    ports.HTTPClient
	logger    log.Logger
	userAgent string

	mu      sync.RWMutex
	baseURL string
}

// NewClient creates a character API client rooted at baseURL
// (for example "https://dragonball-api.com/api").
func NewClient(baseURL string, client ports.HTTPClient, logger log.Logger) *Client {
	return &Client{
		client:    client,
		logger:    logger,
		userAgent: "charview",
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// SetUserAgent overrides the User-Agent header sent with every request.
func (c *Client) SetUserAgent(ua string) {
	c.userAgent = ua
}

// SetBaseURL repoints the client. Requests already in flight keep the old URL.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// BaseURL returns the current API root.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// ListCharacters fetches the first page of characters.
func (c *Client) ListCharacters(ctx context.Context) (domain.Envelope[domain.Page], error) {
	env, err := get[domain.Page](ctx, c, c.BaseURL()+charactersEndpoint, "characters")
	if err != nil {
		return env, err
	}
	// A success without a body is an empty page.
	if env.IsSuccessful && env.Body == nil {
		env.Body = &domain.Page{}
	}
	return env, nil
}

// GetCharacter fetches a single character by id.
func (c *Client) GetCharacter(ctx context.Context, id string) (domain.Envelope[domain.Character], error) {
	if id == "" {
		return domain.Envelope[domain.Character]{}, domain.ErrEmptyID
	}
	u := c.BaseURL() + charactersEndpoint + "/" + url.PathEscape(id)
	return get[domain.Character](ctx, c, u, "character")
}

// get issues a GET and decodes a 2xx JSON body into T.
func get[T any](ctx context.Context, c *Client, u, what string) (domain.Envelope[T], error) {
	var env domain.Envelope[T]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return env, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	reqID := ports.RequestID(ctx)
	if reqID != "" {
		req.Header.Set("X-Request-Id", reqID)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return env, err
	}
	defer resp.Body.Close()

	env.StatusCode = resp.StatusCode
	env.StatusMessage = reasonPhrase(resp)
	env.IsSuccessful = resp.StatusCode/100 == 2

	c.logger.Debug("api response",
		log.String("request_id", reqID),
		log.String("url", u),
		log.Int("status", resp.StatusCode),
		log.Duration("took", time.Since(start)),
	)

	if !env.IsSuccessful {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
		return env, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Envelope[T]{}, fmt.Errorf("read %s: %w", what, err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return env, nil
	}

	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return domain.Envelope[T]{}, fmt.Errorf("decode %s: %w", what, err)
	}
	env.Body = &v
	return env, nil
}

// reasonPhrase extracts "Not Found" from a "404 Not Found" status line,
// falling back to the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

// Ensure Client implements ports.CharacterAPI.
var _ ports.CharacterAPI = (*Client)(nil)
