package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pfrederiksen/stadium-fixtures/internal/fixture"
	"github.com/pfrederiksen/stadium-fixtures/internal/logger"
)

const (
	UserAgent = "stadium-fixtures/1.0 (github.com/pfrederiksen/stadium-fixtures)"

	DefaultStadiumPath  = "/api/stadium/sammyofer"
	DefaultFixturesPath = "/api/fotmob/sammyofer"
)

var (
	// ErrStatus is returned when the backend answers with a non-2xx status
	ErrStatus = errors.New("unexpected status")

	// ErrShape is returned when the stadium payload is not a JSON object or the
	// fixtures payload is not a JSON array
	ErrShape = errors.New("unexpected payload shape")
)

// Client fetches stadium and fixture data from the backend
type Client struct {
	baseURL      string
	stadiumPath  string
	fixturesPath string
	userAgent    string
	httpClient   *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the client used for requests
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithPaths overrides the endpoint paths. Empty values keep the defaults.
func WithPaths(stadium, fixtures string) Option {
	return func(c *Client) {
		if stadium != "" {
			c.stadiumPath = stadium
		}
		if fixtures != "" {
			c.fixturesPath = fixtures
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client for the backend at baseURL.
// The default HTTP client has no timeout.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		stadiumPath:  DefaultStadiumPath,
		fixturesPath: DefaultFixturesPath,
		userAgent:    UserAgent,
		httpClient:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchStadium fetches the stadium information
func (c *Client) FetchStadium(ctx context.Context) (*Stadium, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, c.stadiumPath, &raw); err != nil {
		return nil, fmt.Errorf("fetching stadium: %w", err)
	}

	stadium, err := decodeStadium(raw)
	if err != nil {
		return nil, fmt.Errorf("fetching stadium: %w", err)
	}
	return stadium, nil
}

// decodeStadium decodes a JSON object. null, arrays and scalars are ErrShape.
func decodeStadium(raw json.RawMessage) (*Stadium, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: %.20s", ErrShape, trimmed)
	}

	var stadium Stadium
	if err := json.Unmarshal(trimmed, &stadium); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	return &stadium, nil
}

// FetchFixtures fetches the full fixture list in backend order
func (c *Client) FetchFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, c.fixturesPath, &raw); err != nil {
		return nil, fmt.Errorf("fetching fixtures: %w", err)
	}

	fixtures, err := decodeFixtures(raw)
	if err != nil {
		return nil, fmt.Errorf("fetching fixtures: %w", err)
	}
	return fixtures, nil
}

// decodeFixtures decodes a JSON array of fixtures, skipping elements that fail to decode
func decodeFixtures(raw json.RawMessage) ([]fixture.Fixture, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	if elements == nil {
		// "null"
		return nil, fmt.Errorf("%w: null", ErrShape)
	}

	fixtures := make([]fixture.Fixture, 0, len(elements))
	for i, el := range elements {
		var f fixture.Fixture
		if err := json.Unmarshal(el, &f); err != nil {
			logger.Warn("Skipping undecodable fixture", logger.Fields{
				"index": i,
				"error": err.Error(),
			})
			continue
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %d %s", ErrStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
