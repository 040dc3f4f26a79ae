package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production deployment API endpoint.
const DefaultBaseURL = "https://api.shipls.dev"

const (
	requestTimeout = 30 * time.Second

	// Client-side rate limiting - requests per second and burst size
	requestRate  = 5
	requestBurst = 5

	maxErrorBodyBytes = 4096
)

// Client talks to the deployment API. Construct it with NewClient; the zero
// value is not usable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an authenticated API client for the given base URL.
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = requestTimeout

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestRate), requestBurst),
		logger:     logger,
	}
}

// List fetches the caller's deployments. appFilter, when non-empty, is
// forwarded to the API as a server-side filter; no filtering happens on the
// client.
func (c *Client) List(ctx context.Context, appFilter string) ([]Deployment, error) {
	query := url.Values{}
	if appFilter != "" {
		query.Set("app", appFilter)
	}

	var out listResponse
	if err := c.get(ctx, "/v1/deployments", query, &out); err != nil {
		return nil, err
	}

	for i, d := range out.Deployments {
		if err := validateDeployment(i, d); err != nil {
			return nil, &APIError{Status: http.StatusOK, Message: "invalid response: " + err.Error()}
		}
	}

	return out.Deployments, nil
}

// Verify checks the client's token by fetching the account it belongs to.
func (c *Client) Verify(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/v1/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Close releases idle connections. The client must not be used afterwards.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &APIError{Message: "request cancelled: " + err.Error()}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &APIError{Message: "building request: " + err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: "request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	c.logger.Debug("api_request",
		"method", req.Method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Status: resp.StatusCode, Message: serverMessage(resp)}
	case resp.StatusCode != http.StatusOK:
		return &APIError{Status: resp.StatusCode, Message: serverMessage(resp)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "decoding response: " + err.Error()}
	}

	return nil
}

// serverMessage extracts a human-readable error from a non-200 response,
// preferring the API's {"error": "..."} body.
func serverMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err == nil && len(body) > 0 {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			return payload.Error
		}
		if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
			return text
		}
	}
	return strings.ToLower(http.StatusText(resp.StatusCode))
}
