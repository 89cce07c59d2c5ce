package sources

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

	"nolabels/internal/services"
)

const (
	defaultDiscoveryTimeout = 30 * time.Second
	// discoveryBodyLimit caps the JSON envelope read from the service.
	discoveryBodyLimit = 64 << 20
)

// DiscoveryClient runs item discovery queries against a WDQ-compatible
// endpoint.
type DiscoveryClient struct {
	baseURL    string
	userAgent  string
	validator  Validator
	httpClient *http.Client
}

// DiscoveryOption customizes a DiscoveryClient.
type DiscoveryOption func(*DiscoveryClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) DiscoveryOption {
	return func(c *DiscoveryClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithValidator replaces the AcceptAll validator.
func WithValidator(v Validator) DiscoveryOption {
	return func(c *DiscoveryClient) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithUserAgent sets the User-Agent header sent with queries.
func WithUserAgent(ua string) DiscoveryOption {
	return func(c *DiscoveryClient) {
		c.userAgent = strings.TrimSpace(ua)
	}
}

// NewDiscoveryClient constructs a client for the endpoint at baseURL.
func NewDiscoveryClient(baseURL string, opts ...DiscoveryOption) *DiscoveryClient {
	client := &DiscoveryClient{
		baseURL:    strings.TrimSpace(baseURL),
		validator:  AcceptAll,
		httpClient: &http.Client{Timeout: defaultDiscoveryTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type discoveryEnvelope struct {
	Status struct {
		Error string `json:"error"`
	} `json:"status"`
	Items []json.RawMessage `json:"items"`
}

// Query sends query to the discovery service and returns the raw item values
// it reports. Numbers and strings are both accepted in the items array.
func (c *DiscoveryClient) Query(ctx context.Context, query string) ([]string, error) {
	if err := c.validator.Validate(query); err != nil {
		return nil, services.Wrap(services.ErrValidation, "discovery", "validate query", "", err)
	}

	endpoint, err := c.endpoint(query)
	if err != nil {
		return nil, services.Wrap(services.ErrDiscoveryQuery, "discovery", "build url", "", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrDiscoveryQuery, "discovery", "request", "", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrDiscoveryQuery, "discovery", "request failed", "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, discoveryBodyLimit))
	if err != nil {
		return nil, services.Wrap(services.ErrDiscoveryQuery, "discovery", "read body", "", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices || resp.StatusCode < http.StatusOK {
		return nil, services.Wrap(services.ErrDiscoveryQuery, "discovery", "query",
			fmt.Sprintf("http %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(body)), 200)), nil)
	}

	var envelope discoveryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, services.Wrap(services.ErrDiscoveryQuery, "discovery", "decode response", "", err)
	}
	if status := strings.TrimSpace(envelope.Status.Error); status != "OK" {
		if status == "" {
			status = "missing status"
		}
		return nil, services.Wrap(services.ErrDiscoveryQuery, "discovery", "query", status, nil)
	}

	raw := make([]string, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		value, err := rawItem(item)
		if err != nil {
			return nil, services.Wrap(services.ErrDiscoveryQuery, "discovery", "decode item", "", err)
		}
		raw = append(raw, value)
	}
	return raw, nil
}

func (c *DiscoveryClient) endpoint(query string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("base url is empty")
	}
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	values := parsed.Query()
	values.Set("q", query)
	parsed.RawQuery = values.Encode()
	return parsed.String(), nil
}

// rawItem renders a JSON number or string as the raw identifier text.
func rawItem(msg json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("empty item")
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", fmt.Errorf("unsupported item %s", trimmed)
	}
	return n.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
