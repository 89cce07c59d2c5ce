package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"nolabels/internal/services"
)

const (
	defaultFetchTimeout  = 30 * time.Second
	defaultFetchMaxBytes = 10 << 20
)

// DocumentFetcher downloads documents listing one item per line.
type DocumentFetcher struct {
	userAgent  string
	maxBytes   int64
	httpClient *http.Client
}

// FetchOption customizes a DocumentFetcher.
type FetchOption func(*DocumentFetcher)

// WithFetchHTTPClient overrides the default HTTP client.
func WithFetchHTTPClient(client *http.Client) FetchOption {
	return func(f *DocumentFetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithMaxBytes bounds the accepted body size. Non-positive values keep the
// default.
func WithMaxBytes(n int64) FetchOption {
	return func(f *DocumentFetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// NewDocumentFetcher constructs a fetcher identifying itself as userAgent.
func NewDocumentFetcher(userAgent string, opts ...FetchOption) *DocumentFetcher {
	fetcher := &DocumentFetcher{
		userAgent:  strings.TrimSpace(userAgent),
		maxBytes:   defaultFetchMaxBytes,
		httpClient: &http.Client{Timeout: defaultFetchTimeout},
	}
	for _, opt := range opts {
		opt(fetcher)
	}
	return fetcher
}

// Fetch downloads rawURL and returns its lines. HTML responses are reduced to
// their readable text first; each whitespace-separated token of that text is
// returned as its own line.
func (f *DocumentFetcher) Fetch(ctx context.Context, rawURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "document", "request", "", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "document", "request failed", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, services.Wrap(services.ErrFetch, "document", "fetch", fmt.Sprintf("http %d", resp.StatusCode), nil)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, services.Wrap(services.ErrFetch, "document", "fetch",
			fmt.Sprintf("content length %d exceeds limit of %d bytes", resp.ContentLength, f.maxBytes), nil)
	}

	// Read one byte past the limit to tell "exactly at the limit" from "over".
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, "document", "read body", "", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, services.Wrap(services.ErrFetch, "document", "read body",
			fmt.Sprintf("body exceeds limit of %d bytes", f.maxBytes), nil)
	}

	if isHTML(resp.Header.Get("Content-Type")) {
		text, err := readableText(body, resp.Request.URL)
		if err != nil {
			return nil, services.Wrap(services.ErrFetch, "document", "extract text", "", err)
		}
		return strings.Fields(text), nil
	}
	return SplitLines(string(body)), nil
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

func readableText(body []byte, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
