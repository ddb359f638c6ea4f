// Package tsdr is a minimal client for the USPTO Trademark Status & Document
// Retrieval REST API.
package tsdr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production TSDR API root.
	DefaultBaseURL = "https://tsdrapi.uspto.gov/ts/cd"

	// DefaultUserAgent identifies this server to USPTO.
	DefaultUserAgent = "uspto-tsdr-mcp/1.0"

	// APIKeyHeader carries the USPTO API key on every request.
	APIKeyHeader = "USPTO-API-KEY"
)

// Endpoint names used for metrics and logs.
const (
	EndpointCaseStatus = "casestatus_info"
	EndpointContent    = "casestatus_content"
	EndpointImage      = "raw_image"
)

// Format is the representation requested from the case status endpoint.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

func (f Format) accept() string {
	if f == FormatXML {
		return "application/xml"
	}
	return "application/json"
}

// IDKind distinguishes serial from registration numbers in the path.
type IDKind string

const (
	KindSerial       IDKind = "sn"
	KindRegistration IDKind = "rn"
)

// CaseID addresses one trademark case.
type CaseID struct {
	Kind   IDKind
	Number string
}

// Serial returns the CaseID for an application serial number.
func Serial(number string) CaseID {
	return CaseID{Kind: KindSerial, Number: number}
}

// Registration returns the CaseID for a registration number.
func Registration(number string) CaseID {
	return CaseID{Kind: KindRegistration, Number: number}
}

func (id CaseID) String() string {
	return string(id.Kind) + id.Number
}

// Observer receives one notification per completed upstream request. A status
// of 0 means the request never produced a response.
type Observer interface {
	ObserveUpstream(endpoint string, status int, elapsed time.Duration)
}

// Client issues single, unretried requests against the TSDR API. It keeps no
// per-request state and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithObserver registers an observer for upstream requests.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// NewClient creates a client for baseURL. Empty baseURL and userAgent fall back
// to the defaults.
func NewClient(baseURL, apiKey, userAgent string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		userAgent:  userAgent,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasAPIKey reports whether requests will be authenticated.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// CaseStatusURL builds /casestatus/{sn|rn}{number}/info.{ext}.
func (c *Client) CaseStatusURL(id CaseID, format Format) string {
	return fmt.Sprintf("%s/casestatus/%s/info.%s", c.baseURL, id, format)
}

// ContentURL builds /casestatus/sn{serial}/content.
func (c *Client) ContentURL(serial string) string {
	return fmt.Sprintf("%s/casestatus/%s/content", c.baseURL, Serial(serial))
}

// ImageURL builds /rawImage/{serial}.
func (c *Client) ImageURL(serial string) string {
	return fmt.Sprintf("%s/rawImage/%s", c.baseURL, serial)
}

// DocumentsURL builds /casedocs/bundle.pdf?sn={serial}. It is never fetched.
func (c *Client) DocumentsURL(serial string) string {
	return fmt.Sprintf("%s/casedocs/bundle.pdf?sn=%s", c.baseURL, url.QueryEscape(serial))
}

// CaseStatus fetches the case status document in the requested format.
func (c *Client) CaseStatus(ctx context.Context, id CaseID, format Format) ([]byte, error) {
	return c.get(ctx, EndpointCaseStatus, c.CaseStatusURL(id, format), format.accept())
}

// Content fetches the HTML status page for a serial number.
func (c *Client) Content(ctx context.Context, serial string) ([]byte, error) {
	return c.get(ctx, EndpointContent, c.ContentURL(serial), "text/html")
}

// ImageExists probes the raw image with a HEAD request. Any 2xx means the image
// exists; every other status is reported as absent. Only failures to get a
// response at all are returned as errors.
func (c *Client) ImageExists(ctx context.Context, serial string) (bool, int, error) {
	resp, err := c.do(ctx, EndpointImage, http.MethodHead, c.ImageURL(serial), "*/*")
	if err != nil {
		return false, 0, err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	return isSuccess(resp.StatusCode), resp.StatusCode, nil
}

func (c *Client) get(ctx context.Context, endpoint, target, accept string) ([]byte, error) {
	resp, err := c.do(ctx, endpoint, http.MethodGet, target, accept)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: ErrTransport, URL: target, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if !isSuccess(resp.StatusCode) {
		return nil, c.statusError(target, resp.StatusCode, body)
	}

	return body, nil
}

func (c *Client) do(ctx context.Context, endpoint, method, target, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, &Error{Kind: ErrTransport, URL: target, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if c.observer != nil {
		c.observer.ObserveUpstream(endpoint, status, time.Since(start))
	}

	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &Error{Kind: ErrTransport, URL: target, Err: err}
	}

	return resp, nil
}

func (c *Client) statusError(target string, status int, body []byte) *Error {
	text := string(body)

	kind := ErrUpstream
	if strings.Contains(text, registerMarker) {
		kind = ErrAuth
	}

	return &Error{
		Kind:       kind,
		URL:        target,
		StatusCode: status,
		StatusText: http.StatusText(status),
		Body:       text,
		KeyHint:    RedactKey(c.apiKey),
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
