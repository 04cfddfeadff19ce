// Package pipeline implements the client for the survey processing
// backend: upload, clean, report and export.
//
// Every call is a single request/response exchange. Calls are never
// retried automatically, because /clean is not idempotent.
package pipeline

import (
	"errors"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/asdp-project/asdp-cli/internal/httpapi"
	"github.com/asdp-project/asdp-cli/internal/model"
	"golang.org/x/net/publicsuffix"
)

// DefaultBaseURL is the default backend base URL.
const DefaultBaseURL = "https://asdp-banckend.onrender.com"

// ErrNoDataset indicates that an operation requiring a dataset id was
// invoked without one. No request is sent in this case.
var ErrNoDataset = errors.New("pipeline: no dataset selected")

// Config contains the parameters for creating a [*Client].
type Config struct {
	// Authorization is the OPTIONAL Authorization header value.
	Authorization string

	// BaseURL is the OPTIONAL backend base URL. When empty we
	// use the [DefaultBaseURL] constant.
	BaseURL string

	// ExtendedPayload OPTIONALLY sends the whole configuration to /clean.
	ExtendedPayload bool

	// HTTPClient is the OPTIONAL HTTP client. When nil, we use the
	// result of calling [NewHTTPClient].
	HTTPClient httpapi.HTTPClient

	// LogBodies OPTIONALLY logs request and response bodies.
	LogBodies bool

	// Logger is the OPTIONAL logger.
	Logger model.Logger

	// Timeout is the OPTIONAL per-call timeout. Zero means no timeout.
	Timeout time.Duration

	// UserAgent is the OPTIONAL user agent.
	UserAgent string
}

// Client is the processing backend client. The zero value is
// invalid; use [NewClient] to construct.
type Client struct {
	endpoint  *httpapi.Endpoint
	extended  bool
	logBodies bool
	logger    model.Logger
	timeout   time.Duration
}

// NewClient creates a new [*Client].
func NewClient(config Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	logger := model.ValidLoggerOrDefault(config.Logger)
	return &Client{
		endpoint: &httpapi.Endpoint{
			Authorization: config.Authorization,
			BaseURL:       baseURL,
			HTTPClient:    httpClient,
			Host:          "",
			Logger:        logger,
			UserAgent:     config.UserAgent,
		},
		extended:  config.ExtendedPayload,
		logBodies: config.LogBodies,
		logger:    logger,
		timeout:   config.Timeout,
	}
}

// NewHTTPClient returns an HTTP client with a cookie jar, such that
// session cookies set by the backend are sent with every request.
func NewHTTPClient() *http.Client {
	// cookiejar.New only fails when the options are invalid
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &http.Client{Jar: jar}
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.endpoint.BaseURL
}

// prepare applies the client-wide options to desc.
func (c *Client) prepare(desc *httpapi.Descriptor) *httpapi.Descriptor {
	return desc.WithBodyLogging(c.logBodies).WithTimeout(c.timeout)
}
