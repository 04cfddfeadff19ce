package httpapi

import (
	"net/http"

	"github.com/asdp-project/asdp-cli/internal/model"
)

// HTTPClient is the HTTP client used by [Endpoint]. The
// standard library [*http.Client] implements this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Endpoint models an HTTP endpoint on which you can call
// several HTTP APIs (e.g., /upload, /clean) using the same
// HTTP client, user agent, and credentials.
type Endpoint struct {
	// Authorization is the OPTIONAL Authorization header value.
	Authorization string

	// BaseURL is the MANDATORY endpoint base URL. We will honour the
	// path of this URL and prepend it to the actual path specified inside
	// a |Descriptor.URLPath|. However, we will always discard any query
	// that may have been set inside the BaseURL.
	BaseURL string

	// HTTPClient is the MANDATORY HTTP client to use. Use a client
	// with a cookie jar to send credentialed requests.
	HTTPClient HTTPClient

	// Host is the OPTIONAL host header to use.
	Host string

	// Logger is the MANDATORY logger to use.
	Logger model.Logger

	// UserAgent is the OPTIONAL user-agent to use.
	UserAgent string
}
