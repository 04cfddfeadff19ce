package httpapi

//
// Calling HTTP APIs.
//

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// joinURLPath appends |resourcePath| to |urlPath|.
func joinURLPath(urlPath, resourcePath string) string {
	if resourcePath == "" {
		if urlPath == "" {
			return "/"
		}
		return urlPath
	}
	if !strings.HasSuffix(urlPath, "/") {
		urlPath += "/"
	}
	resourcePath = strings.TrimPrefix(resourcePath, "/")
	return urlPath + resourcePath
}

// newRequest creates a new http.Request from the given |ctx|, |endpoint|, and |desc|.
func newRequest(ctx context.Context, endpoint *Endpoint, desc *Descriptor) (*http.Request, error) {
	URL, err := url.Parse(endpoint.BaseURL)
	if err != nil {
		return nil, err
	}
	// BaseURL and resource URL are joined if they have a path
	URL.Path = joinURLPath(URL.Path, desc.URLPath)
	URL.RawQuery = "" // as documented we never honour the BaseURL query
	var reqBody io.Reader
	if len(desc.RequestBody) > 0 {
		reqBody = bytes.NewReader(desc.RequestBody)
		endpoint.Logger.Debugf("httpapi: request body length: %d", len(desc.RequestBody))
		if desc.LogBody {
			endpoint.Logger.Debugf("httpapi: request body: %s", string(desc.RequestBody))
		}
	}
	request, err := http.NewRequestWithContext(ctx, desc.Method, URL.String(), reqBody)
	if err != nil {
		return nil, err
	}
	request.Host = endpoint.Host
	if endpoint.Authorization != "" {
		request.Header.Set("Authorization", endpoint.Authorization)
	}
	if desc.ContentType != "" {
		request.Header.Set("Content-Type", desc.ContentType)
	}
	if desc.Accept != "" {
		request.Header.Set("Accept", desc.Accept)
	}
	if endpoint.UserAgent != "" {
		request.Header.Set("User-Agent", endpoint.UserAgent)
	}
	return request, nil
}

// ErrHTTPRequestFailed indicates that the server returned a non-2xx status.
type ErrHTTPRequestFailed struct {
	// StatusCode is the status code that failed.
	StatusCode int

	// Body is the response body, which may contain a server
	// provided explanation of the failure.
	Body []byte
}

// Error implements error.
func (err *ErrHTTPRequestFailed) Error() string {
	return fmt.Sprintf("httpapi: http request failed: %d", err.StatusCode)
}

// AsErrHTTPRequestFailed returns the [*ErrHTTPRequestFailed] wrapped by err, if any.
func AsErrHTTPRequestFailed(err error) (*ErrHTTPRequestFailed, bool) {
	var failure *ErrHTTPRequestFailed
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

// ErrBodyTooLarge indicates that the response body exceeds the descriptor's MaxBodySize.
var ErrBodyTooLarge = errors.New("httpapi: response body too large")

// Response is the result of a successful [Call].
type Response struct {
	// StatusCode is the 2xx status code.
	StatusCode int

	// Header contains the response headers.
	Header http.Header

	// Body is the whole response body.
	Body []byte
}

// ContentType returns the media type of the response without parameters.
func (r *Response) ContentType() string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mediaType
}

// docall calls the API represented by the given request |req| on the given |endpoint|
// and returns the response and its body or an error.
func docall(endpoint *Endpoint, desc *Descriptor, request *http.Request) (*Response, error) {
	response, err := endpoint.HTTPClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	maxBodySize := desc.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	// Implementation note: always read and log the response body since
	// it's quite useful to see the response JSON on API error.
	data, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBodySize {
		return nil, ErrBodyTooLarge
	}
	endpoint.Logger.Debugf("httpapi: response body length: %d bytes", len(data))
	if desc.LogBody {
		endpoint.Logger.Debugf("httpapi: response body: %s", string(data))
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &ErrHTTPRequestFailed{StatusCode: response.StatusCode, Body: data}
	}
	resp := &Response{
		StatusCode: response.StatusCode,
		Header:     response.Header,
		Body:       data,
	}
	return resp, nil
}

// Call invokes the API described by |desc| on the given HTTP |endpoint| and
// returns the response or an error.
//
// Note: this function returns ErrHTTPRequestFailed if the HTTP status code is
// not 2xx. You could use errors.As to obtain a copy of the error that was
// returned and see for yourself the actual status code and body.
func Call(ctx context.Context, desc *Descriptor, endpoint *Endpoint) (*Response, error) {
	if desc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, desc.Timeout)
		defer cancel()
	}
	request, err := newRequest(ctx, endpoint, desc)
	if err != nil {
		return nil, err
	}
	endpoint.Logger.Debugf("httpapi: %s %s", request.Method, request.URL.String())
	return docall(endpoint, desc, request)
}
