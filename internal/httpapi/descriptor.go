package httpapi

//
// HTTP API descriptor (e.g., POST /clean)
//

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/asdp-project/asdp-cli/internal/runtimex"
)

// Descriptor contains the parameters for calling a given HTTP
// API (e.g., POST /clean).
//
// The zero value of this struct is invalid. Please, fill all the
// fields marked as MANDATORY for correct initialization.
type Descriptor struct {
	// Accept contains the OPTIONAL accept header.
	Accept string

	// ContentType is the OPTIONAL content-type header.
	ContentType string

	// LogBody OPTIONALLY enables logging bodies.
	LogBody bool

	// MaxBodySize is the OPTIONAL maximum response body size. If
	// not set, we use the |DefaultMaxBodySize| constant.
	MaxBodySize int64

	// Method is the MANDATORY request method.
	Method string

	// RequestBody is the OPTIONAL request body.
	RequestBody []byte

	// Timeout is the OPTIONAL timeout for this call. A zero value
	// means that the call is only bounded by the context.
	Timeout time.Duration

	// URLPath is the MANDATORY URL path.
	URLPath string
}

// WithBodyLogging returns a SHALLOW COPY of |Descriptor| with LogBody set to |value|. You SHOULD
// only use this method when initializing the descriptor you want to use.
func (desc *Descriptor) WithBodyLogging(value bool) *Descriptor {
	out := &Descriptor{}
	*out = *desc
	out.LogBody = value
	return out
}

// WithTimeout returns a SHALLOW COPY of |Descriptor| with Timeout set to |value|.
func (desc *Descriptor) WithTimeout(value time.Duration) *Descriptor {
	out := &Descriptor{}
	*out = *desc
	out.Timeout = value
	return out
}

// DefaultMaxBodySize is the default value for the maximum
// body size you can fetch using the httpapi package.
const DefaultMaxBodySize = 1 << 26

// ApplicationJSON is the content-type for JSON
const ApplicationJSON = "application/json"

// ApplicationPDF is the content-type for PDF documents
const ApplicationPDF = "application/pdf"

// NewPOSTJSONDescriptor creates a descriptor that POSTs a JSON document
// and accepts any kind of response body (e.g., a binary artifact).
//
// This function ONLY fails if we cannot serialize the |request| to JSON. So, if you know
// that |request| is JSON-serializable, you can safely call MustNewPOSTJSONDescriptor instead.
func NewPOSTJSONDescriptor(urlPath string, request any) (*Descriptor, error) {
	rawRequest, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	desc := &Descriptor{
		Accept:      "",
		ContentType: ApplicationJSON,
		LogBody:     false,
		MaxBodySize: DefaultMaxBodySize,
		Method:      http.MethodPost,
		RequestBody: rawRequest,
		Timeout:     0,
		URLPath:     urlPath,
	}
	return desc, nil
}

// MustNewPOSTJSONDescriptor is like NewPOSTJSONDescriptor except that
// it panics in case it's not possible to JSON serialize the |request|.
func MustNewPOSTJSONDescriptor(urlPath string, request any) *Descriptor {
	desc, err := NewPOSTJSONDescriptor(urlPath, request)
	runtimex.PanicOnError(err, "NewPOSTJSONDescriptor failed")
	return desc
}

// NewPOSTJSONWithJSONResponseDescriptor is like NewPOSTJSONDescriptor but
// also sets the Accept header to declare we expect a JSON response.
func NewPOSTJSONWithJSONResponseDescriptor(urlPath string, request any) (*Descriptor, error) {
	desc, err := NewPOSTJSONDescriptor(urlPath, request)
	if err != nil {
		return nil, err
	}
	desc.Accept = ApplicationJSON
	return desc, nil
}

// NewPOSTMultipartFileDescriptor creates a descriptor that POSTs a
// multipart/form-data body containing a single file under |fieldName|.
func NewPOSTMultipartFileDescriptor(urlPath, fieldName, fileName string, content []byte) (*Descriptor, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	desc := &Descriptor{
		Accept:      ApplicationJSON,
		ContentType: writer.FormDataContentType(),
		LogBody:     false,
		MaxBodySize: DefaultMaxBodySize,
		Method:      http.MethodPost,
		RequestBody: body.Bytes(),
		Timeout:     0,
		URLPath:     urlPath,
	}
	return desc, nil
}
