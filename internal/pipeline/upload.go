package pipeline

//
// POST /upload
//

import (
	"context"
	"encoding/json"

	"github.com/asdp-project/asdp-cli/internal/httpapi"
	"github.com/asdp-project/asdp-cli/internal/model"
)

// UploadFieldName is the multipart form field containing the file.
const UploadFieldName = "file"

// UploadResult is the result of a successful [*Client.Upload].
type UploadResult struct {
	// DatasetID is the opaque dataset token.
	DatasetID string

	// Schema describes the uploaded dataset.
	Schema model.DatasetSchema
}

// uploadResponse is the /upload response body.
type uploadResponse struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error"`
	Summary *model.DatasetSchema `json:"summary"`
	Dataset *struct {
		ID string `json:"id"`
	} `json:"dataset"`
}

// parseUploadResponse parses body treating a non-JSON body as
// an unsuccessful response whose error is the body itself.
func parseUploadResponse(body []byte) *uploadResponse {
	var resp uploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return &uploadResponse{Success: false, Error: string(body)}
	}
	return &resp
}

// Upload uploads the file called fileName with the given content.
//
// On failure, this method returns an [*UploadError].
func (c *Client) Upload(ctx context.Context, fileName string, content []byte) (*UploadResult, error) {
	done := measure("upload")
	result, err := c.upload(ctx, fileName, content)
	done(err)
	return result, err
}

func (c *Client) upload(ctx context.Context, fileName string, content []byte) (*UploadResult, error) {
	desc, err := httpapi.NewPOSTMultipartFileDescriptor("/upload", UploadFieldName, fileName, content)
	if err != nil {
		return nil, &UploadError{Message: err.Error(), Err: err}
	}
	// never log the raw file content
	desc = c.prepare(desc).WithBodyLogging(false)
	c.logger.Infof("pipeline: uploading %s (%d bytes)", fileName, len(content))

	status := 0
	var body []byte
	resp, err := httpapi.Call(ctx, desc, c.endpoint)
	switch failure, ok := httpapi.AsErrHTTPRequestFailed(err); {
	case err == nil:
		status, body = resp.StatusCode, resp.Body
	case ok:
		status, body = failure.StatusCode, failure.Body
	default:
		return nil, &UploadError{Message: err.Error(), Err: err}
	}

	parsed := parseUploadResponse(body)
	if err != nil || !parsed.Success {
		message := parsed.Error
		if message == "" {
			message = httpStatusMessage(status)
		}
		return nil, &UploadError{Message: message, Err: err}
	}
	if parsed.Summary == nil || parsed.Dataset == nil || parsed.Dataset.ID == "" {
		return nil, &UploadError{Message: "malformed response: missing summary or dataset id"}
	}
	schema := parsed.Summary.Clone()
	result := &UploadResult{DatasetID: parsed.Dataset.ID, Schema: schema}
	c.logger.Infof("pipeline: uploaded dataset %s: %d rows, %d columns",
		result.DatasetID, schema.Rows, schema.Columns)
	return result, nil
}
