package pipeline

//
// POST /report and POST /download_data
//

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/asdp-project/asdp-cli/internal/httpapi"
)

// ReportFormat is the format of a generated report.
type ReportFormat string

const (
	ReportHTML ReportFormat = "html"
	ReportPDF  ReportFormat = "pdf"
)

// ParseReportFormat converts value into a [ReportFormat].
func ParseReportFormat(value string) (ReportFormat, error) {
	switch format := ReportFormat(strings.ToLower(value)); format {
	case ReportHTML, ReportPDF:
		return format, nil
	default:
		return "", fmt.Errorf("pipeline: unsupported report format: %q", value)
	}
}

// Report is a generated report.
type Report struct {
	// Format is the report format.
	Format ReportFormat

	// Content is the HTML markup or the PDF document.
	Content []byte
}

// reportRequest is the /report request body.
type reportRequest struct {
	DatasetID string       `json:"dataset_id"`
	Format    ReportFormat `json:"format"`
}

// reportResponse is the /report response body for HTML reports.
type reportResponse struct {
	HTMLContent string `json:"html_content"`
	Error       string `json:"error"`
}

// Report asks the backend to generate a report for the given dataset.
//
// On failure, this method returns [ErrNoDataset] or a [*ProcessingError].
func (c *Client) Report(ctx context.Context, datasetID string, format ReportFormat) (*Report, error) {
	if datasetID == "" {
		return nil, ErrNoDataset
	}
	format, err := ParseReportFormat(string(format))
	if err != nil {
		return nil, &ProcessingError{Operation: "report", Message: err.Error(), Err: err}
	}
	done := measure("report_" + string(format))
	report, err := c.report(ctx, datasetID, format)
	done(err)
	return report, err
}

func (c *Client) report(ctx context.Context, datasetID string, format ReportFormat) (*Report, error) {
	const operation = "report"
	desc := httpapi.MustNewPOSTJSONDescriptor("/report", &reportRequest{DatasetID: datasetID, Format: format})
	if format == ReportHTML {
		desc.Accept = httpapi.ApplicationJSON
	}
	// binary artifacts are never logged
	desc = c.prepare(desc).WithBodyLogging(c.logBodies && format == ReportHTML)
	c.logger.Infof("pipeline: generating %s report for dataset %s", format, datasetID)
	resp, err := httpapi.Call(ctx, desc, c.endpoint)

	if format == ReportPDF {
		if err != nil {
			return nil, newBinaryCallError(operation, err, true)
		}
		if ctype := resp.Header.Get("Content-Type"); !strings.Contains(ctype, httpapi.ApplicationPDF) {
			c.logger.Warnf("pipeline: expected PDF but got: %s", ctype)
			// fallthrough
		}
		if len(resp.Body) <= 0 {
			return nil, &ProcessingError{Operation: operation, Message: "Received empty PDF file"}
		}
		return &Report{Format: ReportPDF, Content: resp.Body}, nil
	}

	if err != nil {
		return nil, newJSONCallError(operation, err)
	}
	var parsed reportResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, &ProcessingError{Operation: operation, Message: "malformed response: " + err.Error(), Err: err}
	}
	if parsed.Error != "" {
		return nil, &ProcessingError{Operation: operation, Message: parsed.Error}
	}
	return &Report{Format: ReportHTML, Content: []byte(parsed.HTMLContent)}, nil
}

// exportRequest is the /download_data request body.
type exportRequest struct {
	DatasetID string `json:"dataset_id"`
}

// Export downloads the processed dataset as CSV.
//
// On failure, this method returns [ErrNoDataset] or a [*ProcessingError].
func (c *Client) Export(ctx context.Context, datasetID string) ([]byte, error) {
	if datasetID == "" {
		return nil, ErrNoDataset
	}
	done := measure("export")
	data, err := c.export(ctx, datasetID)
	done(err)
	return data, err
}

func (c *Client) export(ctx context.Context, datasetID string) ([]byte, error) {
	const operation = "export"
	desc := httpapi.MustNewPOSTJSONDescriptor("/download_data", &exportRequest{DatasetID: datasetID})
	desc = c.prepare(desc).WithBodyLogging(false)
	c.logger.Infof("pipeline: exporting processed data for dataset %s", datasetID)
	resp, err := httpapi.Call(ctx, desc, c.endpoint)
	if err != nil {
		return nil, newBinaryCallError(operation, err, false)
	}
	return resp.Body, nil
}

// newBinaryCallError converts the error returned by a binary API call
// into a [*ProcessingError]. When useBody is true, the body of a failed
// response becomes the message.
func newBinaryCallError(operation string, err error, useBody bool) *ProcessingError {
	failure, ok := httpapi.AsErrHTTPRequestFailed(err)
	if !ok {
		return &ProcessingError{Operation: operation, Message: err.Error(), Err: err}
	}
	message := strings.TrimSpace(string(failure.Body))
	if !useBody || message == "" {
		message = httpStatusMessage(failure.StatusCode)
	}
	return &ProcessingError{Operation: operation, Message: message, Err: err}
}
