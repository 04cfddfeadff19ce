package pipeline

//
// POST /clean
//

import (
	"context"
	"encoding/json"

	"github.com/asdp-project/asdp-cli/internal/httpapi"
	"github.com/asdp-project/asdp-cli/internal/model"
)

// CleanRequest is the /clean request body.
type CleanRequest struct {
	DatasetID string      `json:"dataset_id"`
	Config    CleanConfig `json:"config"`
}

// CleanConfig is the configuration sent to /clean.
//
// Empty column selections are sent as null, meaning "all the eligible
// columns". The fields marked omitempty are only set when the client
// has been configured to send the extended payload.
type CleanConfig struct {
	Imputation        CleanImputation          `json:"imputation"`
	Outliers          CleanOutliers            `json:"outliers"`
	Weights           CleanWeights             `json:"weights"`
	EstimateColumns   []string                 `json:"estimate_columns"`
	EstimationMethods []model.EstimationMethod `json:"estimation_methods,omitempty"`
	ConfidenceLevel   *float64                 `json:"confidence_level,omitempty"`
	BootstrapMethod   model.BootstrapMethod    `json:"bootstrap_method,omitempty"`
	BootstrapSamples  *int                     `json:"bootstrap_samples,omitempty"`
	QualityChecks     *model.QualityChecks     `json:"quality_checks,omitempty"`
}

// CleanImputation is the imputation section of [CleanConfig].
type CleanImputation struct {
	Method            model.ImputationMethod `json:"method"`
	Columns           []string               `json:"columns"`
	PreserveStructure *bool                  `json:"preserve_structure,omitempty"`
}

// CleanOutliers is the outliers section of [CleanConfig].
type CleanOutliers struct {
	DetectionMethod  model.DetectionMethod `json:"detection_method"`
	HandlingMethod   model.HandlingMethod  `json:"handling_method"`
	Columns          []string              `json:"columns"`
	Threshold        *float64              `json:"threshold,omitempty"`
	ReplacementValue *string               `json:"replacement_value,omitempty"`
}

// CleanWeights is the weights section of [CleanConfig].
type CleanWeights struct {
	Column        *string             `json:"column"`
	Normalization model.Normalization `json:"normalization,omitempty"`
}

// nullIfEmpty maps an empty selection to the null sentinel.
func nullIfEmpty(columns []string) []string {
	if len(columns) <= 0 {
		return nil
	}
	return append([]string{}, columns...)
}

// NewCleanRequest builds the /clean request body for the given dataset
// and configuration. When extended is true, the body also contains the
// fields that the base wire format does not carry.
func NewCleanRequest(datasetID string, config model.Configuration, extended bool) *CleanRequest {
	req := &CleanRequest{
		DatasetID: datasetID,
		Config: CleanConfig{
			Imputation: CleanImputation{
				Method:  config.Imputation.Method,
				Columns: nullIfEmpty(config.Imputation.Columns),
			},
			Outliers: CleanOutliers{
				DetectionMethod: config.Outliers.DetectionMethod,
				HandlingMethod:  config.Outliers.HandlingMethod,
				Columns:         nullIfEmpty(config.Outliers.Columns),
			},
			Weights:         CleanWeights{},
			EstimateColumns: nullIfEmpty(config.EstimateColumns),
		},
	}
	if column := config.Weights.Column; column != "" {
		req.Config.Weights.Column = &column
	}
	if !extended {
		return req
	}
	preserve := config.Imputation.PreserveStructure
	threshold := config.Outliers.Threshold
	replacement := config.Outliers.ReplacementValue
	confidence := config.ConfidenceLevel
	samples := config.BootstrapSamples
	checks := config.QualityChecks
	req.Config.Imputation.PreserveStructure = &preserve
	req.Config.Outliers.Threshold = &threshold
	req.Config.Outliers.ReplacementValue = &replacement
	req.Config.Weights.Normalization = config.Weights.Normalization
	req.Config.EstimationMethods = append([]model.EstimationMethod{}, config.EstimationMethods...)
	req.Config.ConfidenceLevel = &confidence
	req.Config.BootstrapMethod = config.BootstrapMethod
	req.Config.BootstrapSamples = &samples
	req.Config.QualityChecks = &checks
	return req
}

// cleanResponse is the /clean response body.
type cleanResponse struct {
	model.ProcessingResult
	Error string `json:"error"`
}

// Clean asks the backend to run the whole processing pipeline over the
// given dataset using config. This call is not idempotent: every call
// runs the pipeline again and bootstrap estimates may differ.
//
// On failure, this method returns [ErrNoDataset] or a [*ProcessingError].
func (c *Client) Clean(ctx context.Context, datasetID string, config model.Configuration) (*model.ProcessingResult, error) {
	if datasetID == "" {
		return nil, ErrNoDataset
	}
	done := measure("clean")
	result, err := c.clean(ctx, datasetID, config)
	done(err)
	return result, err
}

func (c *Client) clean(ctx context.Context, datasetID string, config model.Configuration) (*model.ProcessingResult, error) {
	const operation = "clean"
	desc, err := httpapi.NewPOSTJSONWithJSONResponseDescriptor("/clean", NewCleanRequest(datasetID, config, c.extended))
	if err != nil {
		return nil, &ProcessingError{Operation: operation, Message: err.Error(), Err: err}
	}
	c.logger.Infof("pipeline: processing dataset %s", datasetID)
	resp, err := httpapi.Call(ctx, c.prepare(desc), c.endpoint)
	if err != nil {
		return nil, newJSONCallError(operation, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &fields); err != nil {
		return nil, &ProcessingError{Operation: operation, Message: "malformed response: " + err.Error(), Err: err}
	}
	if len(fields) <= 0 {
		return nil, &ProcessingError{Operation: operation, Message: "malformed response: expected a non-empty JSON object"}
	}
	var parsed cleanResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, &ProcessingError{Operation: operation, Message: "malformed response: " + err.Error(), Err: err}
	}
	if parsed.Error != "" {
		return nil, &ProcessingError{Operation: operation, Message: parsed.Error}
	}
	result := parsed.ProcessingResult
	if result.Estimates == nil {
		result.Estimates = map[string]model.ColumnEstimate{}
	}
	c.logger.Infof("pipeline: processed %d rows in %.2fs", result.RowsProcessed, result.ProcessingTime)
	return &result, nil
}

// errorResponse is the body of a JSON error response.
type errorResponse struct {
	Error string `json:"error"`
}

// newJSONCallError converts the error returned by a JSON API call into
// a [*ProcessingError] using the server provided error when available.
func newJSONCallError(operation string, err error) *ProcessingError {
	failure, ok := httpapi.AsErrHTTPRequestFailed(err)
	if !ok {
		return &ProcessingError{Operation: operation, Message: err.Error(), Err: err}
	}
	var parsed errorResponse
	if json.Unmarshal(failure.Body, &parsed) == nil && parsed.Error != "" {
		return &ProcessingError{Operation: operation, Message: parsed.Error, Err: err}
	}
	return &ProcessingError{Operation: operation, Message: httpStatusMessage(failure.StatusCode), Err: err}
}
