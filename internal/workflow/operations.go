package workflow

//
// Operations calling the backend.
//

import (
	"context"

	"github.com/asdp-project/asdp-cli/internal/artifact"
	"github.com/asdp-project/asdp-cli/internal/configmodel"
	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/asdp-project/asdp-cli/internal/optional"
	"github.com/asdp-project/asdp-cli/internal/pipeline"
	"github.com/asdp-project/asdp-cli/internal/preflight"
	"github.com/asdp-project/asdp-cli/internal/stagegate"
	"github.com/google/uuid"
)

// Messages notified to the user.
const (
	MessageUploadSucceeded     = "File uploaded successfully"
	MessageProcessingSucceeded = "Processing completed successfully"
	MessagePDFSucceeded        = "PDF report downloaded successfully"
	MessageExportSucceeded     = "Processed data downloaded successfully"
	MessageNoDataset           = "No dataset selected. Please upload a file first."

	prefixUploadFailed     = "Upload failed: "
	prefixProcessingFailed = "Processing failed: "
	prefixReportFailed     = "Report failed: "
	prefixExportFailed     = "Download failed: "
)

// UploadFile checks the file at path and uploads it. See [*Orchestrator.Upload].
func (o *Orchestrator) UploadFile(ctx context.Context, path string) (*preflight.Report, error) {
	report, content, err := preflight.CheckFile(path)
	if err != nil {
		uploadErr := &pipeline.UploadError{Message: err.Error(), Err: err}
		o.bus.Error(prefixUploadFailed + uploadErr.Message)
		return nil, uploadErr
	}
	if err := o.upload(ctx, report.Name, content); err != nil {
		return nil, err
	}
	return report, nil
}

// Upload uploads a dataset. On success, it atomically replaces the
// dataset id and schema, clears the previous results, and moves to the
// Summary stage. On failure, it returns an [*pipeline.UploadError] and
// the previous dataset, if any, remains valid.
func (o *Orchestrator) Upload(ctx context.Context, fileName string, content []byte) error {
	if _, err := preflight.Check(fileName, content); err != nil {
		uploadErr := &pipeline.UploadError{Message: err.Error(), Err: err}
		o.bus.Error(prefixUploadFailed + uploadErr.Message)
		return uploadErr
	}
	return o.upload(ctx, fileName, content)
}

func (o *Orchestrator) upload(ctx context.Context, fileName string, content []byte) error {
	o.mu.Lock()
	epoch := o.epoch
	o.mu.Unlock()

	result, err := o.backend.Upload(ctx, fileName, content)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.epoch != epoch {
		o.logger.Warnf("workflow: discarding upload of %s: %s", fileName, ErrSuperseded.Error())
		return ErrSuperseded
	}
	if err != nil {
		o.bus.Error(prefixUploadFailed + pipeline.MessageOf(err))
		return err
	}
	o.epoch++
	o.schema.Set(result.Schema)
	o.datasetID = optional.Some(result.DatasetID)
	o.results = optional.None[model.ProcessingResult]()
	o.gate.GoTo(int(stagegate.StageSummary))
	o.bus.Success(MessageUploadSucceeded)
	return nil
}

// datasetOrNotify returns the current dataset id or notifies the user
// that there is no dataset. The caller MUST hold the mutex.
func (o *Orchestrator) datasetOrNotify() (string, error) {
	if o.datasetID.IsNone() {
		o.bus.Error(MessageNoDataset)
		return "", ErrNoDataset
	}
	return o.datasetID.Unwrap(), nil
}

// Process runs the processing pipeline on the backend using the
// current dataset and configuration. Results are cleared when the
// call starts and set when it succeeds.
//
// At most one call per dataset runs at any time: concurrent calls fail
// with [ErrAlreadyRunning] without contacting the backend. A response
// arriving after [*Orchestrator.Reset] or a new upload is discarded and
// the call fails with [ErrSuperseded].
func (o *Orchestrator) Process(ctx context.Context) (*model.ProcessingResult, error) {
	o.mu.Lock()
	datasetID, err := o.datasetOrNotify()
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}
	if _, running := o.inflight[datasetID]; running {
		o.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	token := uuid.NewString()
	o.inflight[datasetID] = token
	o.results = optional.None[model.ProcessingResult]()
	epoch := o.epoch
	config := configmodel.Clone(o.config)
	o.mu.Unlock()

	result, err := o.backend.Clean(ctx, datasetID, config)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inflight[datasetID] == token {
		delete(o.inflight, datasetID)
	}
	if o.epoch != epoch {
		o.logger.Warnf("workflow: discarding results for dataset %s: %s", datasetID, ErrSuperseded.Error())
		return nil, ErrSuperseded
	}
	if err != nil {
		o.bus.Error(prefixProcessingFailed + pipeline.MessageOf(err))
		return nil, err
	}
	o.results = optional.Some(*result)
	o.bus.Success(MessageProcessingSucceeded)
	return result, nil
}

// GenerateReport asks the backend for a report in the given format and
// saves it as an artifact, returning the artifact path.
func (o *Orchestrator) GenerateReport(ctx context.Context, format pipeline.ReportFormat) (string, error) {
	o.mu.Lock()
	datasetID, err := o.datasetOrNotify()
	o.mu.Unlock()
	if err != nil {
		return "", err
	}
	report, err := o.backend.Report(ctx, datasetID, format)
	if err != nil {
		o.bus.Error(prefixReportFailed + pipeline.MessageOf(err))
		return "", err
	}
	path, err := o.artifacts.Save(artifact.ReportPrefix, string(report.Format), report.Content)
	if err != nil {
		o.bus.Error(prefixReportFailed + err.Error())
		return "", err
	}
	if report.Format == pipeline.ReportPDF {
		o.bus.Success(MessagePDFSucceeded)
	}
	o.logger.Infof("workflow: saved %s report to %s", report.Format, path)
	return path, nil
}

// ExportData downloads the processed dataset and saves it as an
// artifact, returning the artifact path.
func (o *Orchestrator) ExportData(ctx context.Context) (string, error) {
	o.mu.Lock()
	datasetID, err := o.datasetOrNotify()
	o.mu.Unlock()
	if err != nil {
		return "", err
	}
	data, err := o.backend.Export(ctx, datasetID)
	if err != nil {
		o.bus.Error(prefixExportFailed + pipeline.MessageOf(err))
		return "", err
	}
	path, err := o.artifacts.Save(artifact.ExportPrefix, "csv", data)
	if err != nil {
		o.bus.Error(prefixExportFailed + err.Error())
		return "", err
	}
	o.bus.Success(MessageExportSucceeded)
	o.logger.Infof("workflow: saved processed data to %s", path)
	return path, nil
}
