// Package workflow implements the orchestrator of the six-stage survey
// processing workflow.
//
// The [*Orchestrator] is the single owner of the workflow state: the
// current stage, the uploaded dataset, the configuration, and the last
// processing results. Every mutation happens under a single mutex and
// never while a request to the backend is in flight, so readers always
// observe a consistent snapshot.
package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/asdp-project/asdp-cli/internal/configmodel"
	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/asdp-project/asdp-cli/internal/notify"
	"github.com/asdp-project/asdp-cli/internal/optional"
	"github.com/asdp-project/asdp-cli/internal/pipeline"
	"github.com/asdp-project/asdp-cli/internal/schemacache"
	"github.com/asdp-project/asdp-cli/internal/stagegate"
)

var (
	// ErrNoDataset indicates that an operation needs an uploaded dataset.
	ErrNoDataset = pipeline.ErrNoDataset

	// ErrAlreadyRunning indicates that processing is already running for the dataset.
	ErrAlreadyRunning = errors.New("workflow: processing already running for this dataset")

	// ErrSuperseded indicates that a response arrived after a reset or a
	// new upload and has therefore been discarded.
	ErrSuperseded = errors.New("workflow: superseded by a reset or a new upload")
)

// Backend is the processing backend. [*pipeline.Client] implements it.
type Backend interface {
	Upload(ctx context.Context, fileName string, content []byte) (*pipeline.UploadResult, error)
	Clean(ctx context.Context, datasetID string, config model.Configuration) (*model.ProcessingResult, error)
	Report(ctx context.Context, datasetID string, format pipeline.ReportFormat) (*pipeline.Report, error)
	Export(ctx context.Context, datasetID string) ([]byte, error)
}

var _ Backend = &pipeline.Client{}

// ArtifactSaver saves downloaded artifacts. [*artifact.Store] implements it.
type ArtifactSaver interface {
	Save(prefix, extension string, data []byte) (string, error)
}

// Config contains the parameters for creating an [*Orchestrator].
type Config struct {
	// Artifacts is the MANDATORY artifact saver.
	Artifacts ArtifactSaver

	// Backend is the MANDATORY processing backend.
	Backend Backend

	// Bus is the OPTIONAL notification bus. When nil, we create one
	// with the default settings.
	Bus *notify.Bus

	// Logger is the OPTIONAL logger.
	Logger model.Logger
}

// Orchestrator owns the workflow state. The zero value is invalid;
// use [New] to construct.
type Orchestrator struct {
	artifacts ArtifactSaver
	backend   Backend
	bus       *notify.Bus
	logger    model.Logger

	// mu protects the following fields
	mu        sync.Mutex
	config    model.Configuration
	datasetID optional.Value[string]
	epoch     uint64
	gate      *stagegate.Gate
	inflight  map[string]string
	results   optional.Value[model.ProcessingResult]
	schema    *schemacache.Cache
}

// New creates a new [*Orchestrator] positioned on the Upload stage with
// the default configuration.
func New(config Config) *Orchestrator {
	bus := config.Bus
	if bus == nil {
		bus = notify.NewBus(notify.Config{})
	}
	return &Orchestrator{
		artifacts: config.Artifacts,
		backend:   config.Backend,
		bus:       bus,
		logger:    model.ValidLoggerOrDefault(config.Logger),
		config:    configmodel.Default(),
		datasetID: optional.None[string](),
		epoch:     0,
		gate:      stagegate.New(),
		inflight:  map[string]string{},
		results:   optional.None[model.ProcessingResult](),
		schema:    schemacache.New(),
	}
}

// State is a snapshot of the workflow state.
type State struct {
	// CurrentStep is the current stage.
	CurrentStep stagegate.Stage

	// DatasetID is the id of the uploaded dataset, if any.
	DatasetID optional.Value[string]

	// Schema describes the uploaded dataset, if any.
	Schema optional.Value[model.DatasetSchema]

	// Config is the current configuration.
	Config model.Configuration

	// Results contains the last processing results, if any.
	Results optional.Value[model.ProcessingResult]

	// Processing is true while processing runs for the current dataset.
	Processing bool

	// Toasts contains the pending notifications.
	Toasts []notify.Toast
}

// State returns a snapshot of the workflow state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	processing := false
	if o.datasetID.IsSome() {
		_, processing = o.inflight[o.datasetID.Unwrap()]
	}
	return State{
		CurrentStep: o.gate.Current(),
		DatasetID:   o.datasetID,
		Schema:      o.schema.Schema(),
		Config:      configmodel.Clone(o.config),
		Results:     o.results,
		Processing:  processing,
		Toasts:      o.bus.Toasts(),
	}
}

// Current returns the current stage.
func (o *Orchestrator) Current() stagegate.Stage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gate.Current()
}

// ColumnNames returns the dataset columns in source order.
func (o *Orchestrator) ColumnNames() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.schema.ColumnNames()
}

// NumericColumns returns the numeric dataset columns in source order.
func (o *Orchestrator) NumericColumns() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.schema.NumericColumns()
}

// Toasts returns the pending notifications.
func (o *Orchestrator) Toasts() []notify.Toast {
	return o.bus.Toasts()
}

// Dismiss removes a notification before it expires.
func (o *Orchestrator) Dismiss(id string) bool {
	return o.bus.Dismiss(id)
}

// Close releases the resources used by the orchestrator.
func (o *Orchestrator) Close() error {
	o.bus.Close()
	return nil
}

// Reset clears the whole workflow state: stage, dataset, schema,
// configuration, and results. Responses to requests issued before
// Reset are discarded when they arrive.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gate.Reset()
	o.schema.Clear()
	o.config = configmodel.Default()
	o.datasetID = optional.None[string]()
	o.results = optional.None[model.ProcessingResult]()
	o.inflight = map[string]string{}
	o.epoch++
	o.logger.Debug("workflow: reset")
}
