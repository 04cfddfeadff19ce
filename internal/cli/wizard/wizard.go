// Package wizard implements the interactive six-stage workflow.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli/internal/cli/root"
	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/asdp-project/asdp-cli/internal/output"
	"github.com/asdp-project/asdp-cli/internal/pipeline"
	"github.com/asdp-project/asdp-cli/internal/stagegate"
	"github.com/asdp-project/asdp-cli/internal/workflow"
)

// Actions offered at the end of each stage.
const (
	actionContinue = "Continue"
	actionBack     = "Back"
	actionJump     = "Jump to stage"
	actionEdit     = "Edit this stage"
	actionUpload   = "Upload a file"
	actionProcess  = "Run processing"
	actionPDF      = "Download PDF report"
	actionHTML     = "Save HTML report"
	actionExport   = "Download processed data"
	actionReset    = "Reset"
	actionQuit     = "Quit"
)

const uploadPrompt = "Path of the survey data file (.csv, .xlsx or .xls):"

// Wizard drives a [*workflow.Orchestrator] interactively.
type Wizard struct {
	ctx context.Context
	o   *workflow.Orchestrator
}

// New creates a new [*Wizard].
func New(ctx context.Context, o *workflow.Orchestrator) *Wizard {
	return &Wizard{ctx: ctx, o: o}
}

// Run runs the wizard until the user quits.
func (w *Wizard) Run() error {
	edit := true
	for {
		stage := w.o.Current()
		output.StageProgress(stage)
		if edit {
			if err := w.enter(stage); err != nil {
				return w.filter(err)
			}
			if w.o.Current() != stage {
				continue
			}
		}
		action, err := askSelect("What next?", actionsFor(stage, w.o.State()), actionContinue)
		if err != nil {
			return w.filter(err)
		}
		edit, err = w.perform(stage, action)
		if err != nil {
			return w.filter(err)
		}
	}
}

// filter turns errQuit into a clean exit.
func (w *Wizard) filter(err error) error {
	if errors.Is(err, errQuit) {
		log.Info("Bye!")
		return nil
	}
	return err
}

// enter shows the content of the stage and asks its questions.
func (w *Wizard) enter(stage stagegate.Stage) error {
	state := w.o.State()
	switch stage {
	case stagegate.StageUpload:
		if state.DatasetID.IsSome() {
			log.Infof("Dataset %s is loaded", state.DatasetID.Unwrap())
			return nil
		}
		return w.upload()
	case stagegate.StageSummary:
		if state.Schema.IsNone() {
			output.InlineWarning("Please upload a file first")
			return nil
		}
		output.SchemaSummary(state.Schema.Unwrap())
		return nil
	case stagegate.StageResults:
		if state.Results.IsSome() {
			output.Results(state.Results.Unwrap(), state.Config.EstimateColumns)
		}
		return nil
	default:
		return fillForm(w.o, stage)
	}
}

// perform performs the action and returns whether the next stage
// should be entered in edit mode.
func (w *Wizard) perform(stage stagegate.Stage, action string) (bool, error) {
	switch action {
	case actionContinue:
		if err := w.o.Continue(); err != nil {
			if v, found := stagegate.AsViolation(err); found {
				output.InlineWarning(v.Message)
				return false, nil
			}
			return false, err
		}
		return true, nil
	case actionBack:
		w.o.Back()
		return true, nil
	case actionJump:
		return true, w.jump()
	case actionEdit:
		return true, nil
	case actionUpload:
		if err := w.upload(); err != nil {
			return false, err
		}
		return w.o.Current() != stage, nil
	case actionProcess:
		w.process()
		return true, nil
	case actionPDF:
		w.report(pipeline.ReportPDF)
		return false, nil
	case actionHTML:
		w.report(pipeline.ReportHTML)
		return false, nil
	case actionExport:
		if path, err := w.o.ExportData(w.ctx); err == nil {
			log.Infof("Saved %s", path)
		}
		return false, nil
	case actionReset:
		confirmed, err := askConfirm("Discard the dataset, the configuration and the results?", false)
		if err != nil || !confirmed {
			return false, err
		}
		w.o.Reset()
		return true, nil
	case actionQuit:
		return false, errQuit
	default:
		return false, fmt.Errorf("wizard: unknown action %q", action)
	}
}

func (w *Wizard) jump() error {
	var options []string
	for _, s := range stagegate.All() {
		options = append(options, fmt.Sprintf("%d. %s", int(s), s.Title()))
	}
	current := w.o.Current()
	answer, err := askSelect("Jump to:", options, fmt.Sprintf("%d. %s", int(current), current.Title()))
	if err != nil {
		return err
	}
	var n int
	if _, err := fmt.Sscanf(answer, "%d.", &n); err != nil {
		return err
	}
	w.o.GoTo(n)
	return nil
}

// upload asks for a file and uploads it. Failures are shown as toasts
// and the wizard stays where it is.
func (w *Wizard) upload() error {
	path, err := askInput(uploadPrompt, "")
	if err != nil || path == "" {
		return err
	}
	err = root.WithSpinner("Uploading...", func() error {
		_, err := w.o.UploadFile(w.ctx, path)
		return err
	})
	if err != nil {
		log.Debugf("wizard: upload: %s", err.Error())
	}
	return nil
}

// process runs the processing. Failures are shown as toasts.
func (w *Wizard) process() {
	var result *model.ProcessingResult
	err := root.WithSpinner("Processing...", func() (err error) {
		result, err = w.o.Process(w.ctx)
		return
	})
	if err != nil {
		if errors.Is(err, workflow.ErrAlreadyRunning) || errors.Is(err, workflow.ErrSuperseded) {
			log.Warn(err.Error())
		}
		return
	}
	log.Debugf("wizard: processed %d rows", result.RowsProcessed)
}

func (w *Wizard) report(format pipeline.ReportFormat) {
	path, err := w.o.GenerateReport(w.ctx, format)
	if err != nil {
		return
	}
	log.Infof("Saved %s", path)
}

// actionsFor returns the actions available on the stage.
func actionsFor(stage stagegate.Stage, state workflow.State) []string {
	var actions []string
	if stage < stagegate.LastStage {
		actions = append(actions, actionContinue)
	}
	switch stage {
	case stagegate.StageUpload:
		actions = append(actions, actionUpload)
	case stagegate.StageConfiguration, stagegate.StageOutliers, stagegate.StageWeights:
		actions = append(actions, actionEdit)
	case stagegate.StageResults:
		actions = append(actions, actionProcess)
		if state.DatasetID.IsSome() {
			actions = append(actions, actionPDF, actionHTML, actionExport)
		}
	}
	if stage > stagegate.FirstStage {
		actions = append(actions, actionBack)
	}
	return append(actions, actionJump, actionReset, actionQuit)
}

func init() {
	cmd := root.Command("wizard", "Walk interactively through the six processing stages")

	cmd.Action(func(_ *kingpin.ParseContext) error {
		sess, err := root.Init()
		if err != nil {
			log.WithError(err).Error("failed to init the session")
			return err
		}
		defer sess.Close()
		return New(context.Background(), sess.Workflow).Run()
	})
}
