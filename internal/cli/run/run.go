package run

import (
	"context"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli/internal/cli/root"
	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/asdp-project/asdp-cli/internal/output"
	"github.com/asdp-project/asdp-cli/internal/pipeline"
	"github.com/asdp-project/asdp-cli/internal/stagegate"
	"github.com/asdp-project/asdp-cli/internal/workflow"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"
)

// Options contains the options of a batch run.
type Options struct {
	// File is the survey data file to upload.
	File string

	// Config is the pipeline configuration.
	Config model.Configuration

	// Reports contains the report formats to download.
	Reports []pipeline.ReportFormat

	// Export indicates whether to download the processed data.
	Export bool
}

// Run uploads the file, walks through every stage gate, processes the
// dataset, and finally downloads the reports and the processed data.
func Run(ctx context.Context, o *workflow.Orchestrator, opts *Options) error {
	log.Infof("Uploading %s", color.BlueString(opts.File))
	if _, err := o.UploadFile(ctx, opts.File); err != nil {
		return err
	}
	state := o.State()
	if state.Schema.IsSome() {
		output.SectionTitle("Data Summary")
		output.SchemaSummary(state.Schema.Unwrap())
	}

	o.ReplaceConfig(opts.Config)
	for o.Current() < stagegate.LastStage {
		if err := o.Continue(); err != nil {
			if v, found := stagegate.AsViolation(err); found {
				output.InlineWarning(v.Message)
			}
			return err
		}
	}

	var result *model.ProcessingResult
	err := root.WithSpinner("Processing...", func() (err error) {
		result, err = o.Process(ctx)
		return
	})
	if err != nil {
		return err
	}
	output.SectionTitle("Results & Reports")
	output.Results(*result, opts.Config.EstimateColumns)

	paths := make([]string, len(opts.Reports)+1)
	group, gctx := errgroup.WithContext(ctx)
	for idx, format := range opts.Reports {
		group.Go(func() error {
			path, err := o.GenerateReport(gctx, format)
			paths[idx] = path
			return err
		})
	}
	if opts.Export {
		group.Go(func() error {
			path, err := o.ExportData(gctx)
			paths[len(opts.Reports)] = path
			return err
		})
	}
	err = group.Wait()
	for _, path := range paths {
		if path != "" {
			log.Infof("Saved %s", color.BlueString(path))
		}
	}
	return err
}

func init() {
	cmd := root.Command("run", "Upload a survey data file, process it and download the artifacts")
	file := cmd.Flag("file", "Survey data file (.csv, .xlsx or .xls)").Short('f').Required().String()
	configFile := cmd.Flag("config", "Pipeline configuration file (HuJSON)").Short('c').String()
	assignments := cmd.Flag("set", "Set a configuration path (e.g., outliers.threshold=3)").Strings()
	reports := cmd.Flag("report", "Download a report in the given format").Enums("pdf", "html")
	export := cmd.Flag("export", "Download the processed data as CSV").Bool()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		config, err := root.LoadConfiguration(*configFile, *assignments)
		if err != nil {
			log.WithError(err).Error("failed to load the pipeline configuration")
			return err
		}
		opts := &Options{
			File:   *file,
			Config: config,
			Export: *export,
		}
		for _, value := range *reports {
			format, err := pipeline.ParseReportFormat(value)
			if err != nil {
				return err
			}
			opts.Reports = append(opts.Reports, format)
		}

		sess, err := root.Init()
		if err != nil {
			log.WithError(err).Error("failed to init the session")
			return err
		}
		defer sess.Close()
		return Run(context.Background(), sess.Workflow, opts)
	})
}
