package upload

import (
	"context"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli/internal/cli/root"
	"github.com/asdp-project/asdp-cli/internal/output"
)

func init() {
	cmd := root.Command("upload", "Upload a survey data file and show its summary")
	file := cmd.Arg("file", "Survey data file (.csv, .xlsx or .xls)").Required().String()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		sess, err := root.Init()
		if err != nil {
			log.WithError(err).Error("failed to init the session")
			return err
		}
		defer sess.Close()

		o := sess.Workflow
		report, err := o.UploadFile(context.Background(), *file)
		if err != nil {
			return err
		}
		state := o.State()
		log.Infof("Uploaded %s as dataset %s", report.Name, state.DatasetID.UnwrapOr(""))
		if state.Schema.IsSome() {
			output.SectionTitle("Data Summary")
			output.SchemaSummary(state.Schema.Unwrap())
		}
		return nil
	})
}
