package check

import (
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli/internal/cli/root"
	"github.com/asdp-project/asdp-cli/internal/humanize"
	"github.com/asdp-project/asdp-cli/internal/preflight"
)

func init() {
	cmd := root.Command("check", "Check a survey data file locally without uploading it")
	file := cmd.Arg("file", "Survey data file (.csv, .xlsx or .xls)").Required().String()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		report, _, err := preflight.CheckFile(*file)
		if err != nil {
			log.WithError(err).Errorf("%s cannot be uploaded", *file)
			return err
		}
		fields := log.Fields{
			"type":   "table",
			"name":   report.Name,
			"format": string(report.Format),
			"size":   humanize.Bytes(int64(report.Size)),
		}
		if report.Sheet != "" {
			fields["sheet"] = report.Sheet
		}
		if len(report.Header) > 0 {
			fields["columns"] = strings.Join(report.Header, ", ")
		}
		log.WithFields(fields).Info("preflight")
		log.Infof("%s can be uploaded", report.Name)
		return nil
	})
}
