package reset

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli"
	"github.com/asdp-project/asdp-cli/internal/cli/root"
)

func init() {
	cmd := root.Command("reset", "Delete the asdp home and the settings it contains")
	force := cmd.Flag("force", "Force deleting the asdp home").Bool()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		home, err := asdp.GetHome()
		if err != nil {
			log.WithError(err).Error("failed to locate the asdp home")
			return err
		}
		if *force {
			if err := os.RemoveAll(home); err != nil {
				log.WithError(err).Errorf("failed to delete %s", home)
				return err
			}
			log.Infof("Deleted %s", home)
		} else {
			log.Infof("Run with --force to delete %s", home)
		}
		return nil
	})
}
