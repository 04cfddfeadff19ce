package version

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/asdp-project/asdp-cli"
	"github.com/asdp-project/asdp-cli/internal/cli/root"
)

func init() {
	cmd := root.Command("version", "Show version.")
	cmd.Action(func(_ *kingpin.ParseContext) error {
		fmt.Println(asdp.Version)
		return nil
	})
}
