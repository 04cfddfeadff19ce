package app

import (
	"os"

	"github.com/asdp-project/asdp-cli"
	"github.com/asdp-project/asdp-cli/internal/cli/root"
)

// Run the app. This is the main app entry point
func Run() error {
	root.Cmd.Version(asdp.Version)
	_, err := root.Cmd.Parse(os.Args[1:])
	return err
}
