package main

import (
	"os"

	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli/internal/cli/app"
	_ "github.com/asdp-project/asdp-cli/internal/cli/check"
	_ "github.com/asdp-project/asdp-cli/internal/cli/config"
	_ "github.com/asdp-project/asdp-cli/internal/cli/info"
	_ "github.com/asdp-project/asdp-cli/internal/cli/onboard"
	_ "github.com/asdp-project/asdp-cli/internal/cli/reset"
	_ "github.com/asdp-project/asdp-cli/internal/cli/run"
	_ "github.com/asdp-project/asdp-cli/internal/cli/upload"
	_ "github.com/asdp-project/asdp-cli/internal/cli/version"
	_ "github.com/asdp-project/asdp-cli/internal/cli/wizard"
	"github.com/asdp-project/asdp-cli/internal/crashreport"
)

func main() {
	if err := crashreport.CapturePanic(app.Run); err != nil {
		log.WithError(err).Error("asdp failed")
		os.Exit(1)
	}
}
