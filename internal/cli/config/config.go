package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/asdp-project/asdp-cli/internal/cli/root"
	"github.com/asdp-project/asdp-cli/internal/configmodel"
	"github.com/asdp-project/asdp-cli/internal/output"
)

func init() {
	cmd := root.Command("config", "Inspect the pipeline configuration")

	showCmd := cmd.Command("show", "Print the effective configuration as JSON").Default()
	configFile := showCmd.Flag("config", "Pipeline configuration file (HuJSON)").Short('c').String()
	assignments := showCmd.Flag("set", "Set a configuration path (e.g., outliers.threshold=3)").Strings()
	showCmd.Action(func(_ *kingpin.ParseContext) error {
		config, err := root.LoadConfiguration(*configFile, *assignments)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	})

	pathsCmd := cmd.Command("paths", "List the configuration paths accepted by --set")
	pathsCmd.Action(func(_ *kingpin.ParseContext) error {
		var rows [][]string
		for _, info := range configmodel.Paths() {
			rows = append(rows, []string{info.Path, string(info.Kind), strings.Join(info.Values, ", ")})
		}
		output.Grid("configuration paths", []string{"Path", "Kind", "Values"}, rows)
		return nil
	})
}
