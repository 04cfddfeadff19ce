package root

import (
	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli/internal/configmodel"
	"github.com/asdp-project/asdp-cli/internal/model"
)

// LoadConfiguration returns the default pipeline configuration, merged
// with the OPTIONAL configuration file at path, with the textual
// assignments applied in order.
func LoadConfiguration(path string, assignments []string) (model.Configuration, error) {
	config := configmodel.Default()
	if path != "" {
		log.Debugf("Reading pipeline configuration from %s", path)
		var err error
		config, err = configmodel.ReadFile(path)
		if err != nil {
			return model.Configuration{}, err
		}
	}
	return configmodel.AssignAll(config, assignments...)
}
