package configmodel

import (
	"os"

	"github.com/asdp-project/asdp-cli/internal/hujsonx"
	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/pkg/errors"
)

// Load parses a configuration document and merges it over [Default]. The
// document is HuJSON, i.e., JSON with comments and trailing commas.
func Load(data []byte) (model.Configuration, error) {
	c := Default()
	if err := hujsonx.Unmarshal(data, &c); err != nil {
		return model.Configuration{}, errors.Wrap(err, "parsing config")
	}
	// normalize set-valued fields using the same path as Update
	c.Imputation.Columns = dedupe(c.Imputation.Columns)
	c.Outliers.Columns = dedupe(c.Outliers.Columns)
	c.EstimateColumns = dedupe(c.EstimateColumns)
	methods, err := Update(c, "estimation_methods", c.EstimationMethods)
	if err != nil {
		return model.Configuration{}, err
	}
	return methods, nil
}

// ReadFile reads and parses the configuration document at path.
func ReadFile(path string) (model.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Configuration{}, err
	}
	c, err := Load(data)
	if err != nil {
		return model.Configuration{}, errors.Wrapf(err, "loading %s", path)
	}
	return c, nil
}
