package configmodel

//
// Semantic validation of enum values and numeric domains.
//

import (
	"errors"
	"fmt"
	"slices"

	"github.com/asdp-project/asdp-cli/internal/model"
)

// ErrInvalid is the error wrapped by all the errors returned by [Validate].
var ErrInvalid = errors.New("configmodel: invalid value")

// Validate checks the enum membership and the numeric domain of the
// fields addressed by paths. When no path is given, it checks every
// field. Column membership is not checked here because it depends on
// the dataset schema. The returned error joins one error per bad field.
func Validate(c model.Configuration, paths ...string) error {
	if len(paths) <= 0 {
		for _, info := range Paths() {
			paths = append(paths, info.Path)
		}
	}
	var errs []error
	for _, path := range paths {
		f, found := fields[path]
		if !found {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownPath, path))
			continue
		}
		if err := validateField(path, f, &c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateField(path string, f field, c *model.Configuration) error {
	switch f.kind {
	case KindEnum:
		value := f.get(c).(string)
		if !slices.Contains(f.values, value) {
			return fmt.Errorf("%w: %s: %q is not one of %v", ErrInvalid, path, value, f.values)
		}
	case KindEnumSet:
		for _, value := range f.get(c).([]string) {
			if !slices.Contains(f.values, value) {
				return fmt.Errorf("%w: %s: %q is not one of %v", ErrInvalid, path, value, f.values)
			}
		}
	}
	switch path {
	case "outliers.threshold":
		if v := c.Outliers.Threshold; v < model.MinOutlierThreshold || v > model.MaxOutlierThreshold {
			return fmt.Errorf("%w: %s: %v is outside [%v, %v]", ErrInvalid, path, v,
				model.MinOutlierThreshold, model.MaxOutlierThreshold)
		}
	case "confidence_level":
		if !slices.Contains(model.ValidConfidenceLevels, c.ConfidenceLevel) {
			return fmt.Errorf("%w: %s: %v is not one of %v", ErrInvalid, path, c.ConfidenceLevel,
				model.ValidConfidenceLevels)
		}
	case "bootstrap_samples":
		if v := c.BootstrapSamples; v < model.MinBootstrapSamples || v > model.MaxBootstrapSamples {
			return fmt.Errorf("%w: %s: %d is outside [%d, %d]", ErrInvalid, path, v,
				model.MinBootstrapSamples, model.MaxBootstrapSamples)
		}
	}
	return nil
}
