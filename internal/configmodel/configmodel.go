// Package configmodel implements copy-on-write updates of the pipeline
// [model.Configuration] aggregate.
//
// Every operation takes a configuration and returns a new one: the input
// is never modified and slices are never shared between the two, so a
// change to one branch of the tree cannot leak into a sibling branch.
//
// Updates are purely structural. Semantic checks (column membership,
// non-empty selections, numeric domains) belong to the stage gate, which
// calls [Validate] when the user tries to leave a stage.
package configmodel

import (
	"errors"
	"fmt"

	"github.com/asdp-project/asdp-cli/internal/model"
)

var (
	// ErrUnknownPath indicates that a path does not address a leaf field.
	ErrUnknownPath = errors.New("configmodel: unknown path")

	// ErrBadValue indicates that a value has the wrong type for the addressed field.
	ErrBadValue = errors.New("configmodel: bad value")

	// ErrNotASet indicates that Toggle was called on a non set-valued field.
	ErrNotASet = errors.New("configmodel: not a set")
)

// Default returns the canonical default configuration.
func Default() model.Configuration {
	return model.Configuration{
		Imputation: model.ImputationConfig{
			Method:            model.ImputationMean,
			Columns:           []string{},
			PreserveStructure: false,
			GenerateReport:    false,
		},
		Outliers: model.OutliersConfig{
			DetectionMethod:  model.DetectionIQR,
			HandlingMethod:   model.HandlingWinsorize,
			Columns:          []string{},
			Threshold:        2.0,
			ReplacementValue: "",
		},
		Weights: model.WeightsConfig{
			Column:        "",
			Normalization: model.NormalizationNone,
		},
		EstimateColumns:   []string{},
		EstimationMethods: []model.EstimationMethod{model.EstimationMean},
		ConfidenceLevel:   0.95,
		BootstrapMethod:   model.BootstrapPercentile,
		BootstrapSamples:  1000,
		QualityChecks: model.QualityChecks{
			CheckDuplicates: false,
			ValidateTypes:   false,
			CheckOutliers:   false,
			GenerateReport:  false,
		},
	}
}

// Clone returns a deep copy of the given configuration. Nil slices
// become empty slices so that the copy always serializes as arrays.
func Clone(c model.Configuration) model.Configuration {
	out := c
	out.Imputation.Columns = copyStrings(c.Imputation.Columns)
	out.Outliers.Columns = copyStrings(c.Outliers.Columns)
	out.EstimateColumns = copyStrings(c.EstimateColumns)
	out.EstimationMethods = append([]model.EstimationMethod{}, c.EstimationMethods...)
	return out
}

func copyStrings(in []string) []string {
	return append([]string{}, in...)
}

// Update returns a copy of c where only the leaf field addressed by path
// is set to value. The path uses the JSON field names joined by dots
// (e.g., "outliers.threshold"). See [Paths] for the full list.
func Update(c model.Configuration, path string, value any) (model.Configuration, error) {
	f, found := fields[path]
	if !found {
		return c, fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
	out := Clone(c)
	if err := f.set(&out, value); err != nil {
		return c, fmt.Errorf("%w: %s: %s", ErrBadValue, path, err.Error())
	}
	return out, nil
}

// Get returns the current value of the leaf field addressed by path.
func Get(c model.Configuration, path string) (any, error) {
	f, found := fields[path]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
	return f.get(&c), nil
}

// Toggle adds member to the set-valued field addressed by path when it
// is absent and removes it when it is present. The relative order of the
// other members is preserved.
func Toggle(c model.Configuration, path string, member string) (model.Configuration, error) {
	f, found := fields[path]
	if !found {
		return c, fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
	if f.kind != KindStringSet && f.kind != KindEnumSet {
		return c, fmt.Errorf("%w: %s", ErrNotASet, path)
	}
	current := f.get(&c).([]string)
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, entry := range current {
		if entry == member {
			removed = true
			continue
		}
		next = append(next, entry)
	}
	if !removed {
		next = append(next, member)
	}
	return Update(c, path, next)
}

// Contains returns whether the set-valued field addressed by path contains member.
func Contains(c model.Configuration, path string, member string) bool {
	f, found := fields[path]
	if !found || (f.kind != KindStringSet && f.kind != KindEnumSet) {
		return false
	}
	for _, entry := range f.get(&c).([]string) {
		if entry == member {
			return true
		}
	}
	return false
}
