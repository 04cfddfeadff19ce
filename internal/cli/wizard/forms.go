package wizard

//
// Configuration forms of the Configuration, Outliers and Weights stages.
//

import (
	"fmt"
	"strconv"

	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli/internal/configmodel"
	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/asdp-project/asdp-cli/internal/output"
	"github.com/asdp-project/asdp-cli/internal/stagegate"
	"github.com/asdp-project/asdp-cli/internal/workflow"
)

// noWeightColumn is the option meaning an unweighted analysis.
const noWeightColumn = "(none)"

// columnSource tells which dataset columns a set-valued field offers.
type columnSource int

const (
	allColumns columnSource = iota
	numericColumns
)

// formField is a question bound to a configuration path.
type formField struct {
	path    string
	message string
	columns columnSource
}

var forms = map[stagegate.Stage][]formField{
	stagegate.StageConfiguration: {
		{path: "imputation.method", message: "Imputation method:"},
		{path: "imputation.columns", message: "Columns to impute:", columns: allColumns},
		{path: "imputation.preserve_structure", message: "Preserve the data structure?"},
		{path: "imputation.generate_report", message: "Generate an imputation report?"},
	},
	stagegate.StageOutliers: {
		{path: "outliers.detection_method", message: "Detection method:"},
		{path: "outliers.handling_method", message: "Handling method:"},
		{path: "outliers.columns", message: "Columns to check for outliers:", columns: numericColumns},
		{path: "outliers.threshold", message: fmt.Sprintf("Threshold (%.1f to %.1f):",
			model.MinOutlierThreshold, model.MaxOutlierThreshold)},
		{path: "outliers.replacement_value", message: "Replacement value (empty for the default):"},
	},
	stagegate.StageWeights: {
		{path: "weights.column", message: "Weight column:"},
		{path: "weights.normalization", message: "Weights normalization:"},
		{path: "estimate_columns", message: "Columns to estimate:", columns: numericColumns},
		{path: "estimation_methods", message: "Estimation methods:"},
		{path: "confidence_level", message: "Confidence level:"},
		{path: "bootstrap_method", message: "Bootstrap method:"},
		{path: "bootstrap_samples", message: fmt.Sprintf("Bootstrap samples (%d to %d):",
			model.MinBootstrapSamples, model.MaxBootstrapSamples)},
		{path: "quality_checks.check_duplicates", message: "Check duplicates?"},
		{path: "quality_checks.validate_types", message: "Validate data types?"},
		{path: "quality_checks.check_outliers", message: "Check outliers?"},
		{path: "quality_checks.generate_report", message: "Generate a quality report?"},
	},
}

// noDatasetMessages are shown instead of a form before any upload.
var noDatasetMessages = map[stagegate.Stage]string{
	stagegate.StageConfiguration: "Please upload a file first to configure processing settings.",
	stagegate.StageOutliers:      "Please upload a file first to configure outlier detection.",
	stagegate.StageWeights:       "Please upload a file first to configure survey weights.",
}

// fillForm asks every question of the stage form and updates the configuration.
func fillForm(o *workflow.Orchestrator, stage stagegate.Stage) error {
	if o.State().Schema.IsNone() {
		if message, found := noDatasetMessages[stage]; found {
			output.InlineWarning(message)
			return nil
		}
	}
	for _, ff := range forms[stage] {
		value, err := askField(o, ff)
		if err != nil {
			return err
		}
		if value == nil {
			continue
		}
		if err := o.UpdateConfig(ff.path, value); err != nil {
			log.WithError(err).Warnf("cannot set %s", ff.path)
		}
	}
	return nil
}

// askField asks the question bound to a path and returns the new value
// or nil when there is nothing to update.
func askField(o *workflow.Orchestrator, ff formField) (any, error) {
	info, found := configmodel.Lookup(ff.path)
	if !found {
		return nil, fmt.Errorf("wizard: unknown configuration path %q", ff.path)
	}
	current, err := configmodel.Get(o.Config(), ff.path)
	if err != nil {
		return nil, err
	}
	switch info.Kind {
	case configmodel.KindEnum:
		return askSelect(ff.message, info.Values, current.(string))
	case configmodel.KindEnumSet:
		return askMultiSelect(ff.message, info.Values, selectedOptions(o.Config(), ff.path, info.Values))
	case configmodel.KindStringSet:
		options := o.ColumnNames()
		if ff.columns == numericColumns {
			options = o.NumericColumns()
		}
		if len(options) <= 0 {
			log.Warnf("no columns to choose from for %s", ff.path)
			return nil, nil
		}
		return askMultiSelect(ff.message, options, selectedOptions(o.Config(), ff.path, options))
	case configmodel.KindBool:
		return askConfirm(ff.message, current.(bool))
	case configmodel.KindInt:
		return askInt(ff.message, current.(int))
	case configmodel.KindFloat:
		if ff.path == "confidence_level" {
			return askConfidenceLevel(ff.message, current.(float64))
		}
		return askFloat(ff.message, current.(float64))
	case configmodel.KindString:
		if ff.path == "weights.column" {
			return askWeightColumn(o, ff.message, current.(string))
		}
		return askInput(ff.message, current.(string))
	default:
		return nil, fmt.Errorf("wizard: unhandled kind %s", info.Kind)
	}
}

// selectedOptions returns the options already in the set addressed by path.
func selectedOptions(config model.Configuration, path string, options []string) []string {
	var selected []string
	for _, option := range options {
		if configmodel.Contains(config, path, option) {
			selected = append(selected, option)
		}
	}
	return selected
}

func askConfidenceLevel(message string, current float64) (any, error) {
	var options []string
	for _, level := range model.ValidConfidenceLevels {
		options = append(options, strconv.FormatFloat(level, 'f', 2, 64))
	}
	answer, err := askSelect(message, options, strconv.FormatFloat(current, 'f', 2, 64))
	if err != nil {
		return nil, err
	}
	return strconv.ParseFloat(answer, 64)
}

func askWeightColumn(o *workflow.Orchestrator, message, current string) (any, error) {
	if current == "" {
		current = noWeightColumn
	}
	options := append([]string{noWeightColumn}, o.ColumnNames()...)
	answer, err := askSelect(message, options, current)
	if err != nil {
		return nil, err
	}
	if answer == noWeightColumn {
		return "", nil
	}
	return answer, nil
}
